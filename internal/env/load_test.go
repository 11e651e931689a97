package env

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	in := `# comment
ARSHAPES_TEXTURE="assets/textures/wood.png"
export ARSHAPES_MODEL='models/earth.gltf'

NOEQUALS
=novalue
ARSHAPES_GL_VERSION = 2.0
`
	got, err := Parse(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]string{
		"ARSHAPES_TEXTURE":    "assets/textures/wood.png",
		"ARSHAPES_MODEL":      "models/earth.gltf",
		"ARSHAPES_GL_VERSION": "2.0",
	}
	if len(got) != len(want) {
		t.Fatalf("Parse = %v", got)
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("%s = %q, want %q", k, got[k], v)
		}
	}
}

func TestLoadKeepsExistingVariables(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("ARSHAPES_TEST_A=file\nARSHAPES_TEST_B=file\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("ARSHAPES_TEST_A", "real")
	t.Setenv("ARSHAPES_TEST_B", "")
	os.Unsetenv("ARSHAPES_TEST_B")

	if err := Load(path); err != nil {
		t.Fatal(err)
	}
	if got := os.Getenv("ARSHAPES_TEST_A"); got != "real" {
		t.Fatalf("A = %q, want the real environment value", got)
	}
	if got := os.Getenv("ARSHAPES_TEST_B"); got != "file" {
		t.Fatalf("B = %q, want the file value", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if err := Load(filepath.Join(t.TempDir(), "none")); err != nil {
		t.Fatalf("Load of a missing file: %v", err)
	}
}
