package download

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestDownload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/textures/brick wall.png":
			w.Header().Set("Content-Type", "image/png")
			w.Write([]byte("png-bytes"))
		case "/named":
			w.Header().Set("Content-Type", "image/jpeg; charset=binary")
			w.Header().Set("Content-Disposition", `attachment; filename="wood.jpeg"`)
			w.Write([]byte("jpg-bytes"))
		case "/page":
			w.Header().Set("Content-Type", "text/html")
			w.Write([]byte("<html>"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	dir := t.TempDir()
	ctx := context.Background()

	got, err := Download(ctx, srv.Client(), srv.URL+"/textures/brick%20wall.png?v=2", dir)
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	if filepath.Base(got) != "brick_20wall.png" {
		t.Fatalf("saved as %q", filepath.Base(got))
	}
	if b, _ := os.ReadFile(got); string(b) != "png-bytes" {
		t.Fatalf("saved content %q", b)
	}

	got, err = Download(ctx, srv.Client(), srv.URL+"/named", dir)
	if err != nil {
		t.Fatalf("Download named: %v", err)
	}
	if filepath.Base(got) != "wood.jpg" {
		t.Fatalf("saved as %q, want wood.jpg", filepath.Base(got))
	}

	if _, err := Download(ctx, srv.Client(), srv.URL+"/page", dir); err == nil {
		t.Fatal("non-image download succeeded")
	}
	if _, err := Download(ctx, srv.Client(), srv.URL+"/missing.png", dir); err == nil {
		t.Fatal("404 download succeeded")
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := map[string]string{
		"":            "download",
		"a b/c":       "a_b_c",
		"..":          "download",
		"ok-name_1.x": "ok-name_1.x",
	}
	for in, want := range tests {
		if got := sanitizeFilename(in); got != want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", in, got, want)
		}
	}
}
