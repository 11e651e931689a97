// Package config holds the app's settings: window, simulated device and planes, session
// configuration and material sources. Settings live in a YAML file and can be overridden
// from the environment.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"arshapes/internal/ar"
	"arshapes/internal/logger"
)

// DefaultPath is the config file location, relative to the working directory.
const DefaultPath = "config/arshapes.yaml"

type Window struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Title      string `yaml:"title"`
	Fullscreen bool   `yaml:"fullscreen"`
	TargetFPS  int    `yaml:"target_fps"`
}

// Device describes the simulated host for the capability check.
type Device struct {
	Availability string  `yaml:"availability"`
	GLVersion    string  `yaml:"gl_version"`
	MinGLVersion float64 `yaml:"min_gl_version,omitempty"`
}

type Session struct {
	PlaneFinding    string `yaml:"plane_finding"`
	LightEstimation string `yaml:"light_estimation"`
}

type Materials struct {
	Color          string `yaml:"color"`
	Texture        string `yaml:"texture"`
	Model          string `yaml:"model"`
	MaxTextureEdge int    `yaml:"max_texture_edge"`
	CacheDir       string `yaml:"cache_dir"`
}

type Placement struct {
	Size                  float32 `yaml:"size"`
	RequireReadyMaterials bool    `yaml:"require_ready_materials"`
	// DropHeight is how far above its anchor a new shape appears before settling.
	// Zero places it directly.
	DropHeight float32 `yaml:"drop_height"`
}

// Plane is a simulated detected plane. Extent is [x, z] for horizontal planes and
// [width, height] for vertical ones.
type Plane struct {
	ID     string     `yaml:"id"`
	Type   string     `yaml:"type"`
	Center [3]float32 `yaml:"center"`
	Normal [3]float32 `yaml:"normal,omitempty"`
	Extent [2]float32 `yaml:"extent"`
}

// Clutter scatters generated table tops over the floor in addition to Planes. Zero
// fields keep the generator's defaults.
type Clutter struct {
	Enabled   bool    `yaml:"enabled"`
	Seed      int64   `yaml:"seed"`
	Cols      int     `yaml:"cols"`
	Rows      int     `yaml:"rows"`
	Cell      float32 `yaml:"cell"`
	MinHeight float32 `yaml:"min_height"`
	MaxHeight float32 `yaml:"max_height"`
	Threshold float32 `yaml:"threshold"`
}

type Light struct {
	AmbientIntensity float32    `yaml:"ambient_intensity"`
	AmbientColor     [3]float32 `yaml:"ambient_color"`
	MainLightDir     [3]float32 `yaml:"main_light_dir"`
}

// UI points at the overlay stylesheet and font. Font is a file path or a family name
// searched under assets/fonts; empty uses raylib's built-in font.
type UI struct {
	CSS  string `yaml:"css"`
	Font string `yaml:"font"`
}

type Debug struct {
	ShowFPS    bool `yaml:"show_fps"`
	ShowPlanes bool `yaml:"show_planes"`
}

// Config is the whole settings file.
type Config struct {
	Window    Window    `yaml:"window"`
	Device    Device    `yaml:"device"`
	Session   Session   `yaml:"session"`
	Materials Materials `yaml:"materials"`
	Placement Placement `yaml:"placement"`
	Planes    []Plane   `yaml:"planes"`
	Clutter   Clutter   `yaml:"clutter"`
	Light     Light     `yaml:"light"`
	UI        UI        `yaml:"ui"`
	Debug     Debug     `yaml:"debug"`
	LogFile   string    `yaml:"log_file"`
}

// Default returns the settings used when no file exists: a supported device, a floor,
// a table top, a wall and a ceiling.
func Default() Config {
	return Config{
		Window: Window{Width: 1280, Height: 720, Title: "arshapes", TargetFPS: 60},
		Device: Device{Availability: ar.SupportedInstalled.String(), GLVersion: "3.3"},
		Session: Session{
			PlaneFinding:    "horizontal_and_vertical",
			LightEstimation: "environmental_hdr",
		},
		Materials: Materials{
			Color:          "#444444",
			Texture:        "assets/textures/texture.png",
			Model:          "assets/models/mercury.gltf",
			MaxTextureEdge: 2048,
			CacheDir:       "assets/cache",
		},
		Placement: Placement{Size: 0.3, DropHeight: 0.25},
		Planes: []Plane{
			{ID: "floor", Type: "horizontal_upward_facing", Center: [3]float32{0, 0, 0}, Extent: [2]float32{8, 8}},
			{ID: "table", Type: "horizontal_upward_facing", Center: [3]float32{1.5, 0.75, -1}, Extent: [2]float32{1.2, 0.8}},
			{ID: "wall", Type: "vertical", Center: [3]float32{0, 1.5, -4}, Normal: [3]float32{0, 0, 1}, Extent: [2]float32{8, 3}},
			{ID: "ceiling", Type: "horizontal_downward_facing", Center: [3]float32{0, 3, 0}, Extent: [2]float32{8, 8}},
		},
		Light: Light{
			AmbientIntensity: 0.6,
			AmbientColor:     [3]float32{1, 0.97, 0.92},
			MainLightDir:     [3]float32{0.5, 1, 0.5},
		},
		UI:      UI{CSS: "assets/ui/arshapes.css"},
		LogFile: logger.DefaultPath,
	}
}

// Load reads the YAML file at path on top of Default(). A missing file is not an error.
// On a parse error Default() is returned together with the error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path, creating the directory if needed.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Environment variables read by ApplyEnv.
const (
	EnvTexture      = "ARSHAPES_TEXTURE"
	EnvModel        = "ARSHAPES_MODEL"
	EnvGLVersion    = "ARSHAPES_GL_VERSION"
	EnvAvailability = "ARSHAPES_AVAILABILITY"
)

// ApplyEnv overrides settings from non-empty environment variables.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv(EnvTexture); v != "" {
		c.Materials.Texture = v
	}
	if v := getenv(EnvModel); v != "" {
		c.Materials.Model = v
	}
	if v := getenv(EnvGLVersion); v != "" {
		c.Device.GLVersion = v
	}
	if v := getenv(EnvAvailability); v != "" {
		c.Device.Availability = v
	}
}

// SessionConfig converts the session section.
func (c *Config) SessionConfig() (ar.SessionConfig, error) {
	out := ar.DefaultSessionConfig()
	switch c.Session.PlaneFinding {
	case "", "horizontal_and_vertical":
	case "horizontal":
		out.PlaneFinding = ar.PlaneFindingHorizontal
	case "vertical":
		out.PlaneFinding = ar.PlaneFindingVertical
	case "disabled":
		out.PlaneFinding = ar.PlaneFindingDisabled
	default:
		return out, fmt.Errorf("config: unknown plane_finding %q", c.Session.PlaneFinding)
	}
	switch c.Session.LightEstimation {
	case "", "environmental_hdr":
	case "ambient_intensity":
		out.LightEstimation = ar.LightEstimationAmbientIntensity
	case "disabled":
		out.LightEstimation = ar.LightEstimationDisabled
	default:
		return out, fmt.Errorf("config: unknown light_estimation %q", c.Session.LightEstimation)
	}
	return out, nil
}

// Availability parses the simulated device availability. Empty means unknown.
func (c *Config) Availability() (ar.Availability, error) {
	if c.Device.Availability == "" {
		return ar.AvailabilityUnknownError, nil
	}
	return ar.ParseAvailability(c.Device.Availability)
}

// ARPlanes converts the plane list. Horizontal planes get their normal from their type.
func (c *Config) ARPlanes() ([]*ar.Plane, error) {
	out := make([]*ar.Plane, 0, len(c.Planes))
	for i, p := range c.Planes {
		typ, err := ar.ParsePlaneType(p.Type)
		if err != nil {
			return nil, fmt.Errorf("config: plane %d: %w", i, err)
		}
		normal := ar.V3(p.Normal[0], p.Normal[1], p.Normal[2])
		switch typ {
		case ar.HorizontalUpwardFacing:
			normal = ar.V3(0, 1, 0)
		case ar.HorizontalDownwardFacing:
			normal = ar.V3(0, -1, 0)
		default:
			if normal.Len() == 0 || normal.Y != 0 {
				return nil, fmt.Errorf("config: plane %d: vertical plane needs a horizontal normal", i)
			}
		}
		id := p.ID
		if id == "" {
			id = "plane" + strconv.Itoa(i)
		}
		out = append(out, &ar.Plane{
			ID:      id,
			Type:    typ,
			Center:  ar.Pose{Position: ar.V3(p.Center[0], p.Center[1], p.Center[2])},
			Normal:  normal.Normalize(),
			ExtentX: p.Extent[0],
			ExtentZ: p.Extent[1],
		})
	}
	return out, nil
}

// LightEstimate converts the light section.
func (c *Config) LightEstimate() ar.LightEstimate {
	d := c.Light.MainLightDir
	return ar.LightEstimate{
		AmbientIntensity: c.Light.AmbientIntensity,
		AmbientColor:     c.Light.AmbientColor,
		MainLightDir:     ar.V3(d[0], d[1], d[2]).Normalize(),
	}
}

// MaterialColor parses the flat material color, #RGB or #RRGGBB.
func (c *Config) MaterialColor() (color.RGBA, error) {
	return ParseHexColor(c.Materials.Color)
}

// ParseHexColor parses #RGB or #RRGGBB into an opaque color.
func ParseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("config: bad color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("config: bad color %q", s)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}
