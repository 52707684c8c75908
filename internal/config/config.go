package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds input/output paths and render settings.
type Config struct {
	// Paths
	InputDir  string `json:"input_dir" yaml:"input_dir"`
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// Render settings
	RenderSize  int     `json:"render_size" yaml:"render_size"`
	Supersample int     `json:"supersample" yaml:"supersample"`
	FillRatio   float64 `json:"fill_ratio" yaml:"fill_ratio"`
	Yaw         float64 `json:"yaw" yaml:"yaw"`
	Pitch       float64 `json:"pitch" yaml:"pitch"`
	Perspective bool    `json:"perspective" yaml:"perspective"`
	FOV         float64 `json:"fov" yaml:"fov"`
	Workers     int     `json:"workers" yaml:"workers"`
	ExportGLB   bool    `json:"export_glb" yaml:"export_glb"`

	LogLevel string `json:"log_level" yaml:"log_level"`
}

// Load reads a config file and returns Config. Files ending in .yaml or
// .yml are parsed as YAML, anything else as JSON.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		err = json.Unmarshal(data, &cfg)
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Resolve applies flag overrides and fills in defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.InputDir != "" {
		c.InputDir = flags.InputDir
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Size > 0 {
		c.RenderSize = flags.Size
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Yaw != nil {
		c.Yaw = *flags.Yaw
	}
	if flags.Pitch != nil {
		c.Pitch = *flags.Pitch
	}
	if flags.Perspective {
		c.Perspective = true
	}
	if flags.ExportGLB {
		c.ExportGLB = true
	}
	if flags.LogLevel != "" {
		c.LogLevel = flags.LogLevel
	}

	if c.InputDir == "" {
		c.InputDir = "."
	}
	if c.OutputDir == "" {
		c.OutputDir = filepath.Join(c.InputDir, "renders")
	} else if !filepath.IsAbs(c.OutputDir) && flags.OutputDir == "" {
		c.OutputDir = filepath.Join(c.InputDir, c.OutputDir)
	}

	// Defaults for render settings
	if c.RenderSize <= 0 {
		c.RenderSize = 256
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	if c.FillRatio <= 0 || c.FillRatio > 1 {
		c.FillRatio = 0.8
	}
	if c.Yaw == 0 && c.Pitch == 0 && flags.Yaw == nil && flags.Pitch == nil {
		c.Yaw, c.Pitch = 35, 20
	}
	if c.FOV <= 0 || c.FOV >= 180 {
		c.FOV = 60
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// Flags holds CLI flag values that override config file settings.
// Yaw and Pitch are nil when the flag was not given.
type Flags struct {
	InputDir    string
	OutputDir   string
	Size        int
	Workers     int
	Yaw         *float64
	Pitch       *float64
	Perspective bool
	ExportGLB   bool
	LogLevel    string
}
