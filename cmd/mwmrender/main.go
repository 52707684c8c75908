package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"mwm-renderer/internal/batch"
	"mwm-renderer/internal/config"
	"mwm-renderer/internal/logging"
	"mwm-renderer/internal/viewmatrix"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to a .json or .yaml config file")
	testN := flag.Int("test", 0, "Render only first N models for testing")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	inputDir := flag.String("input", "", "Directory searched for .mwm files (default: .)")
	outputDir := flag.String("output", "", "Output directory (default: <input>/renders)")
	size := flag.Int("size", 0, "Output image size in pixels (default: 256)")
	yaw := flag.Float64("yaw", 0, "Camera yaw in degrees (default: 35)")
	pitch := flag.Float64("pitch", 0, "Camera pitch in degrees (default: 20)")
	perspective := flag.Bool("perspective", false, "Use a perspective camera")
	glb := flag.Bool("glb", false, "Also export each model as binary glTF")
	logLevel := flag.String("log", "", "Log level: debug, info, warn, error (default: info)")

	flag.Parse()

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	flags := config.Flags{
		InputDir:    *inputDir,
		OutputDir:   *outputDir,
		Size:        *size,
		Workers:     *workers,
		Perspective: *perspective,
		ExportGLB:   *glb,
		LogLevel:    *logLevel,
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "yaw":
			flags.Yaw = yaw
		case "pitch":
			flags.Pitch = pitch
		}
	})
	cfg.Resolve(flags)

	if err := logging.Setup(cfg.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	models, err := batch.FindModels(cfg.InputDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Limit for testing
	if *testN > 0 && *testN < len(models) {
		models = models[:*testN]
	}

	if len(models) == 0 {
		fmt.Println("No models to render.")
		os.Exit(0)
	}

	// Print summary
	mode := ""
	if *testN > 0 {
		mode = fmt.Sprintf(" (TEST: first %d)", *testN)
	}

	fmt.Printf("MWM Model Renderer → WebP%s\n", mode)
	fmt.Printf("Models: %d, Workers: %d\n", len(models), cfg.Workers)
	fmt.Printf("Camera: yaw %.0f°, pitch %.0f°\n", cfg.Yaw, cfg.Pitch)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	// Run batch
	batchCfg := batch.Config{
		InputDir:    cfg.InputDir,
		OutputDir:   cfg.OutputDir,
		RenderSize:  cfg.RenderSize,
		Supersample: cfg.Supersample,
		FillRatio:   cfg.FillRatio,
		Camera: viewmatrix.Camera{
			Yaw:         cfg.Yaw,
			Pitch:       cfg.Pitch,
			Perspective: cfg.Perspective,
			FOV:         cfg.FOV,
		},
		Workers:   cfg.Workers,
		ExportGLB: cfg.ExportGLB,
	}

	results := batch.Run(batchCfg, models)

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	// Count results
	success, failed := 0, 0
	var errors []batch.Result
	for _, r := range results {
		if r.Success {
			success++
		} else {
			failed++
			errors = append(errors, r)
		}
	}

	fmt.Printf("Rendered: %d/%d\n", success, len(models))

	if len(errors) > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		limit := min(len(errors), 20)
		for _, e := range errors[:limit] {
			fmt.Printf("  %s: %s\n", e.Name, e.Error)
		}
	}

	// Write manifest
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	os.MkdirAll(cfg.OutputDir, 0755)
	if err := batch.WriteManifest(manifestPath, results); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if failed > 0 {
		os.Exit(1)
	}
}
