package batch

import (
	"encoding/json"
	"os"

	"mwm-renderer/internal/scene"
)

// ManifestEntry represents one rendered model in the output manifest.
type ManifestEntry struct {
	Model string `json:"model"`
	Image string `json:"image"`
	GLB   string `json:"glb,omitempty"`
	scene.Stats
}

// WriteManifest writes the successful results as a JSON array to path.
func WriteManifest(path string, results []Result) error {
	entries := make([]ManifestEntry, 0, len(results))
	for _, r := range results {
		if !r.Success {
			continue
		}
		entries = append(entries, ManifestEntry{
			Model: r.Name,
			Image: r.Image,
			GLB:   r.GLB,
			Stats: r.Stats,
		})
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
