package batch

import (
	"encoding/json"
	"os"
	"time"
)

// ManifestName is the file WriteManifest output is stored under in the
// output directory.
const ManifestName = "manifest.json"

// Manifest describes one batch run.
type Manifest struct {
	Mode     string    `json:"mode"`
	SBox     string    `json:"sbox"`
	Created  time.Time `json:"created"`
	Files    []Result  `json:"files"`
	Failures int       `json:"failures"`
}

// WriteManifest writes manifest.json to path.
func WriteManifest(path string, mode Mode, sbox string, results []Result) error {
	m := Manifest{
		Mode:    mode.String(),
		SBox:    sbox,
		Created: time.Now().UTC(),
		Files:   results,
	}
	for _, r := range results {
		if !r.Success {
			m.Failures++
		}
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
