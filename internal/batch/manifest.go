package batch

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/jonathan/resume-analyzer/internal/types"
)

// Manifest lists the candidates of a batch run.
type Manifest struct {
	Candidates []types.Candidate `json:"candidates" yaml:"candidates" validate:"dive"`
}

var validate = validator.New()

// LoadManifest reads a JSON or YAML manifest. Relative local resume paths are
// resolved against the manifest's directory.
func LoadManifest(path string) ([]types.Candidate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}

	var m Manifest
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &m)
	default:
		err = json.Unmarshal(data, &m)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}

	if err := validate.Struct(m); err != nil {
		return nil, fmt.Errorf("invalid manifest %s: %w", path, err)
	}

	seen := make(map[string]bool, len(m.Candidates))
	dir := filepath.Dir(path)
	for i := range m.Candidates {
		c := &m.Candidates[i]
		if seen[c.ID] {
			return nil, fmt.Errorf("invalid manifest %s: duplicate candidate id %q", path, c.ID)
		}
		seen[c.ID] = true
		if c.Resume != "" && !strings.Contains(c.Resume, "://") && !filepath.IsAbs(c.Resume) {
			c.Resume = filepath.Join(dir, c.Resume)
		}
	}
	return m.Candidates, nil
}
