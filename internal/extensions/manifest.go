package extensions

import (
	"fmt"

	"github.com/goccy/go-yaml"

	"github.com/visorhq/visor/host/internal/shared/types"
)

// manifestName is the descriptor file expected at the root of every
// extension directory and package
const manifestName = "manifest.yaml"

// manifest is the on-disk extension descriptor
type manifest struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Version     string `yaml:"version"`
	Description string `yaml:"description"`
	Publisher   string `yaml:"publisher"`
	Entry       string `yaml:"entry"`
}

func parseManifest(data []byte) (*manifest, error) {
	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("invalid manifest: %w", err)
	}
	if m.Name == "" {
		return nil, fmt.Errorf("invalid manifest: name required")
	}
	if m.Entry == "" {
		m.Entry = "index.js"
	}
	return &m, nil
}

func (m *manifest) toExtension() types.Extension {
	return types.Extension{
		ID:          m.ID,
		Name:        m.Name,
		Version:     m.Version,
		Description: m.Description,
		Publisher:   m.Publisher,
		Entry:       m.Entry,
	}
}
