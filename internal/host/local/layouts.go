package local

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/bytedance/sonic"

	"github.com/visorhq/visor/host/internal/shared/types"
)

// Layouts loads saved panel layouts from a directory of JSON files
type Layouts struct {
	dir string
}

// NewLayouts creates a layout store rooted at dir
func NewLayouts(dir string) *Layouts {
	return &Layouts{dir: dir}
}

// FetchLayouts implements host.LayoutStore. Missing directory means no
// saved layouts, not an error.
func (l *Layouts) FetchLayouts(ctx context.Context) ([]types.Layout, error) {
	matches, err := doublestar.FilepathGlob(filepath.Join(l.dir, "**", "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan layouts: %w", err)
	}

	layouts := make([]types.Layout, 0, len(matches))
	for _, path := range matches {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var parsed map[string]interface{}
		if err := sonic.Unmarshal(data, &parsed); err != nil {
			continue // skip malformed layout files
		}
		id := strings.TrimSuffix(filepath.Base(path), ".json")
		name := id
		if n, ok := parsed["name"].(string); ok && n != "" {
			name = n
		}
		layouts = append(layouts, types.Layout{ID: id, Name: name, Data: parsed})
	}

	sort.Slice(layouts, func(i, j int) bool { return layouts[i].ID < layouts[j].ID })
	return layouts, nil
}
