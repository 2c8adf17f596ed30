package extensions

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/charlievieth/fastwalk"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/klauspost/compress/zip"

	"github.com/visorhq/visor/host/internal/shared/types"
	"github.com/visorhq/visor/host/internal/shared/utils"
)

// maxPackageSize bounds install payloads (decompressed per-file as well)
const maxPackageSize = 200 * 1024 * 1024

// Handler serves extension operations from a single host directory. One
// instance exists per process, shared by all callers; see Lazy.
type Handler struct {
	dir string
}

// NewHandler creates a handler rooted at dir, creating it if needed
func NewHandler(dir string) (*Handler, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create extensions directory: %w", err)
	}
	return &Handler{dir: dir}, nil
}

// Dir returns the host directory the handler is scoped to
func (h *Handler) Dir() string {
	return h.dir
}

// List returns metadata for every installed extension, sorted by ID
func (h *Handler) List(ctx context.Context) ([]types.Extension, error) {
	var (
		mu   sync.Mutex
		exts []types.Extension
	)

	conf := fastwalk.Config{Follow: false}
	err := fastwalk.Walk(&conf, h.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip unreadable entries
		}
		if d.IsDir() {
			if path == h.dir {
				return nil
			}
			// only <root>/<id>/manifest.yaml counts; a manifest nested
			// deeper (vendored dirs) is not an installed extension, and
			// dot directories (install staging) are never listed
			if strings.HasPrefix(d.Name(), ".") || filepath.Dir(path) != h.dir {
				return fs.SkipDir
			}
			return nil
		}
		if d.Name() != manifestName || filepath.Dir(filepath.Dir(path)) != h.dir {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		m, err := parseManifest(data)
		if err != nil {
			return nil
		}
		ext := m.toExtension()
		if ext.ID == "" {
			ext.ID = filepath.Base(filepath.Dir(path))
		}
		mu.Lock()
		exts = append(exts, ext)
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan extensions: %w", err)
	}

	sort.Slice(exts, func(i, j int) bool { return exts[i].ID < exts[j].ID })
	return exts, nil
}

// Load returns the executable entry content of an installed extension
func (h *Handler) Load(ctx context.Context, id string) ([]byte, error) {
	dir, err := h.extensionDir(id)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(dir, manifestName))
	if err != nil {
		return nil, fmt.Errorf("extension not found: %s", id)
	}
	m, err := parseManifest(data)
	if err != nil {
		return nil, err
	}
	content, err := os.ReadFile(filepath.Join(dir, m.Entry))
	if err != nil {
		return nil, fmt.Errorf("failed to read extension entry: %w", err)
	}
	return content, nil
}

// Install unpacks a zip extension package and registers it, returning its
// ID. A malformed package leaves previously installed extensions
// untouched: unpacking happens in a staging directory that only replaces
// the target after the whole package validates.
func (h *Handler) Install(ctx context.Context, data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("empty extension package")
	}
	if len(data) > maxPackageSize {
		return "", errors.New("extension package too large")
	}
	if kind := mimetype.Detect(data); !kind.Is("application/zip") {
		return "", fmt.Errorf("invalid extension package: expected zip, got %s", kind.String())
	}

	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("invalid extension package: %w", err)
	}

	staging, err := os.MkdirTemp(h.dir, ".staging-*")
	if err != nil {
		return "", fmt.Errorf("failed to create staging directory: %w", err)
	}
	defer os.RemoveAll(staging)

	var manifestData []byte
	for _, file := range reader.File {
		if err := extractFile(file, staging); err != nil {
			return "", err
		}
		if file.Name == manifestName {
			manifestData, _ = os.ReadFile(filepath.Join(staging, manifestName))
		}
	}
	if manifestData == nil {
		return "", errors.New("invalid extension package: missing manifest.yaml")
	}

	m, err := parseManifest(manifestData)
	if err != nil {
		return "", err
	}
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if _, err := os.Stat(filepath.Join(staging, m.Entry)); err != nil {
		return "", fmt.Errorf("invalid extension package: entry %s missing", m.Entry)
	}

	target, err := h.extensionDir(m.ID)
	if err != nil {
		return "", err
	}
	if err := os.RemoveAll(target); err != nil {
		return "", fmt.Errorf("failed to replace extension %s: %w", m.ID, err)
	}
	if err := os.Rename(staging, target); err != nil {
		return "", fmt.Errorf("failed to register extension %s: %w", m.ID, err)
	}
	return m.ID, nil
}

// Uninstall removes an installed extension, reporting whether it existed
func (h *Handler) Uninstall(ctx context.Context, id string) (bool, error) {
	dir, err := h.extensionDir(id)
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err := os.RemoveAll(dir); err != nil {
		return false, fmt.Errorf("failed to uninstall extension %s: %w", id, err)
	}
	return true, nil
}

// extensionDir validates the id cannot escape the handler root
func (h *Handler) extensionDir(id string) (string, error) {
	if err := utils.ValidateName("extension id", id); err != nil {
		return "", err
	}
	return filepath.Join(h.dir, id), nil
}

func extractFile(file *zip.File, dest string) error {
	name := filepath.Clean(file.Name)
	if filepath.IsAbs(name) || strings.HasPrefix(name, "..") {
		return fmt.Errorf("invalid extension package: unsafe path %s", file.Name)
	}
	if file.UncompressedSize64 > maxPackageSize {
		return fmt.Errorf("invalid extension package: entry %s too large", file.Name)
	}
	path := filepath.Join(dest, name)

	if file.FileInfo().IsDir() {
		return os.MkdirAll(path, 0o755)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	src, err := file.Open()
	if err != nil {
		return fmt.Errorf("invalid extension package: %w", err)
	}
	defer src.Close()

	dst, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer dst.Close()

	// the header size can lie, so the copy is bounded too: hitting the
	// limit means the entry is oversized, never silently cut short
	written, err := io.Copy(dst, io.LimitReader(src, maxPackageSize+1))
	if err != nil {
		return fmt.Errorf("invalid extension package: %w", err)
	}
	if written > maxPackageSize {
		return fmt.Errorf("invalid extension package: entry %s too large", file.Name)
	}
	return nil
}
