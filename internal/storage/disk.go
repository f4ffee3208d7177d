package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Disk stores assets as files in a single directory. References are bare
// file names; path components in an incoming reference are stripped.
type Disk struct {
	dir    string
	logger *zap.SugaredLogger
}

// NewDisk creates a disk store rooted at dir, creating it if needed.
func NewDisk(dir string, logger *zap.SugaredLogger) (*Disk, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating asset directory: %w", err)
	}
	return &Disk{dir: dir, logger: logger}, nil
}

// StoreProvisional writes the asset under a random name.
func (d *Disk) StoreProvisional(ctx context.Context, r io.Reader, contentTypeHint string) (string, error) {
	name := uuid.NewString() + extensionFor(contentTypeHint)
	path := filepath.Join(d.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating asset file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("writing asset file: %w", err)
	}

	d.logger.Debugw("stored provisional asset", "ref", name)
	return name, nil
}

// Finalize renames the asset to the sanitized hint, keeping the extension.
func (d *Disk) Finalize(ctx context.Context, ref, nameHint string) (string, error) {
	oldName := filepath.Base(ref)
	newName := sanitizeName(nameHint) + filepath.Ext(oldName)
	if newName == oldName {
		return oldName, nil
	}

	if err := os.Rename(filepath.Join(d.dir, oldName), filepath.Join(d.dir, newName)); err != nil {
		return "", fmt.Errorf("finalizing asset %s: %w", oldName, err)
	}

	d.logger.Debugw("finalized asset", "from", oldName, "to", newName)
	return newName, nil
}

// Open reads a stored asset.
func (d *Disk) Open(ctx context.Context, ref string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(d.dir, filepath.Base(ref)))
	if err != nil {
		return nil, fmt.Errorf("opening asset %s: %w", ref, err)
	}
	return f, nil
}

func extensionFor(contentType string) string {
	switch {
	case strings.Contains(contentType, "png"):
		return ".png"
	case strings.Contains(contentType, "jpeg"), strings.Contains(contentType, "jpg"):
		return ".jpg"
	case strings.Contains(contentType, "webp"):
		return ".webp"
	default:
		return ".bin"
	}
}

// sanitizeName keeps letters, digits, dashes and underscores so the hint is
// safe as a file name.
func sanitizeName(hint string) string {
	var b strings.Builder
	for _, r := range hint {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	if b.Len() == 0 {
		return uuid.NewString()
	}
	return b.String()
}
