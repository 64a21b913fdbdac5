package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// LocalArchive writes snapshots under a base directory, grouped by date.
type LocalArchive struct {
	baseDir string
}

// NewLocalArchive creates a LocalArchive. The directory is created if it
// does not exist.
func NewLocalArchive(baseDir string) (*LocalArchive, error) {
	baseDir = strings.TrimSpace(baseDir)
	if baseDir == "" {
		baseDir = "datas/exports"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create archive dir: %w", err)
	}
	return &LocalArchive{baseDir: baseDir}, nil
}

// Save writes the snapshot to disk and returns its relative path.
func (a *LocalArchive) Save(ctx context.Context, name string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("empty snapshot")
	}
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	relativePath := snapshotKey(name)
	absPath := filepath.Join(a.baseDir, filepath.FromSlash(relativePath))
	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return "", fmt.Errorf("create dir: %w", err)
	}
	if err := os.WriteFile(absPath, data, 0o644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}

	return relativePath, nil
}

// snapshotKey builds a dated, sanitised key like 2025/06/01/name.csv.
func snapshotKey(name string) string {
	base := sanitizeFileBase(name)
	now := time.Now().UTC()
	if base == "" {
		base = fmt.Sprintf("export-%d", now.UnixNano())
	}
	datedir := fmt.Sprintf("%04d/%02d/%02d", now.Year(), now.Month(), now.Day())
	return path.Join(datedir, base+".csv")
}

func sanitizeFileBase(value string) string {
	value = strings.ReplaceAll(strings.TrimSpace(value), " ", "-")
	builder := strings.Builder{}
	builder.Grow(len(value))
	for i := 0; i < len(value); i++ {
		ch := value[i]
		switch {
		case ch >= 'a' && ch <= 'z', ch >= '0' && ch <= '9':
			builder.WriteByte(ch)
		case ch >= 'A' && ch <= 'Z':
			builder.WriteByte(ch + 32)
		case ch == '-', ch == '_':
			builder.WriteByte(ch)
		}
	}
	return strings.Trim(builder.String(), "-_")
}

var _ Archive = (*LocalArchive)(nil)
