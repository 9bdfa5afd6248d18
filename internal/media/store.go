// Package media stores uploaded files under the configured media
// directory.
package media

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/karobarhq/karobar/internal/config"
	"go.uber.org/fx"
)

var Module = fx.Provide(NewStore)

type Store struct {
	dir string
}

func NewStore(cfg config.Config) (*Store, error) {
	dir := filepath.Clean(cfg.MediaDir)
	if err := os.MkdirAll(filepath.Join(dir, "products"), 0o755); err != nil {
		return nil, fmt.Errorf("create media dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Save writes data under a fresh name derived from the original
// filename's extension and returns the store-relative path.
func (s *Store) Save(originalName string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if len(ext) > 10 {
		ext = ""
	}
	rel := filepath.Join("products", uuid.NewString()+ext)
	if err := os.WriteFile(filepath.Join(s.dir, rel), data, 0o644); err != nil {
		return "", fmt.Errorf("write media file: %w", err)
	}
	return rel, nil
}

// Path resolves a store-relative path to an absolute one.
func (s *Store) Path(rel string) string {
	return filepath.Join(s.dir, rel)
}
