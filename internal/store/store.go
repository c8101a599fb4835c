package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"vibeandbuild/internal/config"
	"vibeandbuild/internal/services"
)

// Collection file names under the data directory.
const (
	projectsFile    = "projects.json"
	experimentsFile = "experiments.json"
	ideasFile       = "wip-ideas.json"
)

// Stores bundles the three flat-file collections.
type Stores struct {
	Projects    *ProjectStore
	Experiments *ExperimentStore
	Ideas       *IdeaStore
}

// Open binds the collection stores to the configured data and public
// directories. No files are created until the first save.
func Open(cfg *config.Config) (*Stores, error) {
	if cfg == nil {
		return nil, errors.New("store requires config")
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}
	dataDir := cfg.Paths.DataDir
	return &Stores{
		Projects: &ProjectStore{
			path:          filepath.Join(dataDir, projectsFile),
			thumbnailsDir: filepath.Join(cfg.Paths.PublicDir, config.ThumbnailsSubdir),
		},
		Experiments: &ExperimentStore{path: filepath.Join(dataDir, experimentsFile)},
		Ideas:       &IdeaStore{path: filepath.Join(dataDir, ideasFile)},
	}, nil
}

// readArray unmarshals a whole JSON collection. A missing file is a normal
// outcome and yields an empty collection.
func readArray[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []T{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, services.Wrap(services.ErrValidation, "store", "load", fmt.Sprintf("malformed %s", filepath.Base(path)), err)
	}
	if records == nil {
		records = []T{}
	}
	return records, nil
}

// writeArray serializes the full collection as pretty-printed JSON and
// overwrites the backing file in one write call. Concurrent saves race with
// last-write-wins semantics; that is the contract, not an oversight.
func writeArray[T any](path string, records []T) error {
	if records == nil {
		records = []T{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}
