package store

import (
	"context"
	"fmt"
	"path"

	"vibeandbuild/internal/config"
	"vibeandbuild/internal/content"
	"vibeandbuild/internal/services"
)

// ProjectStore persists the weekly project collection as one JSON array.
type ProjectStore struct {
	path          string
	thumbnailsDir string
}

// Load returns the full collection. Projects without explicit thumbnails get
// them filled from a scan of the thumbnails directory; the merge is applied
// to the returned value only and never written back.
func (s *ProjectStore) Load(ctx context.Context) ([]content.Project, error) {
	projects, err := s.Stored(ctx)
	if err != nil {
		return nil, err
	}
	for i := range projects {
		if len(projects[i].Thumbnails) > 0 {
			continue
		}
		names := ScanWeekThumbnails(s.thumbnailsDir, projects[i].Week)
		if len(names) == 0 {
			continue
		}
		thumbnails := make([]string, len(names))
		for j, name := range names {
			thumbnails[j] = path.Join("/", config.ThumbnailsSubdir, name)
		}
		projects[i].Thumbnails = thumbnails
	}
	return projects, nil
}

// Stored returns the collection exactly as persisted, without the thumbnail
// scan merge. Mutating flows read through this so a subsequent save cannot
// accidentally persist scanned thumbnails.
func (s *ProjectStore) Stored(ctx context.Context) ([]content.Project, error) {
	return readArray[content.Project](s.path)
}

// Save validates every record, dedups its tags, and rewrites the whole
// collection. A single invalid record fails the save with the file
// untouched.
func (s *ProjectStore) Save(ctx context.Context, projects []content.Project) error {
	for i := range projects {
		if err := projects[i].Validate(); err != nil {
			return services.Wrap(services.ErrValidation, "store", "save-projects", err.Error(), nil)
		}
		projects[i].Tags = content.NormalizeTags(projects[i].Tags)
	}
	if err := writeArray(s.path, projects); err != nil {
		return fmt.Errorf("save projects: %w", err)
	}
	return nil
}

// Path returns the backing file location, for status reporting.
func (s *ProjectStore) Path() string { return s.path }
