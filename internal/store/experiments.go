package store

import (
	"context"
	"fmt"

	"vibeandbuild/internal/content"
	"vibeandbuild/internal/services"
)

// ExperimentStore persists the gallery experiment collection.
type ExperimentStore struct {
	path string
}

// Load returns the full experiment collection.
func (s *ExperimentStore) Load(ctx context.Context) ([]content.Experiment, error) {
	return readArray[content.Experiment](s.path)
}

// Save validates every record, dedups its tags, and rewrites the whole
// collection.
func (s *ExperimentStore) Save(ctx context.Context, experiments []content.Experiment) error {
	for i := range experiments {
		if err := experiments[i].Validate(); err != nil {
			return services.Wrap(services.ErrValidation, "store", "save-experiments", err.Error(), nil)
		}
		experiments[i].Tags = content.NormalizeTags(experiments[i].Tags)
	}
	if err := writeArray(s.path, experiments); err != nil {
		return fmt.Errorf("save experiments: %w", err)
	}
	return nil
}

// Path returns the backing file location, for status reporting.
func (s *ExperimentStore) Path() string { return s.path }
