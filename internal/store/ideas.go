package store

import (
	"context"
	"fmt"
)

// IdeaStore persists the work-in-progress idea list, a bare string array
// whose only record identity is position.
type IdeaStore struct {
	path string
}

// Load returns the full idea list.
func (s *IdeaStore) Load(ctx context.Context) ([]string, error) {
	return readArray[string](s.path)
}

// Save rewrites the whole list. Every element is already a string by type,
// so there is nothing further to validate.
func (s *IdeaStore) Save(ctx context.Context, ideas []string) error {
	if err := writeArray(s.path, ideas); err != nil {
		return fmt.Errorf("save wip ideas: %w", err)
	}
	return nil
}

// Path returns the backing file location, for status reporting.
func (s *IdeaStore) Path() string { return s.path }
