// Package capture records mailing-list subscribers and visitor-submitted
// ideas. Records land in Firestore when a project is configured, otherwise
// in a local SQLite database, behind a shared Backend interface.
package capture

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/cases"

	"vibeandbuild/internal/services"
)

// Backend appends capture records to a document store. Timestamps are
// assigned by the backend so they reflect server time, not client time.
type Backend interface {
	SubscriberExists(ctx context.Context, email string) (bool, error)
	AddSubscriber(ctx context.Context, id, email string) error
	AddIdea(ctx context.Context, id, text string) error
	Close() error
}

// Service implements the public subscribe and idea-submission operations.
type Service struct {
	backend Backend
}

// NewService wraps a backend.
func NewService(backend Backend) *Service {
	return &Service{backend: backend}
}

// Subscribe normalizes the email, rejects duplicates by exact match on the
// normalized form, and appends a subscriber record.
func (s *Service) Subscribe(ctx context.Context, email string) error {
	normalized := NormalizeEmail(email)
	if normalized == "" {
		return services.Wrap(services.ErrValidation, "capture", "subscribe", "please enter your email address", nil)
	}
	if !strings.Contains(normalized, "@") {
		return services.Wrap(services.ErrValidation, "capture", "subscribe", "please enter a valid email address", nil)
	}

	exists, err := s.backend.SubscriberExists(ctx, normalized)
	if err != nil {
		return services.Wrap(classify(err), "capture", "subscribe", "lookup failed", err)
	}
	if exists {
		return services.Wrap(services.ErrDuplicate, "capture", "subscribe", "this email is already subscribed", nil)
	}

	if err := s.backend.AddSubscriber(ctx, uuid.NewString(), normalized); err != nil {
		return services.Wrap(classify(err), "capture", "subscribe", "append failed", err)
	}
	return nil
}

// SubmitIdea stores a visitor idea. Empty or whitespace-only text is
// rejected before any backend call.
func (s *Service) SubmitIdea(ctx context.Context, text string) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return services.Wrap(services.ErrValidation, "capture", "submit-idea", "idea text must not be empty", nil)
	}

	if err := s.backend.AddIdea(ctx, uuid.NewString(), trimmed); err != nil {
		return services.Wrap(classify(err), "capture", "submit-idea", "append failed", err)
	}
	return nil
}

// Close releases the backend.
func (s *Service) Close() error {
	if s == nil || s.backend == nil {
		return nil
	}
	return s.backend.Close()
}

// NormalizeEmail trims surrounding whitespace and case-folds, so
// "A@B.com " and "a@b.com" compare equal.
func NormalizeEmail(email string) string {
	return cases.Fold().String(strings.TrimSpace(email))
}

// classify preserves a marker a backend already attached; anything untagged
// collapses to the generic internal failure.
func classify(err error) error {
	for _, marker := range []error{
		services.ErrPermission,
		services.ErrUnavailable,
		services.ErrPrecondition,
		services.ErrDuplicate,
	} {
		if errors.Is(err, marker) {
			return marker
		}
	}
	return services.ErrInternal
}
