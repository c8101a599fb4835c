package capture_test

import (
	"context"
	"errors"
	"testing"

	"vibeandbuild/internal/capture"
	"vibeandbuild/internal/services"
)

type backendStub struct {
	subscribers map[string]bool
	ideaCalls   int
	lookupErr   error
	addErr      error
	lastEmail   string
	lastIdea    string
}

func newBackendStub() *backendStub {
	return &backendStub{subscribers: map[string]bool{}}
}

func (b *backendStub) SubscriberExists(_ context.Context, email string) (bool, error) {
	if b.lookupErr != nil {
		return false, b.lookupErr
	}
	return b.subscribers[email], nil
}

func (b *backendStub) AddSubscriber(_ context.Context, id, email string) error {
	if b.addErr != nil {
		return b.addErr
	}
	b.subscribers[email] = true
	b.lastEmail = email
	return nil
}

func (b *backendStub) AddIdea(_ context.Context, id, text string) error {
	b.ideaCalls++
	b.lastIdea = text
	return b.addErr
}

func (b *backendStub) Close() error { return nil }

func TestSubscribeDeduplicatesAcrossCaseAndWhitespace(t *testing.T) {
	backend := newBackendStub()
	svc := capture.NewService(backend)
	ctx := context.Background()

	if err := svc.Subscribe(ctx, "A@B.com "); err != nil {
		t.Fatalf("first subscribe failed: %v", err)
	}
	if backend.lastEmail != "a@b.com" {
		t.Fatalf("expected normalized email stored, got %q", backend.lastEmail)
	}

	err := svc.Subscribe(ctx, "a@b.com")
	if !errors.Is(err, services.ErrDuplicate) {
		t.Fatalf("expected duplicate rejection, got %v", err)
	}
}

func TestSubscribeRejectsInvalidEmail(t *testing.T) {
	svc := capture.NewService(newBackendStub())
	ctx := context.Background()

	if err := svc.Subscribe(ctx, "   "); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error for empty email, got %v", err)
	}
	if err := svc.Subscribe(ctx, "not-an-email"); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error for missing @, got %v", err)
	}
}

func TestSubmitIdeaRejectsEmptyBeforeBackendCall(t *testing.T) {
	backend := newBackendStub()
	svc := capture.NewService(backend)

	err := svc.SubmitIdea(context.Background(), "   \t ")
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if backend.ideaCalls != 0 {
		t.Fatalf("backend must not be called for empty text, got %d calls", backend.ideaCalls)
	}
}

func TestSubmitIdeaTrimsText(t *testing.T) {
	backend := newBackendStub()
	svc := capture.NewService(backend)

	if err := svc.SubmitIdea(context.Background(), "  build a kite cam  "); err != nil {
		t.Fatalf("SubmitIdea failed: %v", err)
	}
	if backend.lastIdea != "build a kite cam" {
		t.Fatalf("expected trimmed idea, got %q", backend.lastIdea)
	}
}

func TestBackendErrorsKeepClassification(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		expect error
	}{
		{"permission", services.ErrPermission, services.ErrPermission},
		{"unavailable", services.ErrUnavailable, services.ErrUnavailable},
		{"precondition", services.ErrPrecondition, services.ErrPrecondition},
		{"untagged", errors.New("socket closed"), services.ErrInternal},
	}
	for _, tc := range cases {
		backend := newBackendStub()
		backend.lookupErr = tc.err
		svc := capture.NewService(backend)
		err := svc.Subscribe(context.Background(), "a@b.com")
		if !errors.Is(err, tc.expect) {
			t.Fatalf("%s: expected %v classification, got %v", tc.name, tc.expect, err)
		}
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := capture.NormalizeEmail("  MiXeD@Example.COM  "); got != "mixed@example.com" {
		t.Fatalf("unexpected normalization: %q", got)
	}
}
