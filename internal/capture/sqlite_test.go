package capture_test

import (
	"context"
	"testing"

	"vibeandbuild/internal/capture"
)

func TestSQLiteBackendRoundTrip(t *testing.T) {
	backend, err := capture.OpenSQLiteBackend(t.TempDir())
	if err != nil {
		t.Fatalf("open backend: %v", err)
	}
	defer backend.Close()

	ctx := context.Background()
	exists, err := backend.SubscriberExists(ctx, "a@b.com")
	if err != nil {
		t.Fatalf("SubscriberExists failed: %v", err)
	}
	if exists {
		t.Fatal("expected no subscriber in fresh database")
	}

	if err := backend.AddSubscriber(ctx, "id-1", "a@b.com"); err != nil {
		t.Fatalf("AddSubscriber failed: %v", err)
	}
	exists, err = backend.SubscriberExists(ctx, "a@b.com")
	if err != nil {
		t.Fatalf("SubscriberExists failed: %v", err)
	}
	if !exists {
		t.Fatal("expected subscriber to be found after insert")
	}

	if err := backend.AddIdea(ctx, "id-2", "musical stairs"); err != nil {
		t.Fatalf("AddIdea failed: %v", err)
	}
}

func TestSQLiteBackendThroughService(t *testing.T) {
	backend, err := capture.OpenSQLiteBackend(t.TempDir())
	if err != nil {
		t.Fatalf("open backend: %v", err)
	}
	svc := capture.NewService(backend)
	defer svc.Close()

	ctx := context.Background()
	if err := svc.Subscribe(ctx, "First@Example.com"); err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}
	if err := svc.Subscribe(ctx, " first@example.com "); err == nil {
		t.Fatal("expected duplicate rejection through real backend")
	}
}
