package services_test

import (
	"context"
	"testing"

	"vibeandbuild/internal/services"
)

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := context.Background()
	if _, ok := services.RequestIDFromContext(ctx); ok {
		t.Fatal("expected no request id on fresh context")
	}

	ctx = services.WithRequestID(ctx, "req-123")
	id, ok := services.RequestIDFromContext(ctx)
	if !ok || id != "req-123" {
		t.Fatalf("unexpected request id: %q ok=%v", id, ok)
	}

	if services.WithRequestID(ctx, "") != ctx {
		t.Fatal("empty id should leave context unchanged")
	}
}
