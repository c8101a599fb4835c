package services_test

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"vibeandbuild/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrUnavailable, "capture", "subscribe", "failed", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrUnavailable) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"capture", "subscribe", "failed"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestHTTPStatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"nil", nil, http.StatusOK},
		{"validation", services.Wrap(services.ErrValidation, "store", "save", "missing id", nil), http.StatusBadRequest},
		{"unauthorized", services.ErrUnauthorized, http.StatusUnauthorized},
		{"not found", services.Wrap(services.ErrNotFound, "assets", "delete", "no such file", nil), http.StatusNotFound},
		{"duplicate", services.Wrap(services.ErrDuplicate, "capture", "subscribe", "already subscribed", nil), http.StatusConflict},
		{"permission", services.ErrPermission, http.StatusForbidden},
		{"unavailable", services.ErrUnavailable, http.StatusServiceUnavailable},
		{"generic", errors.New("disk on fire"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := services.HTTPStatus(tc.err); got != tc.status {
			t.Fatalf("%s: expected status %d, got %d", tc.name, tc.status, got)
		}
	}
}

func TestUserMessageHidesInternals(t *testing.T) {
	err := services.Wrap(nil, "store", "save", "write failed", errors.New("permission denied on /data"))
	if msg := services.UserMessage(err); msg != "internal error" {
		t.Fatalf("expected generic message for internal error, got %q", msg)
	}

	dup := services.Wrap(services.ErrDuplicate, "capture", "subscribe", "this email is already subscribed", nil)
	if msg := services.UserMessage(dup); !strings.Contains(msg, "already subscribed") {
		t.Fatalf("expected specific duplicate message, got %q", msg)
	}
}
