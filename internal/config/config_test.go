package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"vibeandbuild/internal/config"
)

func TestLoadDefaultsWhenConfigAbsent(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("ADMIN_PASSWORD", "")
	t.Setenv("FIRESTORE_PROJECT_ID", "")

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantData := filepath.Join(tempHome, ".local", "share", "vibeandbuild", "data")
	if cfg.Paths.DataDir != wantData {
		t.Fatalf("unexpected data dir: got %q want %q", cfg.Paths.DataDir, wantData)
	}
	if cfg.Paths.APIBind != "127.0.0.1:8487" {
		t.Fatalf("unexpected api bind: %q", cfg.Paths.APIBind)
	}
	if cfg.Admin.Password != "admin123" {
		t.Fatalf("expected fallback admin password, got %q", cfg.Admin.Password)
	}
	if cfg.FirestoreEnabled() {
		t.Fatal("expected firestore disabled without a project id")
	}
	if cfg.Firestore.SubscribersCollection != "subscribers" {
		t.Fatalf("unexpected subscribers collection: %q", cfg.Firestore.SubscribersCollection)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestLoadReadsConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[paths]
data_dir = "` + filepath.Join(dir, "data") + `"
public_dir = "` + filepath.Join(dir, "public") + `"
api_bind = "0.0.0.0:9000"
api_token = "  secret-token  "

[admin]
password = "hunter2"

[firestore]
project_id = "vibe-prod"

[logging]
format = "JSON"
level = "Debug"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("ADMIN_PASSWORD", "")
	t.Setenv("FIRESTORE_PROJECT_ID", "")

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected config at %q to be found, got %q exists=%v", path, resolved, exists)
	}
	if cfg.Paths.APIBind != "0.0.0.0:9000" {
		t.Fatalf("unexpected api bind: %q", cfg.Paths.APIBind)
	}
	if cfg.Paths.APIToken != "secret-token" {
		t.Fatalf("expected api token trimmed, got %q", cfg.Paths.APIToken)
	}
	if cfg.Admin.Password != "hunter2" {
		t.Fatalf("unexpected admin password: %q", cfg.Admin.Password)
	}
	if !cfg.FirestoreEnabled() {
		t.Fatal("expected firestore enabled")
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("expected logging values lowercased: %+v", cfg.Logging)
	}
}

func TestAdminPasswordEnvOverride(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("ADMIN_PASSWORD", "from-env")

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Admin.Password != "from-env" {
		t.Fatalf("expected env override, got %q", cfg.Admin.Password)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name     string
		mutate   func(*config.Config)
		fragment string
	}{
		{"bad bind", func(c *config.Config) { c.Paths.APIBind = "not-an-address" }, "api_bind"},
		{"bad format", func(c *config.Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"bad level", func(c *config.Config) { c.Logging.Level = "loud" }, "logging.level"},
		{"nested collection", func(c *config.Config) {
			c.Firestore.ProjectID = "p"
			c.Firestore.SubscribersCollection = "a/b"
		}, "subscribers_collection"},
	}
	for _, tc := range cases {
		cfg := config.Default()
		cfg.Logging.Format = "console"
		cfg.Logging.Level = "info"
		tc.mutate(&cfg)
		err := cfg.Validate()
		if err == nil {
			t.Fatalf("%s: expected validation error", tc.name)
		}
		if !strings.Contains(err.Error(), tc.fragment) {
			t.Fatalf("%s: expected %q in error, got %v", tc.name, tc.fragment, err)
		}
	}
}
