package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"vibeandbuild/internal/config"
	"vibeandbuild/internal/content"
	"vibeandbuild/internal/store"
	"vibeandbuild/internal/testsupport"
)

type cliTestEnv struct {
	configPath string
	cfg        *config.Config
	stores     *store.Stores
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	stores, cfg := testsupport.MustOpenStoresWithConfig(t)

	configPath := filepath.Join(t.TempDir(), "config.toml")
	encoded, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("encode config: %v", err)
	}
	if err := os.WriteFile(configPath, encoded, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	return &cliTestEnv{configPath: configPath, cfg: cfg, stores: stores}
}

func runCLI(t *testing.T, configPath string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	if configPath != "" {
		args = append([]string{"--config", configPath}, args...)
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func TestConfigInit(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")
	out, _, err := runCLI(t, "", "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	if _, _, err := runCLI(t, "", "config", "init", "--path", target); err == nil {
		t.Fatal("expected second init without --overwrite to fail")
	}
}

func TestConfigShowRedactsPassword(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, env.configPath, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, out, "data_dir")
	if strings.Contains(out, env.cfg.Admin.Password) {
		t.Fatal("admin password must not appear in config show output")
	}
}

func TestProjectsList(t *testing.T) {
	env := setupCLITestEnv(t)

	projects := []content.Project{{
		ID:    "project-01",
		Title: "First Week",
		Tags:  []string{"go", "audio"},
		Week:  1,
		Year:  2025,
	}}
	if err := env.stores.Projects.Save(context.Background(), projects); err != nil {
		t.Fatalf("seed projects: %v", err)
	}

	out, _, err := runCLI(t, env.configPath, "projects", "list")
	if err != nil {
		t.Fatalf("projects list: %v", err)
	}
	requireContains(t, out, "project-01")
	requireContains(t, out, "First Week")
}

func TestProjectsAddAssignsNextIDAndDedupesTags(t *testing.T) {
	env := setupCLITestEnv(t)

	seed := []content.Project{{ID: "project-01", Title: "First Week", Week: 1, Year: 2025}}
	if err := env.stores.Projects.Save(context.Background(), seed); err != nil {
		t.Fatalf("seed projects: %v", err)
	}

	out, _, err := runCLI(t, env.configPath, "projects", "add",
		"--title", "Second Week", "--week", "2", "--year", "2025",
		"--tag", "ai", "--tag", "ai", "--tag", "design")
	if err != nil {
		t.Fatalf("projects add: %v", err)
	}
	requireContains(t, out, "Added project-02")

	projects, err := env.stores.Projects.Load(context.Background())
	if err != nil {
		t.Fatalf("reload projects: %v", err)
	}
	if len(projects) != 2 || projects[1].ID != "project-02" {
		t.Fatalf("unexpected collection after add: %+v", projects)
	}
	if got := projects[1].Tags; len(got) != 2 || got[0] != "ai" || got[1] != "design" {
		t.Fatalf("expected deduped tags [ai design], got %v", got)
	}
}

func TestExperimentsAddStartsSequenceAtOne(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, env.configPath, "experiments", "add",
		"--title", "Marquee", "--tokens", "1200", "--tag", "css", "--tag", "css")
	if err != nil {
		t.Fatalf("experiments add: %v", err)
	}
	requireContains(t, out, "Added exp-01")

	experiments, err := env.stores.Experiments.Load(context.Background())
	if err != nil {
		t.Fatalf("reload experiments: %v", err)
	}
	if len(experiments) != 1 || experiments[0].ID != "exp-01" {
		t.Fatalf("unexpected collection after add: %+v", experiments)
	}
	if got := experiments[0].Tags; len(got) != 1 || got[0] != "css" {
		t.Fatalf("expected deduped tags [css], got %v", got)
	}
}

func TestLayoutCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	experiments := []content.Experiment{{
		ID:     "exp-02",
		Title:  "Particles",
		Text:   "one two three four five six",
		Images: []int{0, 1},
	}}
	if err := env.stores.Experiments.Save(context.Background(), experiments); err != nil {
		t.Fatalf("seed experiments: %v", err)
	}

	out, _, err := runCLI(t, env.configPath, "layout", "2")
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	requireContains(t, out, "exp-02: Particles")
	requireContains(t, out, "header")

	if _, _, err := runCLI(t, env.configPath, "layout", "42"); err == nil {
		t.Fatal("expected error for unknown experiment number")
	}
}

func TestIdeasListEmpty(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, env.configPath, "ideas", "list")
	if err != nil {
		t.Fatalf("ideas list: %v", err)
	}
	requireContains(t, out, "No ideas recorded.")
}
