package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFindConfig_Explicit(t *testing.T) {
	// Create a temp config file
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yaml")
	os.WriteFile(path, []byte("listen:\n  port: 9999\n"), 0600)

	got, err := FindConfig(path)
	if err != nil {
		t.Fatalf("FindConfig(%q) error: %v", path, err)
	}
	if got != path {
		t.Errorf("FindConfig(%q) = %q, want %q", path, got, path)
	}
}

func TestFindConfig_ExplicitMissing(t *testing.T) {
	_, err := FindConfig("/nonexistent/config.yaml")
	if err == nil {
		t.Fatal("FindConfig with missing explicit path should error")
	}
}

func TestFindConfig_SearchPath(t *testing.T) {
	// When no config exists anywhere, should error
	// (Save and restore CWD to avoid finding the repo's owui-tools.yaml)
	dir := t.TempDir()
	orig, _ := os.Getwd()
	os.Chdir(dir)
	defer os.Chdir(orig)

	_, err := FindConfig("")
	if err == nil {
		t.Fatal("FindConfig(\"\") with no config files should error")
	}
}

func TestFindConfig_CWD(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "owui-tools.yaml")
	os.WriteFile(path, []byte("listen:\n  port: 8080\n"), 0600)

	orig, _ := os.Getwd()
	os.Chdir(dir)
	defer os.Chdir(orig)

	got, err := FindConfig("")
	if err != nil {
		t.Fatalf("FindConfig(\"\") error: %v", err)
	}
	if got != "owui-tools.yaml" {
		t.Errorf("FindConfig(\"\") = %q, want %q", got, "owui-tools.yaml")
	}
}

func TestLoad_ExpandsEnvVars(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	os.WriteFile(path, []byte("gateway:\n  server_group: ${OWUI_TEST_GROUP}\n"), 0600)
	os.Setenv("OWUI_TEST_GROUP", "jira_prod")
	defer os.Unsetenv("OWUI_TEST_GROUP")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Gateway.ServerGroup != "jira_prod" {
		t.Errorf("server_group = %q, want %q", cfg.Gateway.ServerGroup, "jira_prod")
	}
}

func TestLoad_ReadOnlyDefaultsTrue(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	os.WriteFile(path, []byte("gateway:\n  url: http://gw.local/mcp/\n"), 0600)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if !cfg.Gateway.ReadOnly {
		t.Error("read_only should default to true when absent")
	}
}

func TestLoad_ReadOnlyExplicitFalse(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	os.WriteFile(path, []byte("gateway:\n  read_only: false\n"), 0600)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Gateway.ReadOnly {
		t.Error("read_only: false in the file should disable read-only mode")
	}
}

func TestLoad_EnabledTools(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	os.WriteFile(path, []byte("gateway:\n  enabled_tools:\n    - jira_search\n    - jira_get_issue\n"), 0600)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if len(cfg.Gateway.EnabledTools) != 2 {
		t.Fatalf("enabled_tools length = %d, want 2", len(cfg.Gateway.EnabledTools))
	}
	if cfg.Gateway.EnabledTools[0] != "jira_search" {
		t.Errorf("enabled_tools[0] = %q, want %q", cfg.Gateway.EnabledTools[0], "jira_search")
	}
}

func TestDefault_ReadOnly(t *testing.T) {
	cfg := Default()
	if !cfg.Gateway.ReadOnly {
		t.Error("Default() should enable read-only mode")
	}
	if cfg.Listen.Port != 8080 {
		t.Errorf("Default() port = %d, want 8080", cfg.Listen.Port)
	}
}
