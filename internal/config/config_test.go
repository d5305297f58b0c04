package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Root == "" {
		t.Error("expected a default root")
	}
	if cfg.Profile != "memory" {
		t.Errorf("expected default profile 'memory', got %q", cfg.Profile)
	}
	if cfg.Principal != "system" {
		t.Errorf("expected default principal 'system', got %q", cfg.Principal)
	}
	if cfg.Threshold != 1000 {
		t.Errorf("expected default threshold 1000, got %d", cfg.Threshold)
	}
	if cfg.DefaultDeny {
		t.Error("default policy should be fail-open")
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := "root: /tmp/vault-test\nprofile: prompt\ndefault_deny: true\ncompress_threshold: 500\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Root != "/tmp/vault-test" {
		t.Errorf("root: %q", cfg.Root)
	}
	if cfg.Profile != "prompt" {
		t.Errorf("profile: %q", cfg.Profile)
	}
	if !cfg.DefaultDeny {
		t.Error("expected default_deny true")
	}
	if cfg.Threshold != 500 {
		t.Errorf("threshold: %d", cfg.Threshold)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing explicit config file")
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("RECORDVAULT_SEAL_KEY", "env-secret")
	t.Setenv("RECORDVAULT_PROFILE", "prompt")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.SealKey != "env-secret" {
		t.Errorf("seal key: %q", cfg.SealKey)
	}
	if cfg.Profile != "prompt" {
		t.Errorf("profile: %q", cfg.Profile)
	}
}
