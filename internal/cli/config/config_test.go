package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	// Test loading with no config file (should use defaults)
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	os.Chdir(tmpDir)
	defer os.Chdir(oldWd)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error loading defaults, got %v", err)
	}

	if cfg == nil {
		t.Fatal("expected config to be non-nil")
	}

	// Check defaults
	if cfg.Report.OutputDir != "reports" {
		t.Errorf("expected default output dir 'reports', got %s", cfg.Report.OutputDir)
	}

	if !cfg.Report.SafeMode {
		t.Error("expected safe mode to default to true")
	}

	if !cfg.Report.ExportSchema {
		t.Error("expected export schema to default to true")
	}

	if cfg.Report.TimeoutSeconds != 30 {
		t.Errorf("expected default timeout 30, got %d", cfg.Report.TimeoutSeconds)
	}
}

func TestLoadWithConfigFile(t *testing.T) {
	// Create temporary directory with config file
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	os.Chdir(tmpDir)
	defer os.Chdir(oldWd)

	// Write config file
	configContent := `
database:
  url: postgresql://localhost/testdb
report:
  output_dir: out
  safe_mode: false
  export_schema: false
  timeout_seconds: 5
`
	if err := os.WriteFile(filepath.Join(tmpDir, "pgscout.yml"), []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error loading config, got %v", err)
	}

	if cfg.Database.URL != "postgresql://localhost/testdb" {
		t.Errorf("expected database url from file, got %s", cfg.Database.URL)
	}

	if cfg.Report.OutputDir != "out" {
		t.Errorf("expected output dir 'out', got %s", cfg.Report.OutputDir)
	}

	if cfg.Report.SafeMode {
		t.Error("expected safe mode false from file")
	}

	if cfg.Report.ExportSchema {
		t.Error("expected export schema false from file")
	}

	if cfg.Report.TimeoutSeconds != 5 {
		t.Errorf("expected timeout 5, got %d", cfg.Report.TimeoutSeconds)
	}
}

func TestLoadInvalidTimeout(t *testing.T) {
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	os.Chdir(tmpDir)
	defer os.Chdir(oldWd)

	configContent := `
report:
  timeout_seconds: -1
`
	if err := os.WriteFile(filepath.Join(tmpDir, "pgscout.yml"), []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("expected validation error for negative timeout")
	}
}

func TestGetDatabaseURLFromEnv(t *testing.T) {
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	os.Chdir(tmpDir)
	defer os.Chdir(oldWd)

	t.Setenv("DATABASE_URL", "postgresql://env/db")

	if url := GetDatabaseURL(); url != "postgresql://env/db" {
		t.Errorf("expected env url, got %s", url)
	}
}
