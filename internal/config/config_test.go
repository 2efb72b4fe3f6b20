package config

import (
	"os"
	"path/filepath"
	"testing"

	"copytrace/internal/domain"
)

func writeTempConfig(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return path
}

func TestLoad_Valid(t *testing.T) {
	path := writeTempConfig(t, "dataset_path: /data/trades.bin\nsymbols_path: /data/symbols.json\nmode: B\n")

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if c.DatasetPath != "/data/trades.bin" {
		t.Errorf("DatasetPath = %q", c.DatasetPath)
	}
	if c.ParsedMode() != domain.ModeB {
		t.Errorf("ParsedMode() = %v, want ModeB", c.ParsedMode())
	}
}

func TestLoad_MissingDatasetPath(t *testing.T) {
	path := writeTempConfig(t, "symbols_path: /data/symbols.json\nmode: A\n")
	if _, err := Load(path); err == nil {
		t.Fatal("Load() error = nil, want error for missing dataset_path")
	}
}

func TestLoad_InvalidMode(t *testing.T) {
	path := writeTempConfig(t, "dataset_path: /data/trades.bin\nsymbols_path: /data/symbols.json\nmode: C\n")
	if _, err := Load(path); err == nil {
		t.Fatal("Load() error = nil, want error for invalid mode")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/path.yaml"); err == nil {
		t.Fatal("Load() error = nil, want error for missing file")
	}
}
