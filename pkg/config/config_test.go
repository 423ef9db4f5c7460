package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewCreatesConfigFile(t *testing.T) {
	dir := t.TempDir()
	m, err := New("cfm", dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if m.Path != dir {
		t.Errorf("Path = %q, want %q", m.Path, dir)
	}
	if _, err := os.Stat(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("config file not created: %v", err)
	}
}

func TestSetConfigPersists(t *testing.T) {
	dir := t.TempDir()
	m, err := New("cfm", dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := m.SetConfig("username", "Alice"); err != nil {
		t.Fatalf("SetConfig: %v", err)
	}

	reloaded, err := New("cfm", dir)
	if err != nil {
		t.Fatal(err)
	}
	if got := reloaded.GetString("username"); got != "Alice" {
		t.Errorf("GetString after reload = %q, want Alice", got)
	}
}

func TestUnmarshal(t *testing.T) {
	dir := t.TempDir()
	m, err := New("cfm", dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := m.SetConfig("language", "pl"); err != nil {
		t.Fatal(err)
	}

	var out struct {
		Language string `mapstructure:"language"`
	}
	if err := m.Unmarshal(&out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if out.Language != "pl" {
		t.Errorf("Language = %q, want pl", out.Language)
	}
}
