package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ClientName != "midicmd" {
		t.Errorf("ClientName = %q, want midicmd", cfg.ClientName)
	}
	if cfg.Driver != "jack" {
		t.Errorf("Driver = %q, want jack", cfg.Driver)
	}
	if len(cfg.Connect) != 0 {
		t.Errorf("Connect = %v, want empty", cfg.Connect)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.Driver = "rtmidi"
	cfg.Connect = []string{"FLUID Synth", "Midi Through"}
	cfg.Debug = true
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(got, cfg) {
		t.Fatalf("Load = %+v, want %+v", got, cfg)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".config", "jack-midi-cmd")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	body := []byte(`{"connect":["Midi Through"]}`)
	if err := os.WriteFile(filepath.Join(dir, "config.json"), body, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ClientName != "midicmd" || cfg.Driver != "jack" {
		t.Errorf("defaults not kept: %+v", cfg)
	}
	if len(cfg.Connect) != 1 || cfg.Connect[0] != "Midi Through" {
		t.Errorf("Connect = %v", cfg.Connect)
	}
}

func TestLoadCorruptFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".config", "jack-midi-cmd")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte("{nope"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("Load accepted a corrupt file")
	}
}
