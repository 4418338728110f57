package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"

	"github.com/no111u3/automatic/internal/domain"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigFileName+".yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func testFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("format", "tui", "")
	fs.String("verbosity", "normal", "")
	fs.Duration("item-timeout", 0, "")
	return fs
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	s, err := Load(LoadOptions{SearchPaths: []string{t.TempDir()}})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := DefaultSettings()
	if s.Format != want.Format || s.Verbosity != want.Verbosity || s.ItemTimeout != 0 || s.ConfigFile != "" {
		t.Errorf("Load() = %+v, want defaults", s)
	}
}

func TestLoadSearchPath(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "format: json\nverbosity: verbose\nitem_timeout: 30s\n")

	s, err := Load(LoadOptions{SearchPaths: []string{dir}})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Format != domain.FormatJSON || s.Verbosity != domain.VerbosityVerbose || s.ItemTimeout != 30*time.Second {
		t.Errorf("Load() = %+v", s)
	}
	if s.ConfigFile != path {
		t.Errorf("ConfigFile = %q, want %q", s.ConfigFile, path)
	}
}

func TestLoadExplicitFile(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "format: raw\nitem_timeout: 5\n")

	s, err := Load(LoadOptions{ConfigFile: path})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Format != domain.FormatRaw || s.ItemTimeout != 5*time.Second {
		t.Errorf("Load() = %+v", s)
	}
}

func TestLoadExplicitFileMissing(t *testing.T) {
	_, err := Load(LoadOptions{ConfigFile: filepath.Join(t.TempDir(), "nope.yaml")})
	if err == nil {
		t.Fatal("expected error for a missing explicit config file")
	}
}

func TestLoadMalformedFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "format: [json\n")

	if _, err := Load(LoadOptions{SearchPaths: []string{dir}}); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "format: json\n")
	t.Setenv("AUTOMATIC_FORMAT", "raw")
	t.Setenv("AUTOMATIC_ITEM_TIMEOUT", "2m")

	s, err := Load(LoadOptions{SearchPaths: []string{dir}})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Format != domain.FormatRaw || s.ItemTimeout != 2*time.Minute {
		t.Errorf("Load() = %+v", s)
	}
}

func TestLoadFlagsOverrideEverything(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "format: json\nverbosity: silent\n")
	t.Setenv("AUTOMATIC_FORMAT", "tui")

	fs := testFlags()
	if err := fs.Parse([]string{"--format", "raw", "--item-timeout", "1500ms"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	s, err := Load(LoadOptions{SearchPaths: []string{dir}, Flags: fs})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Format != domain.FormatRaw {
		t.Errorf("Format = %q, want raw", s.Format)
	}
	if s.Verbosity != domain.VerbositySilent {
		t.Errorf("Verbosity = %q, unset flag should not override the file", s.Verbosity)
	}
	if s.ItemTimeout != 1500*time.Millisecond {
		t.Errorf("ItemTimeout = %v", s.ItemTimeout)
	}
}

func TestLoadBadTimeout(t *testing.T) {
	t.Setenv("AUTOMATIC_ITEM_TIMEOUT", "soon")
	if _, err := Load(LoadOptions{SearchPaths: []string{t.TempDir()}}); err == nil {
		t.Fatal("expected error for an unparsable timeout")
	}
}
