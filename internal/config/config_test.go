package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	def := Default()
	if cfg.Color != ColorAuto {
		t.Fatalf("expected=%q, got=%q", ColorAuto, cfg.Color)
	}
	if cfg.Prompt != def.Prompt || cfg.ContinuationPrompt != def.ContinuationPrompt {
		t.Fatalf("prompts not defaulted: %+v", cfg)
	}
	if cfg.TestExtension != ".lun" {
		t.Fatalf("expected=%q, got=%q", ".lun", cfg.TestExtension)
	}
	if strings.HasPrefix(cfg.History, "~") {
		t.Fatalf("history path not expanded: %q", cfg.History)
	}
}

func TestParseOverrides(t *testing.T) {
	cfg, err := Parse([]byte(`
color: never
prompt: "> "
trace: true
test_extension: lua
history: /tmp/lunar_hist
`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Color != ColorNever {
		t.Fatalf("expected=%q, got=%q", ColorNever, cfg.Color)
	}
	if cfg.Prompt != "> " {
		t.Fatalf("expected=%q, got=%q", "> ", cfg.Prompt)
	}
	if !cfg.Trace {
		t.Fatalf("expected trace to be enabled")
	}
	if cfg.TestExtension != ".lua" {
		t.Fatalf("expected=%q, got=%q", ".lua", cfg.TestExtension)
	}
	if cfg.History != "/tmp/lunar_hist" {
		t.Fatalf("expected=%q, got=%q", "/tmp/lunar_hist", cfg.History)
	}
	if cfg.ContinuationPrompt != Default().ContinuationPrompt {
		t.Fatalf("unset keys should keep their defaults, got %q", cfg.ContinuationPrompt)
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"unknown key", "colour: always\n"},
		{"bad color", "color: sometimes\n"},
		{"bad type", "trace: [1, 2]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.input)); err == nil {
				t.Fatalf("expected an error for %q", tt.input)
			}
		})
	}
}

func TestLoadSearchOrder(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)

	// Nothing on disk: defaults.
	t.Setenv(EnvVar, "")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Path != "" {
		t.Fatalf("expected defaults, got config from %q", cfg.Path)
	}

	homeCfg := filepath.Join(dir, ".config", "lunar", "config.yaml")
	if err := os.MkdirAll(filepath.Dir(homeCfg), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(homeCfg, []byte("prompt: home> \n"), 0o644); err != nil {
		t.Fatal(err)
	}
	envCfg := filepath.Join(dir, "env.yaml")
	if err := os.WriteFile(envCfg, []byte("prompt: env> \n"), 0o644); err != nil {
		t.Fatal(err)
	}
	flagCfg := filepath.Join(dir, "flag.yaml")
	if err := os.WriteFile(flagCfg, []byte("prompt: flag> \n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if cfg, _ = Load(""); cfg.Path != homeCfg || cfg.Prompt != "home>" {
		t.Fatalf("expected home config, got %+v", cfg)
	}

	t.Setenv(EnvVar, envCfg)
	if cfg, _ = Load(""); cfg.Path != envCfg || cfg.Prompt != "env>" {
		t.Fatalf("expected env config, got %+v", cfg)
	}

	if cfg, _ = Load(flagCfg); cfg.Path != flagCfg || cfg.Prompt != "flag>" {
		t.Fatalf("expected flag config, got %+v", cfg)
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Fatalf("an explicit missing config must be an error")
	}
}

func TestExpandHome(t *testing.T) {
	t.Setenv("HOME", "/home/lunar")

	tests := map[string]string{
		"~":           "/home/lunar",
		"~/hist":      "/home/lunar/hist",
		"/abs/hist":   "/abs/hist",
		"~other/hist": "~other/hist",
		"":            "",
	}
	for in, want := range tests {
		if got := ExpandHome(in); got != want {
			t.Fatalf("ExpandHome(%q) expected=%q, got=%q", in, want, got)
		}
	}
}
