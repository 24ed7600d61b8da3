package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/penev92/ModularAI/capability"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ai.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if c.Bot.UpdateDelay != 50 {
		t.Errorf("update-delay = %d, want 50", c.Bot.UpdateDelay)
	}
	want := []string{ModuleBaseBuilder, ModuleHarvester, ModuleAttacking}
	if len(c.Modules) != len(want) {
		t.Fatalf("got %d modules, want %d", len(c.Modules), len(want))
	}
	for i, m := range c.Modules {
		if m.Type != want[i] {
			t.Errorf("modules[%d] = %s, want %s", i, m.Type, want[i])
		}
	}

	r, err := c.Registry()
	if err != nil {
		t.Fatalf("Registry: %v", err)
	}
	e1 := r.Profile("e1")
	if e1 == nil {
		t.Fatal("expected e1 profile")
	}
	if !e1.AttackableTypes.Has("infantry") || !e1.TargetableTypes.Has("infantry") {
		t.Errorf("e1 profile = %+v", e1)
	}
	if fact := r.Profile("fact"); fact == nil || !fact.TargetableTypes.Has("structure") {
		t.Errorf("fact profile = %+v", fact)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
bot:
  update-delay: 10
  debug: true
modules:
  - type: attacking
    use-attacking-categories: [mechs]
`)
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Bot.UpdateDelay != 10 || !c.Bot.Debug {
		t.Errorf("bot = %+v, want update-delay 10 and debug", c.Bot)
	}
	if c.Bot.Name != "ModularAI" {
		t.Errorf("name = %q, want default kept", c.Bot.Name)
	}
	if len(c.Modules) != 1 || c.Modules[0].UseAttackingCategories[0] != "mechs" {
		t.Errorf("modules = %+v", c.Modules)
	}
	if len(c.Actors) == 0 {
		t.Error("actors should fall back to defaults")
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"negative delay", "bot:\n  update-delay: -1\n"},
		{"unknown module", "modules:\n  - type: economy\n"},
		{"duplicate module", "modules:\n  - type: attacking\n  - type: attacking\n"},
		{"builder without types", "modules:\n  - type: base-builder\n"},
		{"harvester without types", "modules:\n  - type: harvester\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.body))
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("Load error = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestRegistryRejectsMalformedTag(t *testing.T) {
	path := writeConfig(t, `
actors:
  e1:
    tags: [attackable-]
`)
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := c.Registry(); !errors.Is(err, capability.ErrMalformedTag) {
		t.Errorf("Registry error = %v, want ErrMalformedTag", err)
	}
}

func TestMergeBotFields(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		debugIn   bool
		wantDebug bool
		wantDelay int
	}{
		{"debug switched off", "bot:\n  debug: false\n", true, false, 50},
		{"debug switched on", "bot:\n  debug: true\n", false, true, 50},
		{"debug absent keeps default", "bot:\n  update-delay: 7\n", true, true, 7},
		{"explicit zero delay", "bot:\n  update-delay: 0\n", false, false, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, err := Default()
			if err != nil {
				t.Fatalf("Default: %v", err)
			}
			c.Bot.Debug = tc.debugIn

			var o overlay
			if err := yaml.Unmarshal([]byte(tc.body), &o); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			c.merge(o)
			if c.Bot.Debug != tc.wantDebug || c.Bot.UpdateDelay != tc.wantDelay {
				t.Errorf("bot = %+v, want debug %v and update-delay %d", c.Bot, tc.wantDebug, tc.wantDelay)
			}
		})
	}
}

func TestLoadRejectsExplicitZeroDelay(t *testing.T) {
	_, err := Load(writeConfig(t, "bot:\n  update-delay: 0\n"))
	if !errors.Is(err, ErrInvalid) {
		t.Errorf("Load error = %v, want ErrInvalid", err)
	}
}
