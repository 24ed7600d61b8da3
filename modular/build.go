package modular

import (
	"fmt"
	"log/slog"

	"github.com/penev92/ModularAI/config"
	"github.com/penev92/ModularAI/rules"
)

// FromConfig builds a controller with the configured modules registered in
// list order and their gate conditions compiled. Any malformed tag or
// condition fails the whole build.
func FromConfig(cfg *config.Config, sink DebugSink) (*Controller, error) {
	c := New(Settings{
		Name:        cfg.Bot.Name,
		UpdateDelay: cfg.Bot.UpdateDelay,
		Debug:       cfg.Bot.Debug,
	}, sink)

	conditions := make(map[string]string)
	for i, mc := range cfg.Modules {
		m, err := newModule(mc)
		if err != nil {
			return nil, fmt.Errorf("modules[%d] (%s): %w", i, mc.Type, err)
		}
		c.RegisterModule(m)
		if mc.Condition != "" {
			conditions[m.Name()] = mc.Condition
		}
	}

	gates, err := rules.NewEngine(conditions)
	if err != nil {
		return nil, err
	}
	c.SetGates(gates)

	slog.Info("controller built", "ai", c.settings.Name, "modules", c.Modules(), "gates", gates.Len())
	return c, nil
}

func newModule(mc config.ModuleConfig) (Module, error) {
	switch mc.Type {
	case config.ModuleAttacking:
		m, err := NewAttackModule(mc.UseAttackingCategories)
		if err != nil {
			return nil, err
		}
		return m, nil
	case config.ModuleBaseBuilder:
		return NewBaseBuilderModule(mc.BaseBuilderTypes, mc.BaseExpansionRadius), nil
	case config.ModuleHarvester:
		return NewHarvesterModule(mc.HarvesterTypes), nil
	default:
		return nil, fmt.Errorf("%w: unknown module type %q", config.ErrInvalid, mc.Type)
	}
}
