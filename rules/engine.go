package rules

import (
	"fmt"
	"log/slog"
	"sort"
)

// Engine holds the compiled gates of one controller, keyed by module name.
type Engine struct {
	gates map[string]*Gate
}

// NewEngine compiles every condition. If any fails nothing is returned, so a
// typo in one gate cannot leave the others half-loaded.
func NewEngine(conditions map[string]string) (*Engine, error) {
	names := make([]string, 0, len(conditions))
	for name := range conditions {
		names = append(names, name)
	}
	sort.Strings(names)

	e := &Engine{gates: make(map[string]*Gate, len(conditions))}
	for _, name := range names {
		g, err := Compile(name, conditions[name])
		if err != nil {
			return nil, err
		}
		e.gates[name] = g
	}
	return e, nil
}

// Allow reports whether module may run this decision tick. Modules without
// a gate always run. A condition that fails at runtime is logged and
// treated as false.
func (e *Engine) Allow(module string, env Env) bool {
	if e == nil {
		return true
	}
	g, ok := e.gates[module]
	if !ok {
		return true
	}
	allowed, err := g.Allow(env)
	if err != nil {
		slog.Warn("gate condition error", "module", module, "condition", g.ConditionSrc, "error", err)
		return false
	}
	if !allowed {
		slog.Debug("module gated", "module", module, "condition", g.ConditionSrc, "tick", env.Tick)
	}
	return allowed
}

// Len returns the number of gates with a non-empty condition.
func (e *Engine) Len() int {
	if e == nil {
		return 0
	}
	n := 0
	for _, g := range e.gates {
		if g.program != nil {
			n++
		}
	}
	return n
}

func (e *Engine) String() string {
	return fmt.Sprintf("rules.Engine{%d gates}", e.Len())
}
