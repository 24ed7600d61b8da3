package rules

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Gate is a condition → module pair. A module whose gate evaluates false
// sits out that decision tick. An empty condition always passes.
type Gate struct {
	Module       string      // module name the gate guards
	ConditionSrc string      // expr source (preserved for logging)
	program      *vm.Program // compiled bytecode, nil when ConditionSrc is empty
}

// Compile turns src into a gate for module. Compile errors are configuration
// errors and must stop the controller from starting.
func Compile(module, src string) (*Gate, error) {
	g := &Gate{Module: module, ConditionSrc: strings.TrimSpace(src)}
	if g.ConditionSrc == "" {
		return g, nil
	}
	prog, err := expr.Compile(g.ConditionSrc, expr.Env(Env{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile gate for %q: %w", module, err)
	}
	g.program = prog
	return g, nil
}

// Allow evaluates the gate against env.
func (g *Gate) Allow(env Env) (bool, error) {
	if g == nil || g.program == nil {
		return true, nil
	}
	result, err := vm.Run(g.program, env)
	if err != nil {
		return false, fmt.Errorf("evaluate gate for %q: %w", g.Module, err)
	}
	match, ok := result.(bool)
	return ok && match, nil
}
