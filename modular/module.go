package modular

import (
	"fmt"
	"strings"

	"github.com/penev92/ModularAI/host"
	"github.com/penev92/ModularAI/order"
)

// Module is one pluggable piece of AI behaviour. Tick runs on decision ticks
// only and must not block; orders go through f.Orders. Implementations are
// compared by identity on registration, so use pointer types.
type Module interface {
	Name() string
	Tick(f *Frame) error
}

// Frame is what a module sees during one decision tick.
type Frame struct {
	State  *State
	World  host.World
	Orders *order.Queue

	debugf func(format string, args ...any)
}

// Debugf writes to the controller's debug sink, if debugging is on.
func (f *Frame) Debugf(format string, args ...any) {
	if f.debugf != nil {
		f.debugf(format, args...)
	}
}

// runModule isolates a module: a panic is converted into an error so the
// remaining modules still get their tick.
func runModule(m Module, f *Frame) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return m.Tick(f)
}

// matchesAnyType reports whether name is one of types, case-insensitively.
// Faction variants ("mcv.soviet") match their base type.
func matchesAnyType(name string, types []string) bool {
	base := name
	if idx := strings.IndexByte(name, '.'); idx >= 0 {
		base = name[:idx]
	}
	for _, t := range types {
		if strings.EqualFold(name, t) || strings.EqualFold(base, t) {
			return true
		}
	}
	return false
}
