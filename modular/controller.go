package modular

import (
	"fmt"
	"log/slog"

	"github.com/penev92/ModularAI/host"
	"github.com/penev92/ModularAI/order"
	"github.com/penev92/ModularAI/rules"
)

// DefaultUpdateDelay is two seconds at the normal game speed of 25 ticks/s.
const DefaultUpdateDelay = 25 * 2

// Settings configure a controller.
type Settings struct {
	Name        string // display name of the AI
	UpdateDelay int    // ticks between decision ticks
	Debug       bool   // enables the debug sink
}

// Controller drives the modules of one player. The idle snapshot is
// refreshed on every tick; modules only run every UpdateDelay ticks so the
// expensive searches are amortized while the idle set never goes stale.
type Controller struct {
	settings Settings
	state    State
	modules  []Module
	gates    *rules.Engine
	orders   order.Queue
	sink     DebugSink
}

// New creates a disabled controller. Call Activate before ticking.
func New(settings Settings, sink DebugSink) *Controller {
	if settings.UpdateDelay <= 0 {
		settings.UpdateDelay = DefaultUpdateDelay
	}
	if settings.Name == "" {
		settings.Name = "ModularAI"
	}
	return &Controller{settings: settings, sink: sink}
}

// SetGates installs the module gate conditions.
func (c *Controller) SetGates(e *rules.Engine) { c.gates = e }

// RegisterModule appends m to the tick order. Registering the same module
// twice is a no-op and returns false.
func (c *Controller) RegisterModule(m Module) bool {
	for _, existing := range c.modules {
		if existing == m {
			return false
		}
	}
	c.modules = append(c.modules, m)
	return true
}

// Modules returns the registered module names in tick order.
func (c *Controller) Modules() []string {
	names := make([]string, len(c.modules))
	for i, m := range c.modules {
		names[i] = m.Name()
	}
	return names
}

// Activate binds the controller to p and resets all per-player state.
// Only computer-controlled players are driven.
func (c *Controller) Activate(p host.Player) {
	c.state = State{
		Player:         p.Name(),
		Tag:            host.OwnerString(p),
		Enabled:        p.IsBot(),
		UpdateInterval: c.settings.UpdateDelay,
		Countdown:      c.settings.UpdateDelay,
	}
	c.orders = order.Queue{}

	slog.Info("controller activated",
		"ai", c.settings.Name,
		"player", c.state.Tag,
		"enabled", c.state.Enabled,
		"updateDelay", c.state.UpdateInterval,
		"modules", c.Modules(),
	)
	c.Debugf("*** Bot %s Debug ***", c.settings.Name)
}

// Tick is called by the host once per simulation tick.
func (c *Controller) Tick(w host.World) {
	s := &c.state
	if !s.Enabled {
		return
	}
	p, ok := w.Player(s.Player)
	if !ok || p.HasLost() {
		return
	}

	s.Ticks++
	s.Idle = FindIdleUnits(w, s.Player)

	s.Countdown--
	if s.Countdown > 0 {
		return
	}
	s.Countdown = s.UpdateInterval

	c.runModules(w)
}

func (c *Controller) runModules(w host.World) {
	f := &Frame{State: &c.state, World: w, Orders: &c.orders, debugf: c.Debugf}
	for _, m := range c.modules {
		if !c.gates.Allow(m.Name(), c.gateEnv()) {
			continue
		}
		if err := runModule(m, f); err != nil {
			slog.Error("module tick failed", "module", m.Name(), "player", c.state.Tag, "tick", c.state.Ticks, "error", err)
		}
	}
}

func (c *Controller) gateEnv() rules.Env {
	idle := make([]string, len(c.state.Idle))
	for i, a := range c.state.Idle {
		idle[i] = a.TypeName()
	}
	return rules.Env{
		Tick:      c.state.Ticks,
		Player:    c.state.Tag,
		Idle:      idle,
		MainBase:  c.state.hasMainBase,
		Deploying: c.state.Pending != nil,
	}
}

// State exposes the per-player state. Callers outside a tick may read it;
// modules get it through Frame.
func (c *Controller) State() *State { return &c.state }

// Idle returns the idle snapshot of the last tick.
func (c *Controller) Idle() []host.Actor { return c.state.Idle }

// MainBase returns the confirmed main base, if any.
func (c *Controller) MainBase() (host.ActorID, bool) { return c.state.MainBase() }

// ClearMainBase forgets the main base after the host reports it lost, which
// lets the base builder deploy again.
func (c *Controller) ClearMainBase() { c.state.ClearMainBase() }

// Orders is the deferred order queue; the host drains it after Tick.
func (c *Controller) Orders() *order.Queue { return &c.orders }

// Debugf reports to the debug sink. It is a no-op unless debugging is on and
// the controller drives a bot.
func (c *Controller) Debugf(format string, args ...any) {
	if !c.settings.Debug || !c.state.Enabled || c.sink == nil {
		return
	}
	c.sink.Debug(c.state.Tag, fmt.Sprintf(format, args...))
}

// FindIdleUnits returns the AI-queryable actors owned by player that are
// alive, in the world and idle, in world enumeration order.
func FindIdleUnits(w host.World, player string) []host.Actor {
	var idle []host.Actor
	for a := range w.Actors() {
		if a.IsDead() || !a.IsInWorld() || a.Owner() != player || !a.IsIdle() {
			continue
		}
		if a.Profile() == nil {
			continue
		}
		idle = append(idle, a)
	}
	return idle
}
