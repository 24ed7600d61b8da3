package model

import (
	"iter"
	"log/slog"
	"slices"

	"github.com/penev92/ModularAI/capability"
	"github.com/penev92/ModularAI/geom"
	"github.com/penev92/ModularAI/host"
)

// World adapts one GameState to host.World. Actor profiles are the shared
// registry profiles. Target types and weapon targets reported by the host
// stay on the actor and only feed the weapon check.
type World struct {
	state  *GameState
	actors []*actor
	byID   map[host.ActorID]*actor
	bounds geom.Bounds
}

// NewWorld indexes gs. Malformed labels in the snapshot are logged and
// dropped; they never keep the world from being built.
func NewWorld(gs *GameState, reg *capability.Registry) *World {
	w := &World{
		state:  gs,
		actors: make([]*actor, 0, len(gs.Actors)),
		byID:   make(map[host.ActorID]*actor, len(gs.Actors)),
		bounds: geom.Bounds{Width: gs.MapWidth, Height: gs.MapHeight},
	}

	for i := range gs.Actors {
		a := newActor(&gs.Actors[i], reg)
		w.actors = append(w.actors, a)
		w.byID[a.ID()] = a
	}
	return w
}

// State returns the snapshot the world was built from.
func (w *World) State() *GameState { return w.state }

func (w *World) Actors() iter.Seq[host.Actor] {
	return func(yield func(host.Actor) bool) {
		for _, a := range w.actors {
			if !yield(a) {
				return
			}
		}
	}
}

func (w *World) Actor(id host.ActorID) (host.Actor, bool) {
	a, ok := w.byID[id]
	if !ok {
		return nil, false
	}
	return a, true
}

func (w *World) UnitsAt(cell geom.CPos) []host.Actor {
	var out []host.Actor
	for _, a := range w.actors {
		if !a.raw.Alive() || a.raw.Cell == nil || *a.raw.Cell != cell {
			continue
		}
		out = append(out, a)
	}
	return out
}

func (w *World) Player(name string) (host.Player, bool) {
	if name == "" || name != w.state.Player.Name {
		return nil, false
	}
	return player{&w.state.Player}, true
}

func (w *World) Map() host.Map { return w.bounds }

// AppearsFriendly treats same-owner actors and the controlled player's
// allies as friendly. Stances between other players are not reported.
func (w *World) AppearsFriendly(target, observer host.Actor) bool {
	if target.Owner() == observer.Owner() {
		return true
	}
	me := &w.state.Player
	switch me.Name {
	case observer.Owner():
		return slices.Contains(me.Allies, target.Owner())
	case target.Owner():
		return slices.Contains(me.Allies, observer.Owner())
	}
	return false
}

// IsExplored only knows about the controlled player's shroud.
func (w *World) IsExplored(p string, target host.Actor) bool {
	if p != w.state.Player.Name {
		return true
	}
	a, ok := w.byID[target.ID()]
	if !ok {
		return false
	}
	return a.raw.Explored
}

type player struct{ p *Player }

func (p player) Name() string     { return p.p.Name }
func (p player) ClientIndex() int { return p.p.ClientIndex }
func (p player) IsBot() bool      { return p.p.IsBot }
func (p player) HasLost() bool    { return p.p.WinState == WinStateLost }

type actor struct {
	raw         *Actor
	profile     *capability.Profile
	targetTypes capability.TagSet
	weapons     capability.TagSet
}

func newActor(raw *Actor, reg *capability.Registry) *actor {
	return &actor{
		raw:         raw,
		profile:     reg.Profile(raw.Type),
		targetTypes: parseLabels(raw, "targetTypes", raw.TargetTypes),
		weapons:     parseLabels(raw, "weaponTargets", raw.WeaponTargets),
	}
}

// parseLabels keeps the well-formed labels of one snapshot field.
func parseLabels(raw *Actor, field string, labels []string) capability.TagSet {
	tags := make([]capability.Tag, 0, len(labels))
	for _, l := range labels {
		t, err := capability.ParseTag(l)
		if err != nil {
			slog.Warn("dropping malformed snapshot label",
				"actor", raw.ID, "type", raw.Type, "field", field, "label", l, "error", err)
			continue
		}
		tags = append(tags, t)
	}
	return capability.NewTagSet(tags...)
}

func (a *actor) ID() host.ActorID             { return host.ActorID(a.raw.ID) }
func (a *actor) TypeName() string             { return a.raw.Type }
func (a *actor) Owner() string                { return a.raw.Owner }
func (a *actor) IsDead() bool                 { return a.raw.Dead }
func (a *actor) IsInWorld() bool              { return a.raw.InWorld }
func (a *actor) IsIdle() bool                 { return a.raw.Idle }
func (a *actor) IsMoving() bool               { return a.raw.Moving }
func (a *actor) Profile() *capability.Profile { return a.profile }
func (a *actor) Targetable() bool             { return a.raw.Targetable }
func (a *actor) CanAttack() bool              { return a.raw.CanAttack }

func (a *actor) Location() (geom.CPos, bool) {
	if a.raw.Cell == nil {
		return geom.CPos{}, false
	}
	return *a.raw.Cell, true
}

// HasValidWeapon reports whether any weapon can hit one of the target's
// current target types. Without host-reported target types the target's
// configured targetable types stand in.
func (a *actor) HasValidWeapon(target host.Actor) bool {
	if !a.raw.CanAttack || len(a.weapons) == 0 {
		return false
	}
	if t, ok := target.(*actor); ok && len(t.targetTypes) > 0 {
		return a.weapons.Intersects(t.targetTypes)
	}
	p := target.Profile()
	if p == nil {
		return false
	}
	return a.weapons.Intersects(p.TargetableTypes)
}

// View exposes p as a host.Player.
func (p *Player) View() host.Player { return player{p} }
