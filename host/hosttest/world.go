// Package hosttest provides a mutable in-memory host.World for tests.
package hosttest

import (
	"iter"
	"slices"

	"github.com/penev92/ModularAI/capability"
	"github.com/penev92/ModularAI/geom"
	"github.com/penev92/ModularAI/host"
)

// Actor is a plain-data actor. Every field can be flipped between calls to
// simulate the world changing under the AI.
type Actor struct {
	Id           host.ActorID
	Type         string
	OwnerName    string
	Dead         bool
	OutOfWorld   bool
	Idle         bool
	Moving       bool
	Cell         geom.CPos
	NoPosition   bool
	Prof         *capability.Profile
	Untargetable bool
	Attacks      bool
	// Weapons lists the targetable types this actor's weapons can hit.
	// A nil slice means "hits anything".
	Weapons []capability.Tag
}

func (a *Actor) ID() host.ActorID             { return a.Id }
func (a *Actor) TypeName() string             { return a.Type }
func (a *Actor) Owner() string                { return a.OwnerName }
func (a *Actor) IsDead() bool                 { return a.Dead }
func (a *Actor) IsInWorld() bool              { return !a.OutOfWorld }
func (a *Actor) IsIdle() bool                 { return a.Idle }
func (a *Actor) IsMoving() bool               { return a.Moving }
func (a *Actor) Profile() *capability.Profile { return a.Prof }
func (a *Actor) Targetable() bool             { return !a.Untargetable }
func (a *Actor) CanAttack() bool              { return a.Attacks }

func (a *Actor) Location() (geom.CPos, bool) {
	if a.NoPosition {
		return geom.CPos{}, false
	}
	return a.Cell, true
}

func (a *Actor) HasValidWeapon(target host.Actor) bool {
	if !a.Attacks {
		return false
	}
	if a.Weapons == nil {
		return true
	}
	p := target.Profile()
	if p == nil {
		return false
	}
	return slices.ContainsFunc(a.Weapons, p.TargetableTypes.Has)
}

// Player is a plain-data player.
type Player struct {
	PlayerName string
	Index      int
	Bot        bool
	Lost       bool
}

func (p *Player) Name() string     { return p.PlayerName }
func (p *Player) ClientIndex() int { return p.Index }
func (p *Player) IsBot() bool      { return p.Bot }
func (p *Player) HasLost() bool    { return p.Lost }

// World holds actors in insertion order. Allies maps a player to the
// players it considers friendly; Shrouded lists actors no one has explored.
type World struct {
	ActorList []*Actor
	Players   []*Player
	Bounds    geom.Bounds
	Allies    map[string][]string
	Shrouded  map[host.ActorID]bool
}

// New returns an empty world with the given map size.
func New(width, height int) *World {
	return &World{
		Bounds:   geom.Bounds{Width: width, Height: height},
		Allies:   make(map[string][]string),
		Shrouded: make(map[host.ActorID]bool),
	}
}

// Add appends actors and returns the first one for convenience.
func (w *World) Add(actors ...*Actor) *Actor {
	w.ActorList = append(w.ActorList, actors...)
	if len(actors) == 0 {
		return nil
	}
	return actors[0]
}

// AddPlayer registers p and returns it.
func (w *World) AddPlayer(p *Player) *Player {
	w.Players = append(w.Players, p)
	return p
}

// Remove deletes the actor with id, as if the simulation disposed of it.
func (w *World) Remove(id host.ActorID) {
	w.ActorList = slices.DeleteFunc(w.ActorList, func(a *Actor) bool { return a.Id == id })
}

func (w *World) Actors() iter.Seq[host.Actor] {
	return func(yield func(host.Actor) bool) {
		for _, a := range w.ActorList {
			if !yield(a) {
				return
			}
		}
	}
}

func (w *World) Actor(id host.ActorID) (host.Actor, bool) {
	for _, a := range w.ActorList {
		if a.Id == id {
			return a, true
		}
	}
	return nil, false
}

func (w *World) UnitsAt(cell geom.CPos) []host.Actor {
	var out []host.Actor
	for _, a := range w.ActorList {
		if a.Dead || a.OutOfWorld || a.NoPosition {
			continue
		}
		if a.Cell == cell {
			out = append(out, a)
		}
	}
	return out
}

func (w *World) Player(name string) (host.Player, bool) {
	for _, p := range w.Players {
		if p.PlayerName == name {
			return p, true
		}
	}
	return nil, false
}

func (w *World) Map() host.Map { return w.Bounds }

func (w *World) AppearsFriendly(target, observer host.Actor) bool {
	if target.Owner() == observer.Owner() {
		return true
	}
	return slices.Contains(w.Allies[observer.Owner()], target.Owner())
}

func (w *World) IsExplored(player string, target host.Actor) bool {
	return !w.Shrouded[target.ID()]
}
