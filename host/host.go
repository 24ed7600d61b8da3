// Package host declares what the AI consumes from the game simulation.
// The simulation owns every actor; the AI only reads through these
// interfaces and writes through the order queue.
package host

import (
	"iter"
	"strconv"

	"github.com/penev92/ModularAI/capability"
	"github.com/penev92/ModularAI/geom"
)

// ActorID is the simulation's stable identifier for an actor. References
// captured across ticks are always held as IDs and re-resolved.
type ActorID uint32

// Actor is a read-only view of a live simulation entity.
type Actor interface {
	ID() ActorID
	TypeName() string
	Owner() string
	IsDead() bool
	IsInWorld() bool
	IsIdle() bool
	IsMoving() bool
	// Location returns the cell the actor occupies; false for actors
	// without a position (e.g. player actors).
	Location() (geom.CPos, bool)
	// Profile is nil for actors that are not AI-queryable.
	Profile() *capability.Profile
	// Targetable reports whether the actor can be targeted at all.
	Targetable() bool
	// CanAttack reports whether the actor has an attack capability.
	CanAttack() bool
	// HasValidWeapon reports whether any of the actor's weapons can hit target.
	HasValidWeapon(target Actor) bool
}

// Player is the controlled side.
type Player interface {
	Name() string
	ClientIndex() int
	IsBot() bool
	HasLost() bool
}

// Map answers the map queries the AI needs.
type Map interface {
	Contains(c geom.CPos) bool
	TilesInAnnulus(center geom.CPos, inner, outer int) iter.Seq[geom.CPos]
}

// World is the simulation as seen by one controller.
type World interface {
	// Actors enumerates every actor in the world, dead ones included.
	Actors() iter.Seq[Actor]
	Actor(id ActorID) (Actor, bool)
	// UnitsAt returns the actors occupying cell, regardless of owner.
	UnitsAt(cell geom.CPos) []Actor
	Player(name string) (Player, bool)
	Map() Map
	// AppearsFriendly reports whether target looks friendly to observer.
	AppearsFriendly(target, observer Actor) bool
	// IsExplored reports whether target lies in terrain player has explored.
	IsExplored(player string, target Actor) bool
}

// Valid reports whether a is still usable as the subject or target of an
// order. Every captured reference must pass this before use.
func Valid(a Actor) bool {
	return a != nil && !a.IsDead() && a.IsInWorld()
}

// OwnerString identifies a player in debug output. Bots share names, so
// their client index is appended.
func OwnerString(p Player) string {
	if p == nil {
		return ""
	}
	if p.IsBot() {
		return p.Name() + "_" + strconv.Itoa(p.ClientIndex())
	}
	return p.Name()
}
