package modular

import (
	"github.com/penev92/ModularAI/capability"
	"github.com/penev92/ModularAI/geom"
	"github.com/penev92/ModularAI/host"
)

// TargetSelector finds attack targets in a world.
type TargetSelector struct {
	World host.World
}

// ClosestTarget returns the eligible target nearest to attacker by squared
// cell distance. Ties go to whichever candidate World.Actors enumerates
// first. An attacker without a position has no targets.
func (ts TargetSelector) ClosestTarget(attacker host.Actor, profile *capability.Profile) (host.Actor, bool) {
	origin, ok := attacker.Location()
	if !ok {
		return nil, false
	}

	var best host.Actor
	bestDist := 0
	for a := range ts.World.Actors() {
		if !ts.Eligible(attacker, profile, a) {
			continue
		}
		loc, _ := a.Location()
		d := geom.DistanceSquared(loc, origin)
		if best == nil || d < bestDist {
			best, bestDist = a, d
		}
	}
	return best, best != nil
}

// Eligible applies the target filters, cheapest first.
//
// Actors hidden under fog are judged by their live state; remembered
// (frozen) actors are not considered.
func (ts TargetSelector) Eligible(attacker host.Actor, profile *capability.Profile, a host.Actor) bool {
	if a == nil || a.IsDead() || !a.IsInWorld() {
		return false
	}
	if _, ok := a.Location(); !ok {
		return false
	}
	if ts.World.AppearsFriendly(a, attacker) {
		return false
	}
	if !ts.World.IsExplored(attacker.Owner(), a) {
		return false
	}
	if !a.Targetable() {
		return false
	}
	if !profile.CanTarget(a.Profile()) {
		return false
	}
	return attacker.HasValidWeapon(a)
}
