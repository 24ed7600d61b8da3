package modular

import (
	"github.com/penev92/ModularAI/geom"
	"github.com/penev92/ModularAI/host"
	"github.com/penev92/ModularAI/order"
)

// DefaultExpansionRadius is the minimum number of cells kept between base
// builders before they try to deploy.
const DefaultExpansionRadius = 5

// BaseBuilderModule deploys mobile base builders (MCVs). Without a main
// base the first idle builder deploys where it stands and the resulting
// structure is confirmed on a later tick. With a main base, idle builders
// relocate to the nearest cell of an annulus around themselves and deploy
// there.
type BaseBuilderModule struct {
	types  []string
	radius int
}

// NewBaseBuilderModule manages actors of the given types. A non-positive
// radius falls back to DefaultExpansionRadius.
func NewBaseBuilderModule(types []string, radius int) *BaseBuilderModule {
	if radius <= 0 {
		radius = DefaultExpansionRadius
	}
	return &BaseBuilderModule{types: types, radius: radius}
}

func (m *BaseBuilderModule) Name() string { return "idle-base-builder-manager" }

// Radii returns the inner and outer annulus radius used for relocation.
// The outer radius is a fixed 1.5× the inner one.
func (m *BaseBuilderModule) Radii() (inner, outer int) {
	return m.radius, m.radius + m.radius/2
}

func (m *BaseBuilderModule) Tick(f *Frame) error {
	s := f.State

	// A deployment issued on an earlier tick has had its end-of-frame
	// orders applied; settle it before looking at builders.
	if s.Pending != nil && s.Pending.IssuedAt < s.Ticks {
		m.confirm(f)
	}

	for _, builder := range s.Idle {
		if !matchesAnyType(builder.TypeName(), m.types) || !host.Valid(builder) {
			continue
		}

		switch s.Phase() {
		case HasBase:
			m.relocate(f, builder)
		case NoBase:
			m.deployInPlace(f, builder)
		case Deploying:
			// One deployment at a time until it is confirmed.
		}
	}
	return nil
}

func (m *BaseBuilderModule) confirm(f *Frame) {
	s := f.State
	p := s.Pending
	s.Pending = nil

	units := f.World.UnitsAt(p.Cell)
	if len(units) == 1 && units[0].ID() == p.Actor && host.Valid(units[0]) {
		s.SetMainBase(units[0].ID())
		f.Debugf("Main base is %s (%d) at %v.", units[0].TypeName(), units[0].ID(), p.Cell)
		return
	}
	f.Debugf("Deployment at %v not confirmed (%d units there), will retry.", p.Cell, len(units))
}

func (m *BaseBuilderModule) deployInPlace(f *Frame, builder host.Actor) {
	cell, ok := builder.Location()
	if !ok {
		return
	}

	f.Orders.Issue(order.Move(builder.ID(), cell, false))
	f.Orders.Issue(order.DeployTransform(builder.ID(), cell, true))
	f.State.Pending = &Deployment{Cell: cell, Actor: builder.ID(), IssuedAt: f.State.Ticks}
	f.Debugf("Deploying %s in place at %v.", builder.TypeName(), cell)
}

func (m *BaseBuilderModule) relocate(f *Frame, builder host.Actor) {
	// Re-ordering a moving builder every decision tick makes it thrash.
	if builder.IsMoving() {
		return
	}
	src, ok := builder.Location()
	if !ok {
		return
	}

	target, ok := m.ExpansionCell(f.World.Map(), src)
	if !ok {
		f.Debugf("No expansion cell for %s around %v.", builder.TypeName(), src)
		return
	}

	f.Orders.Issue(order.Move(builder.ID(), target, true))
	f.Orders.Issue(order.DeployTransform(builder.ID(), target, true))
	f.Debugf("Try to deploy %s at %v.", builder.TypeName(), target)
}

// ExpansionCell picks the in-map cell of the relocation annulus around src
// closest to src. Ties go to the first cell the map enumerates.
func (m *BaseBuilderModule) ExpansionCell(mp host.Map, src geom.CPos) (geom.CPos, bool) {
	inner, outer := m.Radii()

	var best geom.CPos
	bestDist, found := 0, false
	for c := range mp.TilesInAnnulus(src, inner, outer) {
		if !mp.Contains(c) {
			continue
		}
		d := geom.DistanceSquared(c, src)
		if !found || d < bestDist {
			best, bestDist, found = c, d, true
		}
	}
	return best, found
}
