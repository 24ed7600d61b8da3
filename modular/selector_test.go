package modular

import (
	"testing"

	"github.com/penev92/ModularAI/capability"
	"github.com/penev92/ModularAI/geom"
	"github.com/penev92/ModularAI/host"
	"github.com/penev92/ModularAI/host/hosttest"
)

func rifleman(id host.ActorID, owner string, x, y int) *hosttest.Actor {
	return &hosttest.Actor{
		Id: id, Type: "e1", OwnerName: owner, Idle: true, Attacks: true,
		Cell: geom.CPos{X: x, Y: y}, Prof: riflemanProfile,
	}
}

func TestClosestTargetPicksNearest(t *testing.T) {
	w := newWorld()
	attacker := w.Add(rifleman(1, me, 10, 10))
	w.Add(rifleman(2, enemy, 19, 10), rifleman(3, enemy, 15, 10))

	got, ok := TargetSelector{World: w}.ClosestTarget(attacker, attacker.Prof)
	if !ok || got.ID() != 3 {
		t.Fatalf("ClosestTarget = %v, %v; want actor 3", got, ok)
	}
}

func TestClosestTargetTieGoesToFirst(t *testing.T) {
	w := newWorld()
	attacker := w.Add(rifleman(1, me, 10, 10))
	w.Add(rifleman(2, enemy, 5, 10), rifleman(3, enemy, 15, 10), rifleman(4, enemy, 10, 5))

	got, ok := TargetSelector{World: w}.ClosestTarget(attacker, attacker.Prof)
	if !ok || got.ID() != 2 {
		t.Fatalf("ClosestTarget = %v, %v; want actor 2", got, ok)
	}
}

func TestClosestTargetWithoutPosition(t *testing.T) {
	w := newWorld()
	attacker := w.Add(rifleman(1, me, 10, 10))
	attacker.NoPosition = true
	w.Add(rifleman(2, enemy, 12, 10))

	if got, ok := (TargetSelector{World: w}).ClosestTarget(attacker, attacker.Prof); ok {
		t.Errorf("attacker without position got target %d", got.ID())
	}
}

func TestClosestTargetFilters(t *testing.T) {
	tests := []struct {
		name  string
		setup func(w *hosttest.World, near *hosttest.Actor)
	}{
		{"dead", func(_ *hosttest.World, a *hosttest.Actor) { a.Dead = true }},
		{"not in world", func(_ *hosttest.World, a *hosttest.Actor) { a.OutOfWorld = true }},
		{"no position", func(_ *hosttest.World, a *hosttest.Actor) { a.NoPosition = true }},
		{"own unit", func(_ *hosttest.World, a *hosttest.Actor) { a.OwnerName = me }},
		{"ally", func(w *hosttest.World, a *hosttest.Actor) {
			a.OwnerName = "Multi2"
			w.Allies[me] = []string{"Multi2"}
		}},
		{"unexplored", func(w *hosttest.World, a *hosttest.Actor) { w.Shrouded[a.Id] = true }},
		{"untargetable", func(_ *hosttest.World, a *hosttest.Actor) { a.Untargetable = true }},
		{"wrong target type", func(_ *hosttest.World, a *hosttest.Actor) { a.Prof = structureProfile }},
		{"not AI-queryable", func(_ *hosttest.World, a *hosttest.Actor) { a.Prof = nil }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := newWorld()
			attacker := w.Add(rifleman(1, me, 10, 10))
			near := w.Add(rifleman(2, enemy, 11, 10))
			w.Add(rifleman(3, enemy, 19, 10))
			tc.setup(w, near)

			got, ok := TargetSelector{World: w}.ClosestTarget(attacker, attacker.Prof)
			if !ok || got.ID() != 3 {
				t.Errorf("ClosestTarget = %v, %v; want the far actor 3", got, ok)
			}
		})
	}
}

func TestClosestTargetUnattackable(t *testing.T) {
	w := newWorld()
	aa := &capability.Profile{
		AttackableTypes:   tags("infantry", "air"),
		UnattackableTypes: tags("air"),
		TargetableTypes:   tags("infantry"),
	}
	attacker := w.Add(rifleman(1, me, 10, 10))
	attacker.Prof = aa
	heli := w.Add(rifleman(2, enemy, 11, 10))
	heli.Prof = &capability.Profile{TargetableTypes: tags("air", "infantry")}
	w.Add(rifleman(3, enemy, 19, 10))

	got, ok := TargetSelector{World: w}.ClosestTarget(attacker, aa)
	if !ok || got.ID() != 3 {
		t.Errorf("ClosestTarget = %v, %v; want actor 3", got, ok)
	}
}

func TestClosestTargetNeedsValidWeapon(t *testing.T) {
	w := newWorld()
	tank := w.Add(&hosttest.Actor{
		Id: 1, Type: "2tnk", OwnerName: me, Attacks: true, Idle: true,
		Cell: geom.CPos{X: 10, Y: 10}, Prof: tankProfile,
		Weapons: []capability.Tag{"vehicle"},
	})
	w.Add(rifleman(2, enemy, 11, 10))

	if got, ok := (TargetSelector{World: w}).ClosestTarget(tank, tank.Prof); ok {
		t.Fatalf("tank without anti-infantry weapon targeted %d", got.ID())
	}

	w.Add(&hosttest.Actor{
		Id: 3, Type: "1tnk", OwnerName: enemy, Cell: geom.CPos{X: 30, Y: 30}, Prof: tankProfile,
	})
	got, ok := TargetSelector{World: w}.ClosestTarget(tank, tank.Prof)
	if !ok || got.ID() != 3 {
		t.Errorf("ClosestTarget = %v, %v; want actor 3", got, ok)
	}
}

func TestClosestTargetNoCandidates(t *testing.T) {
	w := newWorld()
	attacker := w.Add(rifleman(1, me, 10, 10))
	w.Add(rifleman(2, me, 12, 10))

	if _, ok := (TargetSelector{World: w}).ClosestTarget(attacker, attacker.Prof); ok {
		t.Error("expected no target")
	}
}
