package order

import (
	"errors"
	"testing"

	"github.com/penev92/ModularAI/geom"
	"github.com/penev92/ModularAI/host"
	"github.com/penev92/ModularAI/host/hosttest"
)

func TestDrainPreservesIssueOrder(t *testing.T) {
	w := hosttest.New(32, 32)
	w.Add(&hosttest.Actor{Id: 1}, &hosttest.Actor{Id: 2})

	var q Queue
	q.Issue(Move(1, geom.CPos{X: 4, Y: 4}, true))
	q.Issue(DeployTransform(1, geom.CPos{X: 4, Y: 4}, true))
	q.Issue(Attack(1, 2))
	q.Issue(Harvest(2, true))

	var got []Kind
	n, err := q.Drain(w, func(o Order, subject, target host.Actor) error {
		got = append(got, o.Kind)
		return nil
	})
	if err != nil {
		t.Fatalf("Drain: %v", err)
	}
	want := []Kind{KindMove, KindDeployTransform, KindAttack, KindHarvest}
	if n != len(want) {
		t.Fatalf("Drain executed %d orders, want %d", n, len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("order %d = %s, want %s", i, got[i], want[i])
		}
	}
	if q.Len() != 0 {
		t.Errorf("queue not empty after drain: %d", q.Len())
	}
}

func TestDrainDropsStaleReferences(t *testing.T) {
	w := hosttest.New(32, 32)
	attacker := w.Add(&hosttest.Actor{Id: 1})
	target := w.Add(&hosttest.Actor{Id: 2})
	w.Add(&hosttest.Actor{Id: 3})

	var q Queue
	q.Issue(Attack(1, 2))
	q.Issue(Harvest(3, true))
	q.Issue(Harvest(4, true)) // never existed

	// The target dies and unit 3 leaves the world after the orders were
	// issued but before the end of the frame.
	target.Dead = true
	w.ActorList[2].OutOfWorld = true

	called := 0
	n, err := q.Drain(w, func(o Order, subject, target host.Actor) error {
		called++
		return nil
	})
	if err != nil {
		t.Fatalf("Drain: %v", err)
	}
	if n != 0 || called != 0 {
		t.Errorf("expected every order dropped, executed %d", n)
	}

	// The attacker itself is still fine.
	if !host.Valid(attacker) {
		t.Error("attacker should still be valid")
	}
}

func TestDrainPassesTargetOnlyForAttack(t *testing.T) {
	w := hosttest.New(32, 32)
	w.Add(&hosttest.Actor{Id: 1}, &hosttest.Actor{Id: 2})

	var q Queue
	q.Issue(Attack(1, 2))
	q.Issue(Harvest(1, true))

	_, err := q.Drain(w, func(o Order, subject, target host.Actor) error {
		switch o.Kind {
		case KindAttack:
			if target == nil || target.ID() != 2 {
				t.Errorf("attack target = %v, want actor 2", target)
			}
		case KindHarvest:
			if target != nil {
				t.Errorf("harvest should have no target, got %v", target)
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Drain: %v", err)
	}
}

func TestDrainContinuesAfterExecutorError(t *testing.T) {
	w := hosttest.New(32, 32)
	w.Add(&hosttest.Actor{Id: 1}, &hosttest.Actor{Id: 2})

	var q Queue
	q.Issue(Harvest(1, true))
	q.Issue(Harvest(2, true))

	boom := errors.New("send failed")
	calls := 0
	n, err := q.Drain(w, func(o Order, subject, target host.Actor) error {
		calls++
		if o.Subject == 1 {
			return boom
		}
		return nil
	})
	if calls != 2 || n != 2 {
		t.Errorf("expected both orders executed, calls=%d n=%d", calls, n)
	}
	if !errors.Is(err, boom) {
		t.Errorf("Drain error = %v, want wrapped %v", err, boom)
	}
}

func TestPendingIsACopy(t *testing.T) {
	var q Queue
	q.Issue(Harvest(1, false))
	p := q.Pending()
	p[0].Subject = 99
	if q.Pending()[0].Subject != 1 {
		t.Error("Pending must not expose the internal slice")
	}
}
