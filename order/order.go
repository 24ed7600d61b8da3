// Package order holds the deferred command queue. Orders are plain values
// that reference actors by ID; nothing is captured by closure, so a stale
// reference can only ever resolve to "gone".
package order

import (
	"errors"
	"fmt"

	"github.com/penev92/ModularAI/geom"
	"github.com/penev92/ModularAI/host"
)

// Kind names the order. Values match the host's order strings.
type Kind string

const (
	KindAttack          Kind = "attack"
	KindMove            Kind = "move"
	KindDeployTransform Kind = "deploy_transform"
	KindHarvest         Kind = "harvest"
)

// Order is one deferred command.
type Order struct {
	Kind    Kind
	Subject host.ActorID
	Target  host.ActorID // attack only
	Cell    geom.CPos    // move and deploy
	Queued  bool
}

func (o Order) String() string {
	switch o.Kind {
	case KindAttack:
		return fmt.Sprintf("%s %d -> %d", o.Kind, o.Subject, o.Target)
	case KindMove, KindDeployTransform:
		return fmt.Sprintf("%s %d @ %v", o.Kind, o.Subject, o.Cell)
	default:
		return fmt.Sprintf("%s %d", o.Kind, o.Subject)
	}
}

func Attack(subject, target host.ActorID) Order {
	return Order{Kind: KindAttack, Subject: subject, Target: target}
}

func Move(subject host.ActorID, cell geom.CPos, queued bool) Order {
	return Order{Kind: KindMove, Subject: subject, Cell: cell, Queued: queued}
}

func DeployTransform(subject host.ActorID, cell geom.CPos, queued bool) Order {
	return Order{Kind: KindDeployTransform, Subject: subject, Cell: cell, Queued: queued}
}

func Harvest(subject host.ActorID, queued bool) Order {
	return Order{Kind: KindHarvest, Subject: subject, Queued: queued}
}

// Executor applies one revalidated order. subject is always valid; target is
// non-nil only for attack orders.
type Executor func(o Order, subject, target host.Actor) error

// Queue collects orders during a tick. It is owned by a single controller
// and is not safe for concurrent use.
type Queue struct {
	orders []Order
}

// Issue appends o. Issued orders cannot be cancelled.
func (q *Queue) Issue(o Order) {
	q.orders = append(q.orders, o)
}

// Len returns the number of orders waiting to be drained.
func (q *Queue) Len() int { return len(q.orders) }

// Pending returns a copy of the orders waiting to be drained.
func (q *Queue) Pending() []Order {
	return append([]Order(nil), q.orders...)
}

// Drain executes every queued order in issue order and empties the queue.
// Subjects and attack targets are re-resolved against w first; orders whose
// actors are gone, dead or out of the world are dropped silently. Executor
// errors do not stop the drain and are returned joined. Drain returns the
// number of orders handed to exec.
func (q *Queue) Drain(w host.World, exec Executor) (int, error) {
	pending := q.orders
	q.orders = nil

	var errs []error
	n := 0
	for _, o := range pending {
		subject, ok := w.Actor(o.Subject)
		if !ok || !host.Valid(subject) {
			continue
		}

		var target host.Actor
		if o.Kind == KindAttack {
			target, ok = w.Actor(o.Target)
			if !ok || !host.Valid(target) {
				continue
			}
		}

		n++
		if err := exec(o, subject, target); err != nil {
			errs = append(errs, fmt.Errorf("%v: %w", o, err))
		}
	}
	return n, errors.Join(errs...)
}
