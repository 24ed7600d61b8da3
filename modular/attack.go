package modular

import (
	"fmt"

	"github.com/penev92/ModularAI/capability"
	"github.com/penev92/ModularAI/host"
	"github.com/penev92/ModularAI/order"
)

// AttackModule sends every idle attacker after its nearest valid target.
type AttackModule struct {
	allow capability.TagSet
}

// NewAttackModule restricts the module to attackers whose attack categories
// intersect categories. An empty list accepts every attacker.
func NewAttackModule(categories []string) (*AttackModule, error) {
	allow, err := capability.ParseTagSet(categories)
	if err != nil {
		return nil, fmt.Errorf("use-attacking-categories: %w", err)
	}
	return &AttackModule{allow: allow}, nil
}

func (m *AttackModule) Name() string { return "attacking-module" }

// Eligible reports whether a may be dispatched by this module.
func (m *AttackModule) Eligible(a host.Actor) bool {
	if !a.CanAttack() {
		return false
	}
	return a.Profile().InCategories(m.allow)
}

func (m *AttackModule) Tick(f *Frame) error {
	selector := TargetSelector{World: f.World}

	for _, attacker := range f.State.Idle {
		if !host.Valid(attacker) || !m.Eligible(attacker) {
			continue
		}

		target, ok := selector.ClosestTarget(attacker, attacker.Profile())
		if !ok {
			continue
		}
		// The target is only checked here; if it dies between now and the
		// end of the frame the host drops the order.
		if !host.Valid(target) {
			continue
		}

		f.Orders.Issue(order.Attack(attacker.ID(), target.ID()))
		f.Debugf("%s to attack %s (%s)", attacker.TypeName(), target.TypeName(), target.Owner())
	}
	return nil
}
