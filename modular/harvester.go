package modular

import (
	"github.com/penev92/ModularAI/host"
	"github.com/penev92/ModularAI/order"
)

// HarvesterModule sends idle harvesters back to work. The host picks the
// resource field.
type HarvesterModule struct {
	types []string
}

func NewHarvesterModule(types []string) *HarvesterModule {
	return &HarvesterModule{types: types}
}

func (m *HarvesterModule) Name() string { return "idle-harvester-manager" }

func (m *HarvesterModule) Tick(f *Frame) error {
	for _, harv := range f.State.Idle {
		if !matchesAnyType(harv.TypeName(), m.types) || !host.Valid(harv) {
			continue
		}
		f.Orders.Issue(order.Harvest(harv.ID(), true))
	}
	return nil
}
