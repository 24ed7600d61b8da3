package modular

import (
	"github.com/penev92/ModularAI/capability"
	"github.com/penev92/ModularAI/host/hosttest"
)

const (
	me    = "Multi0"
	enemy = "Multi1"
)

// newWorld returns a 64x64 world with a bot player and a human enemy.
func newWorld() *hosttest.World {
	w := hosttest.New(64, 64)
	w.AddPlayer(&hosttest.Player{PlayerName: me, Index: 1, Bot: true})
	w.AddPlayer(&hosttest.Player{PlayerName: enemy, Index: 2})
	return w
}

func tags(ts ...capability.Tag) capability.TagSet { return capability.NewTagSet(ts...) }

var (
	riflemanProfile = &capability.Profile{
		AttackCategories: tags("anti-infantry"),
		AttackableTypes:  tags("infantry"),
		TargetableTypes:  tags("infantry"),
	}
	tankProfile = &capability.Profile{
		AttackCategories: tags("mechs"),
		AttackableTypes:  tags("infantry", "vehicle"),
		TargetableTypes:  tags("vehicle"),
	}
	structureProfile = &capability.Profile{
		TargetableTypes: tags("structure"),
	}
	builderProfile = &capability.Profile{
		TargetableTypes: tags("vehicle"),
	}
)

// recordSink collects debug lines.
type recordSink struct {
	players []string
	lines   []string
}

func (r *recordSink) Debug(player, message string) {
	r.players = append(r.players, player)
	r.lines = append(r.lines, message)
}

// countingModule counts its ticks.
type countingModule struct {
	name  string
	ticks int
	log   *[]string
}

func (m *countingModule) Name() string { return m.name }

func (m *countingModule) Tick(f *Frame) error {
	m.ticks++
	if m.log != nil {
		*m.log = append(*m.log, m.name)
	}
	return nil
}

// activated returns a controller bound to the bot player of w.
func activated(w *hosttest.World, delay int, modules ...Module) *Controller {
	c := New(Settings{UpdateDelay: delay}, nil)
	for _, m := range modules {
		c.RegisterModule(m)
	}
	p, _ := w.Player(me)
	c.Activate(p)
	return c
}
