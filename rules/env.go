package rules

import "strings"

// Env is what gate conditions can see. Field and method names are the
// vocabulary available to expr sources, e.g.
//
//	IdleCount() > 0 && !HasMainBase()
//	IdleOf("mcv") > 0 || Tick > 2500
type Env struct {
	Tick      int      // ticks since the controller was activated
	Player    string   // owner string of the controlled player
	Idle      []string // type names of the current idle snapshot
	MainBase  bool
	Deploying bool
}

func (e Env) IdleCount() int { return len(e.Idle) }

// IdleOf counts idle units of type t. Faction variants ("mcv.soviet")
// count towards their base type.
func (e Env) IdleOf(t string) int {
	n := 0
	for _, name := range e.Idle {
		if matchesType(name, t) {
			n++
		}
	}
	return n
}

func (e Env) HasIdle(t string) bool { return e.IdleOf(t) > 0 }

func (e Env) HasMainBase() bool   { return e.MainBase }
func (e Env) DeployPending() bool { return e.Deploying }

// matchesType compares case-insensitively, ignoring a faction suffix on name.
func matchesType(name, t string) bool {
	if strings.EqualFold(name, t) {
		return true
	}
	if idx := strings.IndexByte(name, '.'); idx >= 0 {
		return strings.EqualFold(name[:idx], t)
	}
	return false
}
