package modular

import (
	"github.com/penev92/ModularAI/geom"
	"github.com/penev92/ModularAI/host"
)

// BasePhase is the base-expansion state derived from State.
type BasePhase int

const (
	NoBase    BasePhase = iota // no main base, nothing pending
	Deploying                  // deploy orders issued, awaiting confirmation
	HasBase                    // main base confirmed
)

func (p BasePhase) String() string {
	switch p {
	case NoBase:
		return "NoBase"
	case Deploying:
		return "Deploying"
	case HasBase:
		return "HasBase"
	default:
		return "Unknown"
	}
}

// Deployment records a deploy-in-place awaiting confirmation.
type Deployment struct {
	Cell     geom.CPos
	Actor    host.ActorID
	IssuedAt int // State.Ticks when the orders were issued
}

// State is everything one controller knows about its player between ticks.
// It is owned by exactly one Controller and handed to modules by pointer
// for the duration of a tick.
type State struct {
	Player         string // player name, used for ownership checks
	Tag            string // owner string, used in debug output
	Enabled        bool
	UpdateInterval int
	Countdown      int
	Ticks          int // ticks processed since activation

	// Idle is rebuilt every tick and never carried over.
	Idle []host.Actor

	// Pending is cleared exactly once: confirmed into the main base, or
	// dropped when the confirmation is inconclusive.
	Pending *Deployment

	mainBase    host.ActorID
	hasMainBase bool
}

// MainBase returns the confirmed main base, if any.
func (s *State) MainBase() (host.ActorID, bool) {
	return s.mainBase, s.hasMainBase
}

func (s *State) SetMainBase(id host.ActorID) {
	s.mainBase = id
	s.hasMainBase = true
}

func (s *State) ClearMainBase() {
	s.mainBase = 0
	s.hasMainBase = false
}

// Phase derives the base-expansion phase.
func (s *State) Phase() BasePhase {
	switch {
	case s.hasMainBase:
		return HasBase
	case s.Pending != nil:
		return Deploying
	default:
		return NoBase
	}
}
