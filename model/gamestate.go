// Package model holds the per-tick world snapshot the host sends and the
// host.World adapter built from it.
package model

import "github.com/penev92/ModularAI/geom"

// Win states reported for the controlled player.
const (
	WinStateUndefined = "undefined"
	WinStateWon       = "won"
	WinStateLost      = "lost"
)

type GameState struct {
	Tick      int     `json:"tick"`
	Player    Player  `json:"player"`
	Actors    []Actor `json:"actors"`
	MapWidth  int     `json:"mapWidth"`
	MapHeight int     `json:"mapHeight"`
}

type Player struct {
	Name        string   `json:"name"`
	ClientIndex int      `json:"clientIndex"`
	IsBot       bool     `json:"isBot"`
	WinState    string   `json:"winState"`
	Allies      []string `json:"allies,omitempty"`
}

// Actor is one entity as the host saw it at the end of the tick. Cell is
// nil for actors without a position. Explored is computed by the host for
// the controlled player.
type Actor struct {
	ID            uint32     `json:"id"`
	Type          string     `json:"type"`
	Owner         string     `json:"owner"`
	Cell          *geom.CPos `json:"cell,omitempty"`
	Dead          bool       `json:"dead"`
	InWorld       bool       `json:"inWorld"`
	Idle          bool       `json:"idle"`
	Moving        bool       `json:"moving"`
	Explored      bool       `json:"explored"`
	Targetable    bool       `json:"targetable"`
	CanAttack     bool       `json:"canAttack"`
	TargetTypes   []string   `json:"targetTypes,omitempty"`
	WeaponTargets []string   `json:"weaponTargets,omitempty"`
}

func (a Actor) TypeName() string { return a.Type }

// Alive reports whether the actor is still part of the simulation.
func (a Actor) Alive() bool { return !a.Dead && a.InWorld }
