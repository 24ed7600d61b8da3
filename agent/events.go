package agent

import (
	"fmt"
	"strings"

	"github.com/penev92/ModularAI/host"
	"github.com/penev92/ModularAI/model"
)

// EventKind identifies a game event detected by diffing consecutive
// snapshots.
type EventKind string

const (
	EventMainBaseLost         EventKind = "main_base_lost"
	EventCriticalBuildingLost EventKind = "critical_building_lost"
	EventArmyDevastated       EventKind = "army_devastated"
	EventEconomyCrisis        EventKind = "economy_crisis"
	EventFirstContact         EventKind = "first_contact"
	EventDefeated             EventKind = "defeated"
)

// Event is a significant change between two snapshots. Events are logged,
// echoed to the debug sink, and main_base_lost resets the base builder.
type Event struct {
	Kind   EventKind
	Tick   int
	Detail string
}

func (e Event) String() string {
	return fmt.Sprintf("[tick %d] %s: %s", e.Tick, e.Kind, e.Detail)
}

// stateSnapshot captures the diffable fields of one tick.
type stateSnapshot struct {
	buildingIDs  map[uint32]string // id → type for owned critical buildings
	combatCount  int
	harvesterCnt int
	enemiesSeen  bool
	lost         bool
}

// criticalBuildingTypes are buildings whose loss changes what the AI can do.
var criticalBuildingTypes = map[string]bool{
	"fact": true, // Construction Yard
	"weap": true, // War Factory
	"proc": true, // Refinery
	"atek": true, // Allied Tech Center
	"stek": true, // Soviet Tech Center
}

// baseType strips faction variants (e.g. "fact.england" → "fact") and lowercases.
func baseType(t string) string {
	base := strings.ToLower(t)
	if idx := strings.IndexByte(base, '.'); idx >= 0 {
		base = base[:idx]
	}
	return base
}

func isCriticalBuilding(t string) bool {
	return criticalBuildingTypes[baseType(t)]
}

// isCombatUnit counts armed actors; defensive structures included.
func isCombatUnit(a model.Actor) bool {
	return a.CanAttack
}

// takeSnapshot records the diffable state of w from the controlled player's
// point of view.
func takeSnapshot(w *model.World) stateSnapshot {
	gs := w.State()
	me := gs.Player.Name
	snap := stateSnapshot{
		buildingIDs: make(map[uint32]string),
		lost:        gs.Player.WinState == model.WinStateLost,
	}

	var observer host.Actor
	for i := range gs.Actors {
		a := &gs.Actors[i]
		if !a.Alive() || a.Owner != me {
			continue
		}
		if observer == nil && a.Cell != nil {
			observer, _ = w.Actor(host.ActorID(a.ID))
		}
		if isCriticalBuilding(a.Type) {
			snap.buildingIDs[a.ID] = a.Type
		}
		if isCombatUnit(*a) {
			snap.combatCount++
		}
		if baseType(a.Type) == "harv" {
			snap.harvesterCnt++
		}
	}

	if observer != nil {
		for a := range w.Actors() {
			if !host.Valid(a) || a.Profile() == nil {
				continue
			}
			if _, ok := a.Location(); !ok {
				continue
			}
			if !w.AppearsFriendly(a, observer) && w.IsExplored(me, a) {
				snap.enemiesSeen = true
				break
			}
		}
	}
	return snap
}

// detectEvents compares w against prev and returns the triggered events and
// the snapshot to diff against next time. The main base check does not
// need a previous snapshot.
func detectEvents(w *model.World, mainBase host.ActorID, hasMainBase bool, prev *stateSnapshot) ([]Event, stateSnapshot) {
	gs := w.State()
	cur := takeSnapshot(w)
	var events []Event

	if hasMainBase {
		a, ok := w.Actor(mainBase)
		if !ok || !host.Valid(a) || a.Owner() != gs.Player.Name {
			events = append(events, Event{
				Kind:   EventMainBaseLost,
				Tick:   gs.Tick,
				Detail: fmt.Sprintf("Main base (id %d) is gone", mainBase),
			})
		}
	}

	if prev == nil {
		return events, cur
	}

	for id, typ := range prev.buildingIDs {
		if _, exists := cur.buildingIDs[id]; !exists {
			events = append(events, Event{
				Kind:   EventCriticalBuildingLost,
				Tick:   gs.Tick,
				Detail: fmt.Sprintf("Lost critical building: %s (id %d)", typ, id),
			})
			break // one event per tick is enough
		}
	}

	// >50% of combat units lost, with a floor of 6 to avoid early noise.
	if prev.combatCount >= 6 {
		lost := prev.combatCount - cur.combatCount
		if lost > 0 && float64(lost)/float64(prev.combatCount) > 0.5 {
			events = append(events, Event{
				Kind:   EventArmyDevastated,
				Tick:   gs.Tick,
				Detail: fmt.Sprintf("Army devastated: %d→%d combat units (lost %d%%)", prev.combatCount, cur.combatCount, 100*lost/prev.combatCount),
			})
		}
	}

	if prev.harvesterCnt > 0 && cur.harvesterCnt == 0 {
		events = append(events, Event{
			Kind:   EventEconomyCrisis,
			Tick:   gs.Tick,
			Detail: "Economy crisis: all harvesters lost",
		})
	}

	if !prev.enemiesSeen && cur.enemiesSeen {
		events = append(events, Event{
			Kind:   EventFirstContact,
			Tick:   gs.Tick,
			Detail: "First contact: enemies now visible",
		})
	}

	if !prev.lost && cur.lost {
		events = append(events, Event{
			Kind:   EventDefeated,
			Tick:   gs.Tick,
			Detail: fmt.Sprintf("%s has lost", gs.Player.Name),
		})
	}

	return events, cur
}
