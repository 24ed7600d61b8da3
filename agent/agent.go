package agent

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/penev92/ModularAI/capability"
	"github.com/penev92/ModularAI/config"
	"github.com/penev92/ModularAI/host"
	"github.com/penev92/ModularAI/ipc"
	"github.com/penev92/ModularAI/model"
	"github.com/penev92/ModularAI/modular"
	"github.com/penev92/ModularAI/order"
)

var ErrNoHello = errors.New("game state before hello")

// Sender delivers commands to the host. *ipc.Connection implements it.
type Sender interface {
	Send(msgType string, data any) error
}

// Agent owns the decision-making for a single player session.
type Agent struct {
	ID      string
	Conn    Sender
	Player  string
	Faction string

	cfg      *config.Config
	registry *capability.Registry
	sink     modular.DebugSink
	ctrl     *modular.Controller
	prev     *stateSnapshot
}

func New(conn Sender, cfg *config.Config, registry *capability.Registry, sink modular.DebugSink) *Agent {
	return &Agent{
		ID:       uuid.NewString(),
		Conn:     conn,
		cfg:      cfg,
		registry: registry,
		sink:     sink,
	}
}

// Controller returns the controller created by the hello handshake, or nil.
func (a *Agent) Controller() *modular.Controller { return a.ctrl }

// HandleHello builds a fresh controller for the announced player. A second
// hello replaces the previous controller.
func (a *Agent) HandleHello(env ipc.Envelope) (*ipc.Envelope, error) {
	var hello ipc.HelloMessage
	if err := env.Decode(&hello); err != nil {
		return nil, err
	}
	if hello.Player == "" {
		return nil, fmt.Errorf("hello: empty player name")
	}

	ctrl, err := modular.FromConfig(a.cfg, a.sink)
	if err != nil {
		return nil, fmt.Errorf("build controller: %w", err)
	}
	p := model.Player{Name: hello.Player, ClientIndex: hello.ClientIndex, IsBot: hello.IsBot}
	ctrl.Activate(p.View())

	a.Player = hello.Player
	a.Faction = hello.Faction
	a.ctrl = ctrl
	a.prev = nil
	slog.Info("player identified", "session", a.ID, "player", a.Player, "faction", a.Faction, "bot", hello.IsBot)

	ack, err := ipc.NewEnvelope(ipc.TypeAck, ipc.AckMessage{Status: "ok", Session: a.ID})
	if err != nil {
		return nil, err
	}
	return &ack, nil
}

// HandleGameState runs one simulation tick: detect events, tick the
// controller, then drain its orders to the host.
func (a *Agent) HandleGameState(env ipc.Envelope) (*ipc.Envelope, error) {
	if a.ctrl == nil {
		return nil, ErrNoHello
	}
	var gs model.GameState
	if err := env.Decode(&gs); err != nil {
		return nil, err
	}
	if gs.Player.Name != a.Player {
		return nil, fmt.Errorf("game state for %q on session of %q", gs.Player.Name, a.Player)
	}

	w := model.NewWorld(&gs, a.registry)

	mainBase, hasMainBase := a.ctrl.MainBase()
	events, snap := detectEvents(w, mainBase, hasMainBase, a.prev)
	a.prev = &snap
	for _, e := range events {
		slog.Info("game event", "player", a.Player, "tick", e.Tick, "kind", e.Kind, "detail", e.Detail)
		a.ctrl.Debugf("%s", e)
		if e.Kind == EventMainBaseLost {
			a.ctrl.ClearMainBase()
		}
	}

	a.ctrl.Tick(w)

	n, err := a.ctrl.Orders().Drain(w, a.execute)
	if err != nil {
		slog.Error("order delivery failed", "player", a.Player, "tick", gs.Tick, "error", err)
	}
	slog.Debug("game state processed",
		"player", a.Player,
		"tick", gs.Tick,
		"actors", len(gs.Actors),
		"idle", len(a.ctrl.Idle()),
		"orders", n,
	)

	ack, err := ipc.NewEnvelope(ipc.TypeAck, ipc.AckMessage{Status: "ok", Session: a.ID, Orders: n})
	if err != nil {
		return nil, err
	}
	return &ack, nil
}

func (a *Agent) execute(o order.Order, subject, target host.Actor) error {
	msgType, cmd, err := Command(o)
	if err != nil {
		return err
	}
	return a.Conn.Send(msgType, cmd)
}

// Command converts an order into its wire command.
func Command(o order.Order) (string, any, error) {
	id := uint32(o.Subject)
	switch o.Kind {
	case order.KindAttack:
		return ipc.TypeAttack, ipc.AttackCommand{ActorID: id, TargetID: uint32(o.Target)}, nil
	case order.KindMove:
		return ipc.TypeMove, ipc.MoveCommand{ActorID: id, X: o.Cell.X, Y: o.Cell.Y, Queued: o.Queued}, nil
	case order.KindDeployTransform:
		return ipc.TypeDeployTransform, ipc.DeployTransformCommand{ActorID: id, X: o.Cell.X, Y: o.Cell.Y, Queued: o.Queued}, nil
	case order.KindHarvest:
		return ipc.TypeHarvest, ipc.HarvestCommand{ActorID: id, Queued: o.Queued}, nil
	default:
		return "", nil, fmt.Errorf("unknown order kind %q", o.Kind)
	}
}
