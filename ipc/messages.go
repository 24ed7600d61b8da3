package ipc

// Message types exchanged with the host mod.
const (
	TypeHello     = "hello"
	TypeAck       = "ack"
	TypeGameState = "game_state"
)

// HelloMessage identifies the player a connection controls. Human players
// connect too; the bridge then stays passive.
type HelloMessage struct {
	Player      string `json:"player"`
	Faction     string `json:"faction"`
	ClientIndex int    `json:"clientIndex"`
	IsBot       bool   `json:"isBot"`
}

type AckMessage struct {
	Status  string `json:"status"`
	Session string `json:"session,omitempty"`
	Orders  int    `json:"orders,omitempty"`
}
