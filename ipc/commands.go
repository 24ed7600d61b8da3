package ipc

// Command type constants. Values match the order strings the host executes.
const (
	TypeAttack          = "attack"
	TypeMove            = "move"
	TypeDeployTransform = "deploy_transform"
	TypeHarvest         = "harvest"
)

type AttackCommand struct {
	ActorID  uint32 `json:"actor_id"`
	TargetID uint32 `json:"target_id"`
}

type MoveCommand struct {
	ActorID uint32 `json:"actor_id"`
	X       int    `json:"x"`
	Y       int    `json:"y"`
	Queued  bool   `json:"queued"`
}

type DeployTransformCommand struct {
	ActorID uint32 `json:"actor_id"`
	X       int    `json:"x"`
	Y       int    `json:"y"`
	Queued  bool   `json:"queued"`
}

// HarvestCommand lets the host pick the resource field.
type HarvestCommand struct {
	ActorID uint32 `json:"actor_id"`
	Queued  bool   `json:"queued"`
}
