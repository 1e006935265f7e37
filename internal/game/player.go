package game

import "github.com/Saschadav/neonhideseek/internal/protocol"

// Role is a player's part in the current round.
type Role string

const (
	RoleSurvivor Role = "survivor"
	RoleSeeker   Role = "seeker"
)

// Player holds the per-connection identity and round state. A Player exists
// from the moment a connection announces its nickname until it disconnects,
// and belongs to at most one room.
type Player struct {
	ID          string
	Nickname    string
	RoomID      string
	Role        Role
	WantsSeeker bool
	IsAlive     bool
	IsReady     bool
	Position    protocol.Vec3
	Rotation    protocol.Vec3
}

// NewPlayer creates a survivor with no room membership. An empty nickname is
// defaulted from the connection id.
func NewPlayer(id, nickname string) *Player {
	if nickname == "" {
		short := id
		if len(short) > 4 {
			short = short[:4]
		}
		nickname = "Player_" + short
	}
	return &Player{
		ID:       id,
		Nickname: nickname,
		Role:     RoleSurvivor,
		IsAlive:  true,
	}
}

// Info returns the roster entry broadcast to clients.
func (p *Player) Info() protocol.PlayerInfo {
	return protocol.PlayerInfo{
		ID:          p.ID,
		Nickname:    p.Nickname,
		Role:        string(p.Role),
		WantsSeeker: p.WantsSeeker,
		IsAlive:     p.IsAlive,
		IsReady:     p.IsReady,
	}
}
