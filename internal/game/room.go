package game

import (
	"math/rand"

	"github.com/Saschadav/neonhideseek/internal/protocol"
)

// Room owns its members and all round state. It is only ever mutated from the
// hub's event loop, so it carries no locking of its own.
type Room struct {
	ID         string
	Name       string
	HostID     string
	MaxPlayers int
	MapType    string

	Players map[string]*Player
	// order tracks join order so host re-election is stable: the earliest
	// remaining joiner is promoted, never a random map pick.
	order []string

	GameStarted   bool
	GameTime      int
	CaughtPlayers []string

	roundSeconds int
}

// NewRoom builds an empty room. The creating player is added by the registry.
func NewRoom(id, hostID, name string, maxPlayers int, mapType string, roundSeconds int) *Room {
	if name == "" {
		name = "Room " + id
	}
	if mapType == "" {
		mapType = "classic"
	}
	return &Room{
		ID:           id,
		Name:         name,
		HostID:       hostID,
		MaxPlayers:   maxPlayers,
		MapType:      mapType,
		Players:      make(map[string]*Player),
		GameTime:     roundSeconds,
		roundSeconds: roundSeconds,
	}
}

// AddPlayer admits a player, re-checking the join preconditions atomically
// with the admission.
func (r *Room) AddPlayer(p *Player) error {
	if r.GameStarted {
		return ErrRoundStarted
	}
	if len(r.Players) >= r.MaxPlayers {
		return ErrRoomFull
	}
	r.Players[p.ID] = p
	r.order = append(r.order, p.ID)
	p.RoomID = r.ID
	return nil
}

// RemovePlayer drops a member and re-elects the host if the host left. The
// removed player keeps no room membership afterward.
func (r *Room) RemovePlayer(id string) (*Player, bool) {
	p, ok := r.Players[id]
	if !ok {
		return nil, false
	}
	delete(r.Players, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	p.RoomID = ""
	if r.HostID == id && len(r.order) > 0 {
		r.HostID = r.order[0]
	}
	return p, true
}

// Member looks up a player by connection id.
func (r *Room) Member(id string) (*Player, bool) {
	p, ok := r.Players[id]
	return p, ok
}

// Empty reports whether the last member has left. An empty room must be
// deleted from the registry immediately.
func (r *Room) Empty() bool {
	return len(r.Players) == 0
}

// Joinable reports whether the room accepts new members.
func (r *Room) Joinable() bool {
	return !r.GameStarted && len(r.Players) < r.MaxPlayers
}

// Summary returns the lobby-browser view of the room.
func (r *Room) Summary() protocol.RoomSummary {
	return protocol.RoomSummary{
		RoomID:         r.ID,
		Name:           r.Name,
		HostID:         r.HostID,
		MaxPlayers:     r.MaxPlayers,
		CurrentPlayers: len(r.Players),
		MapType:        r.MapType,
		GameStarted:    r.GameStarted,
	}
}

// Roster returns the member list in join order.
func (r *Room) Roster() []protocol.PlayerInfo {
	roster := make([]protocol.PlayerInfo, 0, len(r.order))
	for _, id := range r.order {
		if p, ok := r.Players[id]; ok {
			roster = append(roster, p.Info())
		}
	}
	return roster
}

// members returns the players in join order.
func (r *Room) members() []*Player {
	out := make([]*Player, 0, len(r.order))
	for _, id := range r.order {
		if p, ok := r.Players[id]; ok {
			out = append(out, p)
		}
	}
	return out
}

// StartRound moves the room from lobby to an active round: roles assigned,
// clock reset, caught list cleared. Only the host may start and a round needs
// at least two players.
func (r *Room) StartRound(requesterID string, rng *rand.Rand) error {
	if requesterID != r.HostID {
		return ErrNotHost
	}
	if len(r.Players) < 2 {
		return ErrNotEnoughPlayers
	}
	AssignRoles(r.members(), rng)
	r.GameStarted = true
	r.GameTime = r.roundSeconds
	r.CaughtPlayers = nil
	return nil
}

// Tick decrements the countdown by one second. It reports the new remaining
// time and whether the tick applied; a tick against a finished round is a
// no-op so a stale countdown wake never mutates anything.
func (r *Room) Tick() (int, bool) {
	if !r.GameStarted || r.GameTime <= 0 {
		return r.GameTime, false
	}
	r.GameTime--
	return r.GameTime, true
}

// Catch records the seeker catching target. Invalid catches (caller is not
// the current seeker, round not active, target not a living survivor here)
// are ignored without error.
func (r *Room) Catch(seekerID, targetID string) (*Player, bool) {
	if !r.GameStarted {
		return nil, false
	}
	seeker, ok := r.Players[seekerID]
	if !ok || seeker.Role != RoleSeeker {
		return nil, false
	}
	target, ok := r.Players[targetID]
	if !ok || target.Role != RoleSurvivor || !target.IsAlive {
		return nil, false
	}
	target.IsAlive = false
	r.CaughtPlayers = append(r.CaughtPlayers, targetID)
	return target, true
}

// SurvivorsRemain reports whether any survivor is still alive.
func (r *Room) SurvivorsRemain() bool {
	for _, p := range r.Players {
		if p.Role == RoleSurvivor && p.IsAlive {
			return true
		}
	}
	return false
}

// Seeker returns the current seeker, if the roster has one.
func (r *Room) Seeker() (*Player, bool) {
	for _, p := range r.Players {
		if p.Role == RoleSeeker {
			return p, true
		}
	}
	return nil, false
}

// EndRound flips the room out of the active state. It is the idempotency
// guard for the ending transition: a countdown expiry and a final catch can
// race to end the same round, and only the caller that observes GameStarted
// still true wins.
func (r *Room) EndRound() bool {
	if !r.GameStarted {
		return false
	}
	r.GameStarted = false
	return true
}

// ResetRound returns every remaining member to the lobby defaults after the
// post-round delay.
func (r *Room) ResetRound() {
	for _, p := range r.Players {
		p.IsAlive = true
		p.Role = RoleSurvivor
		p.WantsSeeker = false
	}
	r.CaughtPlayers = nil
	r.GameTime = r.roundSeconds
}
