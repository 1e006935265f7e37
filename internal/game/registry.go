package game

import (
	"github.com/Saschadav/neonhideseek/internal/protocol"
	"github.com/Saschadav/neonhideseek/pkg/utils"
)

// Registry is the process-wide table of live rooms. It is owned by the hub's
// event loop and therefore unlocked; nothing else writes to it.
type Registry struct {
	rooms map[string]*Room

	// newID is swappable so tests can mint predictable room ids.
	newID func() string
}

// NewRegistry returns an empty registry using random short room ids.
func NewRegistry() *Registry {
	return &Registry{
		rooms: make(map[string]*Room),
		newID: utils.GenShortID,
	}
}

// Create allocates a room with the given player as host and sole member.
// Creation never fails: the id is fresh and the host always fits.
func (reg *Registry) Create(host *Player, name string, maxPlayers int, mapType string, roundSeconds int) *Room {
	id := reg.newID()
	for {
		if _, taken := reg.rooms[id]; !taken {
			break
		}
		id = reg.newID()
	}
	room := NewRoom(id, host.ID, name, maxPlayers, mapType, roundSeconds)
	room.Players[host.ID] = host
	room.order = append(room.order, host.ID)
	host.RoomID = id
	reg.rooms[id] = room
	return room
}

// Get looks up a room. An absent id is an expected outcome, not an error:
// countdown and reset wakes use it to notice their room was deleted.
func (reg *Registry) Get(id string) (*Room, bool) {
	room, ok := reg.rooms[id]
	return room, ok
}

// Join admits a player to the identified room, re-checking all failure
// conditions at admission time.
func (reg *Registry) Join(roomID string, p *Player) (*Room, error) {
	room, ok := reg.rooms[roomID]
	if !ok {
		return nil, ErrRoomNotFound
	}
	if err := room.AddPlayer(p); err != nil {
		return nil, err
	}
	return room, nil
}

// Leave removes a member from the identified room, deleting the room the
// moment it becomes empty. It reports the removed player and whether the
// room was deleted.
func (reg *Registry) Leave(roomID, connID string) (*Player, bool) {
	room, ok := reg.rooms[roomID]
	if !ok {
		return nil, false
	}
	p, ok := room.RemovePlayer(connID)
	if !ok {
		return nil, false
	}
	deleted := false
	if room.Empty() {
		delete(reg.rooms, roomID)
		deleted = true
	}
	return p, deleted
}

// Joinable lists rooms that still accept members.
func (reg *Registry) Joinable() []protocol.RoomSummary {
	out := make([]protocol.RoomSummary, 0, len(reg.rooms))
	for _, room := range reg.rooms {
		if room.Joinable() {
			out = append(out, room.Summary())
		}
	}
	return out
}

// Len reports the number of live rooms.
func (reg *Registry) Len() int {
	return len(reg.rooms)
}
