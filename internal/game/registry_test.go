package game

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry() *Registry {
	reg := NewRegistry()
	n := 0
	reg.newID = func() string {
		n++
		return fmt.Sprintf("room-%d", n)
	}
	return reg
}

func TestRegistryCreate(t *testing.T) {
	reg := newTestRegistry()
	host := NewPlayer("h1", "Host")

	room := reg.Create(host, "Lair", 4, "classic", 90)
	require.NotNil(t, room)
	assert.Equal(t, "room-1", room.ID)
	assert.Equal(t, "h1", room.HostID)
	assert.Equal(t, room.ID, host.RoomID)
	assert.Len(t, room.Players, 1)
	assert.Equal(t, 1, reg.Len())

	got, ok := reg.Get(room.ID)
	require.True(t, ok)
	assert.Same(t, room, got)
}

func TestRegistryGetAbsent(t *testing.T) {
	reg := newTestRegistry()
	_, ok := reg.Get("nope")
	assert.False(t, ok)
}

func TestRegistryJoin(t *testing.T) {
	reg := newTestRegistry()
	room := reg.Create(NewPlayer("h1", "Host"), "", 2, "", 90)

	joined, err := reg.Join(room.ID, NewPlayer("p2", "Two"))
	require.NoError(t, err)
	assert.Same(t, room, joined)
	assert.Len(t, room.Players, 2)

	_, err = reg.Join("nope", NewPlayer("p3", "Three"))
	assert.ErrorIs(t, err, ErrRoomNotFound)

	_, err = reg.Join(room.ID, NewPlayer("p3", "Three"))
	assert.ErrorIs(t, err, ErrRoomFull)
}

func TestRegistryJoinStartedRoom(t *testing.T) {
	reg := newTestRegistry()
	room := reg.Create(NewPlayer("h1", "Host"), "", 4, "", 90)
	_, err := reg.Join(room.ID, NewPlayer("p2", "Two"))
	require.NoError(t, err)
	require.NoError(t, room.StartRound("h1", testRng()))

	_, err = reg.Join(room.ID, NewPlayer("p3", "Three"))
	assert.ErrorIs(t, err, ErrRoundStarted)
}

func TestRegistryJoinable(t *testing.T) {
	reg := newTestRegistry()
	open := reg.Create(NewPlayer("h1", "One"), "", 4, "", 90)

	full := reg.Create(NewPlayer("h2", "Two"), "", 1, "", 90)
	_ = full

	started := reg.Create(NewPlayer("h3", "Three"), "", 4, "", 90)
	_, err := reg.Join(started.ID, NewPlayer("p4", "Four"))
	require.NoError(t, err)
	require.NoError(t, started.StartRound("h3", testRng()))

	joinable := reg.Joinable()
	require.Len(t, joinable, 1)
	assert.Equal(t, open.ID, joinable[0].RoomID)
}

func TestRegistryLeaveDeletesEmptyRoom(t *testing.T) {
	reg := newTestRegistry()
	host := NewPlayer("h1", "Host")
	room := reg.Create(host, "", 4, "", 90)

	p, deleted := reg.Leave(room.ID, "h1")
	require.NotNil(t, p)
	assert.True(t, deleted)
	assert.Equal(t, 0, reg.Len())

	_, ok := reg.Get(room.ID)
	assert.False(t, ok, "a deleted room's id resolves to absent")
}

func TestRegistryLeaveKeepsOccupiedRoom(t *testing.T) {
	reg := newTestRegistry()
	room := reg.Create(NewPlayer("h1", "Host"), "", 4, "", 90)
	_, err := reg.Join(room.ID, NewPlayer("p2", "Two"))
	require.NoError(t, err)

	p, deleted := reg.Leave(room.ID, "h1")
	require.NotNil(t, p)
	assert.False(t, deleted)
	assert.Equal(t, 1, reg.Len())
	assert.Equal(t, "p2", room.HostID)
}

func TestRegistryLeaveUnknown(t *testing.T) {
	reg := newTestRegistry()
	room := reg.Create(NewPlayer("h1", "Host"), "", 4, "", 90)

	p, deleted := reg.Leave("nope", "h1")
	assert.Nil(t, p)
	assert.False(t, deleted)

	p, deleted = reg.Leave(room.ID, "ghost")
	assert.Nil(t, p)
	assert.False(t, deleted)
}
