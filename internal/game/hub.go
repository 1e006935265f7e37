// Package game implements the session coordination core: the room registry,
// the round state machine, role assignment, and the hub event loop that keeps
// every connected client's view of room and round state consistent.
package game

import (
	"encoding/json"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Saschadav/neonhideseek/internal/protocol"
)

// Sender is the hub's view of one live connection. Send is fire-and-forget;
// the transport reports delivery failure by detaching the connection.
type Sender interface {
	ID() string
	Send(msg []byte)
}

// Config tunes the hub. The rand source is injectable so role assignment is
// reproducible in tests, and the intervals shrink for fast test rounds.
type Config struct {
	DefaultCapacity int
	RoundSeconds    int
	TickInterval    time.Duration
	ResetDelay      time.Duration
	Rand            *rand.Rand
}

func (c Config) withDefaults() Config {
	if c.DefaultCapacity <= 0 {
		c.DefaultCapacity = 4
	}
	if c.RoundSeconds <= 0 {
		c.RoundSeconds = 90
	}
	if c.TickInterval <= 0 {
		c.TickInterval = time.Second
	}
	if c.ResetDelay <= 0 {
		c.ResetDelay = 5 * time.Second
	}
	if c.Rand == nil {
		c.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return c
}

// Hub owns all mutable session state: the room registry, the directory of
// players by connection id, and the attached senders. Every mutation runs on
// the Run goroutine via the task queue, so client events never interleave
// mid-mutation and none of the state needs locking. Countdown and reset
// timers post tasks into the same queue and re-check room existence and the
// started flag on every wake.
type Hub struct {
	cfg Config
	log zerolog.Logger

	registry *Registry
	players  map[string]*Player
	senders  map[string]Sender

	tasks    chan func()
	done     chan struct{}
	stopOnce sync.Once
}

// NewHub builds a hub; call Run on its own goroutine before attaching
// connections.
func NewHub(cfg Config, log zerolog.Logger) *Hub {
	return &Hub{
		cfg:      cfg.withDefaults(),
		log:      log,
		registry: NewRegistry(),
		players:  make(map[string]*Player),
		senders:  make(map[string]Sender),
		tasks:    make(chan func(), 256),
		done:     make(chan struct{}),
	}
}

// Run consumes the task queue until Stop is called.
func (h *Hub) Run() {
	for {
		select {
		case <-h.done:
			return
		case task := <-h.tasks:
			task()
		}
	}
}

// Stop shuts the hub down. Pending tasks are dropped.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.done) })
}

func (h *Hub) post(task func()) {
	select {
	case h.tasks <- task:
	case <-h.done:
	}
}

// Attach registers a live connection for broadcast delivery.
func (h *Hub) Attach(s Sender) {
	h.post(func() {
		h.senders[s.ID()] = s
		h.log.Debug().Str("conn", s.ID()).Msg("connection attached")
	})
}

// Detach is the transport's disconnect notification. It removes the sender
// and releases the player, which leaves any room it occupied.
func (h *Hub) Detach(connID string) {
	h.post(func() {
		delete(h.senders, connID)
		h.release(connID)
	})
}

// Dispatch routes one inbound client frame to the event loop. Unparseable
// frames are dropped.
func (h *Hub) Dispatch(connID string, raw []byte) {
	var msg protocol.Message
	if err := json.Unmarshal(raw, &msg); err != nil {
		h.log.Debug().Str("conn", connID).Err(err).Msg("bad frame")
		return
	}
	h.post(func() { h.handle(connID, msg) })
}

func (h *Hub) handle(connID string, msg protocol.Message) {
	switch msg.Type {
	case protocol.EventSetNickname:
		h.handleSetNickname(connID, msg.Data)
	case protocol.EventGetRooms:
		h.handleGetRooms(connID)
	case protocol.EventCreateRoom:
		h.handleCreateRoom(connID, msg.Data)
	case protocol.EventJoinRoom:
		h.handleJoinRoom(connID, msg.Data)
	case protocol.EventLeaveRoom:
		h.handleLeaveRoom(connID)
	case protocol.EventToggleRole:
		h.handleToggleRole(connID)
	case protocol.EventStartGame:
		h.handleStartGame(connID)
	case protocol.EventPlayerPosition:
		h.handlePlayerPosition(connID, msg.Data)
	case protocol.EventPlayerCaught:
		h.handlePlayerCaught(connID, msg.Data)
	default:
		h.log.Debug().Str("conn", connID).Str("type", msg.Type).Msg("unknown event")
	}
}

func (h *Hub) handleSetNickname(connID string, data json.RawMessage) {
	var in protocol.SetNickname
	_ = json.Unmarshal(data, &in)

	if p, ok := h.players[connID]; ok {
		// Re-registration keeps the record (and its room membership) and
		// just renames the player.
		p.Nickname = NewPlayer(connID, in.Nickname).Nickname
		h.sendTo(connID, protocol.EventNicknameSet, protocol.NicknameSet{Nickname: p.Nickname})
		return
	}

	p := NewPlayer(connID, in.Nickname)
	h.players[connID] = p
	h.log.Info().Str("conn", connID).Str("nickname", p.Nickname).Msg("player registered")
	h.sendTo(connID, protocol.EventNicknameSet, protocol.NicknameSet{Nickname: p.Nickname})
}

func (h *Hub) handleGetRooms(connID string) {
	h.sendTo(connID, protocol.EventRoomsList, protocol.RoomsList{Rooms: h.registry.Joinable()})
}

func (h *Hub) handleCreateRoom(connID string, data json.RawMessage) {
	p, ok := h.players[connID]
	if !ok || p.RoomID != "" {
		return
	}
	var in protocol.CreateRoom
	_ = json.Unmarshal(data, &in)
	maxPlayers := in.MaxPlayers
	if maxPlayers <= 0 {
		maxPlayers = h.cfg.DefaultCapacity
	}

	room := h.registry.Create(p, in.Name, maxPlayers, in.MapType, h.cfg.RoundSeconds)
	h.log.Info().Str("room", room.ID).Str("host", connID).Str("map", room.MapType).Msg("room created")
	h.sendTo(connID, protocol.EventRoomJoined, protocol.RoomJoined{Room: room.Summary(), Players: room.Roster()})
}

func (h *Hub) handleJoinRoom(connID string, data json.RawMessage) {
	p, ok := h.players[connID]
	if !ok || p.RoomID != "" {
		return
	}
	var in protocol.JoinRoom
	_ = json.Unmarshal(data, &in)

	room, err := h.registry.Join(in.RoomID, p)
	if err != nil {
		h.sendTo(connID, protocol.EventError, protocol.ErrorMessage{Message: err.Error()})
		return
	}
	h.log.Info().Str("room", room.ID).Str("conn", connID).Msg("player joined")
	h.broadcast(room, protocol.EventPlayerJoined, protocol.PlayerJoined{ID: p.ID, Nickname: p.Nickname}, "")
	h.sendTo(connID, protocol.EventRoomJoined, protocol.RoomJoined{Room: room.Summary(), Players: room.Roster()})
	h.broadcast(room, protocol.EventRoomUpdate, protocol.RoomUpdate{Players: room.Roster()}, "")
}

func (h *Hub) handleLeaveRoom(connID string) {
	p, ok := h.players[connID]
	if !ok || p.RoomID == "" {
		return
	}
	h.sendTo(connID, protocol.EventRoomLeft, protocol.RoomLeft{})
	h.leaveRoom(p)
}

func (h *Hub) handleToggleRole(connID string) {
	p, room := h.member(connID)
	if p == nil {
		return
	}
	p.WantsSeeker = !p.WantsSeeker
	h.broadcast(room, protocol.EventRoomUpdate, protocol.RoomUpdate{Players: room.Roster()}, "")
}

func (h *Hub) handleStartGame(connID string) {
	p, room := h.member(connID)
	if p == nil {
		return
	}
	if room.GameStarted {
		// Stale client state, not an error.
		return
	}
	if err := room.StartRound(connID, h.cfg.Rand); err != nil {
		h.sendTo(connID, protocol.EventError, protocol.ErrorMessage{Message: err.Error()})
		return
	}
	seeker, _ := room.Seeker()
	h.log.Info().Str("room", room.ID).Str("seeker", seeker.ID).Int("time", room.GameTime).Msg("round started")
	h.broadcast(room, protocol.EventGameStarted, protocol.GameStarted{Players: room.Roster(), GameTime: room.GameTime}, "")
	go h.runCountdown(room.ID)
}

func (h *Hub) handlePlayerPosition(connID string, data json.RawMessage) {
	p, room := h.member(connID)
	if p == nil {
		return
	}
	// Missing fields keep the last known values.
	in := protocol.PlayerPosition{Position: p.Position, Rotation: p.Rotation}
	if err := json.Unmarshal(data, &in); err != nil {
		return
	}
	p.Position = in.Position
	p.Rotation = in.Rotation
	h.broadcast(room, protocol.EventPlayerMoved, protocol.PlayerMoved{ID: p.ID, Position: in.Position, Rotation: in.Rotation}, connID)
}

func (h *Hub) handlePlayerCaught(connID string, data json.RawMessage) {
	p, room := h.member(connID)
	if p == nil {
		return
	}
	var in protocol.PlayerCaught
	_ = json.Unmarshal(data, &in)

	target, ok := room.Catch(connID, in.CaughtID)
	if !ok {
		return
	}
	h.log.Info().Str("room", room.ID).Str("seeker", connID).Str("caught", target.ID).Msg("player caught")
	h.broadcast(room, protocol.EventPlayerDied, protocol.PlayerDied{ID: target.ID, Nickname: target.Nickname}, "")
	if !room.SurvivorsRemain() {
		h.endRound(room, protocol.WinnerSeeker)
	}
}

// member resolves a registered player and its room, or (nil, nil) when either
// half is missing. Callers treat that as a silent no-op.
func (h *Hub) member(connID string) (*Player, *Room) {
	p, ok := h.players[connID]
	if !ok || p.RoomID == "" {
		return nil, nil
	}
	room, ok := h.registry.Get(p.RoomID)
	if !ok {
		return nil, nil
	}
	return p, room
}

// leaveRoom removes the player from its room, notifies the remaining members,
// and settles an active round the departure decided: a leaving seeker hands
// the win to the survivors, and the last living survivor leaving hands it to
// the seeker.
func (h *Hub) leaveRoom(p *Player) {
	room, ok := h.registry.Get(p.RoomID)
	if !ok {
		p.RoomID = ""
		return
	}
	wasSeeker := p.Role == RoleSeeker

	_, deleted := h.registry.Leave(room.ID, p.ID)
	if deleted {
		h.log.Info().Str("room", room.ID).Msg("room deleted")
		return
	}

	h.broadcast(room, protocol.EventPlayerLeft, protocol.PlayerLeft{ID: p.ID, Nickname: p.Nickname}, "")
	h.broadcast(room, protocol.EventRoomUpdate, protocol.RoomUpdate{Players: room.Roster()}, "")

	if room.GameStarted {
		if wasSeeker {
			h.endRound(room, protocol.WinnerSurvivors)
		} else if !room.SurvivorsRemain() {
			h.endRound(room, protocol.WinnerSeeker)
		}
	}
}

// release handles a disconnect: the implicit leave_room plus directory
// removal.
func (h *Hub) release(connID string) {
	p, ok := h.players[connID]
	if !ok {
		return
	}
	if p.RoomID != "" {
		h.leaveRoom(p)
	}
	delete(h.players, connID)
	h.log.Info().Str("conn", connID).Str("nickname", p.Nickname).Msg("player released")
}

// runCountdown drives one round's clock. Each tick is applied on the event
// loop; the goroutine exits as soon as a wake observes the room gone or the
// round over, so a deleted room's countdown never mutates or broadcasts.
func (h *Hub) runCountdown(roomID string) {
	ticker := time.NewTicker(h.cfg.TickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-h.done:
			return
		case <-ticker.C:
		}

		alive := make(chan bool, 1)
		h.post(func() { alive <- h.tickRound(roomID) })
		select {
		case ok := <-alive:
			if !ok {
				return
			}
		case <-h.done:
			return
		}
	}
}

// tickRound runs on the event loop. It reports whether the countdown should
// keep going.
func (h *Hub) tickRound(roomID string) bool {
	room, ok := h.registry.Get(roomID)
	if !ok || !room.GameStarted {
		return false
	}
	remaining, ok := room.Tick()
	if !ok {
		return false
	}
	h.broadcast(room, protocol.EventGameTime, protocol.GameTime{Time: remaining}, "")
	if remaining <= 0 {
		h.endRound(room, protocol.WinnerSurvivors)
		return false
	}
	return true
}

// endRound performs the ending transition exactly once per round: the
// EndRound guard makes the countdown-expiry/final-catch race safe. The lobby
// reset is scheduled after the configured delay and skipped if the room is
// gone by then.
func (h *Hub) endRound(room *Room, winner string) {
	if !room.EndRound() {
		return
	}
	caught := make([]string, len(room.CaughtPlayers))
	copy(caught, room.CaughtPlayers)
	h.log.Info().Str("room", room.ID).Str("winner", winner).Int("caught", len(caught)).Msg("round ended")
	h.broadcast(room, protocol.EventGameEnded, protocol.GameEnded{Winner: winner, CaughtPlayers: caught}, "")

	roomID := room.ID
	time.AfterFunc(h.cfg.ResetDelay, func() {
		h.post(func() { h.resetRound(roomID) })
	})
}

// resetRound runs on the event loop after the post-round delay. A room that
// vanished, or already started a fresh round, is left alone.
func (h *Hub) resetRound(roomID string) {
	room, ok := h.registry.Get(roomID)
	if !ok || room.GameStarted {
		return
	}
	room.ResetRound()
	h.broadcast(room, protocol.EventRoomUpdate, protocol.RoomUpdate{Players: room.Roster()}, "")
}
