// Package protocol defines the websocket message envelope and the payloads
// exchanged between the hide-and-seek client and the session server.
package protocol

import "encoding/json"

// Message is the wire envelope. Every frame in either direction is one of
// these, with Data holding the event-specific payload.
type Message struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// Client → server event types.
const (
	EventSetNickname    = "set_nickname"
	EventGetRooms       = "get_rooms"
	EventCreateRoom     = "create_room"
	EventJoinRoom       = "join_room"
	EventLeaveRoom      = "leave_room"
	EventToggleRole     = "toggle_role"
	EventStartGame      = "start_game"
	EventPlayerPosition = "player_position"
	EventPlayerCaught   = "player_caught"
)

// Server → client event types.
const (
	EventNicknameSet  = "nickname_set"
	EventRoomsList    = "rooms_list"
	EventRoomJoined   = "room_joined"
	EventRoomLeft     = "room_left"
	EventRoomUpdate   = "room_update"
	EventPlayerJoined = "player_joined"
	EventPlayerLeft   = "player_left"
	EventGameStarted  = "game_started"
	EventPlayerMoved  = "player_moved"
	EventPlayerDied   = "player_died"
	EventGameTime     = "game_time"
	EventGameEnded    = "game_ended"
	EventError        = "error"
)

// User-facing rejection messages carried by EventError.
const (
	MsgRoomNotFound     = "room does not exist"
	MsgRoundStarted     = "round already started"
	MsgRoomFull         = "room is full"
	MsgNotHost          = "only host may start"
	MsgNotEnoughPlayers = "at least 2 players required"
)

// Winner values for EventGameEnded.
const (
	WinnerSeeker    = "seeker"
	WinnerSurvivors = "survivors"
)

// Vec3 is an opaque 3-component vector relayed between clients. The server
// never interprets it.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

type SetNickname struct {
	Nickname string `json:"nickname"`
}

type NicknameSet struct {
	Nickname string `json:"nickname"`
}

// RoomSummary describes a room in rooms_list and room_joined payloads.
type RoomSummary struct {
	RoomID         string `json:"room_id"`
	Name           string `json:"name"`
	HostID         string `json:"host_id"`
	MaxPlayers     int    `json:"max_players"`
	CurrentPlayers int    `json:"current_players"`
	MapType        string `json:"map_type"`
	GameStarted    bool   `json:"game_started"`
}

type RoomsList struct {
	Rooms []RoomSummary `json:"rooms"`
}

type CreateRoom struct {
	Name       string `json:"name"`
	MaxPlayers int    `json:"max_players"`
	MapType    string `json:"map_type"`
}

type JoinRoom struct {
	RoomID string `json:"room_id"`
}

// PlayerInfo is one roster entry in room_update, room_joined and game_started.
type PlayerInfo struct {
	ID          string `json:"id"`
	Nickname    string `json:"nickname"`
	Role        string `json:"role"`
	WantsSeeker bool   `json:"wants_seeker"`
	IsAlive     bool   `json:"is_alive"`
	IsReady     bool   `json:"is_ready"`
}

type RoomJoined struct {
	Room    RoomSummary  `json:"room"`
	Players []PlayerInfo `json:"players"`
}

type RoomLeft struct{}

type RoomUpdate struct {
	Players []PlayerInfo `json:"players"`
}

type PlayerJoined struct {
	ID       string `json:"id"`
	Nickname string `json:"nickname"`
}

type PlayerLeft struct {
	ID       string `json:"id"`
	Nickname string `json:"nickname"`
}

type GameStarted struct {
	Players  []PlayerInfo `json:"players"`
	GameTime int          `json:"game_time"`
}

type PlayerPosition struct {
	Position Vec3 `json:"position"`
	Rotation Vec3 `json:"rotation"`
}

type PlayerMoved struct {
	ID       string `json:"id"`
	Position Vec3   `json:"position"`
	Rotation Vec3   `json:"rotation"`
}

type PlayerCaught struct {
	CaughtID string `json:"caught_connection_id"`
}

type PlayerDied struct {
	ID       string `json:"id"`
	Nickname string `json:"nickname"`
}

type GameTime struct {
	Time int `json:"time"`
}

type GameEnded struct {
	Winner        string   `json:"winner"`
	CaughtPlayers []string `json:"caught_players"`
}

type ErrorMessage struct {
	Message string `json:"message"`
}

// Encode marshals an event payload into a wire-ready envelope.
func Encode(event string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Message{Type: event, Data: data})
}
