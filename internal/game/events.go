package game

import "github.com/Saschadav/neonhideseek/internal/protocol"

// sendTo delivers one event to a single connection, if it is still attached.
func (h *Hub) sendTo(connID, event string, payload any) {
	s, ok := h.senders[connID]
	if !ok {
		return
	}
	msg, err := protocol.Encode(event, payload)
	if err != nil {
		h.log.Error().Err(err).Str("event", event).Msg("encode event")
		return
	}
	s.Send(msg)
}

// broadcast delivers one event to every member of a room, skipping except
// when given (a sender's own position update is not echoed back). The payload
// is marshaled once; delivery is fire-and-forget.
func (h *Hub) broadcast(room *Room, event string, payload any, except string) {
	msg, err := protocol.Encode(event, payload)
	if err != nil {
		h.log.Error().Err(err).Str("event", event).Str("room", room.ID).Msg("encode broadcast")
		return
	}
	for id := range room.Players {
		if id == except {
			continue
		}
		if s, ok := h.senders[id]; ok {
			s.Send(msg)
		}
	}
}
