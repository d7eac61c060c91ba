package runtime

import "chat-relay/domain"

// HistoryCap bounds the per-room backlog kept for join backfill.
const HistoryCap = 100

// HistoryStore owns the per-room ordered message backlog. Insertion
// order is arrival order, and the backlog is a sliding window: once the
// cap is reached the oldest message is dropped, new ones are never
// rejected. A room's backlog shares the room's lifecycle and is cleared
// the instant the room is deleted.
type HistoryStore struct {
	backlog map[string][]domain.Message
}

func NewHistoryStore() *HistoryStore {
	return &HistoryStore{backlog: make(map[string][]domain.Message)}
}

// Append adds message to the end of the room's backlog, trimming from
// the front to enforce the cap.
func (h *HistoryStore) Append(roomID string, message domain.Message) {
	backlog := append(h.backlog[roomID], message)
	if len(backlog) > HistoryCap {
		backlog = backlog[len(backlog)-HistoryCap:]
	}
	h.backlog[roomID] = backlog
}

// Snapshot returns a copy of the room's backlog in arrival order, empty
// if the room has none. Callers cannot mutate history through it.
func (h *HistoryStore) Snapshot(roomID string) []domain.Message {
	backlog := h.backlog[roomID]
	if len(backlog) == 0 {
		return nil
	}
	snapshot := make([]domain.Message, len(backlog))
	copy(snapshot, backlog)
	return snapshot
}

// Clear removes the room's entry entirely. Invoked exactly when the
// registry deletes the room.
func (h *HistoryStore) Clear(roomID string) {
	delete(h.backlog, roomID)
}
