// Package runtime owns the room, history, and session state and the
// router that mutates it. It contains no transport or UI logic.
package runtime

import "sort"

type Set map[string]struct{}

// RoomRegistry owns the mapping of room id to the set of usernames
// currently inside the room. A room has an entry here iff it has at
// least one member; absence means zero members and zero history.
//
// The registry is not safe for concurrent use on its own: the Router
// serializes every access.
type RoomRegistry struct {
	members map[string]Set
}

func NewRoomRegistry() *RoomRegistry {
	return &RoomRegistry{members: make(map[string]Set)}
}

// EnsureRoom creates an empty member set for roomID if absent.
func (r *RoomRegistry) EnsureRoom(roomID string) {
	if _, ok := r.members[roomID]; !ok {
		r.members[roomID] = make(Set)
	}
}

// AddMember inserts username into the room, creating the room on first
// join. Set semantics: re-adding an existing member is a no-op.
func (r *RoomRegistry) AddMember(roomID, username string) {
	r.EnsureRoom(roomID)
	r.members[roomID][username] = struct{}{}
}

// RemoveMember removes username if present; no-op otherwise.
func (r *RoomRegistry) RemoveMember(roomID, username string) {
	if members, ok := r.members[roomID]; ok {
		delete(members, username)
	}
}

func (r *RoomRegistry) MemberCount(roomID string) int {
	return len(r.members[roomID])
}

// Members returns a sorted snapshot of the room's usernames. The order
// carries no meaning, sorting only keeps the display stable.
func (r *RoomRegistry) Members(roomID string) []string {
	members := r.members[roomID]
	usernames := make([]string, 0, len(members))
	for username := range members {
		usernames = append(usernames, username)
	}
	sort.Strings(usernames)
	return usernames
}

// DeleteIfEmpty removes the room entry once its member set is empty.
// This is the sole destruction path for a room. It reports whether the
// entry was removed so the caller can cascade the history cleanup.
func (r *RoomRegistry) DeleteIfEmpty(roomID string) bool {
	members, ok := r.members[roomID]
	if !ok || len(members) != 0 {
		return false
	}
	delete(r.members, roomID)
	return true
}
