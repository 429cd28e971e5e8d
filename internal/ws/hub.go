// Package ws is the ephemeral realtime layer: an in-memory registry of
// connected users used to fan out direct and group messages. Nothing here is
// persisted; messages to absent recipients are dropped silently.
package ws

import "sync"

// Hub maps connected user IDs to their active connection and tracks group
// channel membership. It is process-local state with the lifetime of the
// server.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
	groups  map[string]map[*Client]struct{}
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*Client),
		groups:  make(map[string]map[*Client]struct{}),
	}
}

// Register stores the client as the active connection for its user. A second
// connection for the same user silently replaces the first; the old
// connection stops receiving direct messages.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c.UserID] = c
}

// Unregister removes the client from the registry and from all groups. The
// registry entry is only removed if it still belongs to this client, so the
// disconnect of a superseded connection cannot evict its replacement.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[c.UserID] == c {
		delete(h.clients, c.UserID)
	}
	for groupID, members := range h.groups {
		delete(members, c)
		if len(members) == 0 {
			delete(h.groups, groupID)
		}
	}
}

// JoinGroup adds the client to a group channel, creating the channel on
// first join.
func (h *Hub) JoinGroup(c *Client, groupID string) {
	if groupID == "" {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	members, ok := h.groups[groupID]
	if !ok {
		members = make(map[*Client]struct{})
		h.groups[groupID] = members
	}
	members[c] = struct{}{}
}

// SendDirect delivers the payload to the recipient if currently connected
// and reports whether it was handed off. There is no queueing and no
// acknowledgment.
func (h *Hub) SendDirect(recipientID string, payload []byte) bool {
	h.mu.RLock()
	recipient, ok := h.clients[recipientID]
	h.mu.RUnlock()
	if !ok {
		return false
	}
	return recipient.enqueue(payload)
}

// BroadcastGroup delivers the payload to every member of the group except
// the sender's own connection.
func (h *Hub) BroadcastGroup(groupID string, sender *Client, payload []byte) {
	h.mu.RLock()
	members := make([]*Client, 0, len(h.groups[groupID]))
	for member := range h.groups[groupID] {
		if member != sender {
			members = append(members, member)
		}
	}
	h.mu.RUnlock()

	for _, member := range members {
		member.enqueue(payload)
	}
}

// Connected reports whether a user currently has an active connection.
func (h *Hub) Connected(userID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.clients[userID]
	return ok
}
