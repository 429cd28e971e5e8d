package ws

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBufferSize = 64
)

// Client represents one connected user.
type Client struct {
	UserID string

	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

func newClient(hub *Hub, conn *websocket.Conn, userID string) *Client {
	return &Client{
		UserID: userID,
		hub:    hub,
		conn:   conn,
		send:   make(chan []byte, sendBufferSize),
	}
}

// enqueue places the payload on the send queue without blocking. A slow
// consumer whose buffer is full loses the message, consistent with the
// fire-and-forget delivery model.
func (c *Client) enqueue(payload []byte) bool {
	select {
	case c.send <- payload:
		return true
	default:
		return false
	}
}

// readPump reads incoming events and dispatches them through the hub. It
// unregisters the client when the connection drops.
func (c *Client) readPump() {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var ev Event
		if err := json.Unmarshal(raw, &ev); err != nil {
			continue
		}
		c.dispatch(ev)
	}
}

func (c *Client) dispatch(ev Event) {
	switch ev.Event {
	case EventDirectMessage:
		var dm DirectMessage
		if err := json.Unmarshal(ev.Data, &dm); err != nil {
			return
		}
		payload, err := marshalEvent(EventNewMessage, NewMessage{
			SenderID: c.UserID,
			Message:  dm.Message,
		})
		if err != nil {
			return
		}
		// Dropped silently when the recipient is not connected.
		c.hub.SendDirect(dm.RecipientID, payload)

	case EventJoinGroup:
		var groupID string
		if err := json.Unmarshal(ev.Data, &groupID); err != nil {
			return
		}
		c.hub.JoinGroup(c, groupID)

	case EventGroupMessage:
		var gm GroupMessage
		if err := json.Unmarshal(ev.Data, &gm); err != nil {
			return
		}
		payload, err := marshalEvent(EventNewGroupMessage, NewGroupMessage{
			SenderID: c.UserID,
			Message:  gm.Message,
			GroupID:  gm.GroupID,
		})
		if err != nil {
			return
		}
		c.hub.BroadcastGroup(gm.GroupID, c, payload)
	}
}

// writePump drains the send queue to the connection and keeps it alive with
// pings. It exits when a write fails.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
