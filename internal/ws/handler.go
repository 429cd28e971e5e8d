package ws

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(*http.Request) bool {
		return true
	},
}

// Serve returns an echo handler that upgrades the request to a websocket and
// registers the connection under the userId query parameter.
func Serve(hub *Hub) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID := c.QueryParam("userId")
		if userID == "" {
			return echo.NewHTTPError(http.StatusBadRequest, "userId is required")
		}

		conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
		if err != nil {
			return err
		}

		client := newClient(hub, conn, userID)
		hub.Register(client)

		go client.writePump()
		go client.readPump()
		return nil
	}
}
