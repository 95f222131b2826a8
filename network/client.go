package network

import (
	"encoding/json"
	"net/http"

	"ghost_maze_server/logic"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var Upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type Client struct {
	Hub       *Room
	Conn      *websocket.Conn
	Send      chan []byte
	SessionID string
}

func ServeWs(room *Room, w http.ResponseWriter, r *http.Request) {
	conn, err := Upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("websocket upgrade failed")
		return
	}

	client := &Client{
		Hub:       room,
		Conn:      conn,
		Send:      make(chan []byte, 256),
		SessionID: uuid.NewString(),
	}
	client.Hub.Register <- client

	go client.writePump()
	go client.readPump()
}

// moveMessage is the 2001 client envelope.
type moveMessage struct {
	Type    int `json:"type"`
	Payload struct {
		Dir struct {
			X float64 `json:"x"`
			Y float64 `json:"y"`
		} `json:"dir"`
	} `json:"payload"`
}

func (c *Client) readPump() {
	defer func() {
		c.Hub.Unregister <- c
		c.Conn.Close()
	}()
	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			break
		}

		var req moveMessage
		if err := json.Unmarshal(message, &req); err != nil {
			continue
		}
		if req.Type != MsgMoveInput {
			continue
		}

		dir := logic.Vec{DX: signOf(req.Payload.Dir.X), DY: signOf(req.Payload.Dir.Y)}
		c.Hub.GameLoop.InputChan <- logic.PlayerInput{
			SessionID: c.SessionID,
			Type:      logic.InputMove,
			Dir:       dir,
		}
	}
}

func signOf(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

func (c *Client) writePump() {
	defer c.Conn.Close()
	for message := range c.Send {
		if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
	c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
}

func (c *Client) SendJSON(v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	select {
	case c.Send <- b:
	default:
	}
}

func toJSON(v interface{}) []byte {
	b, _ := json.Marshal(v)
	return b
}
