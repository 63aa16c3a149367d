// Package websocket runs a request/response stream over one websocket connection:
// every inbound text frame is handed to a FrameHandler and its result is written
// back as one JSON frame, in order.
package websocket

import (
	"context"
	"encoding/json"
	"time"

	"support-chatbot-be/internal/pkg/logger"

	"github.com/gofiber/websocket/v2"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
	sendBuffer     = 16
)

// FrameHandler answers one inbound frame. The result is JSON encoded.
type FrameHandler func(ctx context.Context, frame []byte) interface{}

// Client is a middleman between the websocket connection and the handler.
type Client struct {
	Conn   *websocket.Conn
	Send   chan []byte
	closed chan struct{}
	handle FrameHandler
	logger logger.ILogger
}

// Serve blocks until the peer disconnects.
func Serve(conn *websocket.Conn, handle FrameHandler, log logger.ILogger) {
	client := &Client{
		Conn:   conn,
		Send:   make(chan []byte, sendBuffer),
		closed: make(chan struct{}),
		handle: handle,
		logger: log,
	}

	go client.writePump()
	client.readPump()
	<-client.closed
}

// readPump handles frames one at a time so replies keep the request order.
func (c *Client) readPump() {
	ctx, cancel := context.WithCancel(context.Background())
	defer func() {
		cancel()
		close(c.Send)
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		kind, frame, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn("HTTP", "Chat stream closed unexpectedly", map[string]interface{}{"error": err.Error()})
			}
			return
		}
		if kind != websocket.TextMessage {
			continue
		}

		// A slow completion must not trip the read deadline.
		c.Conn.SetReadDeadline(time.Time{})
		out, err := json.Marshal(c.handle(ctx, frame))
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		if err != nil {
			c.logger.Error("HTTP", "Failed to encode chat stream reply", map[string]interface{}{"error": err.Error()})
			continue
		}
		select {
		case c.Send <- out:
		case <-c.closed:
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
		close(c.closed)
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				c.logger.Warn("HTTP", "Chat stream write failed", map[string]interface{}{"error": err.Error()})
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
