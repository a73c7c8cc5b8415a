package devtools

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

// client is one WebSocket connection. Snapshots go out through send; text
// frames coming in are console lines.
type client struct {
	srv  *Server
	conn *websocket.Conn
	send chan []byte
}

// wsMessage is what a client writes: {"command": "..."}.
type wsMessage struct {
	Command string `json:"command"`
}

// wsReply answers a command.
type wsReply struct {
	Type    string `json:"type"`
	Command string `json:"command"`
	Result
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.WithError(err).Warn("websocket upgrade")
		return
	}
	c := &client{srv: s, conn: conn, send: make(chan []byte, 16)}
	s.register(c)
	s.log.WithField("remote", r.RemoteAddr).Info("websocket client connected")

	go c.writePump()
	go c.readPump()
}

// register adds c to the broadcast set and queues the current state, so
// clients need not wait for a broadcast. A full send buffer drops it.
func (s *Server) register(c *client) {
	s.mu.Lock()
	s.clients[c] = struct{}{}
	s.mu.Unlock()
	if b, err := s.encodedSnapshot(); err == nil {
		c.trySend(b)
	}
}

func (s *Server) unregister(c *client) {
	s.mu.Lock()
	if _, ok := s.clients[c]; ok {
		delete(s.clients, c)
		close(c.send)
	}
	s.mu.Unlock()
}

func (c *client) readPump() {
	defer func() {
		c.srv.unregister(c)
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.srv.log.WithError(err).Warn("websocket read")
			}
			return
		}
		var msg wsMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			msg.Command = string(data)
		}
		line := strings.TrimSpace(msg.Command)
		if line == "" {
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), replyTimeout)
		res, err := c.srv.Run(ctx, line)
		cancel()
		if err != nil {
			res = Result{Handled: false, Error: err.Error()}
		}
		b, err := json.Marshal(wsReply{Type: "result", Command: line, Result: res})
		if err != nil {
			continue
		}
		if !c.trySend(b) {
			return
		}
	}
}

// trySend queues b unless the client has been dropped.
func (c *client) trySend(b []byte) (ok bool) {
	c.srv.mu.RLock()
	defer c.srv.mu.RUnlock()
	if _, live := c.srv.clients[c]; !live {
		return false
	}
	select {
	case c.send <- b:
	default:
	}
	return true
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
