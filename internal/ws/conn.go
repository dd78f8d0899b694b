package ws

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Muskan2320/Realtime-AI-backend/internal/config"
)

// Conn wraps a websocket connection with locked writes, read deadlines and
// ping keepalive. It implements relay.Transport.
type Conn struct {
	ws  *websocket.Conn
	cfg *config.Config

	mu       sync.Mutex
	stop     chan struct{}
	stopOnce sync.Once
}

func newConn(wsc *websocket.Conn, cfg *config.Config) *Conn {
	c := &Conn{
		ws:   wsc,
		cfg:  cfg,
		stop: make(chan struct{}),
	}

	wsc.SetReadLimit(cfg.MaxMessageSize)
	wsc.SetReadDeadline(time.Now().Add(cfg.ReadTimeout))
	wsc.SetPongHandler(func(string) error {
		return wsc.SetReadDeadline(time.Now().Add(cfg.ReadTimeout))
	})

	go c.pingLoop()
	return c
}

// pingLoop keeps the connection alive; pongs are processed by the relay's
// blocking reads and extend the read deadline.
func (c *Conn) pingLoop() {
	ticker := time.NewTicker(c.cfg.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.mu.Lock()
			c.ws.SetWriteDeadline(time.Now().Add(c.cfg.WriteTimeout))
			err := c.ws.WriteMessage(websocket.PingMessage, nil)
			c.mu.Unlock()
			if err != nil {
				return
			}
		case <-c.stop:
			return
		}
	}
}

// ReadText blocks until the next inbound text message.
func (c *Conn) ReadText() (string, error) {
	c.ws.SetReadDeadline(time.Now().Add(c.cfg.ReadTimeout))
	_, data, err := c.ws.ReadMessage()
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// WriteText sends one text message. Calls from the relay goroutine and the
// ping loop are serialized by the write lock.
func (c *Conn) WriteText(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ws.SetWriteDeadline(time.Now().Add(c.cfg.WriteTimeout))
	return c.ws.WriteMessage(websocket.TextMessage, []byte(text))
}

// Close closes the connection and stops the ping loop.
func (c *Conn) Close() error {
	c.stopOnce.Do(func() { close(c.stop) })
	return c.ws.Close()
}
