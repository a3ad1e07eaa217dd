package netsync

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait    = 10 * time.Second
	publishWait  = time.Second
	broadcastBuf = 64
)

// ErrQueueFull is returned when a frame cannot be queued in time.
var ErrQueueFull = errors.New("netsync: frame queue full")

// ErrClosed is returned when publishing to a closed broadcaster.
var ErrClosed = errors.New("netsync: broadcaster closed")

type client struct {
	conn *websocket.Conn
	id   string
}

// Broadcaster fans delta frames out to every connected websocket client.
type Broadcaster struct {
	mu       sync.RWMutex
	clients  map[*websocket.Conn]string
	upgrader websocket.Upgrader
	log      *slog.Logger

	broadcast  chan []byte
	register   chan client
	unregister chan *websocket.Conn
	done       chan struct{}
	closeOnce  sync.Once
	wg         sync.WaitGroup
}

// NewBroadcaster starts the fan-out goroutine. Close must be called to stop it.
func NewBroadcaster(log *slog.Logger) *Broadcaster {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	b := &Broadcaster{
		clients:    make(map[*websocket.Conn]string),
		log:        log,
		broadcast:  make(chan []byte, broadcastBuf),
		register:   make(chan client),
		unregister: make(chan *websocket.Conn),
		done:       make(chan struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
	}
	b.wg.Add(1)
	go b.run()
	return b
}

// Clients reports the number of connected clients.
func (b *Broadcaster) Clients() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.clients)
}

// Publish queues frame for delivery to every client.
func (b *Broadcaster) Publish(ctx context.Context, frame Frame) error {
	data, err := frame.JSON()
	if err != nil {
		return err
	}
	select {
	case <-b.done:
		return ErrClosed
	default:
	}
	timer := time.NewTimer(publishWait)
	defer timer.Stop()
	select {
	case b.broadcast <- data:
		return nil
	case <-b.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return ErrQueueFull
	}
}

// ServeHTTP upgrades the request and keeps the client registered until it
// disconnects.
func (b *Broadcaster) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := b.upgrader.Upgrade(w, r, nil)
	if err != nil {
		b.log.Warn("websocket upgrade failed", slog.String("remote", r.RemoteAddr), slog.Any("error", err))
		return
	}
	c := client{conn: conn, id: uuid.NewString()[:8]}
	select {
	case b.register <- c:
	case <-b.done:
		conn.Close()
		return
	}
	log := b.log.With(slog.String("client", c.id), slog.String("remote", r.RemoteAddr))
	log.Debug("sync client connected")

	// Clients only listen; reading detects the close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	select {
	case b.unregister <- conn:
	case <-b.done:
	}
	log.Debug("sync client disconnected")
}

func (b *Broadcaster) clientID(conn *websocket.Conn) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.clients[conn]
}

func (b *Broadcaster) run() {
	defer b.wg.Done()
	for {
		select {
		case <-b.done:
			return

		case c := <-b.register:
			b.mu.Lock()
			b.clients[c.conn] = c.id
			b.mu.Unlock()

		case conn := <-b.unregister:
			b.mu.Lock()
			if _, ok := b.clients[conn]; ok {
				delete(b.clients, conn)
				conn.Close()
			}
			b.mu.Unlock()

		case data := <-b.broadcast:
			b.mu.RLock()
			conns := make([]*websocket.Conn, 0, len(b.clients))
			for conn := range b.clients {
				conns = append(conns, conn)
			}
			b.mu.RUnlock()

			var failed []*websocket.Conn
			for _, conn := range conns {
				conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
					b.log.Debug("sync write failed", slog.String("client", b.clientID(conn)), slog.Any("error", err))
					failed = append(failed, conn)
				}
			}
			if len(failed) > 0 {
				b.mu.Lock()
				for _, conn := range failed {
					delete(b.clients, conn)
					conn.Close()
				}
				b.mu.Unlock()
			}
		}
	}
}

// Close disconnects every client and stops the fan-out goroutine.
func (b *Broadcaster) Close() error {
	b.closeOnce.Do(func() {
		close(b.done)
		b.wg.Wait()
		b.mu.Lock()
		for conn := range b.clients {
			conn.Close()
			delete(b.clients, conn)
		}
		b.mu.Unlock()
	})
	return nil
}
