// Package spectate streams a running match to web browsers over a
// websocket. Spectators are read-only.
package spectate

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/net/websocket"

	"github.com/tomz197/pong/internal/config"
	"github.com/tomz197/pong/internal/loop"
)

//go:embed index.html
var htmlPage []byte

// updateBuffer bounds the frames queued for the broadcaster. When it is full
// new frames are dropped; the next one supersedes them anyway.
const updateBuffer = 64

// Hub is a loop.Listener that fans match frames out to websocket clients.
// Notify runs on the loop goroutine and never blocks; Run does the I/O.
type Hub struct {
	logger  *log.Logger
	updates chan Frame

	mu      sync.Mutex
	latest  Frame
	clients map[*websocket.Conn]struct{}
}

// NewHub creates a hub for a match built from cfg.
func NewHub(cfg config.Config, logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Hub{
		logger:  logger,
		updates: make(chan Frame, updateBuffer),
		latest:  newFrame(cfg),
		clients: make(map[*websocket.Conn]struct{}),
	}
}

// Notify implements loop.Listener.
func (h *Hub) Notify(e loop.Event) {
	h.mu.Lock()
	h.latest.apply(e)
	f := h.latest
	h.mu.Unlock()

	select {
	case h.updates <- f:
	default:
	}
}

// Latest returns the most recent frame.
func (h *Hub) Latest() Frame {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.latest
}

// Clients returns the number of connected spectators.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Run broadcasts queued frames until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case f := <-h.updates:
			h.broadcast(f)
		}
	}
}

func (h *Hub) broadcast(f Frame) {
	h.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.clients))
	for c := range h.clients {
		conns = append(conns, c)
	}
	h.mu.Unlock()

	for _, c := range conns {
		if err := websocket.JSON.Send(c, f); err != nil {
			h.logger.Debug("spectator send failed", "remote", c.Request().RemoteAddr, "err", err)
			h.remove(c)
		}
	}
}

func (h *Hub) add(c *websocket.Conn) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) remove(c *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
}

// serveWS registers a spectator, sends it the current frame and holds the
// connection until the client goes away.
func (h *Hub) serveWS(c *websocket.Conn) {
	remote := c.Request().RemoteAddr
	h.add(c)
	defer h.remove(c)
	h.logger.Info("spectator joined", "remote", remote)

	if err := websocket.JSON.Send(c, h.Latest()); err != nil {
		h.logger.Debug("spectator hello failed", "remote", remote, "err", err)
		return
	}

	// Spectators never send anything meaningful; reading only detects close.
	_, _ = io.Copy(io.Discard, c)
	h.logger.Info("spectator left", "remote", remote)
}

// Handler serves the viewer page on / and the frame stream on /ws.
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(htmlPage)
	})
	mux.Handle("/ws", websocket.Handler(h.serveWS))
	return mux
}

// Serve listens on addr and serves Handler until ctx is done.
func (h *Hub) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		h.logger.Info("spectator server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("spectator server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("spectator shutdown: %w", err)
		}
		return nil
	}
}

var _ loop.Listener = (*Hub)(nil)
