package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"

	"github.com/tomz197/pong/internal/config"
	"github.com/tomz197/pong/internal/draw"
	"github.com/tomz197/pong/internal/input"
	"github.com/tomz197/pong/internal/loop"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
	defaultIdleSeconds = 120
	shutdownGrace      = 5 * time.Second
)

// serverConfig holds the listener settings read from the environment.
type serverConfig struct {
	Addr        string
	HostKeyPath string
	Idle        time.Duration
}

func loadServerConfig() serverConfig {
	return serverConfig{
		Addr: net.JoinHostPort(
			config.GetEnv("SSH_HOST", defaultHost),
			config.GetEnv("SSH_PORT", defaultPort),
		),
		HostKeyPath: config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath),
		Idle:        time.Duration(config.GetEnvInt("PONG_IDLE_TIMEOUT", defaultIdleSeconds)) * time.Second,
	}
}

func main() {
	logger := config.NewLogger(os.Stderr, "ssh")

	if err := run(logger); err != nil {
		logger.Fatal("ssh server failed", "err", err)
	}
}

func run(logger *log.Logger) error {
	cfg, err := config.Resolve()
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	sc := loadServerConfig()
	logger.Info("ssh config", "addr", sc.Addr, "host_key", sc.HostKeyPath, "idle", sc.Idle)

	s, err := wish.NewServer(serverOptions(sc, cfg, logger)...)
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", sc.Addr)
		serveErr <- s.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, ssh.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	return s.Shutdown(shutdownCtx)
}

func serverOptions(sc serverConfig, cfg config.Config, logger *log.Logger) []ssh.Option {
	opts := []ssh.Option{
		wish.WithAddress(sc.Addr),
		wish.WithMiddleware(
			matchMiddleware(cfg, sc.Idle, logger),
			activeterm.Middleware(),
			logging.MiddlewareWithLogger(logger),
		),
		// Paddle input is latency sensitive.
		ssh.WrapConn(func(_ ssh.Context, conn net.Conn) net.Conn {
			if tc, ok := conn.(*net.TCPConn); ok {
				_ = tc.SetNoDelay(true)
			}
			return conn
		}),
	}
	if sc.HostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(sc.HostKeyPath))
	}
	return opts
}

// matchMiddleware gives every session its own two-player match on the PTY.
func matchMiddleware(cfg config.Config, idle time.Duration, logger *log.Logger) wish.Middleware {
	return func(next ssh.Handler) ssh.Handler {
		return func(sess ssh.Session) {
			defer next(sess)

			pty, winCh, ok := sess.Pty()
			if !ok {
				fmt.Fprintln(sess, "pong needs a terminal: connect with ssh -t")
				return
			}

			l := logger.With("user", sess.User(), "remote", sess.RemoteAddr().String())
			l.Info("session started", "term", pty.Term, "width", pty.Window.Width, "height", pty.Window.Height)

			size := newWindowSize(pty.Window.Width, pty.Window.Height)
			go size.follow(winCh)

			if err := playMatch(sess.Context(), sess, cfg, size.get, loop.Options{Logger: l, IdleTimeout: idle}); err != nil {
				l.Error("match failed", "err", err)
			}
			l.Info("session ended")
		}
	}
}

// playMatch runs one match over an interactive stream until quit, idle
// timeout or ctx cancellation.
func playMatch(ctx context.Context, rw io.ReadWriter, cfg config.Config, size draw.TermSizeFunc, opts loop.Options) error {
	surface := loop.NewTerminal(rw, cfg, size)
	surface.Open()
	defer surface.Close()

	return loop.Run(ctx, cfg, input.StartStream(bufio.NewReader(rw)), surface, opts)
}

// windowSize is the latest PTY size reported by the client.
type windowSize struct {
	mu   sync.RWMutex
	w, h int
}

func newWindowSize(w, h int) *windowSize {
	return &windowSize{w: w, h: h}
}

// follow applies window-change events until winCh closes.
func (s *windowSize) follow(winCh <-chan ssh.Window) {
	for win := range winCh {
		s.set(win.Width, win.Height)
	}
}

func (s *windowSize) set(w, h int) {
	s.mu.Lock()
	s.w, s.h = w, h
	s.mu.Unlock()
}

func (s *windowSize) get() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.w, s.h, nil
}

var _ draw.TermSizeFunc = (*windowSize)(nil).get
