package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/tomz197/pong/internal/config"
	"github.com/tomz197/pong/internal/input"
	"github.com/tomz197/pong/internal/loop"
	"github.com/tomz197/pong/internal/sound"
	"github.com/tomz197/pong/internal/spectate"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Resolve()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	// The terminal is in raw mode while playing, so logs go to a file or nowhere.
	var logOut io.Writer = io.Discard
	if path := config.GetEnv("PONG_LOG_FILE", ""); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	logger := config.NewLogger(logOut, "game")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var listeners []loop.Listener

	if config.GetEnvBool("PONG_SOUND", false) {
		player, err := sound.Open(config.GetEnvFloat("PONG_SOUND_VOLUME", sound.DefaultVolume), logger)
		if err != nil {
			logger.Warn("sound disabled", "err", err)
		} else {
			defer player.Close()
			listeners = append(listeners, player)
		}
	}

	if addr := config.GetEnv("PONG_SPECTATE_ADDR", ""); addr != "" {
		hub := spectate.NewHub(cfg, logger)
		go hub.Run(ctx)
		go func() {
			if err := hub.Serve(ctx, addr); err != nil {
				logger.Error("spectator server stopped", "err", err)
			}
		}()
		listeners = append(listeners, hub)
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	surface := loop.NewTerminal(os.Stdout, cfg, nil)
	surface.Open()
	defer surface.Close()

	stream := input.StartStream(bufio.NewReader(os.Stdin))

	logger.Info("match starting", "width", cfg.Width, "height", cfg.Height, "max_score", cfg.MaxScore)
	return loop.Run(ctx, cfg, stream, surface, loop.Options{
		Logger:    logger,
		Listeners: listeners,
	})
}
