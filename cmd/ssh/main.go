package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/tomz197/asteroidrain/internal/config"
	"github.com/tomz197/asteroidrain/internal/draw"
	"github.com/tomz197/asteroidrain/internal/loop"
	lconfig "github.com/tomz197/asteroidrain/internal/loop/config"
	"github.com/tomz197/asteroidrain/internal/persist"
)

// game holds what every SSH session shares.
type game struct {
	settings config.Settings
	codec    persist.Codec
	history  *persist.History // nil when disabled
	logger   *log.Logger
}

func main() {
	settings := config.Load()
	logOut, closeLog, err := config.OpenLogOutput(settings.LogFile, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()
	logger := config.NewLogger(logOut, settings.LogLevel)

	codec, err := persist.CodecByName(settings.SaveFormat)
	if err != nil {
		logger.Fatal("invalid save format", "err", err)
	}
	if err := os.MkdirAll(settings.SaveDir, 0o755); err != nil {
		logger.Fatal("failed to create save directory", "dir", settings.SaveDir, "err", err)
	}

	g := &game{settings: settings, codec: codec, logger: logger}
	if settings.HistoryDB != "" {
		history, err := persist.OpenHistory(context.Background(), settings.HistoryDB)
		if err != nil {
			logger.Warn("run history disabled", "path", settings.HistoryDB, "err", err)
		} else {
			defer history.Close()
			g.history = history
		}
	}

	workingDir, workErr := os.Getwd()
	if workErr != nil {
		logger.Warn("failed to get working directory", "err", workErr)
	}
	logger.Info("SSH config", "host", settings.SSHHost, "port", settings.SSHPort,
		"hostKeyPath", settings.SSHHostKey, "workingDir", workingDir, "saveDir", settings.SaveDir)

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(settings.SSHHost, settings.SSHPort)),
		wish.WithMiddleware(
			g.middleware,
			activeterm.Middleware(),
			logging.Middleware(),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}

	if settings.SSHHostKey != "" {
		opts = append(opts, wish.WithHostKeyPath(settings.SSHHostKey))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("Starting SSH server", "addr", net.JoinHostPort(settings.SSHHost, settings.SSHPort))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "err", err)
	}
}

// middleware runs one independent game session per SSH connection.
func (g *game) middleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		user := sess.User()
		logger := g.logger.With("user", user)
		logger.Info("New game session", "terminal", pty.Term, "width", pty.Window.Width, "height", pty.Window.Height)

		// Create a terminal size tracker that updates on window changes
		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)

		// Listen for window size changes in a goroutine
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		savePath := g.settings.UserSaveFile(user)
		opts := []loop.Option{
			loop.WithStore(persist.NewFile(savePath, g.codec)),
			loop.WithLogger(logger),
			loop.WithPlayer(user),
		}
		if g.history != nil {
			opts = append(opts, loop.WithHistory(g.history))
		}
		gameSession := loop.NewSession(opts...)
		if g.settings.Resume {
			gameSession.Restore()
		} else {
			gameSession.Start()
		}

		reader := bufio.NewReader(sess)
		runOpts := loop.Options{
			TermSizeFunc: sizeTracker.getSize,
			IdleWarn:     lconfig.InactivityWarnUser * time.Second,
			IdleTimeout:  lconfig.InactivityDisconnectUser * time.Second,
		}
		err := loop.Run(sess.Context(), reader, sess, gameSession, runOpts)
		switch {
		case errors.Is(err, loop.ErrIdle):
			logger.Info("Disconnected idle player", "save", filepath.Base(savePath))
		case err != nil && !errors.Is(err, context.Canceled):
			logger.Error("Game error", "err", err)
		}

		logger.Info("Session ended")
		next(sess)
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
