package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomz197/asteroidrain/internal/config"
	"github.com/tomz197/asteroidrain/internal/loop"
	"github.com/tomz197/asteroidrain/internal/persist"
	"golang.org/x/term"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	settings := config.Load()

	// The terminal belongs to the game, so logs only go to LOG_FILE.
	logOut, closeLog, err := config.OpenLogOutput(settings.LogFile, io.Discard)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer closeLog()
	logger := config.NewLogger(logOut, settings.LogLevel)

	codec, err := persist.CodecByName(settings.SaveFormat)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := []loop.Option{
		loop.WithStore(persist.NewFile(settings.SaveFile, codec)),
		loop.WithLogger(logger),
		loop.WithPlayer(settings.Player),
	}
	if settings.HistoryDB != "" {
		history, err := persist.OpenHistory(ctx, settings.HistoryDB)
		if err != nil {
			logger.Warn("run history disabled", "path", settings.HistoryDB, "err", err)
		} else {
			defer history.Close()
			opts = append(opts, loop.WithHistory(history))
		}
	}

	sess := loop.NewSession(opts...)
	if settings.Resume {
		sess.Restore()
	} else {
		sess.Start()
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	reader := bufio.NewReader(os.Stdin)
	err = loop.Run(ctx, reader, os.Stdout, sess, loop.Options{})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
