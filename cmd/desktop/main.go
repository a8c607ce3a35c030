package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/tomz197/asteroidrain/internal/config"
	"github.com/tomz197/asteroidrain/internal/draw"
	"github.com/tomz197/asteroidrain/internal/input"
	"github.com/tomz197/asteroidrain/internal/loop"
	lconfig "github.com/tomz197/asteroidrain/internal/loop/config"
	"github.com/tomz197/asteroidrain/internal/persist"
)

// game adapts a session to ebiten. Ebiten calls Update at the session tick rate.
type game struct {
	sess  *loop.Session
	frame draw.Frame
}

func (g *game) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	g.frame = g.sess.Step(readInput())
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	render(screen, g.frame)
}

func (g *game) Layout(_, _ int) (int, int) {
	return lconfig.ScreenWidth, lconfig.ScreenHeight
}

func readInput() input.Input {
	return input.Input{
		Left:  ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA),
		Right: ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD),
		Fire:  inpututil.IsKeyJustPressed(ebiten.KeySpace),
		Start: inpututil.IsKeyJustPressed(ebiten.KeyEnter),
	}
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

	opts := []loop.Option{
		loop.WithStore(persist.NewFile(settings.SaveFile, codec)),
		loop.WithLogger(logger),
		loop.WithPlayer(settings.Player),
	}
	if settings.HistoryDB != "" {
		history, err := persist.OpenHistory(context.Background(), settings.HistoryDB)
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
	g := &game{sess: sess, frame: sess.Frame()}

	ebiten.SetWindowSize(lconfig.ScreenWidth, lconfig.ScreenHeight)
	ebiten.SetWindowTitle("Asteroid Rain")
	ebiten.SetTPS(lconfig.TickRate)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Error("game error", "err", err)
		closeLog()
		os.Exit(1)
	}
}
