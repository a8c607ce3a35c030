// Package loop runs the game: the per-tick session and the terminal frame loop.
package loop

import (
	"context"
	"errors"
	"io"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/asteroidrain/internal/draw"
	"github.com/tomz197/asteroidrain/internal/input"
	"github.com/tomz197/asteroidrain/internal/loop/config"
	"github.com/tomz197/asteroidrain/internal/object"
	"github.com/tomz197/asteroidrain/internal/persist"
)

// historyTimeout bounds each history query so a slow disk cannot stall a tick.
const historyTimeout = 2 * time.Second

// Store saves and loads the persistence snapshot. *persist.File implements it.
type Store interface {
	Save(s persist.Snapshot) error
	Load() (persist.Snapshot, error)
}

// History records finished runs and serves the leaderboard.
// *persist.History implements it.
type History interface {
	Record(ctx context.Context, r persist.Run) error
	Top(ctx context.Context, limit int) ([]persist.Run, error)
}

// Session is one player's game. It is not safe for concurrent use; each
// connection or window drives its own session from a single goroutine.
type Session struct {
	tuning  config.Tuning
	rng     object.Rand
	spawner *object.Spawner
	store   Store
	history History
	logger  *log.Logger
	player  string

	state       State
	phase       GameState
	escaped     int // Asteroids that left the screen or hit the shield, across runs
	pauseLeft   int // Ticks left in the game-over pause
	leaderboard []persist.Run
}

// Option configures a Session.
type Option func(*Session)

// WithTuning replaces the default game parameters.
func WithTuning(t config.Tuning) Option {
	return func(s *Session) { s.tuning = t }
}

// WithRand sets the spawner's random source.
func WithRand(rng object.Rand) Option {
	return func(s *Session) { s.rng = rng }
}

// WithStore sets where the game-over snapshot is saved and restored from.
func WithStore(store Store) Option {
	return func(s *Session) { s.store = store }
}

// WithHistory enables the run history and leaderboard.
func WithHistory(h History) Option {
	return func(s *Session) { s.history = h }
}

// WithLogger sets the session logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithPlayer sets the name recorded in the run history.
func WithPlayer(name string) Option {
	return func(s *Session) { s.player = name }
}

// NewSession creates a session on the start screen. Call Start to begin
// playing right away.
func NewSession(opts ...Option) *Session {
	s := &Session{
		tuning: config.DefaultTuning(),
		logger: log.New(io.Discard),
		phase:  GameStateStart,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	s.spawner = object.NewSpawner(s.rng, s.tuning.Spawner())
	if s.player != "" {
		s.logger = s.logger.With("player", s.player)
	}
	s.state.reset(s.tuning)
	s.state.Running = false
	s.refreshLeaderboard()
	return s
}

// Start begins a fresh run. Calling it again has the same result.
func (s *Session) Start() {
	s.state.reset(s.tuning)
	s.phase = GameStatePlaying
	s.pauseLeft = 0
	s.logger.Info("game started")
}

// Step advances the session by one tick and returns the frame to draw.
func (s *Session) Step(in input.Input) draw.Frame {
	switch s.phase {
	case GameStatePlaying:
		if in.Start {
			s.Start()
			break
		}
		s.tick(in)
		if s.state.GameOver {
			s.gameOver()
		}
	case GameStateOver:
		// Frozen: input is ignored until the pause ends.
		s.pauseLeft--
		if s.pauseLeft <= 0 {
			s.save()
			s.refreshLeaderboard()
			s.phase = GameStateStart
		}
	case GameStateStart:
		if in.Start {
			s.Start()
		}
	}
	return s.Frame()
}

// State returns the current run state. The slices alias session memory
// and are only valid until the next Step.
func (s *Session) State() State {
	return s.state
}

// Phase returns the current session phase.
func (s *Session) Phase() GameState {
	return s.phase
}

// Running reports whether a run is in progress.
func (s *Session) Running() bool {
	return s.state.Running
}

// Escaped returns the cumulative escaped asteroid count.
func (s *Session) Escaped() int {
	return s.escaped
}

// gameOver ends the run: it is recorded to the history and the pause begins.
func (s *Session) gameOver() {
	s.state.Running = false
	s.phase = GameStateOver
	s.pauseLeft = s.tuning.GameOverPauseTicks
	s.logger.Info("game over", "score", s.state.Score, "ticks", s.state.Ticks, "escaped", s.escaped)

	if s.history == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), historyTimeout)
	defer cancel()
	err := s.history.Record(ctx, persist.Run{
		Player:      s.player,
		Score:       s.state.Score,
		Escaped:     s.escaped,
		WeaponLevel: s.state.Weapon.Level,
		Ticks:       s.state.Ticks,
	})
	if err != nil {
		s.logger.Error("failed to record run", "err", err)
	}
}

// save hands the snapshot to the store. Failures are logged, never fatal.
func (s *Session) save() {
	if s.store == nil {
		return
	}
	if err := s.store.Save(s.Snapshot()); err != nil {
		s.logger.Error("failed to save game", "err", err)
		return
	}
	s.logger.Info("game saved", "score", s.state.Score)
}

func (s *Session) refreshLeaderboard() {
	if s.history == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), historyTimeout)
	defer cancel()
	top, err := s.history.Top(ctx, config.LeaderboardSize)
	if err != nil {
		s.logger.Warn("failed to load leaderboard", "err", err)
		s.leaderboard = nil
		return
	}
	s.leaderboard = top
}

// Snapshot returns the persistence snapshot of the current state.
func (s *Session) Snapshot() persist.Snapshot {
	snap := persist.Snapshot{
		Asteroids:   s.escaped,
		Score:       s.state.Score,
		WeaponLevel: s.state.Weapon.Level,
		PowerUps:    make([]persist.PowerUpRecord, 0, len(s.state.PowerUps)),
		Weapons:     make([]persist.ProjectileRecord, 0, len(s.state.Projectiles)),
	}
	for _, p := range s.state.PowerUps {
		snap.PowerUps = append(snap.PowerUps, persist.PowerUpRecord{X: p.X, Y: p.Y, W: p.Size, H: p.Size, Kind: p.Kind})
	}
	for _, p := range s.state.Projectiles {
		snap.Weapons = append(snap.Weapons, persist.ProjectileRecord{X: p.X, Y: p.Y, W: p.W, H: p.H})
	}
	return snap
}

// Restore starts a fresh run and applies the saved snapshot on top of it.
// A missing or malformed save is logged and the fresh run is kept. It
// reports whether a snapshot was applied.
func (s *Session) Restore() bool {
	s.Start()
	if s.store == nil {
		return false
	}

	snap, err := s.store.Load()
	switch {
	case errors.Is(err, persist.ErrNotFound):
		s.logger.Info("no saved game, starting fresh")
		return false
	case errors.Is(err, persist.ErrMalformed):
		s.logger.Warn("ignoring malformed save", "err", err)
		return false
	case err != nil:
		s.logger.Warn("failed to load save", "err", err)
		return false
	}

	s.state.Score = snap.Score
	s.state.Weapon = object.Weapon{
		Level:     snap.WeaponLevel,
		Remaining: object.WeaponLevel(snap.WeaponLevel).Duration,
	}
	for _, p := range snap.PowerUps {
		// Power-ups are square; the saved height is redundant.
		s.state.PowerUps = append(s.state.PowerUps, object.NewPowerUp(p.X, p.Y, p.W, p.Kind))
	}
	for _, p := range snap.Weapons {
		s.state.Projectiles = append(s.state.Projectiles, object.NewWeaponProjectile(p.X, p.Y, p.W, p.H))
	}
	s.escaped = snap.Asteroids
	s.logger.Info("game restored", "score", snap.Score, "weapon_level", snap.WeaponLevel)
	return true
}
