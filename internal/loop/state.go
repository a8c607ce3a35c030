package loop

import (
	"github.com/tomz197/asteroidrain/internal/loop/config"
	"github.com/tomz197/asteroidrain/internal/object"
)

// GameState represents the current session phase.
type GameState int

const (
	GameStateStart   GameState = iota // Not running, start screen
	GameStatePlaying                  // Active gameplay
	GameStateOver                     // Game-over pause before returning to the start screen
)

func (g GameState) String() string {
	switch g {
	case GameStateStart:
		return "start"
	case GameStatePlaying:
		return "playing"
	case GameStateOver:
		return "over"
	}
	return "unknown"
}

// State holds everything one run simulates. The session owns it exclusively.
type State struct {
	Ship        object.Ship
	Asteroids   []object.Asteroid
	Bullets     []object.Bullet
	PowerUps    []object.PowerUp
	Projectiles []object.WeaponProjectile
	Weapon      object.Weapon
	Shield      object.Shield

	Power    int
	Score    int
	Running  bool
	GameOver bool
	Ticks    int // Ticks simulated since Start
}

// reset puts the state back to a fresh run. Collection backing arrays are reused.
func (s *State) reset(t config.Tuning) {
	s.Ship = object.NewShip(t.Screen, t.ShipWidth, t.ShipHeight, t.ShipSpeed, t.ShipBottomMargin)
	s.Asteroids = s.Asteroids[:0]
	s.Bullets = s.Bullets[:0]
	s.PowerUps = s.PowerUps[:0]
	s.Projectiles = s.Projectiles[:0]
	s.Weapon = object.Weapon{}
	s.Shield = object.Shield{}
	s.Power = t.InitialPower
	s.Score = 0
	s.Running = true
	s.GameOver = false
	s.Ticks = 0
}
