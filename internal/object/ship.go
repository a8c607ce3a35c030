package object

import (
	"github.com/tomz197/asteroidrain/internal/input"
	"github.com/tomz197/asteroidrain/internal/physics"
)

// Ship is the player-controlled spaceship. It only moves horizontally.
type Ship struct {
	X, Y          int
	Width, Height int
	Speed         int // Pixels per tick while a direction key is held
}

// NewShip creates a ship centred horizontally, margin pixels above the bottom edge.
func NewShip(screen Screen, width, height, speed, margin int) Ship {
	return Ship{
		X:      screen.Width/2 - width/2,
		Y:      screen.Height - height - margin,
		Width:  width,
		Height: height,
		Speed:  speed,
	}
}

// Steer applies held movement keys and clamps the ship to the screen.
// The clamp runs every tick, with or without input.
func (s *Ship) Steer(in input.Input, screen Screen) {
	if in.Left {
		s.X -= s.Speed
	}
	if in.Right {
		s.X += s.Speed
	}
	s.X = physics.Clamp(s.X, 0, screen.Width-s.Width)
}

// Rect returns the ship's bounding box.
func (s Ship) Rect() Rect {
	return Rect{X: s.X, Y: s.Y, W: s.Width, H: s.Height}
}

// Nose returns where bullets leave the ship.
func (s Ship) Nose() (x, y int) {
	return s.X + s.Width/2, s.Y
}
