package loop

import (
	"fmt"

	"github.com/tomz197/asteroidrain/internal/draw"
	"github.com/tomz197/asteroidrain/internal/loop/config"
	"github.com/tomz197/asteroidrain/internal/object"
	"github.com/tomz197/asteroidrain/internal/physics"
)

// HUD layout in playfield pixels.
const (
	hudMargin      = 10
	hudSecondLine  = 50
	hudRightColumn = 600
	meterWidth     = 200
	meterHeight    = 20
	shieldPadding  = 10
)

// Frame builds the draw list for the current phase.
func (s *Session) Frame() draw.Frame {
	screen := s.tuning.Screen
	f := draw.NewFrame(screen.Width, screen.Height)

	switch s.phase {
	case GameStatePlaying:
		s.drawWorld(&f)
		s.drawHUD(&f)
	case GameStateOver:
		s.drawWorld(&f)
		s.drawHUD(&f)
		f.Add(draw.CenteredText(screen.Width/2, screen.Height/2,
			fmt.Sprintf("Game Over - Score: %d", s.state.Score), draw.ColorText))
	case GameStateStart:
		s.drawStartScreen(&f)
	}
	return f
}

// drawWorld adds every entity, back to front.
func (s *Session) drawWorld(f *draw.Frame) {
	st := &s.state

	for _, p := range st.PowerUps {
		f.Add(draw.SpriteAt(powerUpSprite(p.Kind), p.X, p.Y, p.Size, p.Size))
	}
	for _, a := range st.Asteroids {
		f.Add(draw.SpriteAt(draw.SpriteAsteroid, a.X, a.Y, a.Size, a.Size))
	}
	for _, b := range st.Bullets {
		f.Add(draw.FillRect(b.X, b.Y, b.W, b.H, draw.ColorBullet))
	}
	for _, p := range st.Projectiles {
		f.Add(draw.FillRect(p.X, p.Y, p.W, p.H, draw.ColorProjectile))
	}

	ship := st.Ship
	f.Add(draw.SpriteAt(draw.SpriteShip, ship.X, ship.Y, ship.Width, ship.Height))
	for i, e := range st.Weapon.Escorts(ship) {
		cmd := draw.SpriteAt(draw.SpriteEscort, e.X, e.Y, e.W, e.H)
		cmd.Level = i + 1
		f.Add(cmd)
	}
	if st.Shield.Active() {
		f.Add(draw.SpriteAt(draw.SpriteShield,
			ship.X-shieldPadding, ship.Y-shieldPadding,
			ship.Width+2*shieldPadding, ship.Height+2*shieldPadding))
	}
}

// drawHUD adds score, timers and the power meter.
func (s *Session) drawHUD(f *draw.Frame) {
	st := &s.state

	f.Add(draw.Text(hudMargin, hudMargin, fmt.Sprintf("Score: %d", st.Score), draw.ColorText))
	if st.Shield.Active() {
		f.Add(draw.Text(hudMargin, hudSecondLine,
			fmt.Sprintf("Shield Time: %ds", st.Shield.Remaining/config.TickRate), draw.ColorText))
	}
	if st.Weapon.Armed() {
		f.Add(draw.Text(hudRightColumn, hudMargin,
			fmt.Sprintf("Weapon Level: %d", st.Weapon.Level), draw.ColorText))
		f.Add(draw.Text(hudRightColumn, hudSecondLine,
			fmt.Sprintf("Weapon Timer: %ds", st.Weapon.Remaining/config.TickRate), draw.ColorText))
	}

	x := (s.tuning.Screen.Width - meterWidth) / 2
	fill := physics.Clamp(st.Power*meterWidth/config.InitialPower, 0, meterWidth)
	if fill > 0 {
		f.Add(draw.FillRect(x, hudMargin, fill, meterHeight, draw.ColorMeterFill))
	}
	f.Add(draw.StrokeRect(x, hudMargin, meterWidth, meterHeight, draw.ColorMeterFrame))
}

// drawStartScreen adds the title, prompt and leaderboard.
func (s *Session) drawStartScreen(f *draw.Frame) {
	cx := s.tuning.Screen.Width / 2
	cy := s.tuning.Screen.Height / 2

	f.Add(
		draw.CenteredText(cx, cy-120, "A S T E R O I D   R A I N", draw.ColorText),
		draw.CenteredText(cx, cy-60, "Press Enter to Start", draw.ColorText),
		draw.CenteredText(cx, cy-30, "Arrows or A/D to move, Space to fire, Q to quit", draw.ColorText),
	)

	if len(s.leaderboard) == 0 {
		return
	}
	f.Add(draw.CenteredText(cx, cy+20, "High Scores", draw.ColorText))
	for i, r := range s.leaderboard {
		name := r.Player
		if name == "" {
			name = "anonymous"
		}
		line := fmt.Sprintf("%d. %-16s %6d", i+1, truncate(name, 16), r.Score)
		f.Add(draw.CenteredText(cx, cy+50+i*30, line, draw.ColorText))
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func powerUpSprite(kind object.PowerUpKind) draw.Sprite {
	switch kind {
	case object.PowerUpPower:
		return draw.SpritePower
	case object.PowerUpWeapon:
		return draw.SpriteWeaponPickup
	}
	return draw.SpriteGem
}
