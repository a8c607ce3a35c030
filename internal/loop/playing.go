package loop

import (
	"github.com/tomz197/asteroidrain/internal/input"
	"github.com/tomz197/asteroidrain/internal/loop/config"
	"github.com/tomz197/asteroidrain/internal/object"
)

// tick runs one simulation step of the playing phase.
func (s *Session) tick(in input.Input) {
	st := &s.state
	st.Ticks++

	st.Ship.Steer(in, s.tuning.Screen)
	if in.Fire && st.Weapon.Armed() {
		s.fireBullet()
	}
	s.fireEscorts()

	s.spawn()
	s.moveObjects()
	s.checkCollisions()

	st.Weapon.Tick()
	st.Shield.Tick()
}

// fireBullet launches a bullet from the ship's nose.
func (s *Session) fireBullet() {
	x, y := s.state.Ship.Nose()
	b := object.NewBullet(x-config.BulletWidth/2, y, config.BulletWidth, config.BulletHeight)
	s.state.Bullets = append(s.state.Bullets, b)
}

// fireEscorts makes every escort fire one projectile on each volley tick.
func (s *Session) fireEscorts() {
	st := &s.state
	interval := s.tuning.EscortFireInterval
	if !st.Weapon.Armed() || interval <= 0 || st.Ticks%interval != 0 {
		return
	}
	for _, e := range st.Weapon.Escorts(st.Ship) {
		p := object.NewWeaponProjectile(
			e.CenterX()-config.ProjectileWidth/2,
			e.Y-config.ProjectileHeight,
			config.ProjectileWidth,
			config.ProjectileHeight,
		)
		st.Projectiles = append(st.Projectiles, p)
	}
}

// spawn runs the spawner's asteroid trial, then its power-up trial.
func (s *Session) spawn() {
	if a, ok := s.spawner.Asteroid(); ok {
		s.state.Asteroids = append(s.state.Asteroids, a)
	}
	if p, ok := s.spawner.PowerUp(); ok {
		s.state.PowerUps = append(s.state.PowerUps, p)
	}
}

// moveObjects advances every entity and sweeps the ones that left the screen.
// An asteroid falling off the bottom scores a point.
func (s *Session) moveObjects() {
	st := &s.state
	screen := s.tuning.Screen
	speed := s.tuning.AsteroidSpeed

	for i := range st.Asteroids {
		a := &st.Asteroids[i]
		a.Fall(speed)
		if a.Escaped(screen) {
			a.MarkDestroyed()
			st.Score += config.ScoreAsteroidEscape
			s.escaped++
		}
	}
	st.Asteroids = object.Sweep(st.Asteroids)

	for i := range st.Projectiles {
		p := &st.Projectiles[i]
		p.Rise(speed - 1)
		if p.OffScreen() {
			p.MarkDestroyed()
		}
	}
	st.Projectiles = object.Sweep(st.Projectiles)

	for i := range st.Bullets {
		b := &st.Bullets[i]
		b.Rise()
		if b.OffScreen() {
			b.MarkDestroyed()
		}
	}
	st.Bullets = object.Sweep(st.Bullets)

	for i := range st.PowerUps {
		p := &st.PowerUps[i]
		p.Fall(speed)
		if p.OffScreen(screen) {
			p.MarkDestroyed()
		}
	}
	st.PowerUps = object.Sweep(st.PowerUps)
}
