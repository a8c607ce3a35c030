package loop

import (
	"github.com/tomz197/asteroidrain/internal/loop/config"
	"github.com/tomz197/asteroidrain/internal/object"
)

// checkCollisions runs the collision phases in order. Later phases see the
// entities destroyed by earlier ones.
func (s *Session) checkCollisions() {
	s.checkBulletAsteroidCollisions()
	s.checkAsteroidCollisions()
	s.checkPowerUpCollisions()
}

// checkBulletAsteroidCollisions destroys each bullet together with the first
// live asteroid it overlaps.
func (s *Session) checkBulletAsteroidCollisions() {
	st := &s.state
	for i := range st.Bullets {
		b := &st.Bullets[i]
		for j := range st.Asteroids {
			a := &st.Asteroids[j]
			if a.IsDestroyed() || !b.Rect().Overlaps(a.Rect()) {
				continue
			}
			a.MarkDestroyed()
			b.MarkDestroyed()
			st.Score += config.ScoreAsteroidKill
			break
		}
	}
	st.Bullets = object.Sweep(st.Bullets)
	st.Asteroids = object.Sweep(st.Asteroids)
}

// checkAsteroidCollisions tests each asteroid against the ship, then against
// the weapon projectiles.
//
// The ship check stops for the rest of the tick once a hit ends the game.
// Projectile checks keep going for every asteroid, including the one that
// ended the game.
func (s *Session) checkAsteroidCollisions() {
	st := &s.state
	ship := st.Ship.Rect()
	shipChecks := true

	for i := range st.Asteroids {
		a := &st.Asteroids[i]

		if shipChecks && a.Rect().Overlaps(ship) {
			if st.Shield.Active() {
				a.MarkDestroyed()
				st.Score += config.ScoreAsteroidKill
				s.escaped++
			} else {
				st.Power -= config.AsteroidDamage
				if st.Power <= 0 {
					st.GameOver = true
					shipChecks = false
				}
			}
		}

		for j := range st.Projectiles {
			if a.IsDestroyed() {
				break
			}
			p := &st.Projectiles[j]
			if p.IsDestroyed() || !p.Rect().Overlaps(a.Rect()) {
				continue
			}
			p.MarkDestroyed()
			if a.Damage(st.Weapon.Damage()) {
				st.Score += config.ScoreAsteroidKill
			}
		}
	}
	st.Asteroids = object.Sweep(st.Asteroids)
	st.Projectiles = object.Sweep(st.Projectiles)
}

// checkPowerUpCollisions collects every power-up touching the ship.
// Shared edges count as contact.
func (s *Session) checkPowerUpCollisions() {
	st := &s.state
	ship := st.Ship.Rect()
	for i := range st.PowerUps {
		p := &st.PowerUps[i]
		if !p.Rect().Touches(ship) {
			continue
		}
		p.MarkDestroyed()
		s.applyPowerUp(p.Kind)
	}
	st.PowerUps = object.Sweep(st.PowerUps)
}
