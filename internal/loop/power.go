package loop

import (
	"github.com/tomz197/asteroidrain/internal/loop/config"
	"github.com/tomz197/asteroidrain/internal/object"
)

// applyPowerUp applies the effect of a collected power-up.
func (s *Session) applyPowerUp(kind object.PowerUpKind) {
	st := &s.state
	switch kind {
	case object.PowerUpGem:
		// Power is not capped; the meter just stays full.
		st.Score += config.ScoreGem
		st.Power += config.PowerIncrement
	case object.PowerUpPower:
		st.Shield.Activate(config.ShieldDuration)
	case object.PowerUpWeapon:
		st.Weapon.Upgrade()
	}
	s.logger.Debug("power-up collected", "kind", kind, "power", st.Power, "weapon_level", st.Weapon.Level)
}
