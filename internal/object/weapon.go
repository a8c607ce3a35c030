package object

// WeaponStats describes one armed weapon level.
type WeaponStats struct {
	Damage   int // Integrity removed per projectile hit
	Duration int // Ticks the level lasts after pickup
}

// weaponLevels is indexed by level. Index 0 is unarmed.
// Higher levels fire more projectiles, each doing less damage.
var weaponLevels = [...]WeaponStats{
	{Damage: 0, Duration: 0},
	{Damage: 3, Duration: 5 * 60},
	{Damage: 2, Duration: 5 * 60},
	{Damage: 1, Duration: 10 * 60},
}

// WeaponLevels is the number of armed levels.
const WeaponLevels = len(weaponLevels) - 1

// WeaponLevel returns the stats for level, or the unarmed stats when level
// is out of range.
func WeaponLevel(level int) WeaponStats {
	if level < 0 || level >= len(weaponLevels) {
		return weaponLevels[0]
	}
	return weaponLevels[level]
}

// EscortSize is the edge length of a weapon escort sprite.
const EscortSize = 50

// Weapon is the ship's upgradeable weapon.
type Weapon struct {
	Level     int // 0 = unarmed
	Remaining int // Ticks until the weapon drops back to unarmed
}

// Armed reports whether the fire key and escorts are live.
func (w Weapon) Armed() bool {
	return w.Level > 0
}

// Damage returns the integrity removed by one projectile at the current level.
func (w Weapon) Damage() int {
	return WeaponLevel(w.Level).Damage
}

// Upgrade applies a weapon pickup.
//
// Unarmed goes to level 1. Armed levels advance modulo WeaponLevels, so the
// pickup after level 2 wraps to 0 and disarms. The timer is reset to the
// duration of whatever level results.
func (w *Weapon) Upgrade() {
	if w.Level == 0 {
		w.Level = 1
	} else {
		w.Level = (w.Level + 1) % WeaponLevels
	}

	// Unreachable under the modulo above; guards against a reworked level table.
	if w.Level > WeaponLevels {
		w.Level = 1
	}
	w.Remaining = WeaponLevel(w.Level).Duration
}

// Tick counts the timer down and disarms when it reaches exactly zero.
func (w *Weapon) Tick() {
	if w.Remaining > 0 {
		w.Remaining--
	}
	if w.Remaining == 0 {
		w.Level = 0
	}
}

// Escorts returns the bounding boxes of the escort sprites flying beside
// the ship, one per weapon level.
func (w Weapon) Escorts(ship Ship) []Rect {
	if !w.Armed() {
		return nil
	}
	escorts := make([]Rect, 0, w.Level)
	offset := ship.Width
	for i := 0; i < w.Level; i++ {
		escorts = append(escorts, Rect{X: ship.X + offset, Y: ship.Y, W: EscortSize, H: EscortSize})
		offset += EscortSize
	}
	return escorts
}
