// Package config centralizes all tunable game parameters.
package config

import (
	"time"

	"github.com/tomz197/asteroidrain/internal/object"
)

// Playfield resolution in logical pixels.
// Terminal rendering scales this to fit; the desktop window shows it 1:1.
const (
	ScreenWidth  = 800
	ScreenHeight = 600
)

// Max terminal render resolution. Larger terminals get a centred, bordered area.
const (
	MaxTermWidth  = 160
	MaxTermHeight = 60
)

// Tick rate
const (
	TickRate = 60
	TickTime = time.Second / TickRate
)

// Ship
const (
	ShipWidth        = 60
	ShipHeight       = 60
	ShipSpeed        = 5
	ShipBottomMargin = 10
)

// Movement
const (
	AsteroidSpeed = 2
	BulletSpeed   = object.BulletSpeed
)

// Projectiles
const (
	BulletWidth        = 5
	BulletHeight       = 10
	ProjectileWidth    = 6
	ProjectileHeight   = 12
	EscortFireInterval = 30 // Ticks between escort volleys
)

// Spawning
const (
	AsteroidSpawnDelay = 60
	PowerUpSpawnDelay  = 600
	AsteroidIntegrity  = 3
)

// Power
const (
	InitialPower   = 100
	PowerIncrement = 50 // Gem pickup
	AsteroidDamage = 50 // Unshielded ship hit
	ShieldDuration = 5 * TickRate
)

// Scoring
const (
	ScoreAsteroidKill   = 10
	ScoreAsteroidEscape = 1
	ScoreGem            = 10
)

// Session
const (
	GameOverPauseTicks = 2 * TickRate
	LeaderboardSize    = 5
)

// Inactivity (SSH sessions only)
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Tuning bundles the parameters a session runs with. Tests shrink or
// stretch individual values; everything else uses DefaultTuning.
type Tuning struct {
	Screen             object.Screen
	ShipWidth          int
	ShipHeight         int
	ShipSpeed          int
	ShipBottomMargin   int
	AsteroidSpeed      int
	AsteroidSpawnDelay int
	PowerUpSpawnDelay  int
	MaxAsteroidSize    int
	MaxPowerUpSize     int
	AsteroidIntegrity  int
	InitialPower       int
	EscortFireInterval int
	GameOverPauseTicks int
}

// DefaultTuning returns the standard game parameters.
func DefaultTuning() Tuning {
	screen := object.Screen{Width: ScreenWidth, Height: ScreenHeight}
	short := min(screen.Width, screen.Height)
	return Tuning{
		Screen:             screen,
		ShipWidth:          ShipWidth,
		ShipHeight:         ShipHeight,
		ShipSpeed:          ShipSpeed,
		ShipBottomMargin:   ShipBottomMargin,
		AsteroidSpeed:      AsteroidSpeed,
		AsteroidSpawnDelay: AsteroidSpawnDelay,
		PowerUpSpawnDelay:  PowerUpSpawnDelay,
		MaxAsteroidSize:    short / 3,
		MaxPowerUpSize:     short / 2,
		AsteroidIntegrity:  AsteroidIntegrity,
		InitialPower:       InitialPower,
		EscortFireInterval: EscortFireInterval,
		GameOverPauseTicks: GameOverPauseTicks,
	}
}

// Spawner returns the spawner configuration for this tuning.
func (t Tuning) Spawner() object.SpawnerConfig {
	return object.SpawnerConfig{
		Screen:             t.Screen,
		AsteroidSpawnDelay: t.AsteroidSpawnDelay,
		PowerUpSpawnDelay:  t.PowerUpSpawnDelay,
		MaxAsteroidSize:    t.MaxAsteroidSize,
		MaxPowerUpSize:     t.MaxPowerUpSize,
		AsteroidIntegrity:  t.AsteroidIntegrity,
	}
}
