package object

// Rand is the random source the spawner draws from.
// *math/rand/v2.Rand satisfies it.
type Rand interface {
	// IntN returns a uniform integer in [0, n).
	IntN(n int) int
}

// SpawnerConfig holds the spawner's tunables.
type SpawnerConfig struct {
	Screen             Screen
	AsteroidSpawnDelay int // Expected ticks between asteroids is delay+1
	PowerUpSpawnDelay  int
	MaxAsteroidSize    int
	MaxPowerUpSize     int
	AsteroidIntegrity  int
}

// Spawner generates asteroids and power-ups above the visible area.
// Every tick is an independent trial, not a fixed-period timer.
type Spawner struct {
	rng Rand
	cfg SpawnerConfig
}

// NewSpawner creates a spawner drawing from rng.
func NewSpawner(rng Rand, cfg SpawnerConfig) *Spawner {
	return &Spawner{rng: rng, cfg: cfg}
}

// Asteroid runs this tick's asteroid trial and returns the new asteroid on success.
func (s *Spawner) Asteroid() (Asteroid, bool) {
	if !s.trial(s.cfg.AsteroidSpawnDelay) {
		return Asteroid{}, false
	}
	size, x, y := s.placement(s.cfg.MaxAsteroidSize)
	return NewAsteroid(x, y, size, s.cfg.AsteroidIntegrity), true
}

// PowerUp runs this tick's power-up trial and returns the new power-up on success.
func (s *Spawner) PowerUp() (PowerUp, bool) {
	if !s.trial(s.cfg.PowerUpSpawnDelay) {
		return PowerUp{}, false
	}
	kind := PowerUpKinds[s.rng.IntN(len(PowerUpKinds))]
	size, x, y := s.placement(s.cfg.MaxPowerUpSize)
	return NewPowerUp(x, y, size, kind), true
}

// trial draws uniformly from [0, delay] and succeeds on 0.
func (s *Spawner) trial(delay int) bool {
	return s.between(0, delay) == 0
}

// placement draws a square size and a start position above the screen,
// so entities enter at varying depth.
func (s *Spawner) placement(maxSize int) (size, x, y int) {
	size = s.between(MinAsteroidSize, maxSize)
	x = s.between(0, s.cfg.Screen.Width-size)
	y = s.between(-s.cfg.Screen.Height, -size)
	return size, x, y
}

// between returns a uniform integer in the closed range [lo, hi].
func (s *Spawner) between(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + s.rng.IntN(hi-lo+1)
}
