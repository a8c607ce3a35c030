package loop

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"reflect"
	"testing"

	"github.com/tomz197/asteroidrain/internal/draw"
	"github.com/tomz197/asteroidrain/internal/input"
	"github.com/tomz197/asteroidrain/internal/loop/config"
	"github.com/tomz197/asteroidrain/internal/object"
	"github.com/tomz197/asteroidrain/internal/persist"
)

// noSpawn always draws the top of the range, so no spawn trial succeeds.
type noSpawn struct{}

func (noSpawn) IntN(n int) int { return n - 1 }

type memStore struct {
	saved   []persist.Snapshot
	load    persist.Snapshot
	loadErr error
	saveErr error
}

func (m *memStore) Save(s persist.Snapshot) error {
	m.saved = append(m.saved, s)
	return m.saveErr
}

func (m *memStore) Load() (persist.Snapshot, error) {
	return m.load, m.loadErr
}

type memHistory struct {
	runs   []persist.Run
	topErr error
}

func (m *memHistory) Record(_ context.Context, r persist.Run) error {
	m.runs = append(m.runs, r)
	return nil
}

func (m *memHistory) Top(_ context.Context, limit int) ([]persist.Run, error) {
	if m.topErr != nil {
		return nil, m.topErr
	}
	return m.runs[:min(limit, len(m.runs))], nil
}

// newPlaying returns a started session whose spawner never fires.
func newPlaying(t *testing.T, opts ...Option) *Session {
	t.Helper()
	s := NewSession(append([]Option{WithRand(noSpawn{})}, opts...)...)
	s.Start()
	return s
}

func TestNewSessionStartsOnStartScreen(t *testing.T) {
	s := NewSession(WithRand(noSpawn{}))
	if s.Running() || s.Phase() != GameStateStart {
		t.Fatalf("new session should wait on the start screen, got phase %v running %v", s.Phase(), s.Running())
	}
	s.Step(input.Input{Fire: true})
	if s.Phase() != GameStateStart {
		t.Error("only the start key should leave the start screen")
	}
	s.Step(input.Input{Start: true})
	if !s.Running() || s.Phase() != GameStatePlaying {
		t.Error("start key should begin a run")
	}
}

func TestStartResetsEverything(t *testing.T) {
	s := newPlaying(t)
	st := &s.state
	st.Score = 70
	st.Power = 10
	st.Weapon = object.Weapon{Level: 2, Remaining: 100}
	st.Shield.Activate(200)
	st.Ship.X = 0
	st.Asteroids = append(st.Asteroids, object.NewAsteroid(10, 10, 20, 3))
	st.Bullets = append(st.Bullets, object.NewBullet(10, 10, 5, 10))
	st.PowerUps = append(st.PowerUps, object.NewPowerUp(10, 10, 20, object.PowerUpGem))
	st.Projectiles = append(st.Projectiles, object.NewWeaponProjectile(10, 10, 6, 12))
	st.GameOver = true

	s.Start()
	first := s.State()
	s.Start()
	second := s.State()

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Start is not idempotent:\n%+v\n%+v", first, second)
	}
	if first.Score != 0 || first.Power != config.InitialPower || first.Weapon.Level != 0 ||
		first.Weapon.Remaining != 0 || first.Shield.Active() || first.GameOver || !first.Running {
		t.Errorf("unexpected state after Start: %+v", first)
	}
	if len(first.Asteroids)+len(first.Bullets)+len(first.PowerUps)+len(first.Projectiles) != 0 {
		t.Error("collections should be empty after Start")
	}
	if first.Ship.X != config.ScreenWidth/2-config.ShipWidth/2 {
		t.Errorf("ship should be re-centred, got x=%d", first.Ship.X)
	}
}

func TestEnterRestartsWhilePlaying(t *testing.T) {
	s := newPlaying(t)
	s.state.Score = 55
	s.Step(input.Input{Start: true})
	if s.state.Score != 0 || s.Phase() != GameStatePlaying {
		t.Errorf("start key should restart the run, got score %d phase %v", s.state.Score, s.Phase())
	}
}

func TestShipStaysInBounds(t *testing.T) {
	s := newPlaying(t)
	for i := 0; i < 400; i++ {
		in := input.Input{Left: i < 200, Right: i >= 200}
		s.Step(in)
		x := s.state.Ship.X
		if x < 0 || x > config.ScreenWidth-config.ShipWidth {
			t.Fatalf("tick %d: ship x %d out of bounds", i, x)
		}
	}
}

func TestFireNeedsArmedWeapon(t *testing.T) {
	s := newPlaying(t)
	s.Step(input.Input{Fire: true})
	if len(s.state.Bullets) != 0 {
		t.Fatal("unarmed ship must not fire")
	}

	s.state.Weapon = object.Weapon{Level: 1, Remaining: 300}
	s.Step(input.Input{Fire: true})
	if len(s.state.Bullets) != 1 {
		t.Fatalf("armed ship should fire one bullet, got %d", len(s.state.Bullets))
	}
	b := s.state.Bullets[0]
	noseX, noseY := s.state.Ship.Nose()
	if b.X != noseX-config.BulletWidth/2 || b.Y != noseY-object.BulletSpeed {
		t.Errorf("bullet should leave the nose and rise once, got (%d,%d)", b.X, b.Y)
	}
}

func TestAsteroidEscapeScores(t *testing.T) {
	s := newPlaying(t)
	s.state.Asteroids = append(s.state.Asteroids,
		object.NewAsteroid(10, 599, 20, 3), // 601 after falling: gone
		object.NewAsteroid(10, 598, 20, 3), // 600: still on screen
	)
	s.Step(input.Input{})

	if len(s.state.Asteroids) != 1 || s.state.Asteroids[0].Y != 600 {
		t.Errorf("only the asteroid past the bottom edge should be removed: %+v", s.state.Asteroids)
	}
	if s.state.Score != config.ScoreAsteroidEscape || s.Escaped() != 1 {
		t.Errorf("escape should score 1 and count once, got score %d escaped %d", s.state.Score, s.Escaped())
	}
}

func TestOffScreenRemoval(t *testing.T) {
	s := newPlaying(t)
	s.state.Bullets = append(s.state.Bullets, object.NewBullet(10, -6, 5, 10))
	s.state.Projectiles = append(s.state.Projectiles, object.NewWeaponProjectile(10, -12, 6, 12))
	s.state.PowerUps = append(s.state.PowerUps, object.NewPowerUp(10, 599, 20, object.PowerUpGem))
	s.Step(input.Input{})

	st := s.State()
	if len(st.Bullets)+len(st.Projectiles)+len(st.PowerUps) != 0 {
		t.Errorf("off-screen entities should be swept: %+v", st)
	}
}

func TestBulletDestroysFirstAsteroidOnly(t *testing.T) {
	s := newPlaying(t)
	s.state.Bullets = append(s.state.Bullets, object.NewBullet(100, 300, 5, 10))
	s.state.Asteroids = append(s.state.Asteroids,
		object.NewAsteroid(80, 280, 50, 3),
		object.NewAsteroid(90, 280, 50, 3),
	)
	s.Step(input.Input{})

	if len(s.state.Bullets) != 0 {
		t.Error("bullet should be consumed")
	}
	if len(s.state.Asteroids) != 1 || s.state.Asteroids[0].X != 90 {
		t.Errorf("only the first asteroid should be destroyed: %+v", s.state.Asteroids)
	}
	if s.state.Score != config.ScoreAsteroidKill {
		t.Errorf("score %d, want %d", s.state.Score, config.ScoreAsteroidKill)
	}
}

func TestNoBulletOverlapsAsteroidAfterTick(t *testing.T) {
	tuning := config.DefaultTuning()
	tuning.AsteroidSpawnDelay = 2
	s := NewSession(WithTuning(tuning), WithRand(rand.New(rand.NewPCG(3, 4))))
	s.Start()

	for i := 0; i < 1500; i++ {
		s.state.Power = 1 << 20
		s.state.Weapon = object.Weapon{Level: 1, Remaining: 300}
		s.Step(input.Input{Fire: true, Left: i%200 < 100, Right: i%200 >= 100})

		for _, b := range s.state.Bullets {
			for _, a := range s.state.Asteroids {
				if b.Rect().Overlaps(a.Rect()) {
					t.Fatalf("tick %d: bullet %+v still overlaps asteroid %+v", i, b, a)
				}
			}
		}
		for _, a := range s.state.Asteroids {
			if a.Y > config.ScreenHeight {
				t.Fatalf("tick %d: escaped asteroid %+v was not removed", i, a)
			}
		}
	}
}

// shipOverlapping returns an asteroid that overlaps the default ship after one fall.
func shipOverlapping(x int) object.Asteroid {
	return object.NewAsteroid(x, 528, 40, config.AsteroidIntegrity)
}

func TestShipHitCostsPower(t *testing.T) {
	s := newPlaying(t)
	s.state.Asteroids = append(s.state.Asteroids, shipOverlapping(380))
	s.Step(input.Input{})

	if s.state.Power != config.InitialPower-config.AsteroidDamage {
		t.Errorf("power %d, want %d", s.state.Power, config.InitialPower-config.AsteroidDamage)
	}
	if len(s.state.Asteroids) != 1 {
		t.Error("an unshielded hit does not destroy the asteroid")
	}
}

func TestGameOverTrigger(t *testing.T) {
	s := newPlaying(t)
	s.state.Power = 40
	s.state.Asteroids = append(s.state.Asteroids, shipOverlapping(380))
	s.Step(input.Input{})

	if s.state.Power != -10 {
		t.Errorf("power %d, want -10", s.state.Power)
	}
	if !s.state.GameOver || s.Running() || s.Phase() != GameStateOver {
		t.Errorf("expected game over, got over=%v running=%v phase=%v", s.state.GameOver, s.Running(), s.Phase())
	}
}

func TestShieldDestroysAsteroid(t *testing.T) {
	s := newPlaying(t)
	s.state.Shield.Activate(config.ShieldDuration)
	s.state.Asteroids = append(s.state.Asteroids, shipOverlapping(380))
	s.Step(input.Input{})

	if len(s.state.Asteroids) != 0 {
		t.Error("shielded hit should destroy the asteroid")
	}
	if s.state.Power != config.InitialPower || s.state.Score != config.ScoreAsteroidKill || s.Escaped() != 1 {
		t.Errorf("got power %d score %d escaped %d", s.state.Power, s.state.Score, s.Escaped())
	}
	if s.state.Shield.Remaining != config.ShieldDuration-1 {
		t.Errorf("shield should tick down once, got %d", s.state.Shield.Remaining)
	}
}

func TestLethalHitStopsShipChecksOnly(t *testing.T) {
	s := newPlaying(t)
	s.state.Power = config.AsteroidDamage
	s.state.Weapon = object.Weapon{Level: 1, Remaining: 300}
	s.state.Asteroids = append(s.state.Asteroids, shipOverlapping(370), shipOverlapping(400))
	s.state.Projectiles = append(s.state.Projectiles,
		object.NewWeaponProjectile(380, 541, 6, 12), // hits the first asteroid only
		object.NewWeaponProjectile(420, 541, 6, 12), // hits the second asteroid only
	)
	s.Step(input.Input{})

	if s.state.Power != 0 {
		t.Errorf("the second asteroid must not cost power after the lethal hit, got %d", s.state.Power)
	}
	if !s.state.GameOver {
		t.Error("power 0 should end the game")
	}
	if len(s.state.Asteroids) != 0 || len(s.state.Projectiles) != 0 {
		t.Errorf("projectile checks should continue after the lethal hit: %+v %+v",
			s.state.Asteroids, s.state.Projectiles)
	}
	if s.state.Score != 2*config.ScoreAsteroidKill {
		t.Errorf("score %d, want %d", s.state.Score, 2*config.ScoreAsteroidKill)
	}
}

func TestProjectileDamageByLevel(t *testing.T) {
	tests := []struct {
		level     int
		survives  bool
		integrity int
	}{
		{level: 1, survives: false},
		{level: 2, survives: true, integrity: 1},
		{level: 3, survives: true, integrity: 2},
		{level: 0, survives: true, integrity: 3},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("level %d", tt.level), func(t *testing.T) {
			s := newPlaying(t)
			s.state.Weapon = object.Weapon{Level: tt.level, Remaining: 100}
			s.state.Asteroids = append(s.state.Asteroids, object.NewAsteroid(100, 100, 40, 3))
			s.state.Projectiles = append(s.state.Projectiles, object.NewWeaponProjectile(110, 121, 6, 12))
			s.Step(input.Input{})

			if len(s.state.Projectiles) != 0 {
				t.Error("projectile should be consumed on hit")
			}
			if tt.survives {
				if len(s.state.Asteroids) != 1 || s.state.Asteroids[0].Integrity != tt.integrity {
					t.Errorf("asteroid should survive with integrity %d: %+v", tt.integrity, s.state.Asteroids)
				}
			} else if len(s.state.Asteroids) != 0 {
				t.Error("asteroid should break")
			}
		})
	}
}

func TestPowerUpTouchingShipIsCollected(t *testing.T) {
	s := newPlaying(t)
	// Bottom edge lands exactly on the ship's top edge after falling.
	s.state.PowerUps = append(s.state.PowerUps, object.NewPowerUp(380, 508, 20, object.PowerUpGem))
	s.Step(input.Input{})

	if len(s.state.PowerUps) != 0 {
		t.Fatal("touching power-up should be collected")
	}
	if s.state.Score != config.ScoreGem || s.state.Power != config.InitialPower+config.PowerIncrement {
		t.Errorf("gem effect not applied: score %d power %d", s.state.Score, s.state.Power)
	}
}

func TestGemPowerIsUncapped(t *testing.T) {
	s := newPlaying(t)
	for i := 0; i < 4; i++ {
		s.applyPowerUp(object.PowerUpGem)
	}
	if s.state.Power != config.InitialPower+4*config.PowerIncrement {
		t.Errorf("power %d should keep growing", s.state.Power)
	}
}

func TestWeaponPickups(t *testing.T) {
	s := newPlaying(t)
	want := []struct{ level, remaining int }{{1, 300}, {2, 300}, {0, 0}}
	for i, w := range want {
		s.applyPowerUp(object.PowerUpWeapon)
		if s.state.Weapon.Level != w.level || s.state.Weapon.Remaining != w.remaining {
			t.Errorf("pickup %d: got %+v, want level %d timer %d", i+1, s.state.Weapon, w.level, w.remaining)
		}
	}
}

func TestShieldPickupRefreshes(t *testing.T) {
	s := newPlaying(t)
	s.state.Shield.Remaining = 50
	s.applyPowerUp(object.PowerUpPower)
	if s.state.Shield.Remaining != 300 {
		t.Errorf("shield %d, want 300", s.state.Shield.Remaining)
	}
}

func TestWeaponExpires(t *testing.T) {
	s := newPlaying(t)
	s.state.Weapon = object.Weapon{Level: 3, Remaining: 2}
	s.Step(input.Input{})
	s.Step(input.Input{})
	if s.state.Weapon.Level != 0 {
		t.Errorf("weapon should disarm when its timer runs out, got %+v", s.state.Weapon)
	}
}

func TestEscortsFireOnInterval(t *testing.T) {
	s := newPlaying(t)
	s.state.Weapon = object.Weapon{Level: 2, Remaining: 1000}
	for i := 0; i < config.EscortFireInterval-1; i++ {
		s.Step(input.Input{})
	}
	if len(s.state.Projectiles) != 0 {
		t.Fatal("escorts should not fire before the interval")
	}
	s.Step(input.Input{})
	if len(s.state.Projectiles) != 2 {
		t.Fatalf("two escorts should fire two projectiles, got %d", len(s.state.Projectiles))
	}
	escorts := s.state.Weapon.Escorts(s.state.Ship)
	for i, p := range s.state.Projectiles {
		if p.X != escorts[i].CenterX()-config.ProjectileWidth/2 {
			t.Errorf("projectile %d x=%d should leave escort %d", i, p.X, i)
		}
		if p.Y != escorts[i].Y-config.ProjectileHeight-(config.AsteroidSpeed-1) {
			t.Errorf("projectile %d y=%d", i, p.Y)
		}
	}
}

// endRun forces a game over on the next Step.
func endRun(s *Session) {
	s.state.Power = 10
	s.state.Asteroids = append(s.state.Asteroids, shipOverlapping(380))
	s.Step(input.Input{})
}

func TestGameOverPauseThenSave(t *testing.T) {
	store := &memStore{}
	history := &memHistory{}
	s := newPlaying(t, WithStore(store), WithHistory(history), WithPlayer("ana"))
	s.state.Score = 77
	endRun(s)

	if len(history.runs) != 1 || history.runs[0].Score != 77 || history.runs[0].Player != "ana" {
		t.Fatalf("game over should record the run once: %+v", history.runs)
	}

	for i := 0; i < config.GameOverPauseTicks-1; i++ {
		s.Step(input.Input{Start: true, Fire: true, Left: true})
		if s.Phase() != GameStateOver {
			t.Fatalf("tick %d: pause should ignore input", i)
		}
	}
	if len(store.saved) != 0 {
		t.Fatal("save should wait for the pause to end")
	}
	if s.state.Score != 77 {
		t.Error("state should be frozen during the pause")
	}

	s.Step(input.Input{})
	if s.Phase() != GameStateStart || s.Running() {
		t.Errorf("session should return to the start screen, got %v", s.Phase())
	}
	if len(store.saved) != 1 || store.saved[0].Score != 77 {
		t.Errorf("expected one save with score 77, got %+v", store.saved)
	}
	if len(s.leaderboard) != 1 {
		t.Errorf("leaderboard should be refreshed, got %+v", s.leaderboard)
	}

	s.Step(input.Input{Start: true})
	if s.Phase() != GameStatePlaying {
		t.Error("start key should begin a new run after game over")
	}
}

func TestSaveFailureKeepsSession(t *testing.T) {
	store := &memStore{saveErr: errors.New("disk full")}
	tuning := config.DefaultTuning()
	tuning.GameOverPauseTicks = 1
	s := newPlaying(t, WithStore(store), WithTuning(tuning))
	endRun(s)
	s.Step(input.Input{})
	if s.Phase() != GameStateStart {
		t.Errorf("a failed save must not block the session, got %v", s.Phase())
	}
}

func TestLeaderboardErrorLeavesBoardEmpty(t *testing.T) {
	s := NewSession(WithRand(noSpawn{}), WithHistory(&memHistory{topErr: errors.New("locked")}))
	f := s.Frame()
	for _, c := range f.Commands {
		if c.Text == "High Scores" {
			t.Error("no leaderboard should be drawn when the history fails")
		}
	}
}

func TestSnapshot(t *testing.T) {
	s := newPlaying(t)
	s.escaped = 4
	s.state.Score = 31
	s.state.Weapon = object.Weapon{Level: 2, Remaining: 12}
	s.state.PowerUps = append(s.state.PowerUps, object.NewPowerUp(1, 2, 30, object.PowerUpPower))
	s.state.Projectiles = append(s.state.Projectiles, object.NewWeaponProjectile(5, 6, 6, 12))

	want := persist.Snapshot{
		Asteroids:   4,
		PowerUps:    []persist.PowerUpRecord{{X: 1, Y: 2, W: 30, H: 30, Kind: object.PowerUpPower}},
		Weapons:     []persist.ProjectileRecord{{X: 5, Y: 6, W: 6, H: 12}},
		Score:       31,
		WeaponLevel: 2,
	}
	if got := s.Snapshot(); !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestRestoreAppliesSnapshot(t *testing.T) {
	store := &memStore{load: persist.Snapshot{
		Asteroids:   9,
		PowerUps:    []persist.PowerUpRecord{{X: 1, Y: 2, W: 30, H: 30, Kind: object.PowerUpWeapon}},
		Weapons:     []persist.ProjectileRecord{{X: 5, Y: 6, W: 6, H: 12}},
		Score:       120,
		WeaponLevel: 3,
	}}
	s := NewSession(WithRand(noSpawn{}), WithStore(store))
	if !s.Restore() {
		t.Fatal("restore should apply the snapshot")
	}

	st := s.State()
	if st.Score != 120 || st.Weapon.Level != 3 || st.Weapon.Remaining != 600 || s.Escaped() != 9 {
		t.Errorf("unexpected restored state %+v escaped %d", st, s.Escaped())
	}
	if len(st.PowerUps) != 1 || st.PowerUps[0].Kind != object.PowerUpWeapon || st.PowerUps[0].Size != 30 {
		t.Errorf("unexpected power-ups %+v", st.PowerUps)
	}
	if len(st.Projectiles) != 1 || st.Projectiles[0].H != 12 {
		t.Errorf("unexpected projectiles %+v", st.Projectiles)
	}
	if !s.Running() || st.Power != config.InitialPower {
		t.Error("restored session should be playing with full power")
	}
}

func TestRestoreFallsBackToFreshState(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"missing", fmt.Errorf("%w: no file", persist.ErrNotFound)},
		{"malformed", fmt.Errorf("%w: bad json", persist.ErrMalformed)},
		{"other", errors.New("permission denied")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSession(WithRand(noSpawn{}), WithStore(&memStore{loadErr: tt.err, load: persist.Snapshot{Score: 99}}))
			if s.Restore() {
				t.Fatal("restore should report failure")
			}
			if st := s.State(); st.Score != 0 || !st.Running {
				t.Errorf("expected a fresh running state, got %+v", st)
			}
		})
	}
}

func findText(f draw.Frame, text string) (draw.Command, bool) {
	for _, c := range f.Commands {
		if c.Kind == draw.KindText && c.Text == text {
			return c, true
		}
	}
	return draw.Command{}, false
}

func TestFrameHUD(t *testing.T) {
	s := newPlaying(t)
	s.state.Score = 12
	s.state.Power = 150
	s.state.Shield.Remaining = 125
	s.state.Weapon = object.Weapon{Level: 2, Remaining: 299}
	f := s.Frame()

	checks := []struct {
		text string
		x, y int
	}{
		{"Score: 12", 10, 10},
		{"Shield Time: 2s", 10, 50},
		{"Weapon Level: 2", 600, 10},
		{"Weapon Timer: 4s", 600, 50},
	}
	for _, c := range checks {
		cmd, ok := findText(f, c.text)
		if !ok {
			t.Errorf("missing HUD text %q", c.text)
			continue
		}
		if cmd.X != c.x || cmd.Y != c.y {
			t.Errorf("%q at (%d,%d), want (%d,%d)", c.text, cmd.X, cmd.Y, c.x, c.y)
		}
	}

	var fill, escorts, shields int
	for _, c := range f.Commands {
		switch {
		case c.Kind == draw.KindFillRect && c.Color == draw.ColorMeterFill:
			fill = c.W
		case c.Kind == draw.KindSprite && c.Sprite == draw.SpriteEscort:
			escorts++
		case c.Kind == draw.KindSprite && c.Sprite == draw.SpriteShield:
			shields++
		}
	}
	if fill != meterWidth {
		t.Errorf("meter fill %d should be clamped to %d", fill, meterWidth)
	}
	if escorts != 2 || shields != 1 {
		t.Errorf("got %d escorts and %d shields", escorts, shields)
	}
}

func TestFrameOverlays(t *testing.T) {
	s := NewSession(WithRand(noSpawn{}))
	if _, ok := findText(s.Frame(), "Press Enter to Start"); !ok {
		t.Error("start screen should prompt for Enter")
	}

	s.Start()
	s.state.Score = 5
	endRun(s)
	if _, ok := findText(s.Frame(), "Game Over - Score: 5"); !ok {
		t.Error("game-over pause should show the score")
	}
}
