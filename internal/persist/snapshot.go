// Package persist saves and restores game snapshots and keeps the run history.
package persist

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tomz197/asteroidrain/internal/object"
)

var (
	// ErrNotFound is returned when there is no save to load.
	ErrNotFound = errors.New("save not found")
	// ErrMalformed is returned when a save cannot be decoded or fails validation.
	ErrMalformed = errors.New("malformed save")
)

// Snapshot is the state written at game over and read back on resume.
type Snapshot struct {
	Asteroids   int                `json:"asteroids" msgpack:"asteroids"` // Escaped asteroid count
	PowerUps    []PowerUpRecord    `json:"powerups" msgpack:"powerups"`
	Weapons     []ProjectileRecord `json:"weapons" msgpack:"weapons"`
	Score       int                `json:"score" msgpack:"score"`
	WeaponLevel int                `json:"current_weapon_level" msgpack:"current_weapon_level"`
}

// PowerUpRecord is a saved power-up. It encodes as [x, y, w, h, "kind"].
type PowerUpRecord struct {
	_msgpack struct{} `msgpack:",as_array"`

	X, Y, W, H int
	Kind       object.PowerUpKind
}

// ProjectileRecord is a saved weapon projectile. It encodes as [x, y, w, h].
type ProjectileRecord struct {
	_msgpack struct{} `msgpack:",as_array"`

	X, Y, W, H int
}

// MarshalJSON encodes the record as a five element array.
func (r PowerUpRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{r.X, r.Y, r.W, r.H, r.Kind})
}

// UnmarshalJSON decodes a five element array.
func (r *PowerUpRecord) UnmarshalJSON(data []byte) error {
	var fields []json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	if len(fields) != 5 {
		return fmt.Errorf("power-up record has %d fields, want 5", len(fields))
	}
	if err := unmarshalInts(fields[:4], &r.X, &r.Y, &r.W, &r.H); err != nil {
		return err
	}
	var kind string
	if err := json.Unmarshal(fields[4], &kind); err != nil {
		return fmt.Errorf("power-up kind: %w", err)
	}
	parsed, err := object.ParsePowerUpKind(kind)
	if err != nil {
		return err
	}
	r.Kind = parsed
	return nil
}

// MarshalJSON encodes the record as a four element array.
func (r ProjectileRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal([4]int{r.X, r.Y, r.W, r.H})
}

// UnmarshalJSON decodes a four element array.
func (r *ProjectileRecord) UnmarshalJSON(data []byte) error {
	var fields []json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	if len(fields) != 4 {
		return fmt.Errorf("projectile record has %d fields, want 4", len(fields))
	}
	return unmarshalInts(fields, &r.X, &r.Y, &r.W, &r.H)
}

func unmarshalInts(fields []json.RawMessage, dst ...*int) error {
	for i, f := range fields {
		if err := json.Unmarshal(f, dst[i]); err != nil {
			return fmt.Errorf("field %d: %w", i, err)
		}
	}
	return nil
}

// wireSnapshot mirrors Snapshot with pointer fields so decoders can tell a
// missing key from a zero value.
type wireSnapshot struct {
	Asteroids   *int                `json:"asteroids" msgpack:"asteroids"`
	PowerUps    *[]PowerUpRecord    `json:"powerups" msgpack:"powerups"`
	Weapons     *[]ProjectileRecord `json:"weapons" msgpack:"weapons"`
	Score       *int                `json:"score" msgpack:"score"`
	WeaponLevel *int                `json:"current_weapon_level" msgpack:"current_weapon_level"`
}

func (w wireSnapshot) snapshot() (Snapshot, error) {
	switch {
	case w.Asteroids == nil:
		return Snapshot{}, errors.New(`missing key "asteroids"`)
	case w.PowerUps == nil:
		return Snapshot{}, errors.New(`missing key "powerups"`)
	case w.Weapons == nil:
		return Snapshot{}, errors.New(`missing key "weapons"`)
	case w.Score == nil:
		return Snapshot{}, errors.New(`missing key "score"`)
	case w.WeaponLevel == nil:
		return Snapshot{}, errors.New(`missing key "current_weapon_level"`)
	}

	s := Snapshot{
		Asteroids:   *w.Asteroids,
		PowerUps:    *w.PowerUps,
		Weapons:     *w.Weapons,
		Score:       *w.Score,
		WeaponLevel: *w.WeaponLevel,
	}
	return s, s.Validate()
}

// Validate checks the invariants a restored session relies on.
func (s Snapshot) Validate() error {
	if s.WeaponLevel < 0 || s.WeaponLevel > object.WeaponLevels {
		return fmt.Errorf("weapon level %d out of range [0,%d]", s.WeaponLevel, object.WeaponLevels)
	}
	if s.Score < 0 {
		return fmt.Errorf("negative score %d", s.Score)
	}
	if s.Asteroids < 0 {
		return fmt.Errorf("negative asteroid count %d", s.Asteroids)
	}
	for i, p := range s.PowerUps {
		if _, err := object.ParsePowerUpKind(string(p.Kind)); err != nil {
			return fmt.Errorf("power-up %d: %w", i, err)
		}
	}
	return nil
}

// normalized replaces nil collections with empty ones so they encode as [].
func (s Snapshot) normalized() Snapshot {
	if s.PowerUps == nil {
		s.PowerUps = []PowerUpRecord{}
	}
	if s.Weapons == nil {
		s.Weapons = []ProjectileRecord{}
	}
	return s
}
