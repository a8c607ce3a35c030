// Package object defines the game entities and their per-tick behaviour.
package object

import "github.com/tomz197/asteroidrain/internal/physics"

// Screen represents the playfield dimensions in pixels.
type Screen struct {
	Width  int
	Height int
}

// Rect is an axis-aligned box. Origin is top-left, y grows downward.
type Rect struct {
	X, Y, W, H int
}

// Overlaps reports whether r and o share interior area.
func (r Rect) Overlaps(o Rect) bool {
	return physics.RectsOverlap(r.X, r.Y, r.W, r.H, o.X, o.Y, o.W, o.H)
}

// Touches is like Overlaps but counts shared edges as contact.
func (r Rect) Touches(o Rect) bool {
	return physics.RectsTouch(r.X, r.Y, r.W, r.H, o.X, o.Y, o.W, o.H)
}

// CenterX returns the horizontal center of the rectangle.
func (r Rect) CenterX() int {
	return r.X + r.W/2
}

// Destructible is implemented by entities that can be marked for removal
// and swept at the end of a phase.
type Destructible interface {
	// MarkDestroyed marks the entity for removal on the next sweep.
	MarkDestroyed()
	// IsDestroyed returns true if the entity is marked for removal.
	IsDestroyed() bool
}

// Sweep compacts items in place, dropping every entity marked destroyed.
// Order of the survivors is preserved.
func Sweep[T any, P interface {
	*T
	Destructible
}](items []T) []T {
	kept := items[:0]
	for i := range items {
		if !P(&items[i]).IsDestroyed() {
			kept = append(kept, items[i])
		}
	}
	clear(items[len(kept):])
	return kept
}
