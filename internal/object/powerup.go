package object

import "fmt"

// PowerUpKind identifies what a power-up does when collected.
// The string values are the ones written to save files.
type PowerUpKind string

const (
	PowerUpGem    PowerUpKind = "gem"    // Score and power
	PowerUpPower  PowerUpKind = "power"  // Shield
	PowerUpWeapon PowerUpKind = "weapon" // Weapon level
)

// PowerUpKinds lists every kind in spawn-selection order.
var PowerUpKinds = []PowerUpKind{PowerUpGem, PowerUpPower, PowerUpWeapon}

// ParsePowerUpKind validates a kind read from outside the game.
func ParsePowerUpKind(s string) (PowerUpKind, error) {
	for _, k := range PowerUpKinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown power-up kind %q", s)
}

// PowerUp is a collectible falling alongside the asteroids.
type PowerUp struct {
	X, Y      int
	Size      int
	Kind      PowerUpKind
	destroyed bool
}

// NewPowerUp creates a power-up of the given kind.
func NewPowerUp(x, y, size int, kind PowerUpKind) PowerUp {
	return PowerUp{X: x, Y: y, Size: size, Kind: kind}
}

// Fall moves the power-up down by speed pixels.
func (p *PowerUp) Fall(speed int) {
	p.Y += speed
}

// OffScreen reports whether the power-up has left through the bottom edge.
func (p *PowerUp) OffScreen(screen Screen) bool {
	return p.Y > screen.Height
}

// Rect returns the power-up's bounding box.
func (p *PowerUp) Rect() Rect {
	return Rect{X: p.X, Y: p.Y, W: p.Size, H: p.Size}
}

// MarkDestroyed marks the power-up for removal.
func (p *PowerUp) MarkDestroyed() {
	p.destroyed = true
}

// IsDestroyed returns true if the power-up is marked for removal.
func (p *PowerUp) IsDestroyed() bool {
	return p.destroyed
}
