package object

// MinAsteroidSize is the smallest asteroid edge length the spawner produces.
const MinAsteroidSize = 10

// Asteroid is a square space rock falling down the screen.
type Asteroid struct {
	X, Y      int
	Size      int // Edge length; asteroids are square
	Integrity int // Hit points against weapon projectiles
	destroyed bool
}

// NewAsteroid creates an asteroid with the given position, size and hit points.
func NewAsteroid(x, y, size, integrity int) Asteroid {
	return Asteroid{
		X:         x,
		Y:         y,
		Size:      size,
		Integrity: integrity,
	}
}

// Fall moves the asteroid down by speed pixels.
func (a *Asteroid) Fall(speed int) {
	a.Y += speed
}

// Escaped reports whether the asteroid has left through the bottom edge.
func (a *Asteroid) Escaped(screen Screen) bool {
	return a.Y > screen.Height
}

// Damage removes hit points and reports whether the asteroid broke apart.
// A broken asteroid is marked destroyed.
func (a *Asteroid) Damage(amount int) bool {
	a.Integrity -= amount
	if a.Integrity <= 0 {
		a.destroyed = true
		return true
	}
	return false
}

// Rect returns the asteroid's bounding box.
func (a *Asteroid) Rect() Rect {
	return Rect{X: a.X, Y: a.Y, W: a.Size, H: a.Size}
}

// MarkDestroyed marks the asteroid for removal (implements Destructible).
func (a *Asteroid) MarkDestroyed() {
	a.destroyed = true
}

// IsDestroyed returns true if the asteroid is marked for removal (implements Destructible).
func (a *Asteroid) IsDestroyed() bool {
	return a.destroyed
}
