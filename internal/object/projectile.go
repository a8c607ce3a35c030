package object

// BulletSpeed is how many pixels a bullet climbs per tick.
const BulletSpeed = 5

// Bullet is a shot fired from the ship's nose by the fire key.
type Bullet struct {
	X, Y      int
	W, H      int
	destroyed bool
}

// NewBullet creates a bullet of size w×h at (x, y).
func NewBullet(x, y, w, h int) Bullet {
	return Bullet{X: x, Y: y, W: w, H: h}
}

// Rise moves the bullet up by BulletSpeed.
func (b *Bullet) Rise() {
	b.Y -= BulletSpeed
}

// OffScreen reports whether the bullet has fully left through the top edge.
func (b *Bullet) OffScreen() bool {
	return b.Y < -b.H
}

// Rect returns the bullet's bounding box.
func (b *Bullet) Rect() Rect {
	return Rect{X: b.X, Y: b.Y, W: b.W, H: b.H}
}

// MarkDestroyed marks the bullet for removal.
func (b *Bullet) MarkDestroyed() {
	b.destroyed = true
}

// IsDestroyed returns true if the bullet is marked for removal.
func (b *Bullet) IsDestroyed() bool {
	return b.destroyed
}

// WeaponProjectile is a shot fired by a weapon escort. It chips asteroid
// integrity by the current weapon level's damage instead of killing outright.
type WeaponProjectile struct {
	X, Y      int
	W, H      int
	destroyed bool
}

// NewWeaponProjectile creates a projectile of size w×h at (x, y).
func NewWeaponProjectile(x, y, w, h int) WeaponProjectile {
	return WeaponProjectile{X: x, Y: y, W: w, H: h}
}

// Rise moves the projectile up by speed pixels.
func (p *WeaponProjectile) Rise(speed int) {
	p.Y -= speed
}

// OffScreen reports whether the projectile has fully left through the top edge.
func (p *WeaponProjectile) OffScreen() bool {
	return p.Y < -p.H
}

// Rect returns the projectile's bounding box.
func (p *WeaponProjectile) Rect() Rect {
	return Rect{X: p.X, Y: p.Y, W: p.W, H: p.H}
}

// MarkDestroyed marks the projectile for removal.
func (p *WeaponProjectile) MarkDestroyed() {
	p.destroyed = true
}

// IsDestroyed returns true if the projectile is marked for removal.
func (p *WeaponProjectile) IsDestroyed() bool {
	return p.destroyed
}
