// Package physics provides collision detection and clamping utilities.
package physics

// RectsOverlap reports whether two axis-aligned rectangles share interior area.
// Rectangles that only touch along an edge do not overlap.
func RectsOverlap(ax, ay, aw, ah, bx, by, bw, bh int) bool {
	return ax < bx+bw && ax+aw > bx && ay < by+bh && ay+ah > by
}

// RectsTouch is the inclusive variant of RectsOverlap: shared edges count.
func RectsTouch(ax, ay, aw, ah, bx, by, bw, bh int) bool {
	return ax <= bx+bw && ax+aw >= bx && ay <= by+bh && ay+ah >= by
}

// Clamp limits v to the closed range [lo, hi]. When hi < lo, lo wins.
func Clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
