package draw

// RenderFrame draws f onto the canvas and writes the result, text overlay
// included, into cw. The caller flushes cw.
func RenderFrame(f Frame, c *Canvas, cw *ChunkWriter) {
	c.Clear()
	for _, cmd := range f.Commands {
		switch cmd.Kind {
		case KindSprite:
			drawSprite(c, cmd)
		case KindFillRect:
			c.FillRect(float64(cmd.X), float64(cmd.Y), float64(cmd.W), float64(cmd.H))
		case KindStrokeRect:
			c.StrokeRect(float64(cmd.X), float64(cmd.Y), float64(cmd.W), float64(cmd.H))
		}
	}

	c.Render(cw)
	c.RenderBorder(cw)

	// Text goes last so it sits on top of the pixels.
	for _, cmd := range f.Commands {
		if cmd.Kind != KindText {
			continue
		}
		col, row := c.LogicalToTerminal(float64(cmd.X), float64(cmd.Y))
		if cmd.Align == AlignCenter {
			col -= len(cmd.Text) / 2
		}
		cw.WriteAt(col, row, cmd.Text)
	}
}

func drawSprite(c *Canvas, cmd Command) {
	x, y := float64(cmd.X), float64(cmd.Y)
	w, h := float64(cmd.W), float64(cmd.H)

	switch cmd.Sprite {
	case SpriteShip, SpriteEscort:
		pts := c.BorrowPoints(3)
		pts[0] = Point{X: x + w/2, Y: y}
		pts[1] = Point{X: x + w, Y: y + h}
		pts[2] = Point{X: x, Y: y + h}
		c.DrawPolygon(pts, cmd.Sprite == SpriteShip)
	case SpriteAsteroid, SpritePower:
		c.DrawPolygon(octagon(c, x, y, w, h), cmd.Sprite == SpritePower)
	case SpriteGem:
		pts := c.BorrowPoints(4)
		pts[0] = Point{X: x + w/2, Y: y}
		pts[1] = Point{X: x + w, Y: y + h/2}
		pts[2] = Point{X: x + w/2, Y: y + h}
		pts[3] = Point{X: x, Y: y + h/2}
		c.DrawPolygon(pts, true)
	case SpriteWeaponPickup:
		c.StrokeRect(x, y, w, h)
		c.FillRect(x+w*3/8, y+h/4, w/4, h/2)
	case SpriteShield:
		c.StrokeRect(x, y, w, h)
	}
}

// octagon returns the corners of an octagon inscribed in the box x,y,w,h.
func octagon(c *Canvas, x, y, w, h float64) []Point {
	cx, cy := w*0.3, h*0.3
	pts := c.BorrowPoints(8)
	pts[0] = Point{X: x + cx, Y: y}
	pts[1] = Point{X: x + w - cx, Y: y}
	pts[2] = Point{X: x + w, Y: y + cy}
	pts[3] = Point{X: x + w, Y: y + h - cy}
	pts[4] = Point{X: x + w - cx, Y: y + h}
	pts[5] = Point{X: x + cx, Y: y + h}
	pts[6] = Point{X: x, Y: y + h - cy}
	pts[7] = Point{X: x, Y: y + cy}
	return pts
}
