package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/tomz197/asteroidrain/internal/draw"
)

// Debug font cell size, used to centre text.
const (
	glyphWidth  = 6
	glyphHeight = 16
)

var spriteColors = map[draw.Sprite]color.RGBA{
	draw.SpriteShip:         colornames.White,
	draw.SpriteAsteroid:     colornames.Darkgray,
	draw.SpriteGem:          colornames.Cyan,
	draw.SpritePower:        colornames.Gold,
	draw.SpriteWeaponPickup: colornames.Orange,
	draw.SpriteShield:       colornames.Deepskyblue,
	draw.SpriteEscort:       colornames.Silver,
}

// render draws one frame's command list onto the window.
func render(screen *ebiten.Image, f draw.Frame) {
	screen.Fill(f.Background)
	for _, c := range f.Commands {
		switch c.Kind {
		case draw.KindSprite:
			drawSprite(screen, c)
		case draw.KindFillRect:
			vector.DrawFilledRect(screen, float32(c.X), float32(c.Y), float32(c.W), float32(c.H), c.Color, false)
		case draw.KindStrokeRect:
			vector.StrokeRect(screen, float32(c.X), float32(c.Y), float32(c.W), float32(c.H), 2, c.Color, false)
		case draw.KindText:
			x, y := c.X, c.Y
			if c.Align == draw.AlignCenter {
				x -= len(c.Text) * glyphWidth / 2
				y -= glyphHeight / 2
			}
			ebitenutil.DebugPrintAt(screen, c.Text, x, y)
		}
	}
}

func drawSprite(screen *ebiten.Image, c draw.Command) {
	clr := spriteColors[c.Sprite]
	x, y := float32(c.X), float32(c.Y)
	w, h := float32(c.W), float32(c.H)

	switch c.Sprite {
	case draw.SpriteShip, draw.SpriteEscort:
		polyline(screen, clr, x+w/2, y, x+w, y+h, x, y+h)
	case draw.SpriteAsteroid:
		vector.StrokeCircle(screen, x+w/2, y+h/2, w/2, 2, clr, true)
	case draw.SpritePower:
		vector.DrawFilledCircle(screen, x+w/2, y+h/2, w/2, clr, true)
	case draw.SpriteGem:
		polyline(screen, clr, x+w/2, y, x+w, y+h/2, x+w/2, y+h, x, y+h/2)
	case draw.SpriteWeaponPickup:
		vector.StrokeRect(screen, x, y, w, h, 2, clr, false)
		vector.DrawFilledRect(screen, x+w*3/8, y+h/4, w/4, h/2, clr, false)
	case draw.SpriteShield:
		vector.StrokeRect(screen, x, y, w, h, 2, clr, false)
	}
}

// polyline strokes the closed polygon given as x,y pairs.
func polyline(screen *ebiten.Image, clr color.Color, xy ...float32) {
	n := len(xy) / 2
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		vector.StrokeLine(screen, xy[2*i], xy[2*i+1], xy[2*j], xy[2*j+1], 2, clr, true)
	}
}
