package draw

import (
	"image/color"

	"golang.org/x/image/colornames"
)

// Kind selects how a Command is drawn.
type Kind int

const (
	KindSprite     Kind = iota // Entity sprite scaled into the command's box
	KindFillRect               // Solid rectangle
	KindStrokeRect             // Rectangle outline
	KindText                   // Text anchored at X,Y
)

// Sprite identifies which entity picture a KindSprite command shows.
type Sprite int

const (
	SpriteShip Sprite = iota
	SpriteAsteroid
	SpriteGem
	SpritePower
	SpriteWeaponPickup
	SpriteShield
	SpriteEscort
)

// Align controls text anchoring.
type Align int

const (
	AlignLeft   Align = iota // X,Y is the top-left corner
	AlignCenter              // X,Y is the centre
)

// Palette used by the game. Renderers without colour ignore it.
var (
	ColorBackground = colornames.Black
	ColorText       = colornames.White
	ColorBullet     = colornames.Blue
	ColorProjectile = colornames.Red
	ColorMeterFill  = colornames.Lime
	ColorMeterFrame = colornames.White
)

// Command is one entry of a frame's draw list. Coordinates are playfield pixels.
type Command struct {
	Kind   Kind
	Sprite Sprite
	Level  int // Escort index, 1-based
	X, Y   int
	W, H   int
	Color  color.RGBA
	Text   string
	Align  Align
}

// Frame is everything a renderer needs for one tick.
type Frame struct {
	Width, Height int
	Background    color.RGBA
	Commands      []Command
}

// NewFrame creates an empty frame for a playfield of the given size.
func NewFrame(width, height int) Frame {
	return Frame{Width: width, Height: height, Background: ColorBackground}
}

// Add appends commands to the frame.
func (f *Frame) Add(cmds ...Command) {
	f.Commands = append(f.Commands, cmds...)
}

// SpriteAt draws sprite s scaled into the box x,y,w,h.
func SpriteAt(s Sprite, x, y, w, h int) Command {
	return Command{Kind: KindSprite, Sprite: s, X: x, Y: y, W: w, H: h}
}

// FillRect draws a solid rectangle.
func FillRect(x, y, w, h int, c color.RGBA) Command {
	return Command{Kind: KindFillRect, X: x, Y: y, W: w, H: h, Color: c}
}

// StrokeRect draws a rectangle outline.
func StrokeRect(x, y, w, h int, c color.RGBA) Command {
	return Command{Kind: KindStrokeRect, X: x, Y: y, W: w, H: h, Color: c}
}

// Text draws s with its top-left corner at x,y.
func Text(x, y int, s string, c color.RGBA) Command {
	return Command{Kind: KindText, X: x, Y: y, Text: s, Color: c, Align: AlignLeft}
}

// CenteredText draws s centred on x,y.
func CenteredText(x, y int, s string, c color.RGBA) Command {
	return Command{Kind: KindText, X: x, Y: y, Text: s, Color: c, Align: AlignCenter}
}
