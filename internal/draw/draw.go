// Package draw renders to ANSI terminals: a colored half-block canvas,
// a packet-sized frame writer for text overlays and a few cursor helpers.
package draw

import (
	"fmt"
	"io"
	"strconv"
)

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockEmpty     = ' '
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// Color is a palette index. ColorNone means "nothing drawn here".
type Color uint8

const (
	ColorNone Color = iota
	ColorWhite
	ColorGray
	ColorBlack
	ColorRed
	ColorDarkRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorPurple
	ColorOrange
	ColorCyan
)

// palette maps colors to xterm-256 indices.
var palette = [...]int{
	ColorNone:    0,
	ColorWhite:   15,
	ColorGray:    244,
	ColorBlack:   16,
	ColorRed:     9,
	ColorDarkRed: 88,
	ColorGreen:   10,
	ColorYellow:  11,
	ColorBlue:    12,
	ColorPurple:  129,
	ColorOrange:  208,
	ColorCyan:    14,
}

var colorNames = map[string]Color{
	"white":   ColorWhite,
	"gray":    ColorGray,
	"grey":    ColorGray,
	"black":   ColorBlack,
	"red":     ColorRed,
	"darkred": ColorDarkRed,
	"green":   ColorGreen,
	"yellow":  ColorYellow,
	"blue":    ColorBlue,
	"purple":  ColorPurple,
	"orange":  ColorOrange,
	"cyan":    ColorCyan,
}

// ColorNamed looks up a color by its lowercase name. Unknown names are white.
func ColorNamed(name string) Color {
	if c, ok := colorNames[name]; ok {
		return c
	}
	return ColorWhite
}

// ColorReset restores default terminal attributes.
const ColorReset = "\033[0m"

// Fg returns the escape sequence selecting c as the foreground color.
func (c Color) Fg() string {
	if c == ColorNone {
		return "\033[39m"
	}
	return "\033[38;5;" + strconv.Itoa(palette[c]) + "m"
}

// Bg returns the escape sequence selecting c as the background color.
func (c Color) Bg() string {
	if c == ColorNone {
		return "\033[49m"
	}
	return "\033[48;5;" + strconv.Itoa(palette[c]) + "m"
}

// ClearScreen clears the terminal and moves cursor to top-left.
func ClearScreen(w io.Writer) {
	fmt.Fprint(w, "\033[H\033[2J")
}

// HideCursor hides the terminal cursor.
func HideCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25l")
}

// ShowCursor shows the terminal cursor.
func ShowCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25h")
}
