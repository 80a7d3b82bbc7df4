package desktop

import "image/color"

const colorBackground = "background"

var palette = map[string]color.RGBA{
	"background": {12, 12, 24, 255},
	"white":      {235, 235, 235, 255},
	"gray":       {128, 128, 128, 255},
	"black":      {0, 0, 0, 255},
	"red":        {230, 60, 60, 255},
	"darkred":    {139, 0, 0, 255},
	"green":      {60, 200, 90, 255},
	"yellow":     {250, 220, 60, 255},
	"blue":       {70, 120, 250, 255},
	"purple":     {160, 80, 220, 255},
	"orange":     {250, 150, 40, 255},
	"cyan":       {60, 220, 230, 255},
}

// rgba looks up a named color; unknown names are white.
func rgba(name string) color.RGBA {
	if c, ok := palette[name]; ok {
		return c
	}
	return palette["white"]
}
