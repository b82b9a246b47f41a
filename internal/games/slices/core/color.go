package core

import (
	"fmt"
	"strings"
)

// Color represents the color of a single slice.
type Color uint8

const (
	ColorWhite Color = iota
	ColorBlack
	ColorRed
	ColorYellow
	ColorGreen
	ColorBlue
	ColorCount // Sentinel value for iteration
)

// String returns the string representation of a color.
func (c Color) String() string {
	switch c {
	case ColorWhite:
		return "white"
	case ColorBlack:
		return "black"
	case ColorRed:
		return "red"
	case ColorYellow:
		return "yellow"
	case ColorGreen:
		return "green"
	case ColorBlue:
		return "blue"
	default:
		return "unknown"
	}
}

// Char returns a single character representation of the color for ASCII rendering.
func (c Color) Char() rune {
	switch c {
	case ColorWhite:
		return 'W'
	case ColorBlack:
		return 'K'
	case ColorRed:
		return 'R'
	case ColorYellow:
		return 'Y'
	case ColorGreen:
		return 'G'
	case ColorBlue:
		return 'B'
	default:
		return '?'
	}
}

// Valid reports whether c is one of the palette colors.
func (c Color) Valid() bool {
	return c < ColorCount
}

// ParseColor converts a string to a Color.
// Returns ColorWhite and false if the string is not recognized.
func ParseColor(s string) (Color, bool) {
	switch strings.ToLower(s) {
	case "white", "w":
		return ColorWhite, true
	case "black", "k":
		return ColorBlack, true
	case "red", "r":
		return ColorRed, true
	case "yellow", "y":
		return ColorYellow, true
	case "green", "g":
		return ColorGreen, true
	case "blue", "b":
		return ColorBlue, true
	default:
		return ColorWhite, false
	}
}

// AllColors returns a slice of all valid colors in palette order.
func AllColors() []Color {
	return []Color{ColorWhite, ColorBlack, ColorRed, ColorYellow, ColorGreen, ColorBlue}
}

// MarshalText encodes the color by name.
func (c Color) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid color %d", c)
	}
	return []byte(c.String()), nil
}

// UnmarshalText decodes a color name or its single-letter form.
func (c *Color) UnmarshalText(text []byte) error {
	parsed, ok := ParseColor(string(text))
	if !ok {
		return fmt.Errorf("unknown color %q", text)
	}
	*c = parsed
	return nil
}
