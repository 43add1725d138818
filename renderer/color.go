package renderer

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// ParseHexColor parses "#rgb", "#rrggbb" or "#rrggbbaa".
func ParseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// Palette caches parsed colors. Unparsable colors resolve to magenta.
type Palette map[string]color.RGBA

// Color returns the parsed form of s.
func (p Palette) Color(s string) color.RGBA {
	if c, ok := p[s]; ok {
		return c
	}
	c, err := ParseHexColor(s)
	if err != nil {
		c = color.RGBA{R: 255, B: 255, A: 255}
	}
	p[s] = c
	return c
}
