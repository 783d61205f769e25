package render

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// ParseColor parses "#rrggbb" into an opaque color. An empty string returns
// the zero color, which styles treat as "use the default".
func ParseColor(s string) (color.RGBA, error) {
	if s == "" {
		return color.RGBA{}, nil
	}
	hexStr := strings.TrimPrefix(s, "#")
	if len(hexStr) != 6 {
		return color.RGBA{}, fmt.Errorf("color %q: want #rrggbb", s)
	}

	v, err := strconv.ParseUint(hexStr, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("color %q: %w", s, err)
	}

	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}

// RampByName resolves a scene-file ramp name; unknown names fall back to
// viridis.
func RampByName(name string) Ramp {
	switch strings.ToLower(name) {
	case "terrain":
		return Terrain
	default:
		return Viridis
	}
}
