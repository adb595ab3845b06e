package builder

import (
	"encoding/hex"
	"fmt"
	"math"

	"github.com/wudi/formkit/ir/raw"
)

// Color is a DeviceRGB color with components in [0, 1].
type Color struct {
	R, G, B float64
}

// ParseHexColor converts "#RRGGBB" into components byte/255.
func ParseHexColor(s string) (Color, error) {
	if len(s) != 7 || s[0] != '#' {
		return Color{}, fmt.Errorf("%w: %q is not #RRGGBB", ErrInvalidColor, s)
	}
	b, err := hex.DecodeString(s[1:])
	if err != nil {
		return Color{}, fmt.Errorf("%w: %q: %v", ErrInvalidColor, s, err)
	}
	return Color{
		R: float64(b[0]) / 255,
		G: float64(b[1]) / 255,
		B: float64(b[2]) / 255,
	}, nil
}

func (c Color) Validate() error {
	for _, v := range [...]float64{c.R, c.G, c.B} {
		if math.IsNaN(v) || v < 0 || v > 1 {
			return fmt.Errorf("%w: component %v outside [0, 1]", ErrInvalidColor, v)
		}
	}
	return nil
}

func (c Color) array() *raw.ArrayObj { return raw.Numbers(c.R, c.G, c.B) }
