package svgattr

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/synesenom/dl/svgdoc"
	"golang.org/x/image/colornames"
)

// ErrBadColor is returned for unrecognized color values.
var ErrBadColor = errors.New("invalid color")

// ParseColor parses a paint value: "#rgb", "#rrggbb", "rgb(r, g, b)",
// "rgba(r, g, b, a)" or a CSS color name.
// An empty string and "none" mean no paint: a nil color and a nil error are returned.
func ParseColor(v string) (*svgdoc.Color, error) {
	v = strings.TrimSpace(v)
	switch lv := strings.ToLower(v); {
	case lv == "" || lv == "none":
		return nil, nil
	case strings.HasPrefix(lv, "#"):
		return parseHex(v)
	case strings.HasPrefix(lv, "rgb"):
		return parseFunctional(v)
	default:
		if c, ok := colornames.Map[lv]; ok {
			out := svgdoc.RGB255(c.R, c.G, c.B)
			return &out, nil
		}
	}
	return nil, colorError(v)
}

func colorError(v string) error { return fmt.Errorf("%q: %w", v, ErrBadColor) }

func parseHex(v string) (*svgdoc.Color, error) {
	hex := v[1:]
	var rgb [3]uint8
	switch len(hex) {
	case 3:
		for i := range rgb {
			d, err := strconv.ParseUint(hex[i:i+1], 16, 8)
			if err != nil {
				return nil, colorError(v)
			}
			rgb[i] = uint8(d * 17) // #abc is #aabbcc
		}
	case 6:
		for i := range rgb {
			d, err := strconv.ParseUint(hex[2*i:2*i+2], 16, 8)
			if err != nil {
				return nil, colorError(v)
			}
			rgb[i] = uint8(d)
		}
	default:
		return nil, colorError(v)
	}
	c := svgdoc.RGB255(rgb[0], rgb[1], rgb[2])
	return &c, nil
}

// parseFunctional handles rgb() and rgba()
func parseFunctional(v string) (*svgdoc.Color, error) {
	name, args, ok := strings.Cut(v, "(")
	if !ok || !strings.HasSuffix(args, ")") {
		return nil, colorError(v)
	}
	name = strings.ToLower(strings.TrimSpace(name))
	fields := strings.FieldsFunc(strings.TrimSuffix(args, ")"), func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	switch {
	case name == "rgb" && len(fields) == 3:
	case name == "rgba" && len(fields) == 4:
	default:
		return nil, colorError(v)
	}
	var rgb [3]uint8
	for i := range rgb {
		d, err := strconv.ParseUint(fields[i], 10, 8)
		if err != nil {
			return nil, colorError(v)
		}
		rgb[i] = uint8(d)
	}
	c := svgdoc.RGB255(rgb[0], rgb[1], rgb[2])
	if len(fields) == 4 {
		a, err := strconv.ParseFloat(fields[3], 64)
		if err != nil || a < 0 || a > 1 {
			return nil, colorError(v)
		}
		c.A, c.HasAlpha = a, true
	}
	return &c, nil
}
