package hexfill

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

var errEmptyColor = errors.New("empty color")

// ParseColor parses a CSS color: a name (see colornames),
// "transparent", #rgb, #rgba, #rrggbb, #rrggbbaa, rgb(r, g, b)
// and rgba(r, g, b, a). Channels may be given in percents.
func ParseColor(v string) (color.NRGBA, error) {
	v = strings.ToLower(strings.TrimSpace(v))
	switch {
	case v == "":
		return color.NRGBA{}, errEmptyColor
	case v == "transparent":
		return color.NRGBA{}, nil
	case strings.HasPrefix(v, "#"):
		return parseHex(v[1:])
	case strings.HasPrefix(v, "rgba(") || strings.HasPrefix(v, "rgb("):
		return parseFunctional(v)
	}
	if c, ok := colornames.Map[v]; ok {
		return color.NRGBA{c.R, c.G, c.B, c.A}, nil
	}
	return color.NRGBA{}, fmt.Errorf("unknown color %q", v)
}

func parseHex(h string) (color.NRGBA, error) {
	var digits [8]uint8
	for i := 0; i < len(h) && i < len(digits); i++ {
		d, err := strconv.ParseUint(h[i:i+1], 16, 8)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("invalid hex color #%s", h)
		}
		digits[i] = uint8(d)
	}
	switch len(h) {
	case 3, 4: // #rgb, #rgba : each digit is doubled
		c := color.NRGBA{digits[0] * 17, digits[1] * 17, digits[2] * 17, 0xff}
		if len(h) == 4 {
			c.A = digits[3] * 17
		}
		return c, nil
	case 6, 8:
		c := color.NRGBA{digits[0]<<4 | digits[1], digits[2]<<4 | digits[3], digits[4]<<4 | digits[5], 0xff}
		if len(h) == 8 {
			c.A = digits[6]<<4 | digits[7]
		}
		return c, nil
	}
	return color.NRGBA{}, fmt.Errorf("invalid hex color #%s", h)
}

func parseFunctional(v string) (color.NRGBA, error) {
	open, end := strings.IndexByte(v, '('), strings.LastIndexByte(v, ')')
	if end < open {
		return color.NRGBA{}, fmt.Errorf("invalid color %q", v)
	}
	args := strings.FieldsFunc(v[open+1:end], func(r rune) bool { return r == ',' || r == ' ' || r == '/' })
	if len(args) != 3 && len(args) != 4 {
		return color.NRGBA{}, fmt.Errorf("invalid number of channels in %q", v)
	}
	var c color.NRGBA
	channels := [3]*uint8{&c.R, &c.G, &c.B}
	for i, ptr := range channels {
		f, err := readChannel(args[i], 255)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", v, err)
		}
		*ptr = uint8(math.Round(f))
	}
	c.A = 0xff
	if len(args) == 4 {
		f, err := readChannel(args[3], 1)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", v, err)
		}
		c.A = uint8(math.Round(f * 255))
	}
	return c, nil
}

// readChannel parses a number or a percentage,
// clamped to [0, max]
func readChannel(s string, max float64) (float64, error) {
	percent := strings.HasSuffix(s, "%")
	f, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
	if err != nil {
		return 0, err
	}
	if percent {
		f = f * max / 100
	}
	if f < 0 {
		f = 0
	} else if f > max {
		f = max
	}
	return f, nil
}
