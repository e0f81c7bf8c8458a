// Package colorspec reads and writes colours in the "R,G,B" decimal form
// used on the command line.
package colorspec

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

var ErrMalformed = errors.New("malformed color")

// Parse returns nil for an empty string, meaning no colour was chosen.
func Parse(s string) (*color.RGBA, error) {
	if s == "" {
		return nil, nil
	}

	fields := strings.Split(s, ",")
	if len(fields) != 3 {
		return nil, fmt.Errorf("%w %q: want R,G,B, got %d fields", ErrMalformed, s, len(fields))
	}

	var ch [3]uint8
	for i, f := range fields {
		v, err := strconv.ParseUint(strings.TrimSpace(f), 10, 8)
		if err != nil {
			return nil, fmt.Errorf("%w %q: channel %d: %w", ErrMalformed, s, i, err)
		}
		ch[i] = uint8(v)
	}

	return &color.RGBA{R: ch[0], G: ch[1], B: ch[2], A: 0xff}, nil
}

func Format(c *color.RGBA) string {
	if c == nil {
		return ""
	}
	return fmt.Sprintf("%d,%d,%d", c.R, c.G, c.B)
}
