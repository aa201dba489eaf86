package svgdom

import (
	"math"
	"strconv"
	"strings"

	"github.com/tsawler/vellum/model"
)

// FormatFloat formats a number for SVG output. Integral values print as
// plain decimals; everything else is rounded to ten fractional digits with
// trailing zeros (and a bare trailing dot) stripped, which yields a
// deterministic shortest-sufficient representation.
func FormatFloat(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatInt(int64(v), 10)
	}

	s := strconv.FormatFloat(v, 'f', 10, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

// FormatTransform renders a matrix as an SVG transform string, recognizing
// the identity, pure-scale, pure-rotation, and pure-translation special
// cases. The identity renders as "".
func FormatTransform(m model.Matrix) string {
	if m[4] == 0 && m[5] == 0 {
		if m[1] == 0 && m[2] == 0 {
			if m[0] == 1 && m[3] == 1 {
				return ""
			}
			return "scale(" + FormatFloat(m[0]) + " " + FormatFloat(m[3]) + ")"
		}
		if m[0] == m[3] && m[1] == -m[2] {
			deg := math.Acos(m[0]) * 180 / math.Pi
			return "rotate(" + FormatFloat(deg) + ")"
		}
	} else if m[0] == 1 && m[1] == 0 && m[2] == 0 && m[3] == 1 {
		return "translate(" + FormatFloat(m[4]) + " " + FormatFloat(m[5]) + ")"
	}

	return "matrix(" + FormatFloat(m[0]) + " " + FormatFloat(m[1]) + " " +
		FormatFloat(m[2]) + " " + FormatFloat(m[3]) + " " +
		FormatFloat(m[4]) + " " + FormatFloat(m[5]) + ")"
}

// HexColor formats an RGB triple with 0–255 components as a #rrggbb string.
func HexColor(r, g, b float64) string {
	return "#" + hexByte(r) + hexByte(g) + hexByte(b)
}

func hexByte(v float64) string {
	n := int(v)
	if n < 0 {
		n = 0
	} else if n > 255 {
		n = 255
	}
	const digits = "0123456789abcdef"
	return string([]byte{digits[n>>4], digits[n&0xf]})
}
