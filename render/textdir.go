package render

import (
	"golang.org/x/text/unicode/bidi"
)

// direction classifies a run of text by its dominant writing direction.
type direction int

const (
	directionNeutral direction = iota
	directionLTR
	directionRTL
)

// dominantDirection returns the direction with the most strong directional
// characters in s, or neutral when s has none. Numbers and punctuation do
// not vote.
func dominantDirection(s string) direction {
	ltr, rtl := 0, 0
	for _, r := range s {
		p, _ := bidi.LookupRune(r)
		switch p.Class() {
		case bidi.L:
			ltr++
		case bidi.R, bidi.AL:
			rtl++
		}
	}

	switch {
	case ltr == 0 && rtl == 0:
		return directionNeutral
	case rtl > ltr:
		return directionRTL
	default:
		return directionLTR
	}
}
