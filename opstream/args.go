package opstream

import (
	"github.com/tsawler/vellum/model"
)

// Num coerces a decoded argument value to a float64. Non-numeric values
// coerce to zero, matching the producer's convention of numeric argument
// slots.
func Num(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return 0
	}
}

// Nums coerces a decoded argument value to a float64 slice. It accepts
// either a typed []float64 or a generic []interface{} of numbers.
func Nums(v interface{}) []float64 {
	switch s := v.(type) {
	case []float64:
		return s
	case []interface{}:
		out := make([]float64, len(s))
		for i, e := range s {
			out[i] = Num(e)
		}
		return out
	default:
		return nil
	}
}

// AsMatrix interprets a decoded argument value as a six-element affine
// matrix. The second return value is false when the value has the wrong
// shape.
func AsMatrix(v interface{}) (model.Matrix, bool) {
	nums := Nums(v)
	if len(nums) != 6 {
		return model.Identity(), false
	}
	var m model.Matrix
	copy(m[:], nums)
	return m, true
}

// Str coerces a decoded argument value to a string, or "" when it is not
// one.
func Str(v interface{}) string {
	s, _ := v.(string)
	return s
}
