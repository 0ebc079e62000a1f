package svgpath

import (
	"math"
	"strconv"
)

// precision used when printing numbers, which removes
// the noise introduced by trigonometry and matrix decomposition
const precision = 1e6

// FormatNumber returns the shortest decimal representation of v,
// rounded to 6 decimal places, without exponent and without trailing zeros.
// Negative zero is printed as "0".
func FormatNumber(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}
	v = math.Round(v*precision) / precision
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
