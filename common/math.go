package common

// TileSize is the edge length of one tile in world pixels.
const TileSize = 8

func Lerp(a, b, t float32) float32 {
	return a + t*(b-a)
}

// ClampInt restricts v to [lo, hi]. The upper bound is applied first, so
// when hi < lo the result is lo.
func ClampInt(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

// Darken scales each color channel by f (0..1).
func Darken(c uint8, f float32) uint8 {
	if f <= 0 {
		return 0
	}
	if f >= 1 {
		return c
	}
	return uint8(Lerp(0, float32(c), f))
}

// FloorDiv divides rounding toward negative infinity, so world pixels left
// of or above the origin map to negative cells.
func FloorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
