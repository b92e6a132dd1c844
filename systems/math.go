package systems

import "math"

const twoPi = 2 * math.Pi

// NormalizeHeading wraps a heading to [0, 2*Pi).
func NormalizeHeading(h float64) float64 {
	h = math.Mod(h, twoPi)
	if h < 0 {
		h += twoPi
	}
	if h >= twoPi {
		h = 0
	}
	return h
}

// Wrap maps v into [0, size) treating the axis as a ring.
// Both bounds use the same half-open convention.
func Wrap(v, size float64) float64 {
	if v >= 0 && v < size {
		return v
	}
	r := math.Mod(v, size)
	if r < 0 {
		r += size
	}
	// r+size can round up to exactly size for tiny negative r
	if r >= size {
		r = 0
	}
	return r
}

// InCanvas reports whether (x, y) lies inside [0,w)x[0,h).
func InCanvas(x, y, w, h float64) bool {
	return x >= 0 && x < w && y >= 0 && y < h
}

func clampFloat(v, minVal, maxVal float64) float64 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

func modInt(a, m int) int {
	r := a % m
	if r < 0 {
		r += m
	}
	return r
}
