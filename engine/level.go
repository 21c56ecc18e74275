package engine

import "math"

// Level returns the level for an xp total, floor(sqrt(xp)/10). This is the
// canonical formula; XPForLevel is derived from it algebraically so the two
// can never drift apart.
func Level(xp int64) int64 {
	if xp <= 0 {
		return 0
	}
	return int64(math.Sqrt(float64(xp))) / 10
}

// XPForLevel returns the minimum xp total that yields the given level,
// the exact inverse of Level: (10*level)^2.
func XPForLevel(level int64) int64 {
	if level <= 0 {
		return 0
	}
	return 100 * level * level
}
