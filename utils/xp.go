package utils

import (
	"math"
	"math/rand"
)

// XPForLevel returns the total XP required to hold a level.
func XPForLevel(level int64) int64 {
	return int64(100 * math.Pow(float64(level), 1.5))
}

// RandRange returns a random value in [min, max].
func RandRange(min, max int) int64 {
	if max <= min {
		return int64(min)
	}
	return int64(min + rand.Intn(max-min+1))
}
