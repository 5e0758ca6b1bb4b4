package astar

import (
	"math"

	"github.com/katalvlaran/terrapath/territory"
)

// Distance is the padded Euclidean distance between a and b:
//
//	sqrt((|dx|+1)² + (|dy|+1)²)
//
// Both axis deltas are incremented before squaring, so Distance(a, a) is √2.
func Distance(a, b territory.Coord) float64 {
	dx := math.Abs(float64(a.X-b.X)) + 1
	dy := math.Abs(float64(a.Y-b.Y)) + 1

	return math.Sqrt(dx*dx + dy*dy)
}

// Heuristic estimates the remaining cost from c to the nearest goal.
//
// The running minimum starts at 0 and is only replaced by a strictly smaller
// candidate. Every Distance is ≥ √2, so the estimate is 0 for any goal set
// and the search degrades to a uniform-cost expansion. This is the reference
// behavior; see DESIGN.md before changing it.
func Heuristic(c territory.Coord, goals []territory.Coord) float64 {
	h := 0.0
	for _, goal := range goals {
		if d := Distance(c, goal); d < h {
			h = d
		}
	}

	return h
}

// PathCostFactor returns the cost multiplier for a path of pathLen cells:
// ×1.1 for every full block of 5 cells beyond the first 5, applied stepwise.
//
//	len 1..5 → 1.0, 6..10 → 1.1, 11..15 → 1.21, ...
func PathCostFactor(pathLen int) float64 {
	factor := 1.0
	for pathLen > 5 {
		factor *= 1.1
		pathLen -= 5
	}

	return factor
}
