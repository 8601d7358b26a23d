package room

import (
	"math"

	"github.com/fogleman/pt/pt"
)

// CountByLevel returns how many paths sit at each bounce count. Index 0 is always zero.
func CountByLevel(paths []ReflectionPath) []int {
	maxLevel := 0
	for _, p := range paths {
		if p.BounceCount > maxLevel {
			maxLevel = p.BounceCount
		}
	}
	counts := make([]int, maxLevel+1)
	for _, p := range paths {
		counts[p.BounceCount]++
	}
	return counts
}

// ExpectedPathCount is the number of paths at a level for a room with the given number of mirrors.
func ExpectedPathCount(mirrors, level int) int {
	if level < 1 || mirrors < 1 {
		return 0
	}
	return mirrors * int(math.Pow(float64(mirrors-1), float64(level-1)))
}

// ExpectedCumulativePathCount sums ExpectedPathCount over levels 1..maxLevel.
func ExpectedCumulativePathCount(mirrors, maxLevel int) int {
	total := 0
	for k := 1; k <= maxLevel; k++ {
		total += ExpectedPathCount(mirrors, k)
	}
	return total
}

// FarthestImage returns the distance from source to the most remote virtual image.
func FarthestImage(source pt.Vector, paths []ReflectionPath) float64 {
	farthest := 0.0
	for _, p := range paths {
		farthest = math.Max(farthest, p.Position.Sub(source).Length())
	}
	return farthest
}
