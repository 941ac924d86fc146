package mapview

import (
	"math"

	"gioui.org/f32"
)

// dashRuns splits a polyline into the runs that are drawn under pattern.
// Lengths are in pixels. An empty or all-zero pattern yields the whole line.
func dashRuns(pts []f32.Point, pattern []float32) [][]f32.Point {
	if len(pts) < 2 {
		return nil
	}
	if len(pattern)%2 == 1 {
		pattern = append(append([]float32{}, pattern...), pattern...)
	}
	var total float32
	for _, p := range pattern {
		total += p
	}
	if total <= 0 {
		return [][]f32.Point{pts}
	}

	var runs [][]f32.Point
	idx := 0
	remaining := pattern[0]
	on := true
	current := []f32.Point{pts[0]}

	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		seg := b.Sub(a)
		length := segLen(seg)
		pos := float32(0)
		for length-pos > remaining {
			pos += remaining
			p := a.Add(seg.Mul(pos / length))
			if on {
				current = append(current, p)
				runs = append(runs, current)
				current = nil
			} else {
				current = []f32.Point{p}
			}
			on = !on
			idx = (idx + 1) % len(pattern)
			remaining = pattern[idx]
		}
		remaining -= length - pos
		if on {
			current = append(current, b)
		}
	}
	if on && len(current) > 1 {
		runs = append(runs, current)
	}
	return runs
}

func segLen(p f32.Point) float32 {
	return float32(math.Hypot(float64(p.X), float64(p.Y)))
}
