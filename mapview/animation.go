package mapview

import (
	"time"

	"github.com/olablt/gio-mapdemo/geo"
)

type animation struct {
	from, to geo.Camera
	start    time.Time
	duration time.Duration
}

// at returns the camera at now and whether the animation has finished.
func (a animation) at(now time.Time) (geo.Camera, bool) {
	if a.duration <= 0 {
		return a.to, true
	}
	t := float64(now.Sub(a.start)) / float64(a.duration)
	if t >= 1 {
		return a.to, true
	}
	if t < 0 {
		t = 0
	}
	e := easeOutCubic(t)
	return geo.Camera{
		Center:  geo.Lerp(a.from.Center, a.to.Center, e),
		Zoom:    a.from.Zoom + (a.to.Zoom-a.from.Zoom)*e,
		Heading: a.to.Heading,
		Pitch:   a.to.Pitch,
	}, false
}

func easeOutCubic(t float64) float64 {
	u := 1 - t
	return 1 - u*u*u
}
