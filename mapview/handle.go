package mapview

import (
	"context"
	"errors"
	"time"

	"github.com/olablt/gio-mapdemo/geo"
	"github.com/olablt/gio-mapdemo/logging"
)

// ErrNotMounted is returned by Camera before the view's first frame.
var ErrNotMounted = errors.New("mapview: not mounted")

// command is a request from another goroutine, applied on the UI
// goroutine at the start of the next frame in arrival order.
type command struct {
	region   *geo.Region
	camera   *geo.Camera
	duration time.Duration
	reply    chan<- geo.Camera
}

// AnimateToRegion moves the view to show r over d. It is dropped if the
// view is not mounted.
func (mv *MapView) AnimateToRegion(r geo.Region, d time.Duration) {
	mv.send(command{region: &r, duration: d})
}

// AnimateCamera moves the view to c over d. It is dropped if the view is
// not mounted.
func (mv *MapView) AnimateCamera(c geo.Camera, d time.Duration) {
	mv.send(command{camera: &c, duration: d})
}

// Camera reports the camera the view is showing or, while an animation
// runs, the camera it is animating to. It waits for the next frame.
func (mv *MapView) Camera(ctx context.Context) (geo.Camera, error) {
	if !mv.mounted.Load() {
		return geo.Camera{}, ErrNotMounted
	}
	reply := make(chan geo.Camera, 1)
	select {
	case mv.cmds <- command{reply: reply}:
	case <-ctx.Done():
		return geo.Camera{}, ctx.Err()
	}
	mv.invalidate()
	select {
	case cam := <-reply:
		return cam, nil
	case <-ctx.Done():
		return geo.Camera{}, ctx.Err()
	}
}

func (mv *MapView) send(cmd command) {
	if !mv.mounted.Load() {
		mv.log.Debug("command dropped", logging.Err(ErrNotMounted))
		return
	}
	select {
	case mv.cmds <- cmd:
		mv.invalidate()
	default:
		mv.log.Warn("command dropped: queue full")
	}
}

// invalidate asks the window for a new frame.
func (mv *MapView) invalidate() {
	select {
	case mv.refresh <- struct{}{}:
	default:
	}
}

// Unmount makes later commands no-ops until the next frame.
func (mv *MapView) Unmount() {
	mv.mounted.Store(false)
}
