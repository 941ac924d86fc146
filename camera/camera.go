// Package camera issues viewport commands to the map surface. It keeps no
// view state of its own.
package camera

import (
	"context"
	"errors"
	"time"

	"github.com/olablt/gio-mapdemo/geo"
	"github.com/olablt/gio-mapdemo/logging"
	"github.com/olablt/gio-mapdemo/tiles/worker"
)

const (
	FocusDelta    = 0.005
	FocusDuration = 1000 * time.Millisecond
	ZoomDuration  = 300 * time.Millisecond
	readTimeout   = 2 * time.Second
)

var errQueueFull = errors.New("zoom queue full")

// Surface is the command handle of a map widget.
type Surface interface {
	AnimateToRegion(r geo.Region, d time.Duration)
	AnimateCamera(c geo.Camera, d time.Duration)
	Camera(ctx context.Context) (geo.Camera, error)
}

// Controller translates panel actions into surface commands. Zoom steps
// are applied one at a time in the order they were requested.
type Controller struct {
	surface Surface
	queue   *worker.Pool
	log     logging.Logger
}

func New(surface Surface, log logging.Logger) *Controller {
	if log == nil {
		log = logging.Noop()
	}
	c := &Controller{
		surface: surface,
		log:     log.With(logging.String("component", "camera")),
	}
	c.queue = worker.NewPool(1,
		worker.WithQueueSize(16),
		worker.WithTimeout(readTimeout),
		worker.WithErrorHandler(func(err error) {
			c.log.Debug("zoom dropped", logging.Err(err))
		}),
	)
	return c
}

// FocusOn animates the viewport to center on c with a tight zoom.
func (c *Controller) FocusOn(coord geo.Coordinate) {
	c.surface.AnimateToRegion(geo.Region{
		Center:         coord,
		LatitudeDelta:  FocusDelta,
		LongitudeDelta: FocusDelta,
	}, FocusDuration)
}

func (c *Controller) ZoomIn()  { c.zoomBy(1) }
func (c *Controller) ZoomOut() { c.zoomBy(-1) }

func (c *Controller) zoomBy(delta float64) {
	ok := c.queue.Submit(worker.Task{
		Ctx: context.Background(),
		Work: func(ctx context.Context) error {
			cam, err := c.surface.Camera(ctx)
			if err != nil {
				return err
			}
			cam.Zoom += delta
			c.surface.AnimateCamera(cam, ZoomDuration)
			return nil
		},
	})
	if !ok {
		c.log.Debug("zoom dropped", logging.Err(errQueueFull))
	}
}

// Close stops the zoom queue and waits for a running step to finish.
func (c *Controller) Close() {
	c.queue.Shutdown()
}
