package camera

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/olablt/gio-mapdemo/geo"
	"github.com/olablt/gio-mapdemo/logging"
)

type call struct {
	region   *geo.Region
	camera   *geo.Camera
	duration time.Duration
}

// fakeSurface applies commands immediately, the way a mounted map reports
// the camera it is animating towards.
type fakeSurface struct {
	mu      sync.Mutex
	cam     geo.Camera
	calls   []call
	readErr error
	reads   int
}

func (f *fakeSurface) AnimateToRegion(r geo.Region, d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call{region: &r, duration: d})
}

func (f *fakeSurface) AnimateCamera(c geo.Camera, d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cam = c
	f.calls = append(f.calls, call{camera: &c, duration: d})
}

func (f *fakeSurface) Camera(ctx context.Context) (geo.Camera, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads++
	if f.readErr != nil {
		return geo.Camera{}, f.readErr
	}
	return f.cam, nil
}

func (f *fakeSurface) snapshot() ([]call, int, geo.Camera) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]call{}, f.calls...), f.reads, f.cam
}

func TestFocusOn(t *testing.T) {
	t.Parallel()

	s := &fakeSurface{}
	c := New(s, logging.Noop())
	defer c.Close()

	target := geo.Coordinate{Latitude: -34.6050, Longitude: -58.4180}
	c.FocusOn(target)

	calls, _, _ := s.snapshot()
	require.Len(t, calls, 1)
	require.Equal(t, geo.Region{Center: target, LatitudeDelta: 0.005, LongitudeDelta: 0.005}, *calls[0].region)
	require.Equal(t, time.Second, calls[0].duration)
}

func TestZoomStepsAreExactAndOrdered(t *testing.T) {
	t.Parallel()

	s := &fakeSurface{cam: geo.Camera{Zoom: 15}}
	c := New(s, nil)
	defer c.Close()

	c.ZoomIn()
	c.ZoomIn()
	c.ZoomOut()

	require.Eventually(t, func() bool {
		calls, _, _ := s.snapshot()
		return len(calls) == 3
	}, 2*time.Second, time.Millisecond)

	calls, _, cam := s.snapshot()
	var zooms []float64
	for _, cl := range calls {
		require.NotNil(t, cl.camera)
		require.Equal(t, 300*time.Millisecond, cl.duration)
		zooms = append(zooms, cl.camera.Zoom)
	}
	require.Equal(t, []float64{16, 17, 16}, zooms)
	require.Equal(t, 16.0, cam.Zoom)
}

func TestZoomDroppedWhenUnmounted(t *testing.T) {
	t.Parallel()

	s := &fakeSurface{readErr: errors.New("not mounted")}
	c := New(s, logging.Noop())

	c.ZoomIn()
	require.Eventually(t, func() bool {
		_, reads, _ := s.snapshot()
		return reads == 1
	}, 2*time.Second, time.Millisecond)
	c.Close()

	calls, _, _ := s.snapshot()
	require.Empty(t, calls)
}
