// Package screen composes the map demo's single screen: the map surface,
// the floating control panel and the button that shows or hides it.
package screen

import (
	"image"

	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"github.com/olablt/gio-mapdemo/geo"
	"github.com/olablt/gio-mapdemo/logging"
	"github.com/olablt/gio-mapdemo/mapview"
	"github.com/olablt/gio-mapdemo/places"
	"github.com/olablt/gio-mapdemo/state"
)

// Camera moves the map's viewport.
type Camera interface {
	FocusOn(c geo.Coordinate)
	ZoomIn()
	ZoomOut()
}

// MapScreen owns the state store and drives the map and panel from it.
type MapScreen struct {
	th     *material.Theme
	store  *state.Store
	view   *mapview.MapView
	camera Camera
	base   mapview.Options
	log    logging.Logger

	toggle widget.Clickable
	panel  *ControlPanel
	dirty  bool
}

// New builds the screen. base carries the map options that do not depend
// on state, such as the initial region and user location.
func New(th *material.Theme, store *state.Store, view *mapview.MapView, cam Camera, base mapview.Options, log logging.Logger) *MapScreen {
	if log == nil {
		log = logging.Noop()
	}
	s := &MapScreen{
		th:     th,
		store:  store,
		view:   view,
		camera: cam,
		base:   base,
		log:    log.With(logging.String("component", "screen")),
	}
	if store.State().PanelVisible {
		s.panel = s.newPanel()
	}
	store.Subscribe(s.onChange)
	s.logOverlays(store.State())
	return s
}

func (s *MapScreen) newPanel() *ControlPanel {
	return NewControlPanel(Actions{
		CycleMapType:  func() { s.store.CycleMapType() },
		ToggleTraffic: func() { s.store.ToggleTraffic() },
		RemoveLastPin: func() { s.store.RemoveLastPin() },
		ClearAllPins:  func() { s.store.ClearAllPins() },
		ZoomIn:        s.camera.ZoomIn,
		ZoomOut:       s.camera.ZoomOut,
		FocusOn:       s.camera.FocusOn,
	})
}

// onChange mounts or unmounts the panel and schedules a redraw.
func (s *MapScreen) onChange(prev, next state.State) {
	s.dirty = true
	if prev.PanelVisible != next.PanelVisible {
		if next.PanelVisible {
			s.panel = s.newPanel()
		} else {
			s.panel = nil
		}
	}
	if len(prev.Pins) != len(next.Pins) {
		s.logOverlays(next)
	}
}

func (s *MapScreen) logOverlays(st state.State) {
	data, err := places.FeatureCollection(st.Pins).MarshalJSON()
	if err != nil {
		s.log.Warn("encode overlays", logging.Err(err))
		return
	}
	s.log.Debug("overlays", logging.String("geojson", string(data)))
}

// Panel returns the mounted control panel, or nil while it is hidden.
func (s *MapScreen) Panel() *ControlPanel { return s.panel }

func (s *MapScreen) addPin(c geo.Coordinate) {
	s.store.AddPinAt(c)
}

func (s *MapScreen) options(st state.State) mapview.Options {
	opts := s.base
	opts.Style = mapStyle(st.MapType)
	opts.ShowTraffic = st.TrafficVisible
	opts.OnTap = s.addPin
	return opts
}

func (s *MapScreen) Layout(gtx C) D {
	for s.toggle.Clicked(gtx) {
		s.store.TogglePanel()
	}
	if s.panel != nil {
		s.panel.Update(gtx)
	}

	st := s.store.State()
	panelMaxY := gtx.Constraints.Max.Y * 6 / 10
	gtx.Constraints.Min = gtx.Constraints.Max

	dims := layout.Stack{}.Layout(gtx,
		layout.Expanded(func(gtx C) D {
			return s.view.Layout(gtx, s.options(st), overlays(st))
		}),
		layout.Expanded(func(gtx C) D {
			if s.panel == nil {
				return D{}
			}
			return layout.Inset{Top: unit.Dp(40), Left: unit.Dp(10), Right: unit.Dp(10)}.Layout(gtx, func(gtx C) D {
				gtx.Constraints.Min = image.Point{X: gtx.Constraints.Max.X}
				gtx.Constraints.Max.Y = min(gtx.Constraints.Max.Y, panelMaxY)
				return s.panel.Layout(gtx, s.th, st)
			})
		}),
		layout.Expanded(func(gtx C) D {
			gtx.Constraints.Min = gtx.Constraints.Max
			return layout.NE.Layout(gtx, func(gtx C) D {
				return layout.Inset{Top: unit.Dp(50), Right: unit.Dp(20)}.Layout(gtx, s.layoutToggle)
			})
		}),
	)

	// Taps on the map change state after it has been drawn.
	if s.dirty {
		s.dirty = false
		gtx.Execute(op.InvalidateCmd{})
	}
	return dims
}

func (s *MapScreen) layoutToggle(gtx C) D {
	label := "≡"
	if s.panel != nil {
		label = "×"
	}
	size := gtx.Dp(40)
	gtx.Constraints = layout.Exact(image.Pt(size, size))
	b := material.Button(s.th, &s.toggle, label)
	b.Background = buttonColor
	b.TextSize = unit.Sp(20)
	b.CornerRadius = unit.Dp(20)
	b.Inset = layout.UniformInset(0)
	return b.Layout(gtx)
}
