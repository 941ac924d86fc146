package screen

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"gioui.org/font"
	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"github.com/olablt/gio-mapdemo/geo"
	"github.com/olablt/gio-mapdemo/places"
	"github.com/olablt/gio-mapdemo/state"
)

type (
	C = layout.Context
	D = layout.Dimensions
)

// Actions are the callbacks the panel's buttons invoke.
type Actions struct {
	CycleMapType  func()
	ToggleTraffic func()
	RemoveLastPin func()
	ClearAllPins  func()
	ZoomIn        func()
	ZoomOut       func()
	FocusOn       func(geo.Coordinate)
}

// ControlPanel is the floating list of actions. It holds only widget state;
// everything it shows comes from the State passed to Layout.
type ControlPanel struct {
	actions Actions
	pois    []places.PointOfInterest

	list       widget.List
	mapType    widget.Clickable
	traffic    widget.Clickable
	removeLast widget.Clickable
	clearAll   widget.Clickable
	zoomIn     widget.Clickable
	zoomOut    widget.Clickable
	navigate   []widget.Clickable
}

func NewControlPanel(actions Actions) *ControlPanel {
	pois := places.PointsOfInterest()
	return &ControlPanel{
		actions:  actions,
		pois:     pois,
		list:     widget.List{List: layout.List{Axis: layout.Vertical}},
		navigate: make([]widget.Clickable, len(pois)),
	}
}

// Update runs the actions for buttons clicked since the last frame.
func (p *ControlPanel) Update(gtx C) {
	clicks := []struct {
		btn *widget.Clickable
		fn  func()
	}{
		{&p.mapType, p.actions.CycleMapType},
		{&p.traffic, p.actions.ToggleTraffic},
		{&p.removeLast, p.actions.RemoveLastPin},
		{&p.clearAll, p.actions.ClearAllPins},
		{&p.zoomIn, p.actions.ZoomIn},
		{&p.zoomOut, p.actions.ZoomOut},
	}
	for _, c := range clicks {
		for c.btn.Clicked(gtx) {
			if c.fn != nil {
				c.fn()
			}
		}
	}
	for i := range p.navigate {
		for p.navigate[i].Clicked(gtx) {
			if p.actions.FocusOn != nil {
				p.actions.FocusOn(p.pois[i].Coordinate)
			}
		}
	}
}

func (p *ControlPanel) Layout(gtx C, th *material.Theme, st state.State) D {
	return layout.Background{}.Layout(gtx, p.layoutBackground, func(gtx C) D {
		return layout.UniformInset(unit.Dp(10)).Layout(gtx, func(gtx C) D {
			rows := p.rows(th, st)
			return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
				layout.Rigid(func(gtx C) D {
					l := material.Label(th, unit.Sp(14), "Map Feature Demo")
					l.Font.Weight = font.Bold
					l.Color = titleColor
					return l.Layout(gtx)
				}),
				layout.Rigid(layout.Spacer{Height: unit.Dp(3)}.Layout),
				layout.Rigid(func(gtx C) D {
					l := material.Label(th, unit.Sp(10), "Centered on "+places.HomeLabel)
					l.Color = subtitleColor
					return l.Layout(gtx)
				}),
				layout.Rigid(layout.Spacer{Height: unit.Dp(10)}.Layout),
				layout.Rigid(func(gtx C) D {
					gtx.Constraints.Min.Y = 0
					return material.List(th, &p.list).Layout(gtx, len(rows), func(gtx C, i int) D {
						return rows[i](gtx)
					})
				}),
			)
		})
	})
}

// layoutBackground paints the panel and keeps taps on it from reaching
// the map underneath.
func (p *ControlPanel) layoutBackground(gtx C) D {
	size := gtx.Constraints.Min
	defer clip.UniformRRect(image.Rectangle{Max: size}, gtx.Dp(10)).Push(gtx.Ops).Pop()
	for {
		_, ok := gtx.Event(pointer.Filter{
			Target:  p,
			Kinds:   pointer.Press | pointer.Release | pointer.Drag | pointer.Scroll,
			ScrollY: pointer.ScrollRange{Min: -10, Max: 10},
		})
		if !ok {
			break
		}
	}
	event.Op(gtx.Ops, p)
	paint.Fill(gtx.Ops, panelColor)
	return D{Size: size}
}

func (p *ControlPanel) rows(th *material.Theme, st state.State) []layout.Widget {
	rows := []layout.Widget{
		button(th, &p.mapType, mapTypeLabel(st), buttonColor),
		button(th, &p.traffic, trafficLabel(st), buttonColor),
		sectionTitle(th, "Add Locations:"),
		textRow(th, "Tap the map to add markers", featureColor),
	}
	if len(st.Pins) > 0 {
		rows = append(rows,
			textRow(th, markerCountLabel(st), countColor),
			button(th, &p.removeLast, "Remove Last", removeColor),
			button(th, &p.clearAll, "Clear All", clearColor),
		)
	}
	rows = append(rows,
		p.zoomRow(th),
		sectionTitle(th, "Quick Navigation:"),
	)
	for i, poi := range p.pois {
		rows = append(rows, button(th, &p.navigate[i], poi.Title, pinColor(poi.Color)))
	}
	rows = append(rows, sectionTitle(th, "Active Features:"))
	for _, f := range featureLines() {
		rows = append(rows, textRow(th, f, featureColor))
	}
	return rows
}

func (p *ControlPanel) zoomRow(th *material.Theme) layout.Widget {
	zoomButton := func(btn *widget.Clickable, label string) layout.Widget {
		return func(gtx C) D {
			b := material.Button(th, btn, label)
			b.Background = zoomColor
			b.TextSize = unit.Sp(16)
			b.Font.Weight = font.Bold
			b.CornerRadius = unit.Dp(6)
			b.Inset = layout.UniformInset(unit.Dp(8))
			return b.Layout(gtx)
		}
	}
	return func(gtx C) D {
		return layout.Inset{Bottom: unit.Dp(8)}.Layout(gtx, func(gtx C) D {
			return layout.Flex{Spacing: layout.SpaceBetween}.Layout(gtx,
				layout.Flexed(0.48, zoomButton(&p.zoomIn, "+")),
				layout.Flexed(0.04, layout.Spacer{}.Layout),
				layout.Flexed(0.48, zoomButton(&p.zoomOut, "-")),
			)
		})
	}
}

func button(th *material.Theme, btn *widget.Clickable, label string, bg color.NRGBA) layout.Widget {
	return func(gtx C) D {
		return layout.Inset{Bottom: unit.Dp(6)}.Layout(gtx, func(gtx C) D {
			gtx.Constraints.Min.X = gtx.Constraints.Max.X
			b := material.Button(th, btn, label)
			b.Background = bg
			b.TextSize = unit.Sp(12)
			b.Font.Weight = font.SemiBold
			b.CornerRadius = unit.Dp(6)
			b.Inset = layout.UniformInset(unit.Dp(8))
			return b.Layout(gtx)
		})
	}
}

func sectionTitle(th *material.Theme, s string) layout.Widget {
	return func(gtx C) D {
		return layout.Inset{Top: unit.Dp(8), Bottom: unit.Dp(6)}.Layout(gtx, func(gtx C) D {
			l := material.Label(th, unit.Sp(12), s)
			l.Font.Weight = font.Bold
			l.Color = titleColor
			return l.Layout(gtx)
		})
	}
}

func textRow(th *material.Theme, s string, col color.NRGBA) layout.Widget {
	return func(gtx C) D {
		return layout.Inset{Bottom: unit.Dp(3)}.Layout(gtx, func(gtx C) D {
			l := material.Label(th, unit.Sp(10), s)
			l.Color = col
			return l.Layout(gtx)
		})
	}
}

func mapTypeLabel(st state.State) string {
	return "Map Type: " + strings.ToUpper(st.MapType.String())
}

func trafficLabel(st state.State) string {
	if st.TrafficVisible {
		return "Traffic: ON"
	}
	return "Traffic: OFF"
}

func markerCountLabel(st state.State) string {
	return fmt.Sprintf("Markers added: %d", len(st.Pins))
}

func featureLines() []string {
	return []string{
		"• Custom markers",
		"• Info callouts",
		fmt.Sprintf("• Polyline route (%.0f m)", places.RouteLength()),
		fmt.Sprintf("• Circle overlay (%d m)", places.AreaRadiusMeters),
		"• User location",
		"• 3D buildings",
		"• Compass and scale",
	}
}
