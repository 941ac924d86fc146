// Package state holds the map screen's mutable state as a plain record and
// the reducer that moves it from one value to the next. The Store wraps the
// reducer for the UI goroutine; it is not safe for concurrent use.
package state

import (
	"fmt"
	"strings"

	"github.com/olablt/gio-mapdemo/geo"
)

// MapType is the base map style.
type MapType int

const (
	Standard MapType = iota
	Satellite
	Hybrid
)

var mapTypeNames = [...]string{"standard", "satellite", "hybrid"}

func (t MapType) String() string {
	if t < 0 || int(t) >= len(mapTypeNames) {
		return fmt.Sprintf("MapType(%d)", int(t))
	}
	return mapTypeNames[t]
}

// Next returns the following style in the fixed cycle.
func (t MapType) Next() MapType {
	return (t + 1) % MapType(len(mapTypeNames))
}

func (t MapType) MarshalText() ([]byte, error) {
	if t < 0 || int(t) >= len(mapTypeNames) {
		return nil, fmt.Errorf("invalid map type %d", int(t))
	}
	return []byte(t.String()), nil
}

func (t *MapType) UnmarshalText(b []byte) error {
	for i, name := range mapTypeNames {
		if strings.EqualFold(name, string(b)) {
			*t = MapType(i)
			return nil
		}
	}
	return fmt.Errorf("unknown map type %q", b)
}

// PinColor names a marker color.
type PinColor string

const (
	Red    PinColor = "red"
	Blue   PinColor = "blue"
	Green  PinColor = "green"
	Orange PinColor = "orange"
)

// CustomPin is a marker the user added by tapping the map.
type CustomPin struct {
	ID          string         `json:"id"`
	Coordinate  geo.Coordinate `json:"coordinate"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Color       PinColor       `json:"color"`
}

const customPinDescription = "New location added"

// State is everything the screen can change.
type State struct {
	MapType        MapType     `json:"mapType"`
	TrafficVisible bool        `json:"trafficVisible"`
	PanelVisible   bool        `json:"panelVisible"`
	Pins           []CustomPin `json:"pins"`
	// PinsIssued counts pins added this session, including removed ones.
	PinsIssued int `json:"pinsIssued"`
}

// Initial returns the state every process starts with.
func Initial() State {
	return State{
		MapType:      Standard,
		PanelVisible: true,
		Pins:         []CustomPin{},
	}
}

// Numbering selects how custom pin titles are numbered.
type Numbering int

const (
	// NumberByCounter numbers pins 1, 2, 3... for the session; titles never repeat.
	NumberByCounter Numbering = iota
	// NumberByLength numbers a pin by the collection length at creation,
	// so titles repeat after removals.
	NumberByLength
)

// ParseNumbering maps a config value to a Numbering.
func ParseNumbering(s string) (Numbering, error) {
	switch s {
	case "", "counter":
		return NumberByCounter, nil
	case "length":
		return NumberByLength, nil
	}
	return 0, fmt.Errorf("unknown pin numbering %q", s)
}

// Action is a state transition.
type Action interface {
	apply(State) State
}

// Reduce returns the state after a. The input is never modified.
func Reduce(s State, a Action) State {
	return a.apply(s)
}

type CycleMapType struct{}

func (CycleMapType) apply(s State) State {
	s.MapType = s.MapType.Next()
	return s
}

type ToggleTraffic struct{}

func (ToggleTraffic) apply(s State) State {
	s.TrafficVisible = !s.TrafficVisible
	return s
}

type TogglePanel struct{}

func (TogglePanel) apply(s State) State {
	s.PanelVisible = !s.PanelVisible
	return s
}

// AddPin appends a custom pin at Coordinate. ID must be unique for the session.
type AddPin struct {
	ID         string
	Coordinate geo.Coordinate
	Numbering  Numbering
}

func (a AddPin) apply(s State) State {
	n := s.PinsIssued + 1
	if a.Numbering == NumberByLength {
		n = len(s.Pins) + 1
	}
	pins := make([]CustomPin, len(s.Pins), len(s.Pins)+1)
	copy(pins, s.Pins)
	s.Pins = append(pins, CustomPin{
		ID:          a.ID,
		Coordinate:  a.Coordinate,
		Title:       fmt.Sprintf("Location %d", n),
		Description: customPinDescription,
		Color:       Orange,
	})
	s.PinsIssued++
	return s
}

type RemoveLastPin struct{}

func (RemoveLastPin) apply(s State) State {
	if len(s.Pins) == 0 {
		return s
	}
	s.Pins = append([]CustomPin{}, s.Pins[:len(s.Pins)-1]...)
	return s
}

type ClearPins struct{}

func (ClearPins) apply(s State) State {
	s.Pins = []CustomPin{}
	return s
}
