package state

import (
	"github.com/google/uuid"

	"github.com/olablt/gio-mapdemo/geo"
	"github.com/olablt/gio-mapdemo/logging"
)

// Store owns the current State and applies actions to it.
type Store struct {
	state     State
	numbering Numbering
	newID     func() string
	log       logging.Logger
	listeners []func(prev, next State)
}

// Option configures a Store.
type Option func(*Store)

func WithNumbering(n Numbering) Option {
	return func(s *Store) { s.numbering = n }
}

// WithIDFunc replaces the custom pin ID generator.
func WithIDFunc(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

func WithLogger(l logging.Logger) Option {
	return func(s *Store) { s.log = l }
}

func NewStore(opts ...Option) *Store {
	s := &Store{
		state: Initial(),
		newID: newPinID,
		log:   logging.Noop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// newPinID returns a time-ordered unique ID.
func newPinID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return "custom-" + uuid.NewString()
	}
	return "custom-" + id.String()
}

// State returns the current state. Callers must not modify Pins.
func (s *Store) State() State { return s.state }

// Subscribe registers fn to run after every dispatch.
func (s *Store) Subscribe(fn func(prev, next State)) {
	s.listeners = append(s.listeners, fn)
}

// Dispatch applies a and returns the new state.
func (s *Store) Dispatch(a Action) State {
	prev := s.state
	s.state = Reduce(prev, a)
	for _, fn := range s.listeners {
		fn(prev, s.state)
	}
	return s.state
}

func (s *Store) CycleMapType() MapType {
	next := s.Dispatch(CycleMapType{}).MapType
	s.log.Info("map type changed", logging.String("map_type", next.String()))
	return next
}

func (s *Store) ToggleTraffic() bool {
	return s.Dispatch(ToggleTraffic{}).TrafficVisible
}

func (s *Store) TogglePanel() bool {
	return s.Dispatch(TogglePanel{}).PanelVisible
}

// AddPinAt appends a custom pin at c and returns it.
func (s *Store) AddPinAt(c geo.Coordinate) CustomPin {
	st := s.Dispatch(AddPin{ID: s.newID(), Coordinate: c, Numbering: s.numbering})
	pin := st.Pins[len(st.Pins)-1]
	s.log.Info("pin added",
		logging.String("id", pin.ID),
		logging.String("title", pin.Title),
		logging.String("coordinate", c.String()),
	)
	return pin
}

// RemoveLastPin removes the newest custom pin. It reports false, and does
// nothing, when there are none.
func (s *Store) RemoveLastPin() (CustomPin, bool) {
	pins := s.state.Pins
	if len(pins) == 0 {
		return CustomPin{}, false
	}
	last := pins[len(pins)-1]
	s.Dispatch(RemoveLastPin{})
	s.log.Info("pin removed", logging.String("id", last.ID))
	return last, true
}

// ClearAllPins removes every custom pin and returns how many there were.
func (s *Store) ClearAllPins() int {
	n := len(s.state.Pins)
	s.Dispatch(ClearPins{})
	if n > 0 {
		s.log.Info("pins cleared", logging.Int("count", n))
	}
	return n
}
