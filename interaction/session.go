package interaction

// Tracker remembers the last selected index so that callers can fire
// feedback (haptics, sounds, logging) only when the selection moves to a
// different bar. The zero value is ready to use.
type Tracker struct {
	index int
	valid bool
}

// Observe records the latest selection and reports whether it differs from
// the previous one. Losing the selection is not a change; call Reset when
// the touch ends.
func (t *Tracker) Observe(sel Selection, ok bool) (changed bool) {
	if !ok {
		return false
	}
	changed = !t.valid || t.index != sel.Index
	t.index = sel.Index
	t.valid = true
	return changed
}

// Last returns the last observed index, if any.
func (t *Tracker) Last() (int, bool) {
	return t.index, t.valid
}

func (t *Tracker) Reset() {
	*t = Tracker{}
}

// Phase is the interaction lifecycle of a single chart.
type Phase uint8

const (
	Idle Phase = iota
	Dragging
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	default:
		return "unknown"
	}
}

// Session drives one chart through press, drag and release. It is owned by
// a single chart instance and is not safe for concurrent use.
type Session struct {
	resolver *Resolver
	data     Dataset
	touch    Touch
	tracker  Tracker
}

func NewSession(r *Resolver, data Dataset) *Session {
	return &Session{resolver: r, data: data}
}

// SetData replaces the dataset. An in-progress drag keeps going against the
// new data, but the next move counts as a fresh selection.
func (s *Session) SetData(data Dataset) {
	s.data = data
	s.tracker.Reset()
}

// SetResolver swaps in a resolver for a new geometry, such as after the
// chart is resized.
func (s *Session) SetResolver(r *Resolver) {
	s.resolver = r
}

func (s *Session) Data() Dataset {
	return s.data
}

func (s *Session) Phase() Phase {
	if s.touch.Active() {
		return Dragging
	}
	return Idle
}

// Move handles a press or drag at fraction of the chart width. changed is
// true when the selected bar differs from the one selected by the previous
// move.
func (s *Session) Move(fraction float64) (res Result, changed bool) {
	s.touch = TouchAt(fraction)
	res = s.resolver.Resolve(s.data, s.touch)
	changed = s.tracker.Observe(res.Selection, res.Selected)
	return res, changed
}

// Release ends the drag and returns the idle result.
func (s *Session) Release() Result {
	s.touch = NoTouch
	s.tracker.Reset()
	return s.resolver.Resolve(s.data, s.touch)
}

// Current resolves the session's present state without changing it.
func (s *Session) Current() Result {
	return s.resolver.Resolve(s.data, s.touch)
}
