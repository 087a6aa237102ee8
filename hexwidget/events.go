package hexwidget

import "fmt"

// EventKind identifies the notifications of an animation.
type EventKind uint8

const (
	EventStart EventKind = iota
	EventProgress
	EventEnd
)

func (k EventKind) String() string {
	switch k {
	case EventStart:
		return "animation-start"
	case EventProgress:
		return "animation-progress"
	case EventEnd:
		return "animation-end"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event is sent to the listeners.
// Progress and Value are only meaningful for EventProgress.
type Event struct {
	Kind     EventKind
	Progress float64
	Value    float64
}

type listener struct {
	id int
	fn func(Event)
}

// AddListener registers fn to be called for each event, in
// registration order. The returned function removes it.
func (w *Widget) AddListener(fn func(Event)) (remove func()) {
	id := w.nextListenerID
	w.nextListenerID++
	w.listeners = append(w.listeners, listener{id: id, fn: fn})
	return func() {
		for i, l := range w.listeners {
			if l.id == id {
				w.listeners = append(w.listeners[:i:i], w.listeners[i+1:]...)
				return
			}
		}
	}
}

func (w *Widget) emit(e Event) {
	// listeners may remove themselves while called
	listeners := append([]listener(nil), w.listeners...)
	for _, l := range listeners {
		l.fn(e)
	}
}
