package page

import "sync"

// EventKind names what changed without a visitor action.
type EventKind string

const (
	EventClock EventKind = "clock"
	EventIcon  EventKind = "icon"
)

// Event is pushed to subscribers when a timer changes the page.
type Event struct {
	Kind      EventKind
	Clock     string
	Surprised bool
}

// hub fans events out to subscribers. A subscriber that is not keeping up
// misses events instead of stalling the timer that published them.
type hub struct {
	mu     sync.Mutex
	buffer int
	next   int
	subs   map[int]chan Event
	closed bool
}

func newHub(buffer int) *hub {
	if buffer <= 0 {
		buffer = 8
	}
	return &hub{buffer: buffer, subs: make(map[int]chan Event)}
}

func (h *hub) subscribe() (<-chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, h.buffer)
	if h.closed {
		close(ch)
		return ch, func() {}
	}
	id := h.next
	h.next++
	h.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			if c, ok := h.subs[id]; ok {
				delete(h.subs, id)
				close(c)
			}
		})
	}
}

func (h *hub) publish(e Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.subs {
		select {
		case ch <- e:
		default:
		}
	}
}

func (h *hub) close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for id, ch := range h.subs {
		delete(h.subs, id)
		close(ch)
	}
}

func (h *hub) len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
