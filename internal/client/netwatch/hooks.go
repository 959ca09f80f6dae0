package netwatch

import "sync"

// hookSet holds transition callbacks keyed by registration order.
type hookSet struct {
	mu   sync.Mutex
	next int
	fns  map[int]func()
}

func (h *hookSet) add(fn func()) (remove func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.fns == nil {
		h.fns = make(map[int]func())
	}
	id := h.next
	h.next++
	h.fns[id] = fn

	return func() {
		h.mu.Lock()
		delete(h.fns, id)
		h.mu.Unlock()
	}
}

// fire runs a snapshot of the hooks outside the lock.
func (h *hookSet) fire() {
	h.mu.Lock()
	snapshot := make([]func(), 0, len(h.fns))
	for i := 0; i < h.next; i++ {
		if fn, ok := h.fns[i]; ok {
			snapshot = append(snapshot, fn)
		}
	}
	h.mu.Unlock()

	for _, fn := range snapshot {
		fn()
	}
}

// Static is a connectivity signal flipped by hand.
type Static struct {
	mu     sync.Mutex
	online bool
	hooks  hookSet
}

func NewStatic(online bool) *Static {
	return &Static{online: online}
}

func (s *Static) Online() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.online
}

// SetOnline updates the state; going from offline to online runs the hooks
// synchronously before SetOnline returns.
func (s *Static) SetOnline(v bool) {
	s.mu.Lock()
	came := v && !s.online
	s.online = v
	s.mu.Unlock()

	if came {
		s.hooks.fire()
	}
}

func (s *Static) OnOnline(fn func()) (remove func()) {
	return s.hooks.add(fn)
}
