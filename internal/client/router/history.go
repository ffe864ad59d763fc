package router

import "sync"

// History is the in-memory navigation stack of the client.
type History struct {
	mu    sync.Mutex
	stack []string
}

func NewHistory(start string) *History {
	if start == "" {
		start = HomePath
	}
	return &History{stack: []string{clean(start)}}
}

func (h *History) Current() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.stack[len(h.stack)-1]
}

// Navigate pushes path unless it is already the current view.
func (h *History) Navigate(path string) {
	path = clean(path)

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.stack[len(h.stack)-1] != path {
		h.stack = append(h.stack, path)
	}
}

// Back pops the current view and returns the one below it. The first
// view is never popped.
func (h *History) Back() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.stack) > 1 {
		h.stack = h.stack[:len(h.stack)-1]
	}
	return h.stack[len(h.stack)-1]
}
