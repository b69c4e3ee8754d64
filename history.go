package navrouter

import (
	"fmt"
	"net/url"
	"strings"
	"sync"
)

// History is the URL history the router reads from and writes to.
// BrowserHistory is the real one; MemoryHistory is for tests and for
// running outside a browser.
type History interface {
	// Push adds a new entry with the given path and query.
	Push(pathAndQuery string)
	// Replace overwrites the current entry.
	Replace(pathAndQuery string)
	// Location returns the current logical URL.
	Location() (*url.URL, error)
	// Listen registers f to be called when the user moves back or forward.
	Listen(f func()) error
	// Unlisten removes the function set by Listen.
	Unlisten() error
}

// MemoryHistory is an in-memory History with a back/forward stack.
type MemoryHistory struct {
	mu      sync.Mutex
	entries []string
	idx     int
	onPop   func()
}

// NewMemoryHistory returns a MemoryHistory positioned at start.
func NewMemoryHistory(start string) *MemoryHistory {
	if start == "" {
		start = "/"
	}
	return &MemoryHistory{entries: []string{start}}
}

// Push implements History.  Any forward entries are discarded.
func (h *MemoryHistory) Push(pathAndQuery string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries[:h.idx+1], pathAndQuery)
	h.idx++
}

// Replace implements History.
func (h *MemoryHistory) Replace(pathAndQuery string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries[h.idx] = pathAndQuery
}

// Location implements History.
func (h *MemoryHistory) Location() (*url.URL, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return parseLocation(h.entries[h.idx])
}

// Listen implements History.
func (h *MemoryHistory) Listen(f func()) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onPop = f
	return nil
}

// Unlisten implements History.
func (h *MemoryHistory) Unlisten() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onPop = nil
	return nil
}

// Back moves one entry back and fires the listener, like the browser back button.
// It reports false if already at the first entry.
func (h *MemoryHistory) Back() bool {
	return h.move(-1)
}

// Forward moves one entry forward and fires the listener.
func (h *MemoryHistory) Forward() bool {
	return h.move(1)
}

func (h *MemoryHistory) move(delta int) bool {
	h.mu.Lock()
	n := h.idx + delta
	if n < 0 || n >= len(h.entries) {
		h.mu.Unlock()
		return false
	}
	h.idx = n
	f := h.onPop
	h.mu.Unlock()

	// called without the lock so the listener can read Location
	if f != nil {
		f()
	}
	return true
}

// Entries returns a copy of the stack and the current index.
func (h *MemoryHistory) Entries() ([]string, int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.entries...), h.idx
}

// parseLocation reads s as a path with optional query and fragment.
// Unlike url.Parse, a leading "//" stays part of the path instead of
// naming a host.
func parseLocation(s string) (*url.URL, error) {
	u := &url.URL{}
	s, u.Fragment, _ = strings.Cut(s, "#")
	s, u.RawQuery, _ = strings.Cut(s, "?")
	p, err := url.PathUnescape(s)
	if err != nil {
		return nil, fmt.Errorf("navrouter: parse %q: %w", s, err)
	}
	u.Path, u.RawPath = p, s
	return u, nil
}
