package prompt

import "sync"

// History tracks previously entered prompt answers for the lifetime of a
// session. Entries are append-only, oldest first; once the capacity is
// reached the oldest entries fall off.
type History struct {
	mu    sync.Mutex
	items []string
	max   int
}

// NewHistory creates a history with the given capacity.
func NewHistory(max int) *History {
	if max <= 0 {
		max = 100
	}
	return &History{
		items: make([]string, 0, max),
		max:   max,
	}
}

// Add appends an entry. Empty entries are ignored.
func (h *History) Add(entry string) {
	if entry == "" {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.items = append(h.items, entry)
	if len(h.items) > h.max {
		h.items = h.items[len(h.items)-h.max:]
	}
}

// Last returns the most recent entry.
func (h *History) Last() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.items) == 0 {
		return "", false
	}
	return h.items[len(h.items)-1], true
}

// Values returns a copy of all entries, oldest first.
func (h *History) Values() []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	result := make([]string, len(h.items))
	copy(result, h.items)
	return result
}

// Len returns the number of entries.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.items)
}
