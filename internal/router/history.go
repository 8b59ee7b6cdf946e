package router

// History is the address bar: a current location plus a way to move it.
type History interface {
	Location() Location
	Push(Location)
	Replace(Location)
}

// MemoryHistory is a History with back and forward stacks.
type MemoryHistory struct {
	entries []Location
	index   int
}

// NewMemoryHistory starts a history at initial.
func NewMemoryHistory(initial Location) *MemoryHistory {
	return &MemoryHistory{entries: []Location{initial}}
}

func (h *MemoryHistory) Location() Location {
	return h.entries[h.index]
}

// Push adds loc and drops any forward entries.
func (h *MemoryHistory) Push(loc Location) {
	h.entries = append(h.entries[:h.index+1:h.index+1], loc)
	h.index++
}

func (h *MemoryHistory) Replace(loc Location) {
	h.entries[h.index] = loc
}

// Back moves one entry back. It reports false at the start of history.
func (h *MemoryHistory) Back() (Location, bool) {
	if h.index == 0 {
		return h.Location(), false
	}
	h.index--
	return h.Location(), true
}

// Forward moves one entry forward. It reports false at the end of history.
func (h *MemoryHistory) Forward() (Location, bool) {
	if h.index >= len(h.entries)-1 {
		return h.Location(), false
	}
	h.index++
	return h.Location(), true
}

// Len is the number of entries.
func (h *MemoryHistory) Len() int {
	return len(h.entries)
}
