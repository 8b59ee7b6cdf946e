package store

// Listener observes every committed transition.
type Listener func(prev, next State)

// Store owns the current snapshot. It is not safe for concurrent use: one
// goroutine (the UI loop) dispatches, async work reports back via messages.
type Store struct {
	state     State
	reducer   Reducer
	listeners map[int]Listener
	nextID    int
	order     []int
}

// Option configures a Store.
type Option func(*Store)

// WithStaleGuard drops the content of resolutions overtaken by a newer
// request of the same kind. Counters are still decremented.
func WithStaleGuard() Option {
	return func(s *Store) { s.reducer.DropStale = true }
}

// WithState seeds the store with an explicit snapshot.
func WithState(st State) Option {
	return func(s *Store) { s.state = st }
}

// New returns a store holding Initial() unless WithState is given.
func New(opts ...Option) *Store {
	s := &Store{state: Initial(), listeners: map[int]Listener{}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current snapshot.
func (s *Store) State() State {
	return s.state
}

// StaleGuard reports whether WithStaleGuard is active.
func (s *Store) StaleGuard() bool {
	return s.reducer.DropStale
}

// Dispatch applies a and notifies listeners in subscription order.
func (s *Store) Dispatch(a Action) {
	if a == nil {
		return
	}
	prev := s.state
	s.state = s.reducer.Reduce(prev, a)
	for _, id := range append([]int(nil), s.order...) {
		if l, ok := s.listeners[id]; ok {
			l(prev, s.state)
		}
	}
}

// Subscribe registers l and returns a function that removes it.
func (s *Store) Subscribe(l Listener) (cancel func()) {
	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	s.order = append(s.order, id)
	return func() {
		delete(s.listeners, id)
		for i, v := range s.order {
			if v == id {
				s.order = append(s.order[:i:i], s.order[i+1:]...)
				break
			}
		}
	}
}
