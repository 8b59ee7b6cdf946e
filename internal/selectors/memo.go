package selectors

import "sync"

// memo is a single-entry cache: it recomputes only when the key changes.
type memo[K comparable, V any] struct {
	mu    sync.Mutex
	fn    func(K) V
	key   K
	val   V
	valid bool
	calls int
}

func newMemo[K comparable, V any](fn func(K) V) *memo[K, V] {
	return &memo[K, V]{fn: fn}
}

func (m *memo[K, V]) get(k K) V {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.valid && m.key == k {
		return m.val
	}
	m.calls++
	m.key, m.val, m.valid = k, m.fn(k), true
	return m.val
}
