// Package selection holds the active filter key of a view.
package selection

// Selection holds at most one selected key. The zero value has nothing selected.
// Keys are not validated against any known set.
type Selection[K comparable] struct {
	key K
	set bool
}

// New returns a Selection with k already selected.
func New[K comparable](k K) Selection[K] {
	return Selection[K]{key: k, set: true}
}

// Select replaces the current selection.
func (s *Selection[K]) Select(k K) {
	s.key = k
	s.set = true
}

// Clear drops the selection.
func (s *Selection[K]) Clear() {
	var zero K
	s.key = zero
	s.set = false
}

// Current returns the selected key and whether one is set.
func (s Selection[K]) Current() (K, bool) {
	return s.key, s.set
}

// Is reports whether k is the selected key.
func (s Selection[K]) Is(k K) bool {
	return s.set && s.key == k
}
