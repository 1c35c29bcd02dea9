package probemap

// Set is an open-addressing hash set over opaque keys, sharing the map's
// probing core with a zero-sized value slot. Not safe for concurrent
// use.
type Set[K any] struct {
	table[K, struct{}]
}

// SetOption configures a Set; WithKeyDestructor and WithLogger apply.
type SetOption[K any] = Option[K, struct{}]

// NewSet returns a set with the given initial capacity (DefaultCapacity
// if zero, ErrOutOfRange if negative) and the required equality and hash
// callbacks.
func NewSet[K any](capacity int, equal EqualFunc[K], hash HashFunc[K], opts ...SetOption[K]) (*Set[K], error) {
	var s Set[K]
	if err := s.init(capacity, equal, hash, opts...); err != nil {
		return nil, err
	}

	return &s, nil
}

// Add puts key in the set and reports whether it was newly added; adding
// a present key is a no-op and the duplicate key is not adopted, so an
// owning caller remains responsible for it. The set grows when the live
// load would exceed 3/4 and compacts when tombstones exceed 1/4 of
// capacity.
func (s *Set[K]) Add(key K) (bool, error) {
	return s.insert(key, struct{}{}, false)
}

func (s *Set[K]) Has(key K) bool {
	_, ok := s.lookup(key)
	return ok
}

// Delete removes key, running the registered key destructor. Reports
// whether the key was present.
func (s *Set[K]) Delete(key K) bool {
	return s.remove(key)
}

// Grow rehashes into at least the given capacity. Capacity never
// shrinks: smaller targets are a no-op.
func (s *Set[K]) Grow(capacity int) error {
	return s.grow(capacity)
}

func (s *Set[K]) Len() int {
	return s.size
}

func (s *Set[K]) Cap() int {
	return s.capacity
}

func (s *Set[K]) LoadFactor() float64 {
	return s.loadFactor()
}

func (s *Set[K]) Stats() Stats {
	return s.stats()
}

// Clear destroys every stored key and releases the slot array. The set
// is closed afterwards: operations report ErrClosed until a new set is
// created.
func (s *Set[K]) Clear() {
	s.clear()
}

// Close is Clear for the end of the set's lifetime. Idempotent.
func (s *Set[K]) Close() {
	if !s.closed() {
		s.clear()
	}
}
