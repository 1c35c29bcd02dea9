package probemap

// Map is an open-addressing hash map over opaque keys. Collisions are
// resolved by linear probing; deleted entries leave tombstones that are
// reclaimed on the next rehash. Not safe for concurrent use.
type Map[K, V any] struct {
	table[K, V]
}

// New returns a map with the given initial capacity (DefaultCapacity if
// zero, ErrOutOfRange if negative) and the required equality and hash
// callbacks.
func New[K, V any](capacity int, equal EqualFunc[K], hash HashFunc[K], opts ...Option[K, V]) (*Map[K, V], error) {
	var m Map[K, V]
	if err := m.init(capacity, equal, hash, opts...); err != nil {
		return nil, err
	}

	return &m, nil
}

// Put stores value under key, replacing (and destroying, if the map owns
// values) any previous value for an existing key. The map grows when the
// live load would exceed 3/4 and compacts when tombstones exceed 1/4 of
// capacity.
func (m *Map[K, V]) Put(key K, value V) error {
	_, err := m.insert(key, value, true)
	return err
}

// Insert is the strict variant of Put: it refuses to touch an existing
// key and reports ErrAlreadyPresent instead. The rejected key and value
// are not adopted by the map; an owning caller remains responsible for
// releasing them.
func (m *Map[K, V]) Insert(key K, value V) error {
	added, err := m.insert(key, value, false)
	if err != nil {
		return err
	}
	if !added {
		return ErrAlreadyPresent
	}

	return nil
}

// Update replaces the value of an existing key, destroying the old value
// if the map owns values. Reports ErrNotFound for an absent key.
func (m *Map[K, V]) Update(key K, value V) error {
	if m.closed() {
		return ErrClosed
	}

	idx, ok := m.lookup(key)
	if !ok {
		return ErrNotFound
	}

	s := &m.slots[idx]
	if m.dropValue != nil {
		m.dropValue(s.value)
	}
	s.value = value

	return nil
}

// Get returns the value stored under key.
func (m *Map[K, V]) Get(key K) (V, bool) {
	return m.get(key)
}

// Lookup is Get expressed through the Result boundary type.
func (m *Map[K, V]) Lookup(key K) Result[V] {
	if m.closed() {
		return Err[V]("lookup", ErrClosed)
	}

	v, ok := m.get(key)
	if !ok {
		return Err[V]("lookup", ErrNotFound)
	}

	return Ok(v)
}

func (m *Map[K, V]) Contains(key K) bool {
	_, ok := m.lookup(key)
	return ok
}

// Delete removes key, running the registered destructors on the stored
// key and value. Reports whether the key was present.
func (m *Map[K, V]) Delete(key K) bool {
	return m.remove(key)
}

// Remove is Delete with an error outcome: ErrNotFound for an absent key.
func (m *Map[K, V]) Remove(key K) error {
	if m.closed() {
		return ErrClosed
	}
	if !m.remove(key) {
		return ErrNotFound
	}

	return nil
}

// Grow rehashes into at least the given capacity. Capacity never
// shrinks: smaller targets are a no-op.
func (m *Map[K, V]) Grow(capacity int) error {
	return m.grow(capacity)
}

func (m *Map[K, V]) Len() int {
	return m.size
}

func (m *Map[K, V]) Cap() int {
	return m.capacity
}

func (m *Map[K, V]) LoadFactor() float64 {
	return m.loadFactor()
}

func (m *Map[K, V]) Stats() Stats {
	return m.stats()
}

// Clear destroys every stored entry and releases the slot array. The
// map is closed afterwards: operations report ErrClosed until a new map
// is created.
func (m *Map[K, V]) Clear() {
	m.clear()
}

// Close is Clear for the end of the map's lifetime. Idempotent.
func (m *Map[K, V]) Close() {
	if !m.closed() {
		m.clear()
	}
}
