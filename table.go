// Package probemap implements a generic open-addressing hash table over
// opaque keys. Hashing and equality are supplied by the caller at
// construction time, so keys are not required to be comparable. Two
// flavours share one probing core: Set stores bare keys, Map stores
// key/value pairs.
//
// The table is not safe for concurrent use; a resize invalidates the slot
// array referenced by any in-flight probe, so callers needing concurrency
// must serialize externally.
package probemap

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"
)

const (
	// DefaultCapacity is substituted when a zero capacity is passed to
	// New or NewSet.
	DefaultCapacity = 32

	// An insert that would push live entries above 3/4 of capacity grows
	// the table first.
	maxLoadNum = 3
	maxLoadDen = 4

	// Tombstones above 1/4 of capacity trigger an in-place compaction on
	// the next insert, independently of the live load.
	maxTombstoneDen = 4
)

type slotState uint8

const (
	slotEmpty slotState = iota
	slotOccupied
	slotTombstone
)

// slot is one cell of the table. An explicit state tag is carried per
// slot instead of reserving a sentinel key value: empty terminates a
// probe sequence, a tombstone does not.
type slot[K, V any] struct {
	state slotState
	key   K
	value V
}

type table[K, V any] struct {
	slots []slot[K, V]

	capacity   int
	size       int
	tombstones int

	equal     EqualFunc[K]
	hash      HashFunc[K]
	dropKey   Destructor[K]
	dropValue Destructor[V]

	log zerolog.Logger

	emptyV V
}

type Option[K, V any] func(t *table[K, V])

// WithKeyDestructor transfers ownership of inserted keys to the table:
// the destructor runs when a key is removed, cleared or closed away.
// Without it keys are treated as borrowed and never released.
func WithKeyDestructor[K, V any](d Destructor[K]) Option[K, V] {
	return func(t *table[K, V]) {
		t.dropKey = d
	}
}

// WithValueDestructor transfers ownership of inserted values to the
// table: the destructor runs when a value is removed, replaced, cleared
// or closed away.
func WithValueDestructor[K, V any](d Destructor[V]) Option[K, V] {
	return func(t *table[K, V]) {
		t.dropValue = d
	}
}

// WithLogger attaches a logger for grow/compact transitions, logged at
// debug level. The default logger is a no-op.
func WithLogger[K, V any](log zerolog.Logger) Option[K, V] {
	return func(t *table[K, V]) {
		t.log = log
	}
}

func (t *table[K, V]) init(capacity int, equal EqualFunc[K], hash HashFunc[K], opts ...Option[K, V]) error {
	if equal == nil {
		return ErrNilEqual
	}
	if hash == nil {
		return ErrNilHash
	}
	if capacity < 0 {
		return fmt.Errorf("%w: capacity %d", ErrOutOfRange, capacity)
	}
	if capacity == 0 {
		capacity = DefaultCapacity
	}

	t.slots = make([]slot[K, V], capacity)
	t.capacity = capacity
	t.equal = equal
	t.hash = hash
	t.log = zerolog.Nop()

	for _, opt := range opts {
		opt(t)
	}

	return nil
}

// closed reports whether the table has been cleared away. A cleared
// table keeps no slot array and must be re-created before reuse.
func (t *table[K, V]) closed() bool {
	return t.capacity == 0
}

func (t *table[K, V]) home(key K) int {
	return int(t.hash(key) % uint64(t.capacity))
}

// lookup walks the probe sequence for key and returns the index of its
// occupied slot. Empty terminates the walk; tombstones and non-equal
// occupied slots are stepped over. At most capacity slots are inspected.
func (t *table[K, V]) lookup(key K) (int, bool) {
	if t.closed() {
		return 0, false
	}

	idx := t.home(key)
	for probes := 0; probes < t.capacity; probes++ {
		s := &t.slots[idx]

		switch s.state {
		case slotEmpty:
			return 0, false
		case slotOccupied:
			if t.equal(s.key, key) {
				return idx, true
			}
		}

		idx++
		if idx == t.capacity {
			idx = 0
		}
	}

	return 0, false
}

func (t *table[K, V]) get(key K) (V, bool) {
	idx, ok := t.lookup(key)
	if !ok {
		return t.emptyV, false
	}

	return t.slots[idx].value, true
}

// insert places key into the table, growing or compacting first when the
// load or tombstone bounds require it. On an existing key it either
// replaces the stored value (overwrite) or leaves the entry untouched;
// the incoming key is never retained in that case, and without overwrite
// neither is the incoming value, so an owning table adopts neither —
// both stay the caller's responsibility. Returns whether a new entry was
// created.
func (t *table[K, V]) insert(key K, value V, overwrite bool) (bool, error) {
	if t.closed() {
		return false, ErrClosed
	}

	if (t.size+1)*maxLoadDen > t.capacity*maxLoadNum {
		next, err := growCapacity(t.capacity)
		if err != nil {
			return false, err
		}
		t.rehash(next, "grow")
	} else if t.tombstones*maxTombstoneDen > t.capacity {
		t.rehash(t.capacity, "compact")
	}

	idx := t.home(key)
	free := -1

	for probes := 0; probes < t.capacity; probes++ {
		s := &t.slots[idx]

		switch s.state {
		case slotEmpty:
			if free < 0 {
				free = idx
			}
			t.place(free, key, value)

			return true, nil
		case slotTombstone:
			// A valid insertion site, but not a stopping condition:
			// an equal key may still live further down the chain.
			if free < 0 {
				free = idx
			}
		case slotOccupied:
			if t.equal(s.key, key) {
				if overwrite {
					if t.dropValue != nil {
						t.dropValue(s.value)
					}
					s.value = value
				}

				return false, nil
			}
		}

		idx++
		if idx == t.capacity {
			idx = 0
		}
	}

	if free >= 0 {
		t.place(free, key, value)
		return true, nil
	}

	// Unreachable while the load factor stays below 1; a full wrap with
	// no reusable slot means the capacity/size bookkeeping is corrupt.
	panic("probemap: probe sequence exhausted")
}

func (t *table[K, V]) place(idx int, key K, value V) {
	s := &t.slots[idx]
	if s.state == slotTombstone {
		t.tombstones--
	}

	s.state = slotOccupied
	s.key = key
	s.value = value
	t.size++
}

// remove tombstones the slot holding key. The slot is not marked empty:
// other keys that probed through it would otherwise become unreachable.
func (t *table[K, V]) remove(key K) bool {
	idx, ok := t.lookup(key)
	if !ok {
		return false
	}

	s := &t.slots[idx]
	if t.dropKey != nil {
		t.dropKey(s.key)
	}
	if t.dropValue != nil {
		t.dropValue(s.value)
	}

	*s = slot[K, V]{state: slotTombstone}
	t.size--
	t.tombstones++

	return true
}

// grow rehashes into a larger slot array. Targets at or below the
// current capacity are a no-op: capacity never shrinks.
func (t *table[K, V]) grow(capacity int) error {
	if t.closed() {
		return ErrClosed
	}
	if capacity < 0 {
		return fmt.Errorf("%w: capacity %d", ErrOutOfRange, capacity)
	}
	if capacity <= t.capacity {
		return nil
	}

	t.rehash(capacity, "grow")

	return nil
}

// rehash moves every occupied slot into a fresh all-empty array of the
// given capacity. Tombstones are dropped on the way; since the fresh
// array has none, reinsertion terminates at the first empty slot and the
// live count is unchanged.
func (t *table[K, V]) rehash(capacity int, reason string) {
	fresh := make([]slot[K, V], capacity)

	for i := range t.slots {
		s := &t.slots[i]
		if s.state != slotOccupied {
			continue
		}

		idx := int(t.hash(s.key) % uint64(capacity))
		for fresh[idx].state == slotOccupied {
			idx++
			if idx == capacity {
				idx = 0
			}
		}

		fresh[idx] = slot[K, V]{state: slotOccupied, key: s.key, value: s.value}
	}

	t.log.Debug().
		Str("reason", reason).
		Int("from", t.capacity).
		Int("to", capacity).
		Int("size", t.size).
		Int("tombstones", t.tombstones).
		Msg("rehashing table")

	t.slots = fresh
	t.capacity = capacity
	t.tombstones = 0
}

// clear runs the destructors over every occupied slot and releases the
// slot array. The table is closed afterwards; re-create it to reuse.
func (t *table[K, V]) clear() {
	for i := range t.slots {
		s := &t.slots[i]
		if s.state != slotOccupied {
			continue
		}

		if t.dropKey != nil {
			t.dropKey(s.key)
		}
		if t.dropValue != nil {
			t.dropValue(s.value)
		}
	}

	t.slots = nil
	t.capacity = 0
	t.size = 0
	t.tombstones = 0
}

func (t *table[K, V]) stats() Stats {
	st := Stats{
		Size:       t.size,
		Capacity:   t.capacity,
		Tombstones: t.tombstones,
	}

	if t.capacity > 0 {
		st.LoadFactor = float64(t.size) / float64(t.capacity)
		st.TombstoneRatio = float64(t.tombstones) / float64(t.capacity)
	}

	return st
}

func (t *table[K, V]) loadFactor() float64 {
	if t.capacity == 0 {
		return 0
	}

	return float64(t.size) / float64(t.capacity)
}

// growCapacity returns ceil(capacity * 1.5).
func growCapacity(capacity int) (int, error) {
	if capacity > (math.MaxInt-1)/3 {
		return 0, fmt.Errorf("%w: cannot grow past capacity %d", ErrAllocation, capacity)
	}

	return (capacity*3 + 1) / 2, nil
}
