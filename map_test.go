package probemap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIntMap(t *testing.T, capacity int, opts ...Option[int, int]) *Map[int, int] {
	t.Helper()

	m, err := New(capacity, EqualComparable[int](), HashComparable[int](), opts...)
	require.NoError(t, err)

	return m
}

func TestMap_Basic(t *testing.T) {
	m := newIntMap(t, 16)

	require.NoError(t, m.Put(1, 42))

	v, ok := m.Get(1)
	require.True(t, ok)
	assert.Equal(t, 42, v)

	assert.True(t, m.Contains(1))
	assert.False(t, m.Contains(2))

	_, ok = m.Get(2)
	assert.False(t, ok)

	assert.True(t, m.Delete(1))
	assert.False(t, m.Delete(1))

	_, ok = m.Get(1)
	assert.False(t, ok)
}

func TestMap_PutUpdatesExisting(t *testing.T) {
	m := newIntMap(t, 16)

	require.NoError(t, m.Put(1, 42))
	require.NoError(t, m.Put(1, 100))

	v, ok := m.Get(1)
	require.True(t, ok)
	assert.Equal(t, 100, v)
	assert.Equal(t, 1, m.Len())
}

func TestMap_InsertRejectsExisting(t *testing.T) {
	m := newIntMap(t, 16)

	require.NoError(t, m.Insert(1, 42))
	require.ErrorIs(t, m.Insert(1, 100), ErrAlreadyPresent)

	// The stored value is untouched by the rejected insert.
	v, ok := m.Get(1)
	require.True(t, ok)
	assert.Equal(t, 42, v)
}

func TestMap_Update(t *testing.T) {
	m := newIntMap(t, 16)

	require.ErrorIs(t, m.Update(1, 42), ErrNotFound)

	require.NoError(t, m.Put(1, 42))
	require.NoError(t, m.Update(1, 43))

	v, ok := m.Get(1)
	require.True(t, ok)
	assert.Equal(t, 43, v)
}

func TestMap_Remove(t *testing.T) {
	m := newIntMap(t, 16)

	require.ErrorIs(t, m.Remove(1), ErrNotFound)

	require.NoError(t, m.Put(1, 42))
	require.NoError(t, m.Remove(1))
	require.ErrorIs(t, m.Remove(1), ErrNotFound)
}

func TestMap_Lookup(t *testing.T) {
	m := newIntMap(t, 16)
	require.NoError(t, m.Put(1, 42))

	res := m.Lookup(1)
	require.False(t, res.IsError())
	assert.Equal(t, 42, res.Value())

	res = m.Lookup(2)
	require.True(t, res.IsError())
	require.ErrorIs(t, res.Err(), ErrNotFound)

	m.Close()

	res = m.Lookup(1)
	require.True(t, res.IsError())
	require.ErrorIs(t, res.Err(), ErrClosed)
}

func TestMap_Destructors(t *testing.T) {
	var destroyedKeys, destroyedValues []int

	m, err := New(16, EqualComparable[int](), HashComparable[int](),
		WithKeyDestructor[int, int](func(k int) { destroyedKeys = append(destroyedKeys, k) }),
		WithValueDestructor[int, int](func(v int) { destroyedValues = append(destroyedValues, v) }),
	)
	require.NoError(t, err)

	require.NoError(t, m.Put(1, 10))
	require.NoError(t, m.Put(2, 20))
	assert.Empty(t, destroyedKeys)
	assert.Empty(t, destroyedValues)

	// Overwriting destroys the replaced value only; the stored key stays.
	require.NoError(t, m.Put(1, 11))
	assert.Empty(t, destroyedKeys)
	assert.Equal(t, []int{10}, destroyedValues)

	require.NoError(t, m.Update(2, 21))
	assert.Equal(t, []int{10, 20}, destroyedValues)

	require.True(t, m.Delete(1))
	assert.Equal(t, []int{1}, destroyedKeys)
	assert.Equal(t, []int{10, 20, 11}, destroyedValues)

	m.Clear()
	assert.Equal(t, []int{1, 2}, destroyedKeys)
	assert.Equal(t, []int{10, 20, 11, 21}, destroyedValues)
}

func TestMap_RejectedInsertAdoptsNothing(t *testing.T) {
	var destroyedKeys, destroyedValues []int

	m, err := New(16, EqualComparable[int](), HashComparable[int](),
		WithKeyDestructor[int, int](func(k int) { destroyedKeys = append(destroyedKeys, k) }),
		WithValueDestructor[int, int](func(v int) { destroyedValues = append(destroyedValues, v) }),
	)
	require.NoError(t, err)

	require.NoError(t, m.Insert(1, 10))
	require.ErrorIs(t, m.Insert(1, 11), ErrAlreadyPresent)

	// The rejected key and value stay with the caller: no destructor
	// runs and the stored value is untouched.
	assert.Empty(t, destroyedKeys)
	assert.Empty(t, destroyedValues)

	v, ok := m.Get(1)
	require.True(t, ok)
	assert.Equal(t, 10, v)
}

func TestMap_BorrowedEntries(t *testing.T) {
	// Without destructors the map never releases what it stores.
	m := newIntMap(t, 16)

	require.NoError(t, m.Put(1, 10))
	require.True(t, m.Delete(1))
	m.Clear()
}

func TestMap_Stats(t *testing.T) {
	m := newIntMap(t, 16)

	st := m.Stats()
	assert.Equal(t, 0, st.Size)
	assert.Equal(t, 16, st.Capacity)
	assert.Zero(t, st.LoadFactor)

	for i := range 4 {
		require.NoError(t, m.Put(i, i))
	}
	require.True(t, m.Delete(0))

	st = m.Stats()
	assert.Equal(t, 3, st.Size)
	assert.Equal(t, 1, st.Tombstones)
	assert.InDelta(t, 3.0/16.0, st.LoadFactor, 1e-9)
	assert.InDelta(t, 1.0/16.0, st.TombstoneRatio, 1e-9)
}

func TestMap_StringKeys(t *testing.T) {
	m, err := New[string, int](8, func(a, b string) bool { return a == b }, HashString)
	require.NoError(t, err)

	require.NoError(t, m.Put("foo", 1))
	require.NoError(t, m.Put("bar", 2))

	v, ok := m.Get("foo")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	v, ok = m.Get("bar")
	require.True(t, ok)
	assert.Equal(t, 2, v)

	_, ok = m.Get("baz")
	assert.False(t, ok)
}
