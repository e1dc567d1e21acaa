package field

import (
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_AddGetRemove(t *testing.T) {
	var r Registry[string]

	require.True(t, r.Add(1, "one"))
	assert.False(t, r.Add(1, "uno"), "duplicate id must be rejected")

	v, ok := r.Get(1)
	require.True(t, ok)
	assert.Equal(t, "one", v, "existing entry is kept on duplicate")
	assert.Equal(t, 1, r.Len())

	v, ok = r.Remove(1)
	require.True(t, ok)
	assert.Equal(t, "one", v)
	assert.Equal(t, 0, r.Len())

	_, ok = r.Remove(1)
	assert.False(t, ok)
	_, ok = r.Get(1)
	assert.False(t, ok)
}

func TestRegistry_Find(t *testing.T) {
	var r Registry[int]
	r.Add(1, 10)
	r.Add(2, 20)

	v, ok := r.Find(func(v int) bool { return v > 15 })
	require.True(t, ok)
	assert.Equal(t, 20, v)

	_, ok = r.Find(func(v int) bool { return v > 100 })
	assert.False(t, ok)
}

func TestRegistry_ConcurrentAddRemove(t *testing.T) {
	var r Registry[int32]

	var wg sync.WaitGroup
	for g := range int32(8) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range int32(500) {
				id := g*1000 + i
				r.Add(id, id)
				if i%2 == 0 {
					r.Remove(id)
				}
			}
		}()
	}

	// Concurrent readers.
	for range 2 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				_ = r.Values()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 8*250, r.Len())
	assert.Len(t, r.Values(), 8*250)
}

func TestRegistry_ConcurrentAddRemoveSameID(t *testing.T) {
	var r Registry[int32]

	const ids = 2000

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		for id := range int32(ids) {
			r.Add(id, id)
		}
	}()
	// Removes chase the adder on the same ids.
	go func() {
		defer wg.Done()
		for id := range int32(ids) {
			for {
				if _, ok := r.Remove(id); ok {
					break
				}
				runtime.Gosched()
			}
		}
	}()
	go func() {
		defer wg.Done()
		for range ids {
			assert.GreaterOrEqual(t, r.Len(), 0)
			_ = r.Values()
		}
	}()
	wg.Wait()

	assert.Equal(t, 0, r.Len())
	assert.Empty(t, r.Values())
}

func TestRegistry_DuplicateAddKeepsCount(t *testing.T) {
	var r Registry[string]

	require.True(t, r.Add(1, "one"))
	for range 10 {
		assert.False(t, r.Add(1, "again"))
	}
	assert.Equal(t, 1, r.Len())

	_, ok := r.Remove(1)
	require.True(t, ok)
	assert.Equal(t, 0, r.Len())
}
