package debounce_test

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gnames/degportal/pkg/debounce"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBurstRunsOnce(t *testing.T) {
	d := debounce.New(30 * time.Millisecond)
	var calls atomic.Int32
	var last atomic.Value
	for _, s := range []string{"c", "ca", "cac", "cacn"} {
		d.Do("search", func() {
			calls.Add(1)
			last.Store(s)
		})
	}
	require.Eventually(t, func() bool { return calls.Load() == 1 },
		time.Second, 5*time.Millisecond)
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, "cacn", last.Load())
	assert.Equal(t, 0, d.Pending())
}

func TestKeysAreIndependent(t *testing.T) {
	d := debounce.New(time.Hour)
	var mu sync.Mutex
	var got []string
	add := func(s string) func() {
		return func() {
			mu.Lock()
			got = append(got, s)
			mu.Unlock()
		}
	}
	d.Do("search", add("search-1"))
	d.Do("regulation", add("regulation"))
	d.Do("search", add("search-2"))
	assert.Equal(t, 2, d.Pending())

	d.Flush()
	assert.Equal(t, []string{"regulation", "search-2"}, got)
	assert.Equal(t, 0, d.Pending())
}

func TestZeroDelayIsSynchronous(t *testing.T) {
	d := debounce.New(0)
	n := 0
	d.Do("k", func() { n++ })
	d.Do("k", func() { n++ })
	assert.Equal(t, 2, n)
}

func TestStop(t *testing.T) {
	d := debounce.New(20 * time.Millisecond)
	var calls atomic.Int32
	d.Do("k", func() { calls.Add(1) })
	d.Stop()
	d.Do("k", func() { calls.Add(1) })
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())
	assert.Equal(t, 0, d.Pending())
}
