package relay

import (
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCounter_Next(test *testing.T) {
	c := NewCounter(1)
	assert.Equal(test, 1, c.Peek())
	assert.Equal(test, 1, c.Next())
	assert.Equal(test, 2, c.Next())
	assert.Equal(test, 3, c.Peek())
}

func TestCounter_Next_Concurrent(test *testing.T) {
	const callers, calls = 16, 250
	c := NewCounter(0)
	results := make(chan int, callers*calls)
	wg := sync.WaitGroup{}
	wg.Add(callers)
	for i := 0; i < callers; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < calls; j++ {
				results <- c.Next()
			}
		}()
	}
	wg.Wait()
	close(results)

	got := make([]int, 0, callers*calls)
	for v := range results {
		got = append(got, v)
	}
	sort.Ints(got)
	for i, v := range got {
		if !assert.Equal(test, i, v, "values must be exactly 0..N-1") {
			break
		}
	}
	assert.Equal(test, callers*calls, c.Peek())
}

func TestNewCounters(test *testing.T) {
	counters := NewCounters()
	assert.Equal(test, 1, counters.ClientIDs.Next())
	assert.Equal(test, 0, counters.Messages.Next())
	assert.Equal(test, 2, counters.ClientIDs.Next(), "counters are independent")
}
