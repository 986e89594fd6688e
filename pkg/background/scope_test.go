package background

import (
	"context"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func producer(s *Scope, id string, data chan<- int) {
	defer s.Done()
	for {
		select {
		case data <- rand.Int():
		case <-s.Context().Done():
			fmt.Println(id, "done")
			return
		}
	}
}

func consumer(s *Scope, id string, data <-chan int) {
	defer s.Done()
	for {
		select {
		case _, ok := <-data:
			if !ok {
				fmt.Println(id, "exited on closed data channel")
				return
			}
		case <-s.Context().Done():
			fmt.Println(id, "done")
			return
		}
	}
}

func ExampleScope() {
	data1, data2 := make(chan int), make(chan int)

	write1, cancelWrite1 := NewScope()
	read1, cancelRead1 := NewScope()
	write2, cancelWrite2 := NewScope()

	write1.Add(1)
	go producer(write1, "DATA-1 *PRODUCER*", data1)
	read1.Add(1)
	go consumer(read1, "DATA-1 *CONSUMER*", data1)

	write2.Add(1)
	go producer(write2, "DATA-2 *PRODUCER*", data2) // blocked due to no consumer for data2

	time.Sleep(50 * time.Millisecond)

	cancelWrite2()
	cancelWrite1()
	cancelRead1()

	// Output:
	//
	// DATA-2 *PRODUCER* done
	// DATA-1 *PRODUCER* done
	// DATA-1 *CONSUMER* done
}

func ExampleScope_Go() {
	scope, cancel := NewScope()

	for i := 1; i <= 3; i++ {
		id := fmt.Sprintf("*MEMBER-%d*", i)
		scope.Go(func(ctx context.Context) {
			<-ctx.Done()
			fmt.Println(id, "done")
		})
	}

	cancel()

	// Unordered output:
	//
	// *MEMBER-1* done
	// *MEMBER-2* done
	// *MEMBER-3* done
}

func TestScope_WaitTimeout(test *testing.T) {
	scope, cancel := NewScope()
	defer cancel()

	release := make(chan struct{})
	scope.Go(func(ctx context.Context) {
		<-release
	})
	assert.False(test, scope.WaitTimeout(20*time.Millisecond), "member is still blocked")

	close(release)
	assert.True(test, scope.WaitTimeout(time.Second))
}

func TestScope_Signal(test *testing.T) {
	scope, cancel := NewScope()
	defer cancel()

	scope.Go(func(ctx context.Context) {
		<-ctx.Done()
	})
	assert.NoError(test, scope.Context().Err())

	scope.Signal()
	assert.Error(test, scope.Context().Err())
	assert.True(test, scope.WaitTimeout(time.Second))
}
