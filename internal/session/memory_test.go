package session

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreGetPutClear(t *testing.T) {
	store := NewMemoryStore()

	_, ok := store.Get(1)
	assert.False(t, ok)

	s := New(FlowAddExpense)
	store.Put(1, s)

	got, ok := store.Get(1)
	require.True(t, ok)
	assert.Equal(t, FlowAddExpense, got.Flow)
	assert.Equal(t, 0, got.Step)

	store.Clear(1)
	_, ok = store.Get(1)
	assert.False(t, ok)

	// Clearing an absent session is fine.
	store.Clear(1)
}

func TestSessionIdle(t *testing.T) {
	var s *Session
	assert.True(t, s.Idle())
	assert.True(t, New(FlowNone).Idle())
	assert.False(t, New(FlowAddIncome).Idle())
}

func TestDoSerializesPerUser(t *testing.T) {
	store := NewMemoryStore()
	const iterations = 500

	// Without serialization this read-modify-write would lose updates.
	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < iterations; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			store.Do(7, func() {
				counter++
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, iterations, counter)
}

func TestDoDifferentUsersDoNotBlock(t *testing.T) {
	store := NewMemoryStore()

	release := make(chan struct{})
	entered := make(chan struct{})
	go store.Do(1, func() {
		close(entered)
		<-release
	})
	<-entered

	// User 2 proceeds while user 1 holds its lock.
	done := make(chan struct{})
	go store.Do(2, func() { close(done) })
	<-done
	close(release)
}
