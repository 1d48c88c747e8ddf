package keyedmutex_test

import (
	"sync"
	"testing"

	"dispatch/internal/pkg/keyedmutex"

	"github.com/stretchr/testify/assert"
)

func TestKeyedMutex_SerializesSameKey(t *testing.T) {
	var km keyedmutex.KeyedMutex

	const goroutines = 50
	counter := 0

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for range goroutines {
		go func() {
			defer wg.Done()
			km.Lock("courier-1")
			defer km.Unlock("courier-1")
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, goroutines, counter)
}

func TestKeyedMutex_IndependentKeysDoNotBlock(t *testing.T) {
	var km keyedmutex.KeyedMutex

	km.Lock("courier-1")
	defer km.Unlock("courier-1")

	done := make(chan struct{})
	go func() {
		km.Lock("courier-2")
		km.Unlock("courier-2")
		close(done)
	}()

	<-done // would deadlock if keys shared a lock
}
