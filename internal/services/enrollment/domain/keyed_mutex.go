package domain

import "sync"

// keyedMutex hands out one mutex per course id and forgets it once no
// caller holds or waits for it.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[int64]*keyedLock
}

type keyedLock struct {
	mu      sync.Mutex
	holders int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[int64]*keyedLock)}
}

// Lock blocks until key is free and returns the matching unlock func.
func (k *keyedMutex) Lock(key int64) (unlock func()) {
	k.mu.Lock()
	lock, ok := k.locks[key]
	if !ok {
		lock = &keyedLock{}
		k.locks[key] = lock
	}
	lock.holders++
	k.mu.Unlock()

	lock.mu.Lock()
	return func() {
		lock.mu.Unlock()
		k.mu.Lock()
		lock.holders--
		if lock.holders == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}

func (k *keyedMutex) size() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.locks)
}
