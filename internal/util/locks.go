package util

import (
	"sync"
)

type GuardedLock struct {
	lock sync.Mutex
}

func (l *GuardedLock) Lock() LockGuard {
	lock := LockGuard{lock: &l.lock}
	lock.Lock()
	return lock //nolint:govet
}

// Do runs the function with the lock held.
func (l *GuardedLock) Do(fn func()) {
	lock := l.Lock()
	defer lock.UnlockIfLocked()
	fn()
}

type LockGuard struct {
	lock   sync.Locker
	locked bool
}

func (l *LockGuard) Lock() {
	l.lock.Lock()
	l.locked = true
}

func (l *LockGuard) Unlock() {
	l.lock.Unlock()
	l.locked = false
}

func (l *LockGuard) UnlockIfLocked() {
	if l.locked {
		l.Unlock()
	}
}
