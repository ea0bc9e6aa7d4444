package usecase

import (
	"sync"
)

// equipmentLocks serializes the check-then-insert section of create per
// equipment id. Bookings for different equipment never wait on each other;
// the registry mutex is only held for the map lookup.
type equipmentLocks struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func newEquipmentLocks() *equipmentLocks {
	return &equipmentLocks{locks: make(map[int64]*sync.Mutex)}
}

func (l *equipmentLocks) get(id int64) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()

	lock, ok := l.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[id] = lock
	}
	return lock
}
