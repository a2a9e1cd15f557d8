package queue

import "sync"

// keyedLocks выдаёт по мьютексу на ключ: id отделения или id пациента.
// Разные ключи друг друга не ждут.
type keyedLocks struct {
	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

func newKeyedLocks() *keyedLocks {
	return &keyedLocks{locks: make(map[uint]*sync.Mutex)}
}

// lock захватывает мьютекс ключа и возвращает функцию освобождения.
func (k *keyedLocks) lock(key uint) func() {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock
}
