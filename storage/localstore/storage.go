// Package localstore mirrors the browser's string-keyed local storage: each
// logical store serializes to JSON under one reserved key. It is the
// client-only fallback backing when no API server is reachable.
package localstore

import "sync"

// Reserved key namespace, kept identical to the original web client so a
// migrated blob remains readable.
const (
	StudentsKey = "tih_students_v1"
	SessionKey  = "tih_student_session_v1"
)

// Storage is any string-keyed storage (the localStorage contract).
type Storage interface {
	GetItem(key string) (string, bool)
	SetItem(key, value string)
	RemoveItem(key string)
}

// MemStorage is an in-memory Storage, also used as a stand-in for the
// browser store in tests.
type MemStorage struct {
	mu    sync.RWMutex
	items map[string]string
}

var _ Storage = (*MemStorage)(nil)

func NewMemStorage() *MemStorage {
	return &MemStorage{items: make(map[string]string)}
}

func (ms *MemStorage) GetItem(key string) (string, bool) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	val, ok := ms.items[key]
	return val, ok
}

func (ms *MemStorage) SetItem(key, value string) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.items[key] = value
}

func (ms *MemStorage) RemoveItem(key string) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	delete(ms.items, key)
}
