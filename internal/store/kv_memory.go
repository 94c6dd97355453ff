package store

import (
	"context"
	"sync"
	"time"
)

// MemoryKV is the in-memory driver. It backs tests and the "memory" storage
// driver, where nothing must survive a restart. It implements both [KV] and
// [Locker].
type MemoryKV struct {
	mu      sync.RWMutex
	buckets map[string]map[string][]byte

	lockMu sync.Mutex
	locks  map[string]memoryLease
}

type memoryLease struct {
	owner     string
	expiresAt time.Time
}

// NewMemoryKV returns a KV and Locker living entirely in process memory.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{
		buckets: make(map[string]map[string][]byte),
		locks:   make(map[string]memoryLease),
	}
}

func (m *MemoryKV) Get(_ context.Context, bucket, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	b, ok := m.buckets[bucket]
	if !ok {
		return nil, ErrKeyNotFound
	}
	value, ok := b[key]
	if !ok {
		return nil, ErrKeyNotFound
	}

	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

func (m *MemoryKV) Put(_ context.Context, bucket, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.buckets[bucket]
	if !ok {
		b = make(map[string][]byte)
		m.buckets[bucket] = b
	}

	stored := make([]byte, len(value))
	copy(stored, value)
	b[key] = stored
	return nil
}

func (m *MemoryKV) Delete(_ context.Context, bucket, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if b, ok := m.buckets[bucket]; ok {
		delete(b, key)
	}
	return nil
}

func (m *MemoryKV) DeleteBucket(_ context.Context, bucket string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.buckets, bucket)
	return nil
}

func (m *MemoryKV) Close() error { return nil }

func (m *MemoryKV) TryAcquire(_ context.Context, name, owner string, ttl time.Duration) (bool, error) {
	m.lockMu.Lock()
	defer m.lockMu.Unlock()

	now := time.Now()
	lease, held := m.locks[name]
	if held && lease.owner != owner && now.Before(lease.expiresAt) {
		return false, nil
	}

	m.locks[name] = memoryLease{owner: owner, expiresAt: now.Add(ttl)}
	return true, nil
}

func (m *MemoryKV) Release(_ context.Context, name, owner string) error {
	m.lockMu.Lock()
	defer m.lockMu.Unlock()

	if lease, held := m.locks[name]; held && lease.owner == owner {
		delete(m.locks, name)
	}
	return nil
}
