package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/AleXx313/shareit/internal/models"
)

type memoryEntry struct {
	items     []models.Item
	expiresAt time.Time
}

type MemorySearchCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
}

func NewMemorySearchCache(ttl time.Duration) *MemorySearchCache {
	return &MemorySearchCache{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
	}
}

func memoryKey(text string, from, size int) string {
	return fmt.Sprintf("%s:%d:%d", text, from, size)
}

func (r *MemorySearchCache) Get(ctx context.Context, text string, from, size int) ([]models.Item, bool, error) {
	r.mu.RLock()
	entry, ok := r.entries[memoryKey(text, from, size)]
	r.mu.RUnlock()

	if !ok || time.Now().After(entry.expiresAt) {
		return nil, false, nil
	}
	return entry.items, true, nil
}

func (r *MemorySearchCache) Set(ctx context.Context, text string, from, size int, items []models.Item) error {
	r.mu.Lock()
	r.entries[memoryKey(text, from, size)] = memoryEntry{
		items:     items,
		expiresAt: time.Now().Add(r.ttl),
	}
	r.mu.Unlock()
	return nil
}

func (r *MemorySearchCache) Invalidate(ctx context.Context) error {
	r.mu.Lock()
	r.entries = make(map[string]memoryEntry)
	r.mu.Unlock()
	return nil
}
