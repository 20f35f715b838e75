package cache

import (
	"context"
	"encoding/json"
	"path"
	"sync"
	"time"

	"github.com/beout/beout-admin/pkg/redis"
)

// ErrMiss is returned by Get when a key is absent or expired
var ErrMiss = redis.ErrCacheMiss

// Cache stores JSON-encoded values with a TTL
type Cache interface {
	GetJSON(ctx context.Context, key string, dest interface{}) error
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeletePattern(ctx context.Context, pattern string) (int, error)
}

// Keys used by the admin services
const (
	DashboardStatsKey = "admin:dashboard:stats"
	EmailTemplatesKey = "admin:email:template:*"
	TranslationsKey   = "admin:translations:*"
)

// EmailTemplateKey is the cache key for an active template lookup
func EmailTemplateKey(name, language string) string {
	return "admin:email:template:" + name + ":" + language
}

// TranslationKey is the cache key for one namespace of one language
func TranslationKey(language, namespace string) string {
	return "admin:translations:" + language + ":" + namespace
}

// Noop never stores anything. It is used when Redis is unavailable.
type Noop struct{}

func (Noop) GetJSON(context.Context, string, interface{}) error { return ErrMiss }

func (Noop) SetJSON(context.Context, string, interface{}, time.Duration) error { return nil }

func (Noop) DeletePattern(context.Context, string) (int, error) { return 0, nil }

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// Memory is an in-process Cache with the same JSON semantics as Redis
type Memory struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemory creates an empty in-process cache
func NewMemory() *Memory {
	return &Memory{entries: make(map[string]memoryEntry), now: time.Now}
}

// GetJSON decodes the value stored at key into dest
func (m *Memory) GetJSON(_ context.Context, key string, dest interface{}) error {
	m.mu.Lock()
	entry, ok := m.entries[key]
	if ok && !entry.expiresAt.IsZero() && m.now().After(entry.expiresAt) {
		delete(m.entries, key)
		ok = false
	}
	m.mu.Unlock()

	if !ok {
		return ErrMiss
	}
	return json.Unmarshal(entry.data, dest)
}

// SetJSON stores value as JSON; a zero ttl never expires
func (m *Memory) SetJSON(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	entry := memoryEntry{data: data}
	if ttl > 0 {
		entry.expiresAt = m.now().Add(ttl)
	}

	m.mu.Lock()
	m.entries[key] = entry
	m.mu.Unlock()
	return nil
}

// DeletePattern removes keys matching a glob pattern
func (m *Memory) DeletePattern(_ context.Context, pattern string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	deleted := 0
	for key := range m.entries {
		if ok, _ := path.Match(pattern, key); ok {
			delete(m.entries, key)
			deleted++
		}
	}
	return deleted, nil
}

// Len returns the number of stored keys
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
