package xredis

import (
	"context"
	"encoding/json"
	"path"
	"time"

	"github.com/puzpuzpuz/xsync"
)

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

// memoryClient is an in-process Client used when no Redis server is
// configured. Patterns follow glob syntax, which covers the subset of Redis
// patterns this service uses.
type memoryClient struct {
	entries *xsync.MapOf[string, memoryEntry]
	now     func() time.Time
}

func NewMemoryClient() *memoryClient {
	return &memoryClient{entries: xsync.NewMapOf[memoryEntry](), now: time.Now}
}

func (c *memoryClient) load(key string) (memoryEntry, bool) {
	e, ok := c.entries.Load(key)
	if !ok {
		return memoryEntry{}, false
	}

	if e.expired(c.now()) {
		c.entries.Delete(key)
		return memoryEntry{}, false
	}

	return e, true
}

func (c *memoryClient) Exist(ctx context.Context, key string) (bool, error) {
	_, ok := c.load(key)
	return ok, nil
}

func (c *memoryClient) Del(ctx context.Context, key ...string) error {
	for _, k := range key {
		c.entries.Delete(k)
	}

	return nil
}

func (c *memoryClient) Keys(ctx context.Context, pattern string) ([]string, error) {
	now := c.now()
	keys := []string{}
	c.entries.Range(func(key string, e memoryEntry) bool {
		if e.expired(now) {
			return true
		}

		if ok, _ := path.Match(pattern, key); ok {
			keys = append(keys, key)
		}
		return true
	})

	return keys, nil
}

func (c *memoryClient) DelPattern(ctx context.Context, pattern string) (int, error) {
	keys, err := c.Keys(ctx, pattern)
	if err != nil {
		return 0, err
	}

	return len(keys), c.Del(ctx, keys...)
}

func (c *memoryClient) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	e := memoryEntry{value: value}
	if ttl > 0 {
		e.expiresAt = c.now().Add(ttl)
	}

	c.entries.Store(key, e)
	return nil
}

func (c *memoryClient) SetObj(ctx context.Context, key string, obj any, ttl time.Duration) error {
	b, err := json.Marshal(obj)
	if err != nil {
		return err
	}

	return c.Set(ctx, key, string(b), ttl)
}

func (c *memoryClient) Get(ctx context.Context, key string) (string, error) {
	e, ok := c.load(key)
	if !ok {
		return "", Nil
	}

	return e.value, nil
}

func (c *memoryClient) GetObj(ctx context.Context, key string, v any) error {
	s, err := c.Get(ctx, key)
	if err != nil {
		return err
	}

	return json.Unmarshal([]byte(s), v)
}
