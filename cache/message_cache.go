package cache

import (
	"sync"
	"time"

	"tempmail-pro/models"
)

type entry struct {
	Message    models.Message
	Expiration time.Time
}

// MessageCache is a TTL-bounded in-memory cache of fetched messages keyed by
// "<email>/<messageID>". It caps its size by evicting the entry closest to
// expiry and sweeps expired entries in the background.
type MessageCache struct {
	data       map[string]entry
	mutex      sync.RWMutex
	ttl        time.Duration
	maxSize    int
	cleanupInt time.Duration
	stopChan   chan struct{}
}

func NewMessageCache(ttl time.Duration, maxSize int) *MessageCache {
	c := &MessageCache{
		data:       make(map[string]entry),
		ttl:        ttl,
		maxSize:    maxSize,
		cleanupInt: ttl / 2,
		stopChan:   make(chan struct{}),
	}

	go c.cleanupExpiredEntries()

	return c
}

func (c *MessageCache) Set(key string, msg models.Message) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if len(c.data) >= c.maxSize {
		c.evictOldestEntry()
	}

	c.data[key] = entry{
		Message:    msg,
		Expiration: time.Now().Add(c.ttl),
	}
}

func (c *MessageCache) Get(key string) (models.Message, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	e, exists := c.data[key]
	if !exists || time.Now().After(e.Expiration) {
		return models.Message{}, false
	}

	return e.Message, true
}

func (c *MessageCache) Delete(key string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.data, key)
}

// DeletePrefix drops every entry whose key starts with prefix, used when an
// address is forgotten.
func (c *MessageCache) DeletePrefix(prefix string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	for key := range c.data {
		if len(key) >= len(prefix) && key[:len(prefix)] == prefix {
			delete(c.data, key)
		}
	}
}

func (c *MessageCache) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.data = make(map[string]entry)
}

func (c *MessageCache) Size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return len(c.data)
}

func (c *MessageCache) evictOldestEntry() {
	var oldestKey string
	var oldestTime time.Time

	for key, e := range c.data {
		if oldestKey == "" || e.Expiration.Before(oldestTime) {
			oldestKey = key
			oldestTime = e.Expiration
		}
	}

	if oldestKey != "" {
		delete(c.data, oldestKey)
	}
}

func (c *MessageCache) cleanupExpiredEntries() {
	ticker := time.NewTicker(c.cleanupInt)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.removeExpiredEntries()
		case <-c.stopChan:
			return
		}
	}
}

func (c *MessageCache) removeExpiredEntries() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	now := time.Now()
	for key, e := range c.data {
		if now.After(e.Expiration) {
			delete(c.data, key)
		}
	}
}

func (c *MessageCache) Close() {
	close(c.stopChan)
	c.Clear()
}
