package inmemory

import (
	"sync"
	"time"

	catalogdomain "chai-app-go/internal/domain/catalog"
)

type VarietyCache struct {
	mu    sync.RWMutex
	items map[uint]varietyItem
}

type varietyItem struct {
	value     catalogdomain.ChaiVariety
	expiresAt time.Time
}

func NewVarietyCache() *VarietyCache {
	return &VarietyCache{
		items: make(map[uint]varietyItem),
	}
}

func (c *VarietyCache) GetVariety(id uint) (*catalogdomain.ChaiVariety, bool) {
	now := time.Now()

	c.mu.RLock()
	item, ok := c.items[id]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if !item.expiresAt.After(now) {
		c.mu.Lock()
		item, ok = c.items[id]
		if ok && !item.expiresAt.After(now) {
			delete(c.items, id)
		}
		c.mu.Unlock()
		return nil, false
	}

	value := item.value
	return &value, true
}

func (c *VarietyCache) SetVariety(id uint, variety *catalogdomain.ChaiVariety, ttl time.Duration) {
	if variety == nil || ttl <= 0 {
		c.DeleteVariety(id)
		return
	}

	value := *variety
	value.Reviews = nil
	value.Stores = nil
	value.Certificate = nil

	c.mu.Lock()
	c.items[id] = varietyItem{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	}
	c.mu.Unlock()
}

func (c *VarietyCache) DeleteVariety(id uint) {
	c.mu.Lock()
	delete(c.items, id)
	c.mu.Unlock()
}

func (c *VarietyCache) Clear() {
	c.mu.Lock()
	c.items = make(map[uint]varietyItem)
	c.mu.Unlock()
}
