package catalog

import "time"

type Cache interface {
	GetVariety(id uint) (*ChaiVariety, bool)
	SetVariety(id uint, variety *ChaiVariety, ttl time.Duration)
	DeleteVariety(id uint)
	Clear()
}

type noopCache struct{}

func (noopCache) GetVariety(uint) (*ChaiVariety, bool) {
	return nil, false
}

func (noopCache) SetVariety(uint, *ChaiVariety, time.Duration) {}

func (noopCache) DeleteVariety(uint) {}

func (noopCache) Clear() {}
