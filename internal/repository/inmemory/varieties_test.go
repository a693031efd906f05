package inmemory

import (
	"sync"
	"testing"
	"time"

	catalogdomain "chai-app-go/internal/domain/catalog"
)

func TestVarietyCacheSetGet(t *testing.T) {
	cache := NewVarietyCache()
	cache.SetVariety(1, &catalogdomain.ChaiVariety{ID: 1, Name: "Masala"}, time.Minute)

	got, ok := cache.GetVariety(1)
	if !ok || got.Name != "Masala" {
		t.Fatalf("expected cached variety, got %+v %v", got, ok)
	}

	got.Name = "changed"
	again, _ := cache.GetVariety(1)
	if again.Name != "Masala" {
		t.Fatalf("expected cache to hand out copies, got %q", again.Name)
	}
}

func TestVarietyCacheExpires(t *testing.T) {
	cache := NewVarietyCache()
	cache.SetVariety(1, &catalogdomain.ChaiVariety{ID: 1}, time.Millisecond)
	time.Sleep(5 * time.Millisecond)

	if _, ok := cache.GetVariety(1); ok {
		t.Fatalf("expected entry expired")
	}
	if _, ok := cache.items[1]; ok {
		t.Fatalf("expected expired entry evicted")
	}
}

func TestVarietyCacheNonPositiveTTLDeletes(t *testing.T) {
	cache := NewVarietyCache()
	cache.SetVariety(1, &catalogdomain.ChaiVariety{ID: 1}, time.Minute)
	cache.SetVariety(1, &catalogdomain.ChaiVariety{ID: 1}, 0)

	if _, ok := cache.GetVariety(1); ok {
		t.Fatalf("expected entry removed")
	}
}

func TestVarietyCacheClear(t *testing.T) {
	cache := NewVarietyCache()
	cache.SetVariety(1, &catalogdomain.ChaiVariety{ID: 1}, time.Minute)
	cache.SetVariety(2, &catalogdomain.ChaiVariety{ID: 2}, time.Minute)
	cache.Clear()

	if _, ok := cache.GetVariety(2); ok {
		t.Fatalf("expected cache cleared")
	}
}

func TestVarietyCacheConcurrentAccess(t *testing.T) {
	cache := NewVarietyCache()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(id uint) {
			defer wg.Done()
			cache.SetVariety(id, &catalogdomain.ChaiVariety{ID: id}, time.Minute)
			cache.GetVariety(id)
			cache.DeleteVariety(id)
		}(uint(i))
	}
	wg.Wait()
}
