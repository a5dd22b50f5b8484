package cache

import (
	"context"
	"sync"
	"time"

	"github.com/Cheertaboi/delivery-date-service/internal/models"
)

// SettingsCache holds the store settings between reads. A cached nil means
// the store is known to be unconfigured. Derived eligibility rules are never
// cached; they depend on the cart.
type SettingsCache interface {
	Get(ctx context.Context) (*models.StoreSettings, bool)
	Set(ctx context.Context, s *models.StoreSettings)
	Invalidate(ctx context.Context)
}

type entry struct {
	value   *models.StoreSettings
	expires time.Time
}

// MemorySettingsCache is a process-local SettingsCache.
type MemorySettingsCache struct {
	mu    sync.RWMutex
	ttl   time.Duration
	now   func() time.Time
	store map[string]entry
}

const settingsKey = "delivery_settings"

func NewMemorySettingsCache(ttl time.Duration) *MemorySettingsCache {
	return &MemorySettingsCache{
		ttl:   ttl,
		now:   time.Now,
		store: make(map[string]entry),
	}
}

func (c *MemorySettingsCache) Get(_ context.Context) (*models.StoreSettings, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.store[settingsKey]
	if !ok || !c.now().Before(e.expires) {
		return nil, false
	}
	return cloneSettings(e.value), true
}

func (c *MemorySettingsCache) Set(_ context.Context, s *models.StoreSettings) {
	if c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store[settingsKey] = entry{value: cloneSettings(s), expires: c.now().Add(c.ttl)}
}

func (c *MemorySettingsCache) Invalidate(_ context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.store, settingsKey)
}

// cloneSettings copies s so callers cannot mutate the cached value.
func cloneSettings(s *models.StoreSettings) *models.StoreSettings {
	if s == nil {
		return nil
	}
	c := *s
	if s.MinDays != nil {
		v := *s.MinDays
		c.MinDays = &v
	}
	c.DefaultDays = append([]string(nil), s.DefaultDays...)
	c.ExcludedDates = append([]string(nil), s.ExcludedDates...)
	c.BlackoutRanges = append([]string(nil), s.BlackoutRanges...)
	c.CategoryDays = make([]models.CategoryDays, len(s.CategoryDays))
	for i, cd := range s.CategoryDays {
		c.CategoryDays[i] = models.CategoryDays{Category: cd.Category, Days: append([]string(nil), cd.Days...)}
	}
	return &c
}
