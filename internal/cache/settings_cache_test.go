package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cheertaboi/delivery-date-service/internal/models"
)

func TestMemorySettingsCacheExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, time.March, 3, 9, 0, 0, 0, time.UTC)
	c := NewMemorySettingsCache(time.Hour)
	c.now = func() time.Time { return now }

	_, ok := c.Get(ctx)
	assert.False(t, ok)

	minDays := 3
	c.Set(ctx, &models.StoreSettings{MinDays: &minDays, DefaultDays: []string{"monday"}})

	got, ok := c.Get(ctx)
	require.True(t, ok)
	assert.Equal(t, 3, *got.MinDays)

	now = now.Add(59 * time.Minute)
	_, ok = c.Get(ctx)
	assert.True(t, ok)

	now = now.Add(time.Minute)
	_, ok = c.Get(ctx)
	assert.False(t, ok, "entry expires after the ttl")
}

func TestMemorySettingsCacheUnconfiguredStore(t *testing.T) {
	ctx := context.Background()
	c := NewMemorySettingsCache(time.Hour)

	c.Set(ctx, nil)
	got, ok := c.Get(ctx)
	assert.True(t, ok)
	assert.Nil(t, got)

	c.Invalidate(ctx)
	_, ok = c.Get(ctx)
	assert.False(t, ok)
}

func TestMemorySettingsCacheReturnsCopies(t *testing.T) {
	ctx := context.Background()
	c := NewMemorySettingsCache(time.Hour)
	src := &models.StoreSettings{
		DefaultDays:  []string{"tuesday"},
		CategoryDays: []models.CategoryDays{{Category: "271", Days: []string{"friday"}}},
	}
	c.Set(ctx, src)
	src.DefaultDays[0] = "sunday"

	got, _ := c.Get(ctx)
	got.CategoryDays[0].Days[0] = "monday"

	again, _ := c.Get(ctx)
	assert.Equal(t, []string{"tuesday"}, again.DefaultDays)
	assert.Equal(t, []string{"friday"}, again.CategoryDays[0].Days)
}

func TestMemorySettingsCacheDisabled(t *testing.T) {
	ctx := context.Background()
	c := NewMemorySettingsCache(0)
	c.Set(ctx, &models.StoreSettings{})
	_, ok := c.Get(ctx)
	assert.False(t, ok)
}
