package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cheertaboi/delivery-date-service/internal/cache"
	"github.com/Cheertaboi/delivery-date-service/internal/delivery"
	"github.com/Cheertaboi/delivery-date-service/internal/models"
)

// Monday 2025-03-03, 09:00 UTC.
var monday = time.Date(2025, time.March, 3, 9, 0, 0, 0, time.UTC)

type fixture struct {
	settings *fakeSettingsRepo
	products *fakeProductRepo
	orders   *fakeOrderRepo
	svc      *DeliveryService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		settings: &fakeSettingsRepo{},
		products: &fakeProductRepo{products: map[string]models.ProductRules{}},
		orders:   &fakeOrderRepo{},
	}
	resolver := delivery.NewResolver(time.UTC, "271", delivery.DefaultCutoffHour)
	f.svc = NewDeliveryService(f.settings, f.products, f.orders, cache.NewMemorySettingsCache(time.Hour), resolver,
		func() time.Time { return monday })
	return f
}

func cartOf(ids ...string) *models.Cart {
	c := &models.Cart{SessionID: "sess"}
	for _, id := range ids {
		c.Items = append(c.Items, models.CartItem{ProductID: id, Qty: 1})
	}
	return c
}

func TestRulesUnconfiguredStoreNoCart(t *testing.T) {
	f := newFixture(t)

	rules, err := f.svc.Rules(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, delivery.MustParseDate("2025-03-05"), rules.MinLeadDate)
	assert.Equal(t, delivery.DefaultWeekdays, rules.AllowedWeekdays)
	assert.Equal(t, []delivery.RecurringRange{delivery.YearEndBlackout}, rules.Blackouts)
	assert.Empty(t, f.products.asked, "no cart means no product lookups")
}

func TestRulesFromStoredSettingsAndProducts(t *testing.T) {
	f := newFixture(t)
	minDays := 4
	f.settings.settings = &models.StoreSettings{
		MinDays:        &minDays,
		DefaultDays:    []string{"monday", "thursday"},
		ExcludedDates:  []string{"2025-03-10"},
		BlackoutRanges: []string{},
	}
	f.products.products["cake"] = models.ProductRules{
		ProductID:    "cake",
		Categories:   []string{"271"},
		UntilEnabled: true,
		UntilDate:    "2025-04-15",
		DeliveryDays: []string{"friday"},
	}

	rules, err := f.svc.Rules(context.Background(), cartOf("bread", "cake"))
	require.NoError(t, err)

	assert.Equal(t, delivery.MustParseDate("2025-03-04"), rules.MinLeadDate, "fast category before 15:00")
	require.NotNil(t, rules.HardCutoff)
	assert.Equal(t, delivery.MustParseDate("2025-04-15"), *rules.HardCutoff)
	assert.Equal(t, delivery.NewWeekdaySet(time.Friday), rules.ActiveWeekdays())
	assert.Equal(t, []delivery.Date{delivery.MustParseDate("2025-03-10")}, rules.ExcludedDates())
	assert.Empty(t, rules.Blackouts)
	assert.Equal(t, [][]string{{"bread", "cake"}}, f.products.asked)
}

func TestRulesCachesSettingsButNotRules(t *testing.T) {
	f := newFixture(t)
	f.products.products["x"] = models.ProductRules{ProductID: "x", UntilEnabled: true, UntilDate: "2025-05-01"}

	ctx := context.Background()
	withX, err := f.svc.Rules(ctx, cartOf("x"))
	require.NoError(t, err)
	without, err := f.svc.Rules(ctx, cartOf("y"))
	require.NoError(t, err)

	assert.Equal(t, 1, f.settings.gets, "settings read once within the ttl")
	assert.NotNil(t, withX.HardCutoff)
	assert.Nil(t, without.HardCutoff, "rules follow the cart, not a cache")
}

func TestRulesStorageErrors(t *testing.T) {
	f := newFixture(t)
	f.settings.err = errors.New("connection refused")
	_, err := f.svc.Rules(context.Background(), nil)
	assert.ErrorContains(t, err, "load settings")

	f = newFixture(t)
	f.products.err = errors.New("timeout")
	_, err = f.svc.Rules(context.Background(), cartOf("a"))
	assert.ErrorContains(t, err, "load product rules")
}

func TestCheckDate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	d, err := f.svc.CheckDate(ctx, nil, "2025-03-05")
	require.NoError(t, err)
	assert.Equal(t, delivery.MustParseDate("2025-03-05"), d)

	_, err = f.svc.CheckDate(ctx, nil, "2025-03-04")
	assert.True(t, errors.Is(err, delivery.ErrUnavailable), "tuesday before the lead date")

	_, err = f.svc.CheckDate(ctx, nil, "2025-03-06")
	assert.True(t, errors.Is(err, delivery.ErrUnavailable), "thursday")

	_, err = f.svc.CheckDate(ctx, nil, "05.03.2025")
	assert.True(t, errors.Is(err, delivery.ErrInvalidDate))

	_, err = f.svc.CheckDate(ctx, nil, "")
	assert.True(t, errors.Is(err, delivery.ErrDateRequired))
}

func TestCheckDateRejectsFormatBeforeLoading(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.CheckDate(context.Background(), cartOf("a"), "2025-3-5")
	assert.True(t, errors.Is(err, delivery.ErrInvalidDate))
	assert.Zero(t, f.settings.gets)
	assert.Empty(t, f.products.asked)
}

func TestSubmitDeliveryDate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	d, err := f.svc.SubmitDeliveryDate(ctx, 42, cartOf("bread"), "2025-03-07")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-07", d.String())
	assert.Equal(t, "2025-03-07", f.orders.dates[42])

	_, err = f.svc.SubmitDeliveryDate(ctx, 43, cartOf("bread"), "2025-03-08")
	assert.True(t, delivery.IsValidation(err))
	assert.NotContains(t, f.orders.dates, int64(43))

	_, err = f.svc.SubmitDeliveryDate(ctx, 0, nil, "2025-03-07")
	assert.Error(t, err)
}

func TestSubmitRechecksAgainstCurrentCart(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.CheckDate(ctx, cartOf("seasonal"), "2025-04-04")
	require.NoError(t, err)

	// The product gained a window between the picker and submission.
	f.products.products["seasonal"] = models.ProductRules{ProductID: "seasonal", UntilEnabled: true, UntilDate: "2025-03-31"}

	_, err = f.svc.SubmitDeliveryDate(ctx, 7, cartOf("seasonal"), "2025-04-04")
	assert.True(t, errors.Is(err, delivery.ErrUnavailable))
	assert.Empty(t, f.orders.dates)
}

func TestSubmitPersistError(t *testing.T) {
	f := newFixture(t)
	f.orders.err = errors.New("disk full")

	_, err := f.svc.SubmitDeliveryDate(context.Background(), 9, nil, "2025-03-07")
	assert.ErrorContains(t, err, "persist delivery date")
	assert.False(t, delivery.IsValidation(err))
}

func TestCalendar(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	days, err := f.svc.Calendar(ctx, nil, "2025-03")
	require.NoError(t, err)
	require.Len(t, days, 31)
	assert.False(t, days[3].Available, "2025-03-04 is before the lead date")
	assert.True(t, days[4].Available, "2025-03-05")

	for _, bad := range []string{"2025-3", "2025-13", "March", ""} {
		_, err := f.svc.Calendar(ctx, nil, bad)
		assert.True(t, errors.Is(err, delivery.ErrInvalidDate), bad)
	}
}

func TestOrderDeliveryDate(t *testing.T) {
	f := newFixture(t)
	f.orders.dates = map[int64]string{5: "2025-03-07"}

	d, err := f.svc.OrderDeliveryDate(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "07.03.2025", d.Display())

	_, err = f.svc.OrderDeliveryDate(context.Background(), 6)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestSaveSettingsInvalidatesCache(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	before, err := f.svc.Settings(ctx)
	require.NoError(t, err)
	assert.Equal(t, DefaultStoreSettings(), before)

	minDays := 5
	saved, err := f.svc.SaveSettings(ctx, models.StoreSettings{MinDays: &minDays, DefaultDays: []string{"Monday"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"monday"}, saved.DefaultDays)

	rules, err := f.svc.Rules(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, delivery.MustParseDate("2025-03-08"), rules.MinLeadDate)
	assert.Equal(t, delivery.NewWeekdaySet(time.Monday), rules.AllowedWeekdays)
}

func TestSaveProductRules(t *testing.T) {
	f := newFixture(t)

	saved, err := f.svc.SaveProductRules(context.Background(), models.ProductRules{ProductID: " p1 ", UntilEnabled: true, UntilDate: "2025-06-01"})
	require.NoError(t, err)
	assert.Equal(t, "p1", saved.ProductID)
	assert.Equal(t, []string{"tuesday", "wednesday", "friday"}, saved.DeliveryDays)
	assert.Equal(t, saved, f.products.products["p1"])
}
