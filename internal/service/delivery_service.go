package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Cheertaboi/delivery-date-service/internal/cache"
	"github.com/Cheertaboi/delivery-date-service/internal/delivery"
	"github.com/Cheertaboi/delivery-date-service/internal/models"
)

// Repos required by service (use interfaces to allow mocking)
type SettingsRepo interface {
	GetSettings(ctx context.Context) (*models.StoreSettings, error)
	SaveSettings(ctx context.Context, s models.StoreSettings) error
}

type ProductRepo interface {
	GetProductRules(ctx context.Context, ids []string) (map[string]models.ProductRules, error)
	SaveProductRules(ctx context.Context, p models.ProductRules) error
}

type OrderRepo interface {
	SaveDeliveryDate(ctx context.Context, orderID int64, date string) error
	GetDeliveryDate(ctx context.Context, orderID int64) (*models.OrderDeliveryDate, error)
}

// requestTimeout bounds the storage reads behind a single call.
const requestTimeout = 8 * time.Second

// ErrOrderNotFound is returned when an order has no stored delivery date.
var ErrOrderNotFound = errors.New("order delivery date not found")

type DeliveryService struct {
	settings SettingsRepo
	products ProductRepo
	orders   OrderRepo
	cache    cache.SettingsCache
	resolver *delivery.Resolver
	now      func() time.Time
}

func NewDeliveryService(settings SettingsRepo, products ProductRepo, orders OrderRepo, c cache.SettingsCache, resolver *delivery.Resolver, now func() time.Time) *DeliveryService {
	if now == nil {
		now = time.Now
	}
	if c == nil {
		c = cache.NewMemorySettingsCache(0)
	}
	return &DeliveryService{
		settings: settings,
		products: products,
		orders:   orders,
		cache:    c,
		resolver: resolver,
		now:      now,
	}
}

// Rules resolves the eligibility rules for cart from current storage. A nil
// cart resolves to store defaults.
func (s *DeliveryService) Rules(ctx context.Context, cart *models.Cart) (delivery.Rules, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	var (
		stored   *models.StoreSettings
		products map[string]models.ProductRules
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stored, err = s.loadSettings(gctx)
		return err
	})
	g.Go(func() error {
		ids := cart.ProductIDs()
		if len(ids) == 0 {
			return nil
		}
		var err error
		products, err = s.products.GetProductRules(gctx, ids)
		if err != nil {
			return fmt.Errorf("load product rules: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return delivery.Rules{}, err
	}

	return s.resolver.Resolve(cartItems(cart, products), EngineSettings(stored), s.now()), nil
}

func (s *DeliveryService) loadSettings(ctx context.Context) (*models.StoreSettings, error) {
	if cached, ok := s.cache.Get(ctx); ok {
		return cached, nil
	}
	stored, err := s.settings.GetSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	s.cache.Set(ctx, stored)
	return stored, nil
}

// cartItems joins cart lines with their stored product metadata, keeping
// cart order. nil means no cart.
func cartItems(cart *models.Cart, products map[string]models.ProductRules) []delivery.Item {
	if cart == nil {
		return nil
	}
	items := make([]delivery.Item, 0, len(cart.Items))
	for _, line := range cart.Items {
		p := products[line.ProductID]
		items = append(items, delivery.Item{
			ProductID:    line.ProductID,
			Categories:   p.Categories,
			UntilEnabled: p.UntilEnabled,
			UntilDate:    p.UntilDate,
			Weekdays:     delivery.ParseWeekdayNames(p.DeliveryDays),
		})
	}
	return items
}

// CheckDate validates raw and evaluates it against freshly resolved rules.
// Format problems return ErrDateRequired or ErrInvalidDate, a rejected
// choice returns ErrUnavailable.
func (s *DeliveryService) CheckDate(ctx context.Context, cart *models.Cart, raw string) (delivery.Date, error) {
	d, err := delivery.ParseCandidate(raw)
	if err != nil {
		return delivery.Date{}, err
	}
	rules, err := s.Rules(ctx, cart)
	if err != nil {
		return delivery.Date{}, err
	}
	if reason := delivery.Check(d, rules); reason != delivery.ReasonAvailable {
		return d, &delivery.Error{
			Code:    delivery.CodeDateUnavailable,
			Message: fmt.Sprintf("delivery date %s rejected: %s", d, reason),
		}
	}
	return d, nil
}

// Calendar returns per-day verdicts for month ("YYYY-MM").
func (s *DeliveryService) Calendar(ctx context.Context, cart *models.Cart, month string) ([]delivery.Day, error) {
	t, err := time.Parse("2006-01", month)
	if err != nil || t.Format("2006-01") != month {
		return nil, &delivery.Error{Code: delivery.CodeInvalidDate, Message: fmt.Sprintf("invalid month %q", month), Cause: err}
	}
	rules, err := s.Rules(ctx, cart)
	if err != nil {
		return nil, err
	}
	return delivery.Month(delivery.NewDate(t.Year(), t.Month(), 1), rules), nil
}

// SubmitDeliveryDate is the authoritative gate at order submission: the
// date is re-checked against the cart as it is now and only then stored.
func (s *DeliveryService) SubmitDeliveryDate(ctx context.Context, orderID int64, cart *models.Cart, raw string) (delivery.Date, error) {
	if orderID <= 0 {
		return delivery.Date{}, fmt.Errorf("invalid order id %d", orderID)
	}
	d, err := s.CheckDate(ctx, cart, raw)
	if err != nil {
		return delivery.Date{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	if err := s.orders.SaveDeliveryDate(ctx, orderID, d.String()); err != nil {
		return delivery.Date{}, fmt.Errorf("persist delivery date: %w", err)
	}
	return d, nil
}

// OrderDeliveryDate reads back the stored date for confirmation pages and
// e-mails.
func (s *DeliveryService) OrderDeliveryDate(ctx context.Context, orderID int64) (delivery.Date, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	o, err := s.orders.GetDeliveryDate(ctx, orderID)
	if err != nil {
		return delivery.Date{}, fmt.Errorf("load delivery date: %w", err)
	}
	if o == nil {
		return delivery.Date{}, ErrOrderNotFound
	}
	d, err := delivery.ParseDate(o.DeliveryDate)
	if err != nil {
		return delivery.Date{}, fmt.Errorf("stored delivery date: %w", err)
	}
	return d, nil
}

// Settings returns the stored settings, or the defaults an unconfigured
// store runs with.
func (s *DeliveryService) Settings(ctx context.Context) (models.StoreSettings, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	stored, err := s.loadSettings(ctx)
	if err != nil {
		return models.StoreSettings{}, err
	}
	if stored == nil {
		return DefaultStoreSettings(), nil
	}
	return *stored, nil
}

// SaveSettings sanitizes and stores in, then drops the cached copy.
func (s *DeliveryService) SaveSettings(ctx context.Context, in models.StoreSettings) (models.StoreSettings, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	clean := SanitizeSettings(in)
	if err := s.settings.SaveSettings(ctx, clean); err != nil {
		return models.StoreSettings{}, fmt.Errorf("save settings: %w", err)
	}
	s.cache.Invalidate(ctx)
	return clean, nil
}

// SaveProductRules sanitizes and stores a product's delivery override.
func (s *DeliveryService) SaveProductRules(ctx context.Context, in models.ProductRules) (models.ProductRules, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	clean := SanitizeProductRules(in)
	if err := s.products.SaveProductRules(ctx, clean); err != nil {
		return models.ProductRules{}, fmt.Errorf("save product rules: %w", err)
	}
	return clean, nil
}
