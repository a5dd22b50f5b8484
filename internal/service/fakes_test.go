package service

import (
	"context"
	"sync"

	"github.com/Cheertaboi/delivery-date-service/internal/models"
)

type fakeSettingsRepo struct {
	mu       sync.Mutex
	settings *models.StoreSettings
	err      error
	gets     int
	saved    []models.StoreSettings
}

func (f *fakeSettingsRepo) GetSettings(context.Context) (*models.StoreSettings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets++
	return f.settings, f.err
}

func (f *fakeSettingsRepo) SaveSettings(_ context.Context, s models.StoreSettings) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, s)
	f.settings = &s
	return nil
}

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[string]models.ProductRules
	err      error
	asked    [][]string
}

func (f *fakeProductRepo) GetProductRules(_ context.Context, ids []string) (map[string]models.ProductRules, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.asked = append(f.asked, ids)
	if f.err != nil {
		return nil, f.err
	}
	out := make(map[string]models.ProductRules)
	for _, id := range ids {
		if p, ok := f.products[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func (f *fakeProductRepo) SaveProductRules(_ context.Context, p models.ProductRules) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.products == nil {
		f.products = make(map[string]models.ProductRules)
	}
	f.products[p.ProductID] = p
	return f.err
}

type fakeOrderRepo struct {
	dates map[int64]string
	err   error
}

func (f *fakeOrderRepo) SaveDeliveryDate(_ context.Context, orderID int64, date string) error {
	if f.err != nil {
		return f.err
	}
	if f.dates == nil {
		f.dates = make(map[int64]string)
	}
	f.dates[orderID] = date
	return nil
}

func (f *fakeOrderRepo) GetDeliveryDate(_ context.Context, orderID int64) (*models.OrderDeliveryDate, error) {
	if f.err != nil {
		return nil, f.err
	}
	d, ok := f.dates[orderID]
	if !ok {
		return nil, nil
	}
	return &models.OrderDeliveryDate{OrderID: orderID, DeliveryDate: d}, nil
}
