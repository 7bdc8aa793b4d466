package services

import (
	"context"

	"lakesideBack/internal/models"
)

type PriceStore interface {
	GetPrices(ctx context.Context) (map[string]int, error)
	UpdatePrices(ctx context.Context, prices map[string]int) error
}

type PriceService struct {
	Store PriceStore
}

func (s *PriceService) GetPrices(ctx context.Context) (map[string]int, error) {
	return s.Store.GetPrices(ctx)
}

func (s *PriceService) UpdatePrices(ctx context.Context, prices map[string]int) error {
	for property, rate := range prices {
		if property == "" || rate <= 0 {
			return &models.ValidationError{Fields: []string{"prices"}}
		}
	}
	return s.Store.UpdatePrices(ctx, prices)
}
