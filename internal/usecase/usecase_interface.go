package usecase

import (
	"context"

	"privat-rates/internal/entity"
)

type RatesUsecase interface {
	GetRates(ctx context.Context, days int) (entity.ResultSet, error)
	MaxDays() int
}
