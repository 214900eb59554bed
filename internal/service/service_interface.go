package service

import (
	"context"

	"privat-rates/internal/entity"
)

type RatesService interface {
	CollectRange(ctx context.Context, numDays int) (entity.ResultSet, error)
}
