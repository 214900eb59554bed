package privatbank

import (
	"context"
	"time"

	"privat-rates/internal/entity"
)

type RatesClient interface {
	FetchRates(ctx context.Context, date time.Time) (entity.DailyRates, error)
}
