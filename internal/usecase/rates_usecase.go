package usecase

import (
	"context"
	"errors"
	"fmt"

	"privat-rates/internal/entity"
	"privat-rates/internal/service"

	"github.com/sirupsen/logrus"
)

const DefaultMaxDays = 10

var ErrTooManyDays = errors.New("too many days requested")

type Usecase struct {
	service service.RatesService
	maxDays int
	logger  *logrus.Logger
}

func NewRatesUsecase(service service.RatesService, maxDays int, logger *logrus.Logger) *Usecase {
	if maxDays <= 0 {
		maxDays = DefaultMaxDays
	}
	return &Usecase{
		service: service,
		maxDays: maxDays,
		logger:  logger,
	}
}

func (uc *Usecase) MaxDays() int {
	return uc.maxDays
}

// TooManyDaysMessage is printed instead of the rates when the bound is exceeded.
func TooManyDaysMessage(maxDays int) string {
	return fmt.Sprintf("Error: Cannot retrieve exchange rates for more than %d days.", maxDays)
}

func (uc *Usecase) GetRates(ctx context.Context, days int) (entity.ResultSet, error) {
	if days > uc.maxDays {
		uc.logger.Warnf("Requested %d days, limit is %d", days, uc.maxDays)
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyDays, days, uc.maxDays)
	}

	uc.logger.Infof("Fetching rates for the last %d day(s)...", days)

	return uc.service.CollectRange(ctx, days)
}
