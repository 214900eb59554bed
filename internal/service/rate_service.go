package service

import (
	"context"
	"fmt"
	"time"

	"privat-rates/internal/adapter/privatbank"
	"privat-rates/internal/entity"
	"privat-rates/pkg/metrics"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

type RateService struct {
	client  privatbank.RatesClient
	clock   func() time.Time
	workers int
	metrics *metrics.Metrics
	logger  *logrus.Logger
}

// NewRateService builds the range aggregator. workers <= 1 keeps the fetches
// strictly sequential.
func NewRateService(client privatbank.RatesClient, workers int, m *metrics.Metrics, logger *logrus.Logger) *RateService {
	if workers < 1 {
		workers = 1
	}
	return &RateService{
		client:  client,
		clock:   time.Now,
		workers: workers,
		metrics: m,
		logger:  logger,
	}
}

// SetClock replaces the time source used to anchor the range.
func (r *RateService) SetClock(clock func() time.Time) {
	r.clock = clock
}

// CollectRange fetches rates for every calendar day in [now-numDays, now],
// oldest first. The first failed fetch aborts the collection.
func (r *RateService) CollectRange(ctx context.Context, numDays int) (entity.ResultSet, error) {
	end := r.clock()
	start := end.AddDate(0, 0, -numDays)
	dates := dateRange(end, numDays)

	r.metrics.ObserveRange(numDays)
	r.logger.Infof("Collecting rates for %d day(s): %s - %s", len(dates), entity.FormatDate(start), entity.FormatDate(end))

	var (
		result entity.ResultSet
		err    error
	)
	if r.workers > 1 && len(dates) > 1 {
		result, err = r.collectConcurrently(ctx, dates)
	} else {
		result, err = r.collectSequentially(ctx, dates)
	}
	if err != nil {
		r.logger.WithError(err).Debug("Rate collection aborted")
		return nil, err
	}

	r.logger.Infof("Successfully collected rates for %d day(s)", len(result))
	return result, nil
}

func (r *RateService) collectSequentially(ctx context.Context, dates []time.Time) (entity.ResultSet, error) {
	result := make(entity.ResultSet, 0, len(dates))
	for _, date := range dates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		day, err := r.fetchDay(ctx, date)
		if err != nil {
			return nil, err
		}
		result = append(result, day)
	}
	return result, nil
}

func (r *RateService) collectConcurrently(ctx context.Context, dates []time.Time) (entity.ResultSet, error) {
	result := make(entity.ResultSet, len(dates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for i, date := range dates {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			day, err := r.fetchDay(gctx, date)
			if err != nil {
				return err
			}
			result[i] = day
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *RateService) fetchDay(ctx context.Context, date time.Time) (entity.DailyResult, error) {
	dateStr := entity.FormatDate(date)
	r.logger.Debugf("Fetching rates for %s", dateStr)

	rates, err := r.client.FetchRates(ctx, date)
	if err != nil {
		return entity.DailyResult{}, fmt.Errorf("fetch rates for %s: %w", dateStr, err)
	}

	if len(rates) < len(entity.SupportedCurrencies) {
		r.logger.Warnf("Only %d of %d currencies published for %s", len(rates), len(entity.SupportedCurrencies), dateStr)
	}

	return entity.NewDailyResult(date, rates), nil
}

// dateRange returns the numDays+1 calendar days ending on the day of end,
// oldest first. Days are anchored at noon so a DST transition cannot shift
// one across midnight.
func dateRange(end time.Time, numDays int) []time.Time {
	if numDays < 0 {
		return nil
	}
	anchor := time.Date(end.Year(), end.Month(), end.Day(), 12, 0, 0, 0, end.Location())
	dates := make([]time.Time, 0, numDays+1)
	for i := numDays; i >= 0; i-- {
		dates = append(dates, anchor.AddDate(0, 0, -i))
	}
	return dates
}
