package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"privat-rates/internal/adapter/privatbank"
	"privat-rates/internal/handler"
	"privat-rates/internal/service"
	"privat-rates/internal/usecase"
	"privat-rates/pkg/config"
	"privat-rates/pkg/metrics"
	"privat-rates/pkg/render"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	Config  *config.Config
	Logger  *logrus.Logger
	Metrics *metrics.Metrics
	Service *service.RateService
	Usecase *usecase.Usecase
	Handler *handler.RatesHandler
}

func New(cfg *config.Config, log *logrus.Logger) *App {
	appMetrics := metrics.NewMetrics()

	// initialize adapters
	client := privatbank.NewClient(privatbank.Options{
		BaseURL:            cfg.PrivatBank.BaseURL,
		Timeout:            cfg.PrivatBank.Timeout,
		InsecureSkipVerify: cfg.PrivatBank.InsecureSkipVerify,
	}, appMetrics, log)
	log.Debug("Initialized PrivatBank client")

	// initialize service
	rateService := service.NewRateService(client, cfg.Fetch.Workers, appMetrics, log)
	log.Debug("Initialized service layer")

	// initialize usecase
	ratesUsecase := usecase.NewRatesUsecase(rateService, cfg.Fetch.MaxDays, log)
	log.Debug("Initialized usecase layer")

	return &App{
		Config:  cfg,
		Logger:  log,
		Metrics: appMetrics,
		Service: rateService,
		Usecase: ratesUsecase,
		Handler: handler.NewRatesHandler(ratesUsecase, log),
	}
}

// Fetch prints the rates for the last days to out. Exceeding the day limit
// prints the fixed message and is not an error.
func (a *App) Fetch(ctx context.Context, days int, out io.Writer, format string) error {
	result, err := a.Usecase.GetRates(ctx, days)
	if errors.Is(err, usecase.ErrTooManyDays) {
		_, err = fmt.Fprintln(out, usecase.TooManyDaysMessage(a.Usecase.MaxDays()))
		return err
	}
	if err != nil {
		return err
	}
	return render.Write(out, format, result)
}

// Watch runs Fetch once and then on every tick of the configured cron
// schedule until ctx is done. Failed runs are logged and skipped.
func (a *App) Watch(ctx context.Context, days int, out io.Writer, format string) error {
	if days > a.Usecase.MaxDays() {
		_, err := fmt.Fprintln(out, usecase.TooManyDaysMessage(a.Usecase.MaxDays()))
		return err
	}

	var mu sync.Mutex
	run := func() {
		mu.Lock()
		defer mu.Unlock()

		a.Logger.Info("Updating rates...")
		if err := a.Fetch(ctx, days, out, format); err != nil {
			a.Logger.Errorf("Error updating rates: %v", err)
			return
		}
		a.Logger.Info("Successfully updated rates")
	}

	c := cron.New(cron.WithLogger(cron.PrintfLogger(a.Logger)))
	if _, err := c.AddFunc(a.Config.Watch.Schedule, run); err != nil {
		return fmt.Errorf("add task to schedule %q: %w", a.Config.Watch.Schedule, err)
	}

	run()

	c.Start()
	a.Logger.Infof("Scheduler initialized, schedule %q", a.Config.Watch.Schedule)

	<-ctx.Done()

	<-c.Stop().Done()
	a.Logger.Info("Scheduler stopped")
	return nil
}

func (a *App) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), a.metricsMiddleware())

	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
	}))

	r.GET("/rates", a.Handler.GetRates)
	r.GET("/healthz", a.Handler.Health)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(a.Metrics.Registry, promhttp.HandlerOpts{})))

	return r
}

func (a *App) metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		started := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		a.Metrics.HTTPRequestsTotal.WithLabelValues(path, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		a.Metrics.HTTPRequestDuration.WithLabelValues(path, c.Request.Method).Observe(time.Since(started).Seconds())
	}
}

// Serve runs the HTTP API until ctx is done, then shuts it down gracefully.
func (a *App) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + a.Config.App.Port,
		Handler:           a.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.Logger.Infof("Server starting on port %s...", a.Config.App.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.Logger.Info("Got shutdown signal...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	a.Logger.Info("Server stopped")
	return nil
}
