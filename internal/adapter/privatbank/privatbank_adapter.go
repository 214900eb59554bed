package privatbank

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"privat-rates/internal/entity"
	"privat-rates/pkg/metrics"

	"github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

const (
	DefaultBaseURL    = "https://api.privatbank.ua"
	exchangeRatesPath = "/p24api/exchange_rates"
)

type Options struct {
	BaseURL string
	// Timeout bounds a whole request. Zero means no timeout.
	Timeout            time.Duration
	InsecureSkipVerify bool
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	metrics    *metrics.Metrics
	logger     *logrus.Logger
}

func NewClient(opts Options, m *metrics.Metrics, logger *logrus.Logger) *Client {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.ResponseHeaderTimeout = opts.Timeout
	if opts.InsecureSkipVerify {
		logger.Warn("TLS certificate verification is disabled for PrivatBank API")
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // opt-in via config
	}

	return &Client{
		httpClient: &http.Client{
			Timeout:   opts.Timeout,
			Transport: transport,
		},
		baseURL: baseURL,
		metrics: m,
		logger:  logger,
	}
}

func (c *Client) requestURL(date string) (string, error) {
	u, err := url.Parse(c.baseURL + exchangeRatesPath)
	if err != nil {
		return "", fmt.Errorf("%w: parse base url: %w", ErrInvalidRequest, err)
	}

	q := url.Values{}
	q.Set("json", "")
	q.Set("date", date)
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// FetchRates returns the EUR and USD cash rates published for date.
// Transport failures come back as *NetworkError, unexpected payloads as
// *MalformedResponseError. A request that cannot be built matches
// ErrInvalidRequest.
func (c *Client) FetchRates(ctx context.Context, date time.Time) (entity.DailyRates, error) {
	started := time.Now()
	dateStr := entity.FormatDate(date)

	rates, err := c.fetchRates(ctx, dateStr)
	switch err.(type) {
	case nil:
		c.metrics.ObserveFetch(metrics.ResultOK, started)
	case *NetworkError:
		c.metrics.ObserveFetch(metrics.ResultNetwork, started)
	case *MalformedResponseError:
		c.metrics.ObserveFetch(metrics.ResultMalformed, started)
	default:
		c.metrics.ObserveFetch(metrics.ResultInvalidRequest, started)
	}

	return rates, err
}

func (c *Client) fetchRates(ctx context.Context, dateStr string) (entity.DailyRates, error) {
	reqURL, err := c.requestURL(dateStr)
	if err != nil {
		return nil, err
	}

	c.logger.Debugf("Fetching rates from URL: %s", reqURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		c.logger.Errorf("Failed to create request: %v", err)
		return nil, fmt.Errorf("%w: create request: %w", ErrInvalidRequest, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Errorf("Failed to fetch by API: %v", err)
		return nil, &NetworkError{Date: dateStr, Err: err}
	}
	defer resp.Body.Close()

	c.logger.Debugf("Response status: %d", resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Errorf("Failed to read response body: %v", err)
		return nil, &NetworkError{Date: dateStr, Err: fmt.Errorf("read response body: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Debugf("Response body length: %d", len(body))
		return nil, &MalformedResponseError{
			Date:       dateStr,
			StatusCode: resp.StatusCode,
			Reason:     fmt.Sprintf("unexpected status %d", resp.StatusCode),
		}
	}

	var payload ExchangeRates
	if err := json.Unmarshal(body, &payload); err != nil {
		c.logger.Errorf("Failed to parse JSON: %v", err)
		c.logger.Debugf("First 200 chars: %s", string(body)[:min(200, len(body))])
		return nil, &MalformedResponseError{Date: dateStr, StatusCode: resp.StatusCode, Reason: "decode json", Err: err}
	}

	rates, err := convertExchangeRates(payload)
	if err != nil {
		c.logger.Errorf("Failed to convert response for %s: %v", dateStr, err)
		return nil, &MalformedResponseError{Date: dateStr, StatusCode: resp.StatusCode, Reason: "convert rates", Err: err}
	}

	c.logger.WithField("date", dateStr).Debugf("Parsed %d of %d currencies", len(rates), len(*payload.ExchangeRate))

	return rates, nil
}

// convertExchangeRates keeps only the supported currencies. A supported
// currency without sale or purchase rate fails the whole payload.
func convertExchangeRates(payload ExchangeRates) (entity.DailyRates, error) {
	if payload.ExchangeRate == nil {
		return nil, fmt.Errorf("missing field exchangeRate")
	}

	rates := make(entity.DailyRates)
	var errs error

	for _, rate := range *payload.ExchangeRate {
		currency := entity.Currency(rate.Currency)
		if !currency.IsSupported() {
			continue
		}

		if rate.SaleRate == nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: missing saleRate", currency))
		}
		if rate.PurchaseRate == nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: missing purchaseRate", currency))
		}
		if rate.SaleRate == nil || rate.PurchaseRate == nil {
			continue
		}

		rates[currency] = entity.ExchangeRate{
			Sale:     *rate.SaleRate,
			Purchase: *rate.PurchaseRate,
		}
	}

	if errs != nil {
		return nil, errs
	}
	return rates, nil
}
