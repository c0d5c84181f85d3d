// Package alphavantage provides a client for the Alpha Vantage API
package alphavantage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"

	"github.com/foliotrack/foliotrack/internal/common"
	"github.com/foliotrack/foliotrack/internal/models"
)

const (
	DefaultBaseURL   = "https://www.alphavantage.co/query"
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 5 // requests per second
)

// ErrQuoteUnavailable indicates the quote source could not produce data for a
// symbol. Callers outside the /api/stocks proxy treat this as a soft condition.
var ErrQuoteUnavailable = errors.New("quote source unavailable")

// Client implements interfaces.QuoteClient against Alpha Vantage.
type Client struct {
	client  *resty.Client
	apiKey  string
	logger  *common.Logger
	limiter *rate.Limiter
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.client.SetBaseURL(baseURL)
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the rate limit
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.client.SetTimeout(timeout)
	}
}

// NewClient creates a new Alpha Vantage client
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		client:  resty.New().SetBaseURL(DefaultBaseURL).SetTimeout(DefaultTimeout),
		apiKey:  apiKey,
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// get performs a rate-limited GET with the given function and symbol.
func (c *Client) get(ctx context.Context, function, symbol string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	c.logger.Debug().Str("function", function).Str("symbol", symbol).Msg("Alpha Vantage request")

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"function": function,
			"symbol":   symbol,
			"apikey":   c.apiKey,
		}).
		SetHeader("Accept", "application/json").
		Get("")
	if err != nil {
		return nil, fmt.Errorf("%w: %s request failed: %s", ErrQuoteUnavailable, function, err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("%w: %s returned status %d", ErrQuoteUnavailable, function, resp.StatusCode())
	}

	// Alpha Vantage reports throttling and bad keys as 200 with a note body.
	var note struct {
		Note        string `json:"Note"`
		Information string `json:"Information"`
		ErrMessage  string `json:"Error Message"`
	}
	if err := json.Unmarshal(resp.Body(), &note); err == nil {
		if note.Note != "" || note.Information != "" || note.ErrMessage != "" {
			return nil, fmt.Errorf("%w: %s rejected for %s", ErrQuoteUnavailable, function, symbol)
		}
	}

	return resp.Body(), nil
}

// GetQuote fetches the GLOBAL_QUOTE snapshot for a symbol.
func (c *Client) GetQuote(ctx context.Context, symbol string) (*models.StockQuote, error) {
	body, err := c.get(ctx, "GLOBAL_QUOTE", symbol)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Quote struct {
			Symbol        string `json:"01. symbol"`
			Open          string `json:"02. open"`
			High          string `json:"03. high"`
			Low           string `json:"04. low"`
			Price         string `json:"05. price"`
			Volume        string `json:"06. volume"`
			PreviousClose string `json:"08. previous close"`
			Change        string `json:"09. change"`
			ChangePercent string `json:"10. change percent"`
		} `json:"Global Quote"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: failed to parse quote for %s: %s", ErrQuoteUnavailable, symbol, err)
	}
	if payload.Quote.Symbol == "" {
		return nil, fmt.Errorf("%w: no quote data for %s", ErrQuoteUnavailable, symbol)
	}

	price, err := decimal.NewFromString(payload.Quote.Price)
	if err != nil {
		return nil, fmt.Errorf("%w: bad price %q for %s", ErrQuoteUnavailable, payload.Quote.Price, symbol)
	}

	volume, _ := strconv.ParseInt(payload.Quote.Volume, 10, 64)

	return &models.StockQuote{
		Symbol:        payload.Quote.Symbol,
		Price:         price,
		Change:        parseDecimal(payload.Quote.Change),
		ChangePercent: payload.Quote.ChangePercent,
		Volume:        volume,
		PreviousClose: parseDecimal(payload.Quote.PreviousClose),
		Open:          parseDecimal(payload.Quote.Open),
		High:          parseDecimal(payload.Quote.High),
		Low:           parseDecimal(payload.Quote.Low),
		FetchedAt:     time.Now(),
	}, nil
}

// GetOverview fetches company fundamentals for a symbol.
func (c *Client) GetOverview(ctx context.Context, symbol string) (*models.StockOverview, error) {
	body, err := c.get(ctx, "OVERVIEW", symbol)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Symbol        string `json:"Symbol"`
		Name          string `json:"Name"`
		Description   string `json:"Description"`
		Sector        string `json:"Sector"`
		Industry      string `json:"Industry"`
		MarketCap     string `json:"MarketCapitalization"`
		PERatio       string `json:"PERatio"`
		DividendYield string `json:"DividendYield"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: failed to parse overview for %s: %s", ErrQuoteUnavailable, symbol, err)
	}
	if payload.Symbol == "" {
		return nil, fmt.Errorf("%w: no overview data for %s", ErrQuoteUnavailable, symbol)
	}

	return &models.StockOverview{
		Symbol:        payload.Symbol,
		Name:          payload.Name,
		Description:   payload.Description,
		Sector:        payload.Sector,
		Industry:      payload.Industry,
		MarketCap:     payload.MarketCap,
		PERatio:       payload.PERatio,
		DividendYield: payload.DividendYield,
	}, nil
}

// GetTimeSeriesDaily fetches the daily OHLCV history for a symbol, newest first.
func (c *Client) GetTimeSeriesDaily(ctx context.Context, symbol string) (*models.TimeSeries, error) {
	body, err := c.get(ctx, "TIME_SERIES_DAILY", symbol)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Meta struct {
			Symbol string `json:"2. Symbol"`
		} `json:"Meta Data"`
		Series map[string]struct {
			Open   string `json:"1. open"`
			High   string `json:"2. high"`
			Low    string `json:"3. low"`
			Close  string `json:"4. close"`
			Volume string `json:"5. volume"`
		} `json:"Time Series (Daily)"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: failed to parse time series for %s: %s", ErrQuoteUnavailable, symbol, err)
	}
	if len(payload.Series) == 0 {
		return nil, fmt.Errorf("%w: no time series data for %s", ErrQuoteUnavailable, symbol)
	}

	ts := &models.TimeSeries{Symbol: payload.Meta.Symbol}
	if ts.Symbol == "" {
		ts.Symbol = symbol
	}
	for date, bar := range payload.Series {
		volume, _ := strconv.ParseInt(bar.Volume, 10, 64)
		ts.Bars = append(ts.Bars, models.DailyBar{
			Date:   date,
			Open:   parseDecimal(bar.Open),
			High:   parseDecimal(bar.High),
			Low:    parseDecimal(bar.Low),
			Close:  parseDecimal(bar.Close),
			Volume: volume,
		})
	}
	sort.Slice(ts.Bars, func(i, j int) bool {
		return ts.Bars[i].Date > ts.Bars[j].Date
	})

	return ts, nil
}

// parseDecimal converts an API string field, returning zero on malformed input.
func parseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
