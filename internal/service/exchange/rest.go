package exchange

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"TradePulse/internal/domain/models"
	"TradePulse/internal/domain/repository"
	"TradePulse/internal/service/ratelimit"
	xhttp "TradePulse/pkg/http"
)

// RESTClient fetches OHLCV klines from a Binance-compatible REST API.
type RESTClient struct {
	http    *xhttp.Client
	limiter *ratelimit.Limiter
	maxRPS  float64
}

// NewRESTClient creates a kline fetcher with a request-per-second budget.
func NewRESTClient(baseURL string, timeout time.Duration, maxRPS float64) *RESTClient {
	if maxRPS <= 0 {
		maxRPS = 10
	}
	return &RESTClient{
		http:    xhttp.NewClient(baseURL, xhttp.WithTimeout(timeout)),
		limiter: ratelimit.New(),
		maxRPS:  maxRPS,
	}
}

// FetchKlines returns up to limit chronological candles for symbol.
func (c *RESTClient) FetchKlines(ctx context.Context, symbol string, tf repository.Timeframe, limit int) ([]models.Candle, error) {
	if err := c.limiter.Wait(ctx, "klines", c.maxRPS, c.maxRPS); err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("interval", string(tf))
	q.Set("limit", strconv.Itoa(limit))

	var rows [][]interface{}
	if err := c.http.GetJSON(ctx, "/api/v3/klines?"+q.Encode(), &rows); err != nil {
		return nil, fmt.Errorf("fetch klines %s: %w", symbol, err)
	}

	candles := make([]models.Candle, 0, len(rows))
	for _, row := range rows {
		candle, err := parseKline(symbol, row)
		if err != nil {
			return nil, fmt.Errorf("parse kline %s: %w", symbol, err)
		}
		candles = append(candles, candle)
	}
	return candles, nil
}

// parseKline decodes one kline row. The API returns a mixed array:
// [openTime(ms), open, high, low, close, volume, ...] with prices as strings.
func parseKline(symbol string, row []interface{}) (models.Candle, error) {
	if len(row) < 6 {
		return models.Candle{}, fmt.Errorf("short row: %d fields", len(row))
	}

	openMs, ok := row[0].(float64)
	if !ok {
		return models.Candle{}, fmt.Errorf("open time is not numeric")
	}

	fields := make([]float64, 5)
	for i := 0; i < 5; i++ {
		s, ok := row[i+1].(string)
		if !ok {
			return models.Candle{}, fmt.Errorf("field %d is not a string", i+1)
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return models.Candle{}, fmt.Errorf("field %d: %w", i+1, err)
		}
		fields[i] = v
	}

	return models.Candle{
		Bucket: time.UnixMilli(int64(openMs)).UTC(),
		Symbol: symbol,
		Open:   fields[0],
		High:   fields[1],
		Low:    fields[2],
		Close:  fields[3],
		Volume: fields[4],
	}, nil
}
