package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"

	"stonks/internal/models"
	"stonks/internal/modules/config"
)

const defaultDataURL = "https://data.alpaca.markets"

// Client — клиент Market Data API Alpaca (дневные бары).
type Client struct {
	http      *http.Client
	baseURL   string
	apiKey    string
	secretKey string
}

func NewClient(cfg *config.Config) *Client {
	baseURL := cfg.Alpaca.DataURL
	if baseURL == "" {
		baseURL = defaultDataURL
	}
	return &Client{
		http:      &http.Client{Timeout: 15 * time.Second},
		baseURL:   baseURL,
		apiKey:    cfg.Alpaca.APIKey,
		secretKey: cfg.Alpaca.SecretKey,
	}
}

// GetDailyBars отдаёт дневные бары за lookbackDays календарных дней,
// oldest→newest. Неизвестный символ — пустая серия, не ошибка.
func (c *Client) GetDailyBars(ctx context.Context, symbol string, lookbackDays int) ([]models.Bar, error) {
	q := url.Values{}
	q.Set("timeframe", "1Day")
	q.Set("start", time.Now().UTC().AddDate(0, 0, -lookbackDays).Format(time.RFC3339))
	q.Set("limit", "1000")
	q.Set("adjustment", "split")

	path := "/v2/stocks/" + url.PathEscape(symbol) + "/bars?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, errors.Wrap(err, "GetDailyBars new request")
	}
	req.Header.Set("APCA-API-KEY-ID", c.apiKey)
	req.Header.Set("APCA-API-SECRET-KEY", c.secretKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "GetDailyBars do")
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode/100 != 2 {
		return nil, errors.Errorf("GetDailyBars %s http %d: %s", symbol, resp.StatusCode, string(data))
	}

	var r struct {
		Bars []struct {
			T time.Time `json:"t"`
			O float64   `json:"o"`
			H float64   `json:"h"`
			L float64   `json:"l"`
			C float64   `json:"c"`
			V int64     `json:"v"`
		} `json:"bars"`
	}
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, errors.Wrapf(err, "GetDailyBars %s decode", symbol)
	}

	out := make([]models.Bar, 0, len(r.Bars))
	for _, b := range r.Bars {
		out = append(out, models.Bar{
			Date:   b.T,
			Open:   b.O,
			High:   b.H,
			Low:    b.L,
			Close:  b.C,
			Volume: b.V,
		})
	}
	return out, nil
}
