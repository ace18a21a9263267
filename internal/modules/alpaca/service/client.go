package service

import (
	"context"
	"io"
	"net/http"
	"time"

	"stonks/internal/modules/config"
)

const (
	paperTradeURL = "https://paper-api.alpaca.markets"
	liveTradeURL  = "https://api.alpaca.markets"
)

// Client — REST-клиент трейдингового API Alpaca. Один инстанс на процесс,
// все вызовы синхронные.
type Client struct {
	http      *http.Client
	baseURL   string
	apiKey    string
	secretKey string
	loc       *time.Location
}

func NewClient(cfg *config.Config) *Client {
	baseURL := cfg.Alpaca.TradeURL
	if baseURL == "" {
		if cfg.Alpaca.Paper {
			baseURL = paperTradeURL
		} else {
			baseURL = liveTradeURL
		}
	}
	return &Client{
		http:      &http.Client{Timeout: 10 * time.Second},
		baseURL:   baseURL,
		apiKey:    cfg.Alpaca.APIKey,
		secretKey: cfg.Alpaca.SecretKey,
		loc:       cfg.Location(),
	}
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("APCA-API-KEY-ID", c.apiKey)
	req.Header.Set("APCA-API-SECRET-KEY", c.secretKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}
