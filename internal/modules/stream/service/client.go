package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/gorilla/websocket"

	"stonks/internal/modules/config"
)

const (
	paperStreamURL = "wss://paper-api.alpaca.markets/stream"
	liveStreamURL  = "wss://api.alpaca.markets/stream"

	reconnectDelay = 5 * time.Second
)

// Notifier — операторский канал для событий исполнения.
type Notifier interface {
	Sendf(format string, args ...any)
}

// Client слушает поток trade_updates брокера: филлы по нашим заявкам
// приходят push-ем между циклами. Только чтение, состояние не мутирует.
type Client struct {
	wsDialer  *websocket.Dialer
	url       string
	apiKey    string
	secretKey string
	n         Notifier
}

func NewClient(cfg *config.Config, n Notifier) *Client {
	url := cfg.Alpaca.StreamURL
	if url == "" {
		url = paperStreamURL
		if !cfg.Alpaca.Paper {
			url = liveStreamURL
		}
	}
	return &Client{
		wsDialer:  &websocket.Dialer{},
		url:       url,
		apiKey:    cfg.Alpaca.APIKey,
		secretKey: cfg.Alpaca.SecretKey,
		n:         n,
	}
}

// Start — реконнект-цикл до отмены контекста.
func (c *Client) Start(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		if err := c.listen(ctx); err != nil {
			log.Printf("[STREAM] %v, reconnect in %s", err, reconnectDelay)
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(reconnectDelay):
		}
	}
}

func (c *Client) listen(ctx context.Context) error {
	conn, _, err := c.wsDialer.DialContext(ctx, c.url, nil)
	if err != nil {
		return err
	}

	// ReadMessage не реагирует на контекст: при отмене рвём соединение сами
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
		case <-done:
		}
		conn.Close()
	}()

	auth := map[string]any{
		"action": "authenticate",
		"data": map[string]string{
			"key_id":     c.apiKey,
			"secret_key": c.secretKey,
		},
	}
	if err := conn.WriteJSON(auth); err != nil {
		return err
	}

	listen := map[string]any{
		"action": "listen",
		"data": map[string]any{
			"streams": []string{"trade_updates"},
		},
	}
	if err := conn.WriteJSON(listen); err != nil {
		return err
	}

	log.Printf("[STREAM] connected, listening trade_updates")

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return err
		}

		var frame struct {
			Stream string `json:"stream"`
			Data   struct {
				Event string `json:"event"`
				Price string `json:"price"`
				Qty   string `json:"qty"`
				Order struct {
					Symbol string `json:"symbol"`
					Side   string `json:"side"`
					Type   string `json:"type"`
				} `json:"order"`
			} `json:"data"`
		}
		if err := json.Unmarshal(msg, &frame); err != nil {
			continue
		}
		if frame.Stream != "trade_updates" {
			continue
		}

		switch frame.Data.Event {
		case "fill", "partial_fill":
			log.Printf("[STREAM] %s %s %s %s @ %s",
				frame.Data.Event, frame.Data.Order.Symbol,
				frame.Data.Order.Side, frame.Data.Qty, frame.Data.Price)
			if c.n != nil {
				c.n.Sendf("💹 [%s] %s: %s %s шт. @ %s",
					frame.Data.Order.Symbol, frame.Data.Event,
					frame.Data.Order.Side, frame.Data.Qty, frame.Data.Price)
			}
		case "canceled", "rejected", "expired":
			log.Printf("[STREAM] %s %s (%s)",
				frame.Data.Event, frame.Data.Order.Symbol, frame.Data.Order.Type)
		}
	}
}
