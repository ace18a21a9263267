package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/bytedance/sonic"

	"stonks/internal/helper"
	"stonks/internal/models"
)

// SubmitBracketOrder ставит bracket: лимитный вход + stop-loss + take-profit,
// GTC. Цены округляются до цента, количество целое.
func (c *Client) SubmitBracketOrder(
	ctx context.Context,
	symbol string,
	side models.Side,
	qty int,
	limitPrice float64,
	stopPrice float64,
	takeProfitPrice float64,
) (string, error) {
	if qty <= 0 {
		return "", fmt.Errorf("SubmitBracketOrder: qty <= 0")
	}

	orderSide := "buy"
	if side == models.SideShort {
		orderSide = "sell"
	}

	body := map[string]any{
		"symbol":        symbol,
		"qty":           helper.FormatQty(qty),
		"side":          orderSide,
		"type":          "limit",
		"time_in_force": "gtc",
		"limit_price":   helper.FormatPrice(limitPrice),
		"order_class":   "bracket",
		"stop_loss": map[string]string{
			"stop_price": helper.FormatPrice(stopPrice),
		},
		"take_profit": map[string]string{
			"limit_price": helper.FormatPrice(takeProfitPrice),
		},
	}

	payload, err := sonic.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("SubmitBracketOrder marshal: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/v2/orders", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("SubmitBracketOrder new request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("SubmitBracketOrder do: %w", err)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode/100 != 2 {
		return "", fmt.Errorf("SubmitBracketOrder %s http %d: %s", symbol, resp.StatusCode, string(data))
	}

	var r struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(data, &r)
	if r.ID == "" {
		return "", fmt.Errorf("SubmitBracketOrder %s: empty order id RAW=%s", symbol, string(data))
	}
	return r.ID, nil
}
