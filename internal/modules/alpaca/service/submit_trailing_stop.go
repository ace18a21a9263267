package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/bytedance/sonic"

	"stonks/internal/helper"
	"stonks/internal/models"
)

// SubmitTrailingStopOrder ставит trailing-stop на весь объём позиции.
// closingSide — сторона закрытия: sell для лонга, buy для шорта.
func (c *Client) SubmitTrailingStopOrder(
	ctx context.Context,
	symbol string,
	closingSide string,
	qty int,
	trailPercent float64,
) (string, error) {
	if qty <= 0 {
		return "", fmt.Errorf("SubmitTrailingStopOrder: qty <= 0")
	}
	if closingSide != "buy" && closingSide != "sell" {
		return "", fmt.Errorf("SubmitTrailingStopOrder: bad side %q", closingSide)
	}

	body := map[string]any{
		"symbol":        symbol,
		"qty":           helper.FormatQty(qty),
		"side":          closingSide,
		"type":          models.OrderTypeTrailingStop,
		"time_in_force": "gtc",
		"trail_percent": strconv.FormatFloat(trailPercent, 'f', -1, 64),
	}

	payload, err := sonic.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("SubmitTrailingStopOrder marshal: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/v2/orders", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("SubmitTrailingStopOrder new request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("SubmitTrailingStopOrder do: %w", err)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode/100 != 2 {
		return "", fmt.Errorf("SubmitTrailingStopOrder %s http %d: %s", symbol, resp.StatusCode, string(data))
	}

	var r struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(data, &r)
	if r.ID == "" {
		return "", fmt.Errorf("SubmitTrailingStopOrder %s: empty order id RAW=%s", symbol, string(data))
	}
	return r.ID, nil
}
