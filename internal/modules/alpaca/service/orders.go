package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"stonks/internal/models"
)

// GetOrders возвращает заявки по статусу (open/closed/all), опционально
// отфильтрованные по символам.
func (c *Client) GetOrders(ctx context.Context, status string, symbols []string, limit int) ([]models.Order, error) {
	q := url.Values{}
	if status != "" {
		q.Set("status", status)
	}
	if len(symbols) > 0 {
		q.Set("symbols", strings.Join(symbols, ","))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	req, err := c.newRequest(ctx, http.MethodGet, "/v2/orders?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("GetOrders new request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GetOrders do: %w", err)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("GetOrders http %d: %s", resp.StatusCode, string(data))
	}

	var raw []struct {
		ID       string     `json:"id"`
		Symbol   string     `json:"symbol"`
		Side     string     `json:"side"`
		Type     string     `json:"type"`
		Status   string     `json:"status"`
		FilledAt *time.Time `json:"filled_at"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("GetOrders decode: %w", err)
	}

	out := make([]models.Order, 0, len(raw))
	for _, o := range raw {
		out = append(out, models.Order{
			ID:       o.ID,
			Symbol:   o.Symbol,
			Side:     o.Side,
			Type:     o.Type,
			Status:   o.Status,
			FilledAt: o.FilledAt,
		})
	}
	return out, nil
}

func (c *Client) CancelOrder(ctx context.Context, orderID string) error {
	req, err := c.newRequest(ctx, http.MethodDelete, "/v2/orders/"+url.PathEscape(orderID), nil)
	if err != nil {
		return fmt.Errorf("CancelOrder new request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("CancelOrder do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("CancelOrder %s http %d: %s", orderID, resp.StatusCode, string(data))
	}
	return nil
}
