package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"

	"stonks/internal/models"
)

func (c *Client) GetAllPositions(ctx context.Context) ([]models.Position, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/v2/positions", nil)
	if err != nil {
		return nil, fmt.Errorf("GetAllPositions new request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GetAllPositions do: %w", err)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("GetAllPositions http %d: %s", resp.StatusCode, string(data))
	}

	var raw []struct {
		Symbol        string `json:"symbol"`
		Qty           string `json:"qty"`
		AvgEntryPrice string `json:"avg_entry_price"`
		CurrentPrice  string `json:"current_price"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("GetAllPositions decode: %w", err)
	}

	out := make([]models.Position, 0, len(raw))
	for _, p := range raw {
		qty, err := strconv.ParseFloat(p.Qty, 64)
		if err != nil {
			return nil, fmt.Errorf("GetAllPositions qty %q (%s): %w", p.Qty, p.Symbol, err)
		}
		entry, _ := strconv.ParseFloat(p.AvgEntryPrice, 64)
		current, _ := strconv.ParseFloat(p.CurrentPrice, 64)

		// сторона вычисляется один раз, дальше qty всегда абсолютное
		out = append(out, models.Position{
			Symbol:   p.Symbol,
			Side:     models.SideFromQty(qty),
			Qty:      math.Abs(qty),
			AvgEntry: entry,
			Current:  current,
		})
	}
	return out, nil
}

// ClosePosition закрывает позицию целиком рыночным ордером на стороне брокера.
func (c *Client) ClosePosition(ctx context.Context, symbol string) error {
	req, err := c.newRequest(ctx, http.MethodDelete, "/v2/positions/"+url.PathEscape(symbol), nil)
	if err != nil {
		return fmt.Errorf("ClosePosition new request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("ClosePosition do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("ClosePosition %s http %d: %s", symbol, resp.StatusCode, string(data))
	}
	return nil
}
