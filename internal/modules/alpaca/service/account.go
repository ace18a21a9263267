package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"stonks/internal/models"
)

func (c *Client) GetAccount(ctx context.Context) (models.Account, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/v2/account", nil)
	if err != nil {
		return models.Account{}, fmt.Errorf("GetAccount new request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return models.Account{}, fmt.Errorf("GetAccount do: %w", err)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode/100 != 2 {
		return models.Account{}, fmt.Errorf("GetAccount http %d: %s", resp.StatusCode, string(data))
	}

	var r struct {
		BuyingPower string `json:"buying_power"`
	}
	if err := json.Unmarshal(data, &r); err != nil {
		return models.Account{}, fmt.Errorf("GetAccount decode: %w", err)
	}

	bp, err := strconv.ParseFloat(r.BuyingPower, 64)
	if err != nil {
		return models.Account{}, fmt.Errorf("GetAccount buying_power %q: %w", r.BuyingPower, err)
	}
	return models.Account{BuyingPower: bp}, nil
}
