package service

import (
	"context"

	"stonks/internal/models"
)

// hasOpenTrailingStop — уже висит открытый trailing-stop по символу?
// Повторная активация в этом случае запрещена (идемпотентность).
func (e *Evaluator) hasOpenTrailingStop(ctx context.Context, symbol string) (bool, error) {
	orders, err := e.broker.GetOrders(ctx, models.OrderStatusOpen, []string{symbol}, orderHistoryLimit)
	if err != nil {
		return false, err
	}
	for _, o := range orders {
		if o.Type == models.OrderTypeTrailingStop {
			return true, nil
		}
	}
	return false, nil
}
