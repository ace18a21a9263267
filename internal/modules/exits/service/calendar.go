package service

import (
	"context"
	"time"

	"stonks/internal/models"
	"stonks/pkg/logger"
)

const orderHistoryLimit = 100

// openedAt — время открытия позиции: самый ранний филл среди закрытых
// заявок по символу, сторона не важна (открывающим может быть и sell).
// ok=false — возраст определить нельзя (нет филлов или брокер не ответил).
func (e *Evaluator) openedAt(ctx context.Context, symbol string) (time.Time, bool) {
	orders, err := e.broker.GetOrders(ctx, models.OrderStatusClosed, []string{symbol}, orderHistoryLimit)
	if err != nil {
		logger.Error("exit: order history %s: %v", symbol, err)
		return time.Time{}, false
	}

	var earliest time.Time
	for _, o := range orders {
		if o.FilledAt == nil {
			continue
		}
		if earliest.IsZero() || o.FilledAt.Before(earliest) {
			earliest = *o.FilledAt
		}
	}
	if earliest.IsZero() {
		return time.Time{}, false
	}
	return earliest, true
}
