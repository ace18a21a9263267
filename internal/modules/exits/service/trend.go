package service

import (
	"context"
	"fmt"

	"stonks/internal/indicator"
)

// пол для коротких периодов; календарных дней больше торговых
const minEMALookbackDays = 90

// priceAndEMA — последнее закрытие и EMA(period) по одной серии баров.
// Глубина запроса растёт вместе с периодом: двойной запас в календарных
// днях покрывает выходные и праздники при любом ema_period.
func (e *Evaluator) priceAndEMA(ctx context.Context, symbol string) (float64, float64, error) {
	lookback := minEMALookbackDays
	if d := 2 * e.cfg.EMAPeriod; d > lookback {
		lookback = d
	}
	bars, err := e.data.GetDailyBars(ctx, symbol, lookback)
	if err != nil {
		return 0, 0, err
	}

	closes := indicator.Closes(bars)
	ema, ok := indicator.EMA(closes, e.cfg.EMAPeriod)
	if !ok {
		return 0, 0, fmt.Errorf("insufficient history: %d bars for EMA(%d)", len(bars), e.cfg.EMAPeriod)
	}
	return closes[len(closes)-1], ema, nil
}
