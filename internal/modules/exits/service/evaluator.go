package service

import (
	"context"
	"time"

	"stonks/internal/models"
	"stonks/internal/modules/config"
	"stonks/pkg/logger"
)

// Broker — срез брокерского API, нужный оценщику выходов.
type Broker interface {
	GetAllPositions(ctx context.Context) ([]models.Position, error)
	GetOrders(ctx context.Context, status string, symbols []string, limit int) ([]models.Order, error)
}

// BarSource — провайдер дневных баров для EMA-правила.
type BarSource interface {
	GetDailyBars(ctx context.Context, symbol string, lookbackDays int) ([]models.Bar, error)
}

type Evaluator struct {
	broker Broker
	data   BarSource
	cfg    config.ExitConfig
}

func NewEvaluator(cfg *config.Config, broker Broker, data BarSource) *Evaluator {
	return &Evaluator{
		broker: broker,
		data:   data,
		cfg:    cfg.Exit,
	}
}

// Evaluate прогоняет все включённые правила по текущему набору позиций.
// Close из разных правил дедуплицируется; trail не выдаётся символам,
// которые уже закрываем (Close побеждает). Ошибка по одному символу —
// скип этого символа, не всего прогона.
func (e *Evaluator) Evaluate(ctx context.Context, now time.Time) (models.ExitPlan, error) {
	positions, err := e.broker.GetAllPositions(ctx)
	if err != nil {
		return models.ExitPlan{}, err
	}
	if len(positions) == 0 {
		return models.ExitPlan{}, nil
	}

	closeSet := make(map[string]struct{})

	if e.cfg.CalendarExitEnabled() {
		for _, p := range positions {
			openedAt, ok := e.openedAt(ctx, p.Symbol)
			if !ok {
				// возраст не определить — не повод закрывать
				continue
			}
			if now.Sub(openedAt) > time.Duration(e.cfg.MaxHoldDays)*24*time.Hour {
				logger.Info("exit: calendar close %s (held > %d days)", p.Symbol, e.cfg.MaxHoldDays)
				closeSet[p.Symbol] = struct{}{}
			}
		}
	}

	if e.cfg.EMAExitEnabled {
		for _, p := range positions {
			price, ema, err := e.priceAndEMA(ctx, p.Symbol)
			if err != nil {
				// нет данных — не закрываем (fail-safe)
				logger.Error("exit: ema data %s: %v", p.Symbol, err)
				continue
			}
			breached := price < ema
			if p.Side == models.SideShort {
				breached = price > ema
			}
			if breached {
				logger.Info("exit: ema close %s (%s): price=%.2f ema(%d)=%.2f",
					p.Symbol, p.Side, price, e.cfg.EMAPeriod, ema)
				closeSet[p.Symbol] = struct{}{}
			}
		}
	}

	var plan models.ExitPlan
	// порядок стабильный: как отдал брокер
	for _, p := range positions {
		if _, ok := closeSet[p.Symbol]; ok {
			plan.Closes = append(plan.Closes, p.Symbol)
		}
	}

	if e.cfg.TrailingStopEnabled {
		for _, p := range positions {
			if _, closing := closeSet[p.Symbol]; closing {
				continue
			}
			act, trail := e.cfg.TrailingActivationPct, e.cfg.TrailingTrailPct
			if p.Side == models.SideShort {
				act, trail = e.cfg.ShortTrailingActivationPct, e.cfg.ShortTrailingTrailPct
			}
			if p.GainPct() < act {
				continue
			}
			has, err := e.hasOpenTrailingStop(ctx, p.Symbol)
			if err != nil {
				logger.Error("exit: trailing check %s: %v", p.Symbol, err)
				continue
			}
			if has {
				continue
			}
			logger.Info("exit: trailing activation %s (%s): gain=%.2f%% trail=%.1f%%",
				p.Symbol, p.Side, p.GainPct(), trail)
			plan.Trails = append(plan.Trails, models.TrailActivation{
				Symbol:   p.Symbol,
				TrailPct: trail,
			})
		}
	}

	return plan, nil
}
