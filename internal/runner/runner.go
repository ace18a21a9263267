package runner

import (
	"context"
	"time"

	"stonks/internal/models"
	"stonks/internal/modules/config"
)

// Broker — полный контракт брокера, нужный раннеру и оркестратору.
type Broker interface {
	GetAccount(ctx context.Context) (models.Account, error)
	GetAllPositions(ctx context.Context) ([]models.Position, error)
	GetOrders(ctx context.Context, status string, symbols []string, limit int) ([]models.Order, error)
	CancelOrder(ctx context.Context, orderID string) error
	ClosePosition(ctx context.Context, symbol string) error
	SubmitBracketOrder(ctx context.Context, symbol string, side models.Side, qty int, limitPrice, stopPrice, takeProfitPrice float64) (string, error)
	SubmitTrailingStopOrder(ctx context.Context, symbol string, closingSide string, qty int, trailPercent float64) (string, error)
	GetCalendar(ctx context.Context, date time.Time) (models.MarketSchedule, bool, error)
}

// ExitEvaluator — оценщик выходов (exits/service.Evaluator).
type ExitEvaluator interface {
	Evaluate(ctx context.Context, now time.Time) (models.ExitPlan, error)
}

// IdeaSource — скринер входов (screener/service.Screener).
type IdeaSource interface {
	Scan(ctx context.Context, accountValue float64) ([]models.TradeIdea, error)
}

// Notifier — операторский канал (telegram). Реализация nil-safe.
type Notifier interface {
	Send(msg string)
	Sendf(format string, args ...any)
}

// Runner гоняет торговые циклы по расписанию площадки. Один поток
// управления: ни один цикл не перекрывает другой, все вызовы брокера
// последовательные.
type Runner struct {
	broker Broker
	eval   ExitEvaluator
	ideas  IdeaSource
	orch   *Orchestrator
	n      Notifier
	loc    *time.Location
}

func New(cfg *config.Config, broker Broker, eval ExitEvaluator, ideas IdeaSource, n Notifier) *Runner {
	return &Runner{
		broker: broker,
		eval:   eval,
		ideas:  ideas,
		orch:   NewOrchestrator(broker, n),
		n:      n,
		loc:    cfg.Location(),
	}
}
