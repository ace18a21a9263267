package runner

import (
	"context"
	"time"

	"github.com/opentracing/opentracing-go"

	"stonks/pkg/logger"
)

// RunCycle — один полный торговый цикл. Порядок жёсткий: сначала полностью
// отрабатывают выходы, потом читается капитал, потом входы — деньги от
// закрытий доступны входам этого же цикла.
func (r *Runner) RunCycle(ctx context.Context) {
	now := time.Now().In(r.loc)

	span := opentracing.StartSpan("trading_cycle")
	span.SetTag("started_at", now.Format(time.RFC3339))
	defer span.Finish()

	logger.Info("cycle: started at %s", now.Format("2006-01-02 15:04:05 MST"))

	// 1. выходы
	plan, err := r.eval.Evaluate(ctx, now)
	if err != nil {
		logger.Error("cycle: evaluate exits: %v", err)
		return
	}
	span.SetTag("closes", len(plan.Closes))
	span.SetTag("trails", len(plan.Trails))
	if !plan.Empty() {
		r.orch.ApplyExitPlan(ctx, plan)
	}

	// 2. капитал — уже после выходов
	account, err := r.broker.GetAccount(ctx)
	if err != nil {
		logger.Error("cycle: account: %v", err)
		return
	}
	logger.Info("cycle: buying power %.2f", account.BuyingPower)

	// 3. скан входов
	ideas, err := r.ideas.Scan(ctx, account.BuyingPower)
	if err != nil {
		logger.Error("cycle: scan: %v", err)
		return
	}
	logger.Info("cycle: %d trade ideas", len(ideas))

	// 4. фильтр по капиталу и постановка
	filtered := FilterByCapital(ideas, account.BuyingPower)
	placed := r.orch.PlaceEntries(ctx, filtered)

	span.SetTag("ideas", len(ideas))
	span.SetTag("placed", placed)
	logger.Info("cycle: complete, %d new orders placed", placed)
	if placed > 0 || !plan.Empty() {
		r.n.Sendf("📊 Цикл завершён: закрытий %d, trailing %d, новых входов %d",
			len(plan.Closes), len(plan.Trails), placed)
	}
}
