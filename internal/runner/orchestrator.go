package runner

import (
	"context"
	"fmt"
	"math"

	"stonks/internal/models"
	"stonks/pkg/logger"
)

const openOrdersLimit = 100

// Orchestrator — все мутации на стороне брокера. Делает их идемпотентными
// между циклами: перед входами перечитывает живые позиции, отмены
// защитных заявок best-effort.
type Orchestrator struct {
	broker Broker
	n      Notifier
}

func NewOrchestrator(broker Broker, n Notifier) *Orchestrator {
	return &Orchestrator{broker: broker, n: n}
}

// ApplyExitPlan исполняет план выходов: сначала закрытия, затем конвертации
// в trailing-stop. Ошибка по одному символу не останавливает остальные.
func (o *Orchestrator) ApplyExitPlan(ctx context.Context, plan models.ExitPlan) {
	for _, symbol := range plan.Closes {
		if err := o.ExecuteClose(ctx, symbol); err != nil {
			logger.Error("orchestrator: close %s: %v", symbol, err)
		}
	}
	for _, tr := range plan.Trails {
		if err := o.ActivateTrailingStop(ctx, tr.Symbol, tr.TrailPct); err != nil {
			logger.Error("orchestrator: trailing %s: %v", tr.Symbol, err)
		}
	}
}

// ExecuteClose отменяет все открытые заявки по символу и закрывает позицию
// целиком. Неудачные отмены логируются и не блокируют закрытие.
func (o *Orchestrator) ExecuteClose(ctx context.Context, symbol string) error {
	o.cancelOpenOrders(ctx, symbol)

	if err := o.broker.ClosePosition(ctx, symbol); err != nil {
		return err
	}
	logger.Info("orchestrator: closed %s", symbol)
	o.n.Sendf("🔻 [%s] позиция закрыта", symbol)
	return nil
}

// ActivateTrailingStop снимает защитные заявки позиции и ставит вместо них
// trailing-stop на весь объём.
func (o *Orchestrator) ActivateTrailingStop(ctx context.Context, symbol string, trailPct float64) error {
	positions, err := o.broker.GetAllPositions(ctx)
	if err != nil {
		return err
	}

	var pos *models.Position
	for i := range positions {
		if positions[i].Symbol == symbol {
			pos = &positions[i]
			break
		}
	}
	if pos == nil {
		return fmt.Errorf("no open position for %s", symbol)
	}
	// дробный остаток не округляем вверх: заявка не может превышать позицию
	qty := int(math.Floor(pos.Qty))
	if qty == 0 {
		// рассинхрон с брокером: позиция есть, количества нет
		return fmt.Errorf("position %s has zero quantity", symbol)
	}

	closingSide := "sell"
	if pos.Side == models.SideShort {
		closingSide = "buy"
	}

	o.cancelOpenOrders(ctx, symbol)

	orderID, err := o.broker.SubmitTrailingStopOrder(ctx, symbol, closingSide, qty, trailPct)
	if err != nil {
		return err
	}
	logger.Info("orchestrator: trailing stop %s qty=%d trail=%.1f%% (order %s)", symbol, qty, trailPct, orderID)
	o.n.Sendf("🛡 [%s] trailing-stop %.1f%% на %d шт.", symbol, trailPct, qty)
	return nil
}

// PlaceEntry ставит bracket по идее. Цены уйдут с округлением до цента.
func (o *Orchestrator) PlaceEntry(ctx context.Context, idea models.TradeIdea) error {
	orderID, err := o.broker.SubmitBracketOrder(
		ctx,
		idea.Ticker,
		idea.Side,
		idea.Qty,
		idea.EntryPrice,
		idea.StopLoss,
		idea.TargetPrice,
	)
	if err != nil {
		return err
	}
	logger.Info("orchestrator: entry %s %s qty=%d entry=%.2f stop=%.2f target=%.2f (order %s)",
		idea.Ticker, idea.Side, idea.Qty, idea.EntryPrice, idea.StopLoss, idea.TargetPrice, orderID)
	o.n.Sendf("✅ [%s] %s %d шт. @ %.2f | SL=%.2f TP=%.2f",
		idea.Ticker, idea.Side, idea.Qty, idea.EntryPrice, idea.StopLoss, idea.TargetPrice)
	return nil
}

// PlaceEntries перечитывает живые позиции и ставит входы, пропуская уже
// удерживаемые символы. Удачно поставленный вход сразу попадает в held —
// две идеи по одному символу в цикле не исполнятся обе.
func (o *Orchestrator) PlaceEntries(ctx context.Context, ideas []models.TradeIdea) int {
	positions, err := o.broker.GetAllPositions(ctx)
	if err != nil {
		logger.Error("orchestrator: positions before entries: %v", err)
		return 0
	}
	held := make(map[string]struct{}, len(positions))
	for _, p := range positions {
		held[p.Symbol] = struct{}{}
	}

	placed := 0
	for _, idea := range ideas {
		if _, ok := held[idea.Ticker]; ok {
			logger.Info("orchestrator: skip %s, already holding", idea.Ticker)
			continue
		}
		if err := o.PlaceEntry(ctx, idea); err != nil {
			// идея дропается до следующего цикла, ретраев нет
			logger.Error("orchestrator: entry %s: %v", idea.Ticker, err)
			continue
		}
		held[idea.Ticker] = struct{}{}
		placed++
	}
	return placed
}

// cancelOpenOrders — best-effort зачистка открытых заявок по символу.
func (o *Orchestrator) cancelOpenOrders(ctx context.Context, symbol string) {
	orders, err := o.broker.GetOrders(ctx, models.OrderStatusOpen, []string{symbol}, openOrdersLimit)
	if err != nil {
		logger.Error("orchestrator: open orders %s: %v", symbol, err)
		return
	}
	for _, ord := range orders {
		if err := o.broker.CancelOrder(ctx, ord.ID); err != nil {
			logger.Error("orchestrator: cancel %s (%s): %v", ord.ID, symbol, err)
			continue
		}
		logger.Info("orchestrator: cancelled %s (%s)", ord.ID, symbol)
	}
}
