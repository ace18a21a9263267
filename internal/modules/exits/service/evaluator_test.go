package service

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stonks/internal/models"
	"stonks/internal/modules/config"
	"stonks/pkg/logger"
)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type fakeBroker struct {
	positions []models.Position

	closedOrders map[string][]models.Order
	openOrders   map[string][]models.Order
	orderErrs    map[string]error
}

func (f *fakeBroker) GetAllPositions(_ context.Context) ([]models.Position, error) {
	return f.positions, nil
}

func (f *fakeBroker) GetOrders(_ context.Context, status string, symbols []string, _ int) ([]models.Order, error) {
	sym := symbols[0]
	if err, ok := f.orderErrs[sym]; ok {
		return nil, err
	}
	if status == models.OrderStatusOpen {
		return f.openOrders[sym], nil
	}
	return f.closedOrders[sym], nil
}

type fakeBarSource struct {
	closes map[string][]float64
	errs   map[string]error

	lastLookback int
}

func (f *fakeBarSource) GetDailyBars(_ context.Context, symbol string, lookbackDays int) ([]models.Bar, error) {
	f.lastLookback = lookbackDays
	if err, ok := f.errs[symbol]; ok {
		return nil, err
	}
	closes := f.closes[symbol]
	out := make([]models.Bar, len(closes))
	day := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	for i, c := range closes {
		out[i] = models.Bar{Date: day.AddDate(0, 0, i), Close: c}
	}
	return out, nil
}

func filledAt(ts time.Time) *time.Time { return &ts }

func exitCfg(mut func(*config.ExitConfig)) *config.Config {
	cfg := config.Default()
	cfg.Exit = config.ExitConfig{
		EMAExitEnabled:             false,
		EMAPeriod:                  10,
		MaxHoldDays:                0,
		TrailingStopEnabled:        false,
		TrailingActivationPct:      3.0,
		TrailingTrailPct:           5.0,
		ShortTrailingActivationPct: 2.0,
		ShortTrailingTrailPct:      3.0,
	}
	if mut != nil {
		mut(&cfg.Exit)
	}
	return &cfg
}

func longPos(symbol string, entry, current float64) models.Position {
	return models.Position{Symbol: symbol, Side: models.SideLong, Qty: 10, AvgEntry: entry, Current: current}
}

func shortPos(symbol string, entry, current float64) models.Position {
	return models.Position{Symbol: symbol, Side: models.SideShort, Qty: 10, AvgEntry: entry, Current: current}
}

func TestCalendarExitBoundary(t *testing.T) {
	now := time.Date(2026, 8, 31, 15, 0, 0, 0, time.UTC)
	cfg := exitCfg(func(e *config.ExitConfig) { e.MaxHoldDays = 14 })

	tests := []struct {
		name      string
		filled    time.Time
		wantClose bool
	}{
		{"Older than max hold", now.AddDate(0, 0, -15), true},
		{"Exactly max hold is kept", now.Add(-14 * 24 * time.Hour), false},
		{"One hour past max hold", now.Add(-14*24*time.Hour - time.Hour), true},
		{"Fresh position", now.AddDate(0, 0, -2), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			broker := &fakeBroker{
				positions: []models.Position{longPos("AAPL", 100, 105)},
				closedOrders: map[string][]models.Order{
					"AAPL": {{ID: "1", Side: "buy", FilledAt: filledAt(tt.filled)}},
				},
			}
			ev := NewEvaluator(cfg, broker, &fakeBarSource{})

			plan, err := ev.Evaluate(context.Background(), now)
			require.NoError(t, err)
			if tt.wantClose {
				assert.Equal(t, []string{"AAPL"}, plan.Closes)
			} else {
				assert.Empty(t, plan.Closes)
			}
		})
	}
}

func TestCalendarExitUsesEarliestFillAnySide(t *testing.T) {
	now := time.Date(2026, 8, 31, 15, 0, 0, 0, time.UTC)
	cfg := exitCfg(func(e *config.ExitConfig) { e.MaxHoldDays = 14 })

	// открывающим был sell (шорт), самый ранний филл старше лимита
	broker := &fakeBroker{
		positions: []models.Position{shortPos("TSLA", 200, 195)},
		closedOrders: map[string][]models.Order{
			"TSLA": {
				{ID: "2", Side: "buy", FilledAt: filledAt(now.AddDate(0, 0, -3))},
				{ID: "1", Side: "sell", FilledAt: filledAt(now.AddDate(0, 0, -20))},
			},
		},
	}
	ev := NewEvaluator(cfg, broker, &fakeBarSource{})

	plan, err := ev.Evaluate(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, []string{"TSLA"}, plan.Closes)
}

func TestCalendarExitUnknownAgeSkipped(t *testing.T) {
	now := time.Now()
	cfg := exitCfg(func(e *config.ExitConfig) { e.MaxHoldDays = 14 })

	broker := &fakeBroker{
		positions:    []models.Position{longPos("AAPL", 100, 105)},
		closedOrders: map[string][]models.Order{"AAPL": {{ID: "1", Side: "buy"}}}, // без филла
	}
	ev := NewEvaluator(cfg, broker, &fakeBarSource{})

	plan, err := ev.Evaluate(context.Background(), now)
	require.NoError(t, err)
	assert.Empty(t, plan.Closes)
}

func TestEMAExitDirections(t *testing.T) {
	cfg := exitCfg(func(e *config.ExitConfig) {
		e.EMAExitEnabled = true
		e.EMAPeriod = 3
	})

	tests := []struct {
		name      string
		pos       models.Position
		closes    []float64
		wantClose bool
	}{
		{"Long below EMA closes", longPos("A", 100, 90), []float64{100, 100, 100, 100, 90}, true},
		{"Long above EMA holds", longPos("A", 100, 110), []float64{100, 100, 100, 100, 110}, false},
		{"Short above EMA closes", shortPos("A", 100, 110), []float64{100, 100, 100, 100, 110}, true},
		{"Short below EMA holds", shortPos("A", 100, 90), []float64{100, 100, 100, 100, 90}, false},
		{"Price equal to EMA holds long", longPos("A", 100, 100), []float64{100, 100, 100, 100, 100}, false},
		{"Price equal to EMA holds short", shortPos("A", 100, 100), []float64{100, 100, 100, 100, 100}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			broker := &fakeBroker{positions: []models.Position{tt.pos}}
			data := &fakeBarSource{closes: map[string][]float64{"A": tt.closes}}
			ev := NewEvaluator(cfg, broker, data)

			plan, err := ev.Evaluate(context.Background(), time.Now())
			require.NoError(t, err)
			if tt.wantClose {
				assert.Equal(t, []string{"A"}, plan.Closes)
			} else {
				assert.Empty(t, plan.Closes)
			}
		})
	}
}

func TestEMAExitMissingDataIsSafe(t *testing.T) {
	cfg := exitCfg(func(e *config.ExitConfig) {
		e.EMAExitEnabled = true
		e.EMAPeriod = 10
	})

	broker := &fakeBroker{positions: []models.Position{
		longPos("NODATA", 100, 50),
		longPos("OK", 100, 50),
	}}
	data := &fakeBarSource{
		closes: map[string][]float64{"OK": {100, 100, 100, 100, 100, 100, 100, 100, 100, 100, 50}},
		errs:   map[string]error{"NODATA": fmt.Errorf("feed down")},
	}
	ev := NewEvaluator(cfg, broker, data)

	plan, err := ev.Evaluate(context.Background(), time.Now())
	require.NoError(t, err)
	// ошибка данных по одному символу не закрывает его и не мешает другим
	assert.Equal(t, []string{"OK"}, plan.Closes)
}

func TestEMALookbackScalesWithPeriod(t *testing.T) {
	series := func(n int) []float64 {
		out := make([]float64, n)
		for i := range out {
			out[i] = 100
		}
		return out
	}

	tests := []struct {
		name        string
		period      int
		minLookback int
	}{
		{"Short period keeps the floor", 10, 90},
		{"Long period widens the window", 100, 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := exitCfg(func(e *config.ExitConfig) {
				e.EMAExitEnabled = true
				e.EMAPeriod = tt.period
			})
			broker := &fakeBroker{positions: []models.Position{longPos("A", 100, 100)}}
			data := &fakeBarSource{closes: map[string][]float64{"A": series(tt.period + 1)}}
			ev := NewEvaluator(cfg, broker, data)

			plan, err := ev.Evaluate(context.Background(), time.Now())
			require.NoError(t, err)
			assert.Empty(t, plan.Closes)
			assert.GreaterOrEqual(t, data.lastLookback, tt.minLookback)
		})
	}
}

func TestTrailingActivation(t *testing.T) {
	cfg := exitCfg(func(e *config.ExitConfig) { e.TrailingStopEnabled = true })

	tests := []struct {
		name      string
		pos       models.Position
		open      []models.Order
		wantTrail []models.TrailActivation
	}{
		{
			name:      "Long above activation",
			pos:       longPos("A", 100, 103.5), // +3.5% >= 3%
			wantTrail: []models.TrailActivation{{Symbol: "A", TrailPct: 5.0}},
		},
		{
			name: "Long below activation",
			pos:  longPos("A", 100, 102), // +2% < 3%
		},
		{
			name:      "Short uses tighter thresholds",
			pos:       shortPos("A", 100, 97.5), // +2.5% >= 2%
			wantTrail: []models.TrailActivation{{Symbol: "A", TrailPct: 3.0}},
		},
		{
			name: "Already trailing is idempotent",
			pos:  longPos("A", 100, 110),
			open: []models.Order{{ID: "t1", Type: models.OrderTypeTrailingStop, Status: models.OrderStatusOpen}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			broker := &fakeBroker{
				positions:  []models.Position{tt.pos},
				openOrders: map[string][]models.Order{"A": tt.open},
			}
			ev := NewEvaluator(cfg, broker, &fakeBarSource{})

			plan, err := ev.Evaluate(context.Background(), time.Now())
			require.NoError(t, err)
			assert.Equal(t, tt.wantTrail, plan.Trails)
			assert.Empty(t, plan.Closes)

			// повторный прогон без изменения состояния брокера — тот же план
			again, err := ev.Evaluate(context.Background(), time.Now())
			require.NoError(t, err)
			assert.Equal(t, plan, again)
		})
	}
}

func TestCloseWinsOverTrailing(t *testing.T) {
	now := time.Now()
	cfg := exitCfg(func(e *config.ExitConfig) {
		e.MaxHoldDays = 14
		e.TrailingStopEnabled = true
	})

	// позиция и старая (календарный Close), и в хорошем плюсе (trail)
	broker := &fakeBroker{
		positions: []models.Position{longPos("AAPL", 100, 110)},
		closedOrders: map[string][]models.Order{
			"AAPL": {{ID: "1", Side: "buy", FilledAt: filledAt(now.AddDate(0, 0, -30))}},
		},
	}
	ev := NewEvaluator(cfg, broker, &fakeBarSource{})

	plan, err := ev.Evaluate(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, []string{"AAPL"}, plan.Closes)
	assert.Empty(t, plan.Trails)
}

func TestCloseDeduplicatedAcrossRules(t *testing.T) {
	now := time.Now()
	cfg := exitCfg(func(e *config.ExitConfig) {
		e.MaxHoldDays = 14
		e.EMAExitEnabled = true
		e.EMAPeriod = 3
	})

	// и календарь, и EMA требуют закрытия — Close один
	broker := &fakeBroker{
		positions: []models.Position{longPos("AAPL", 100, 80)},
		closedOrders: map[string][]models.Order{
			"AAPL": {{ID: "1", Side: "buy", FilledAt: filledAt(now.AddDate(0, 0, -30))}},
		},
	}
	data := &fakeBarSource{closes: map[string][]float64{"AAPL": {100, 100, 100, 80}}}
	ev := NewEvaluator(cfg, broker, data)

	plan, err := ev.Evaluate(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, []string{"AAPL"}, plan.Closes)
}

func TestOrderHistoryErrorIsolated(t *testing.T) {
	now := time.Now()
	cfg := exitCfg(func(e *config.ExitConfig) { e.MaxHoldDays = 14 })

	broker := &fakeBroker{
		positions: []models.Position{
			longPos("BAD", 100, 105),
			longPos("OLD", 100, 105),
		},
		closedOrders: map[string][]models.Order{
			"OLD": {{ID: "1", Side: "buy", FilledAt: filledAt(now.AddDate(0, 0, -30))}},
		},
		orderErrs: map[string]error{"BAD": fmt.Errorf("broker 500")},
	}
	ev := NewEvaluator(cfg, broker, &fakeBarSource{})

	plan, err := ev.Evaluate(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, []string{"OLD"}, plan.Closes)
}
