package service

import (
	"context"
	"sort"

	"stonks/internal/helper"
	"stonks/internal/indicator"
	"stonks/internal/models"
	"stonks/internal/modules/config"
	"stonks/pkg/logger"
)

// BarSource — провайдер дневных баров (oldest→newest).
type BarSource interface {
	GetDailyBars(ctx context.Context, symbol string, lookbackDays int) ([]models.Bar, error)
}

type Screener struct {
	data       BarSource
	entry      config.EntryConfig
	analysis   config.AnalysisConfig
	tickerFile string
}

func NewScreener(cfg *config.Config, data BarSource) *Screener {
	return &Screener{
		data:       data,
		entry:      cfg.Entry,
		analysis:   cfg.Analysis,
		tickerFile: cfg.TickerFile,
	}
}

// Scan прогоняет весь universe и возвращает идеи, отсортированные по
// потенциальному гейну (убыв.). Ошибка по одному тикеру не валит скан.
func (s *Screener) Scan(ctx context.Context, accountValue float64) ([]models.TradeIdea, error) {
	tickers, err := helper.LoadTickers(s.tickerFile)
	if err != nil {
		return nil, err
	}
	logger.Info("screener: analyzing %d tickers", len(tickers))

	longMult, shortMult := s.regimeMultipliers(ctx)

	var ideas []models.TradeIdea
	for _, ticker := range tickers {
		idea, err := s.AnalyzeSymbol(ctx, ticker, accountValue, longMult, shortMult)
		if err != nil {
			logger.Error("screener: %s: %v", ticker, err)
			continue
		}
		if idea != nil {
			ideas = append(ideas, *idea)
		}
	}

	sort.SliceStable(ideas, func(i, j int) bool {
		return ideas[i].PotentialGainPercent > ideas[j].PotentialGainPercent
	})
	return ideas, nil
}

// regimeMultipliers определяет режим рынка по бенчмарку и возвращает
// множители риска для лонгов и шортов. Если бенчмарк недоступен —
// консервативно режем обе стороны до меньшего множителя.
func (s *Screener) regimeMultipliers(ctx context.Context) (longMult, shortMult float64) {
	a := s.analysis

	bars, err := s.data.GetDailyBars(ctx, a.BenchmarkSymbol, a.LookbackDays)
	if err == nil {
		if bullish, ok := indicator.Bullish(bars, a.SMATrendPeriod); ok {
			if bullish {
				return a.BullLongMultiplier, a.BullShortMultiplier
			}
			return a.BearLongMultiplier, a.BearShortMultiplier
		}
	} else {
		logger.Error("screener: benchmark %s: %v", a.BenchmarkSymbol, err)
	}

	longMult = min(a.BullLongMultiplier, a.BearLongMultiplier)
	shortMult = min(a.BullShortMultiplier, a.BearShortMultiplier)
	return longMult, shortMult
}

func min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
