package service

import (
	"context"

	"stonks/internal/indicator"
	"stonks/internal/models"
)

// AnalyzeSymbol оценивает лонговый и шортовый сетап по одному тикеру.
// nil без ошибки — сетапа нет (мало истории, нет объёма, не прошли фильтры,
// депозит мал для одной акции риска). Лонг проверяется первым.
func (s *Screener) AnalyzeSymbol(
	ctx context.Context,
	ticker string,
	accountValue float64,
	longMult float64,
	shortMult float64,
) (*models.TradeIdea, error) {
	a := s.analysis
	e := s.entry

	bars, err := s.data.GetDailyBars(ctx, ticker, a.LookbackDays)
	if err != nil {
		return nil, err
	}
	if len(bars) < a.MinBars {
		return nil, nil
	}

	closes := indicator.Closes(bars)
	close := closes[len(closes)-1]

	sma50, ok := indicator.SMA(closes, a.SMAEntryPeriod)
	if !ok || sma50 <= 0 {
		return nil, nil
	}
	sma200, ok := indicator.SMA(closes, a.SMATrendPeriod)
	if !ok {
		return nil, nil
	}

	// фильтр объёма: текущий должен превышать средний в заданное число раз
	avgVol, ok := indicator.AvgVolume(bars, a.VolumeAvgPeriod)
	if !ok {
		return nil, nil
	}
	if float64(bars[len(bars)-1].Volume) <= e.VolumeFilterMultiplier*avgVol {
		return nil, nil
	}

	distance := (close - sma50) / sma50

	// лонг: аптренд + откат к SMA50 в пределах полосы
	if close > sma200 &&
		distance > e.LongPullbackMinPct/100 &&
		distance < e.LongPullbackMaxPct/100 {

		stop := sma50 * (1 - e.LongStopLossPct/100)
		target := close + e.RiskRewardRatio*(close-stop)
		return s.buildIdea(ticker, models.SideLong, close, stop, target, sma50, sma200, accountValue, longMult), nil
	}

	// шорт: даунтренд + отскок к SMA50 снизу
	if close < sma200 &&
		distance > -e.ShortRallyMaxPct/100 &&
		distance < -e.ShortRallyMinPct/100 {

		stop := sma50 * (1 + e.ShortStopLossPct/100)
		target := close - e.RiskRewardRatio*(stop-close)
		return s.buildIdea(ticker, models.SideShort, close, stop, target, sma50, sma200, accountValue, shortMult), nil
	}

	return nil, nil
}
