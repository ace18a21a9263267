package service

import (
	"math"

	"stonks/internal/models"
)

// Shares — размер позиции: floor(бюджет риска / риск на акцию).
// riskPerShare <= 0 — некорректная геометрия сделки, позиции нет.
func Shares(riskBudget, riskPerShare float64) int {
	if riskPerShare <= 0 || riskBudget <= 0 {
		return 0
	}
	return int(math.Floor(riskBudget / riskPerShare))
}

// buildIdea досчитывает экономику сделки от размера. nil — нулевой размер
// (депозит слишком мал для этого риска на акцию).
func (s *Screener) buildIdea(
	ticker string,
	side models.Side,
	entry float64,
	stop float64,
	target float64,
	sma50 float64,
	sma200 float64,
	accountValue float64,
	riskMult float64,
) *models.TradeIdea {
	riskBudget := accountValue * s.analysis.BaseRiskPercent / 100 * riskMult

	riskPerShare := entry - stop
	reward := target - entry
	if side == models.SideShort {
		riskPerShare = stop - entry
		reward = entry - target
	}

	qty := Shares(riskBudget, riskPerShare)
	if qty == 0 {
		return nil
	}

	capital := float64(qty) * entry
	return &models.TradeIdea{
		Ticker: ticker,
		Side:   side,
		Qty:    qty,

		EntryPrice:  entry,
		StopLoss:    stop,
		TargetPrice: target,

		PotentialGainPercent: reward / entry * 100,
		PotentialProfit:      reward * float64(qty),
		RiskRewardRatio:      reward / riskPerShare,

		TotalCapital:            capital,
		CapitalPercentOfAccount: capital / accountValue * 100,

		MaxLoss: float64(qty) * riskPerShare,
		SMA50:   sma50,
		SMA200:  sma200,
	}
}
