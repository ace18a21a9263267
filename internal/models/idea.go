package models

// TradeIdea — готовый план входа, живёт один цикл.
type TradeIdea struct {
	Ticker string
	Side   Side
	Qty    int

	EntryPrice  float64
	StopLoss    float64
	TargetPrice float64

	PotentialGainPercent float64
	PotentialProfit      float64
	RiskRewardRatio      float64

	TotalCapital            float64
	CapitalPercentOfAccount float64

	MaxLoss float64
	SMA50   float64
	SMA200  float64
}
