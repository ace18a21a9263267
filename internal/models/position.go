package models

import "time"

type Side string

const (
	SideLong  Side = "long"
	SideShort Side = "short"
)

// SideFromQty определяет сторону один раз при построении позиции,
// дальше по коду знак количества больше не интерпретируем.
func SideFromQty(qty float64) Side {
	if qty < 0 {
		return SideShort
	}
	return SideLong
}

// Position — открытая позиция у брокера. Qty всегда абсолютное,
// сторона хранится явно.
type Position struct {
	Symbol   string
	Side     Side
	Qty      float64
	AvgEntry float64
	Current  float64
}

// GainPct — нереализованный результат в процентах с учётом стороны.
func (p Position) GainPct() float64 {
	if p.AvgEntry == 0 {
		return 0
	}
	if p.Side == SideShort {
		return (p.AvgEntry - p.Current) / p.AvgEntry * 100
	}
	return (p.Current - p.AvgEntry) / p.AvgEntry * 100
}

type Account struct {
	BuyingPower float64
}

const (
	OrderStatusOpen   = "open"
	OrderStatusClosed = "closed"

	OrderTypeTrailingStop = "trailing_stop"
)

// Order — заявка у брокера (нам важны только id, сторона, тип и факт филла).
type Order struct {
	ID       string
	Symbol   string
	Side     string // buy/sell
	Type     string // limit, stop, trailing_stop, ...
	Status   string
	FilledAt *time.Time
}
