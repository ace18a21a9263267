package models

import "time"

// Bar — дневная свеча, oldest→newest в сериях от провайдера.
type Bar struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume int64
}

// MarketSchedule — торговые часы площадки на день (в таймзоне площадки).
type MarketSchedule struct {
	Open  time.Time
	Close time.Time
}

// RunTimes возвращает три запуска цикла: открытие, середина сессии,
// за 30 минут до закрытия.
func (s MarketSchedule) RunTimes() []time.Time {
	mid := s.Open.Add(s.Close.Sub(s.Open) / 2)
	beforeClose := s.Close.Add(-30 * time.Minute)
	return []time.Time{s.Open, mid, beforeClose}
}
