package indicator

import "stonks/internal/models"

// SMA — простая скользящая по последним period значениям.
// Возвращает ok=false пока данных меньше периода.
func SMA(values []float64, period int) (float64, bool) {
	if period <= 0 || len(values) < period {
		return 0, false
	}
	var sum float64
	for _, v := range values[len(values)-period:] {
		sum += v
	}
	return sum / float64(period), true
}

// EMA — экспоненциальная скользящая по всей серии, seed = первое значение.
func EMA(values []float64, period int) (float64, bool) {
	if period <= 0 || len(values) < period {
		return 0, false
	}
	alpha := 2.0 / (float64(period) + 1)
	ema := values[0]
	for _, v := range values[1:] {
		ema = alpha*v + (1-alpha)*ema
	}
	return ema, true
}

// AvgVolume — средний объём за последние period баров.
func AvgVolume(bars []models.Bar, period int) (float64, bool) {
	if period <= 0 || len(bars) < period {
		return 0, false
	}
	var sum float64
	for _, b := range bars[len(bars)-period:] {
		sum += float64(b.Volume)
	}
	return sum / float64(period), true
}

// Closes вытаскивает цены закрытия из серии баров.
func Closes(bars []models.Bar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.Close
	}
	return out
}

// Bullish — режим рынка: последнее закрытие бенчмарка выше его SMA(period).
func Bullish(bars []models.Bar, period int) (bool, bool) {
	closes := Closes(bars)
	sma, ok := SMA(closes, period)
	if !ok || len(closes) == 0 {
		return false, false
	}
	return closes[len(closes)-1] > sma, true
}
