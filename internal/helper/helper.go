package helper

import (
	"bufio"
	"math"
	"os"
	"strconv"
	"strings"
)

// RoundToCent — все цены в заявках уходят брокеру с точностью до цента.
func RoundToCent(px float64) float64 {
	return math.Round(px*100+1e-9) / 100
}

func FormatPrice(px float64) string {
	return strconv.FormatFloat(RoundToCent(px), 'f', 2, 64)
}

func FormatQty(qty int) string {
	return strconv.Itoa(qty)
}

// LoadTickers читает файл тикеров: один символ на строку, пустые строки
// пропускаем, регистр приводим к верхнему.
func LoadTickers(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		out = append(out, strings.ToUpper(line))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
