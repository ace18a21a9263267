package runner

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"stonks/internal/models"
)

func ideaWithCapital(ticker string, capital float64) models.TradeIdea {
	return models.TradeIdea{Ticker: ticker, TotalCapital: capital}
}

func TestFilterByCapital(t *testing.T) {
	tests := []struct {
		name    string
		ideas   []models.TradeIdea
		capital float64
		want    []string
	}{
		{
			name: "Greedy in given order",
			ideas: []models.TradeIdea{
				ideaWithCapital("A", 500),
				ideaWithCapital("B", 300),
				ideaWithCapital("C", 1200),
			},
			capital: 1000,
			want:    []string{"A", "B"},
		},
		{
			name: "Skipped idea does not block later smaller ones",
			ideas: []models.TradeIdea{
				ideaWithCapital("A", 900),
				ideaWithCapital("B", 800),
				ideaWithCapital("C", 100),
			},
			capital: 1000,
			want:    []string{"A", "C"},
		},
		{
			name: "Exact fit is taken",
			ideas: []models.TradeIdea{
				ideaWithCapital("A", 1000),
				ideaWithCapital("B", 1),
			},
			capital: 1000,
			want:    []string{"A"},
		},
		{
			name:    "No capital",
			ideas:   []models.TradeIdea{ideaWithCapital("A", 1)},
			capital: 0,
			want:    nil,
		},
		{
			name:    "No ideas",
			capital: 1000,
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterByCapital(tt.ideas, tt.capital)
			var tickers []string
			for _, idea := range got {
				tickers = append(tickers, idea.Ticker)
			}
			assert.Equal(t, tt.want, tickers)
		})
	}
}
