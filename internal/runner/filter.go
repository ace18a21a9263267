package runner

import "stonks/internal/models"

// FilterByCapital жадно набирает идеи, пока хватает капитала. Идеи уже
// отсортированы по потенциальному гейну: лучшие обслуживаются первыми,
// даже если другая комбинация использовала бы капитал плотнее.
func FilterByCapital(ideas []models.TradeIdea, availableCapital float64) []models.TradeIdea {
	var filtered []models.TradeIdea
	remaining := availableCapital

	for _, idea := range ideas {
		if idea.TotalCapital > remaining {
			continue
		}
		filtered = append(filtered, idea)
		remaining -= idea.TotalCapital
	}
	return filtered
}
