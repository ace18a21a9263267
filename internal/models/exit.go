package models

// TrailActivation — конвертация защитных заявок позиции в trailing-stop.
type TrailActivation struct {
	Symbol   string
	TrailPct float64
}

// ExitPlan — результат оценки выходов за один цикл. Closes уже
// дедуплицированы, Trails не пересекаются с Closes (Close побеждает).
type ExitPlan struct {
	Closes []string
	Trails []TrailActivation
}

func (p ExitPlan) Empty() bool {
	return len(p.Closes) == 0 && len(p.Trails) == 0
}
