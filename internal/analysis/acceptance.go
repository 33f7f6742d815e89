package analysis

import "fiber-inspector/internal/domain/entity"

const (
	ratioLowerFactor  = 0.7
	ratioUpperFactor  = 1.3
	criticalSeverity  = 0.7
	maxCriticalDefect = 2
)

// Acceptance разбор решения о годности по трём независимым правилам.
type Acceptance struct {
	RatioOK       bool
	SeverityOK    bool
	CriticalOK    bool
	TotalSeverity float64
	Critical      int
}

// Acceptable истинно, только если выполнены все правила.
func (a Acceptance) Acceptable() bool {
	return a.RatioOK && a.SeverityOK && a.CriticalOK
}

// Evaluate проверяет отношение радиусов, суммарную тяжесть и число критических дефектов.
func Evaluate(defects []entity.Defect, ratio float64, params entity.Params) Acceptance {
	var a Acceptance
	for _, d := range defects {
		if d.Severity > criticalSeverity {
			a.Critical++
		}
		a.TotalSeverity += d.Severity
	}

	ideal := params.IdealCoreCladRatio
	a.RatioOK = ratio >= ratioLowerFactor*ideal && ratio <= ratioUpperFactor*ideal
	a.SeverityOK = a.TotalSeverity < params.MaxAllowedDefects
	a.CriticalOK = a.Critical < maxCriticalDefect
	return a
}
