package analysis

import (
	"math"

	"fiber-inspector/internal/domain/entity"
	"fiber-inspector/internal/domain/port"
)

const (
	severityAreaScale  = 1000.0
	severitySizeWeight = 0.5
)

var baseSeverity = map[entity.DefectType]float64{
	entity.DefectScratch:       0.3,
	entity.DefectChip:          0.5,
	entity.DefectCrack:         0.8,
	entity.DefectContamination: 0.2,
	entity.DefectUnknown:       0.4,
}

// RuleSeverityScorer базовая оценка по категории плюс поправка на площадь рамки.
type RuleSeverityScorer struct{}

// Score возвращает min(1, base + min(1, area/1000)*0.5).
func (RuleSeverityScorer) Score(defect entity.Defect) float64 {
	base, ok := baseSeverity[defect.Type]
	if !ok {
		base = baseSeverity[entity.DefectUnknown]
	}
	sizeFactor := math.Min(1, float64(defect.Box.Area())/severityAreaScale)
	return math.Min(1, base+sizeFactor*severitySizeWeight)
}

var _ port.SeverityScorer = RuleSeverityScorer{}
