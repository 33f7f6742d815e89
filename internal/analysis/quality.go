package analysis

import (
	"math"

	"fiber-inspector/internal/domain/entity"
)

const (
	defectQualityWeight        = 0.1
	concentricityQualityWeight = 0.3
	ratioQualityWeight         = 0.3
)

// QualityScore непрерывная оценка качества в [0,1].
// Вычеты накапливаются без ограничений, отсечение только в конце.
func QualityScore(result *entity.AnalysisResult, idealRatio float64) float64 {
	score := 1.0
	for _, d := range result.Defects {
		score -= d.Severity * defectQualityWeight
	}
	score -= (1 - result.Concentricity) * concentricityQualityWeight
	if idealRatio > 0 {
		score -= math.Abs(result.CoreCladRatio-idealRatio) / idealRatio * ratioQualityWeight
	}
	return entity.Clamp01(score)
}
