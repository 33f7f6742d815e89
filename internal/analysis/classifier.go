package analysis

import (
	"fiber-inspector/internal/domain/entity"
	"fiber-inspector/internal/domain/port"
)

const (
	scratchMinAspect = 3.0
	crackMaxAspect   = 0.33
	chipMinWidth     = 50
)

// RuleClassifier классифицирует дефект по форме рамки.
// Правила проверяются по порядку, срабатывает первое; все сравнения строгие.
// DefectUnknown этой политикой не выдаётся.
type RuleClassifier struct{}

// Classify возвращает категорию дефекта.
func (RuleClassifier) Classify(box entity.BoundingBox) entity.DefectType {
	aspect := box.AspectRatio()
	switch {
	case aspect > scratchMinAspect:
		return entity.DefectScratch
	case aspect < crackMaxAspect:
		return entity.DefectCrack
	case box.Width > chipMinWidth:
		return entity.DefectChip
	default:
		return entity.DefectContamination
	}
}

var _ port.DefectClassifier = RuleClassifier{}
