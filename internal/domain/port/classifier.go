package port

import "fiber-inspector/internal/domain/entity"

// DefectClassifier политика сопоставления области дефекта с категорией
type DefectClassifier interface {
	Classify(box entity.BoundingBox) entity.DefectType
}

// SeverityScorer политика оценки тяжести дефекта, результат в [0,1]
type SeverityScorer interface {
	Score(defect entity.Defect) float64
}
