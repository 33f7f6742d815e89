package port

import "fiber-inspector/internal/domain/entity"

// Describer интерфейс генератора текстового отчёта
type Describer interface {
	// Describe строит многострочную сводку по результату анализа
	Describe(result *entity.AnalysisResult, idealRatio float64) string
}
