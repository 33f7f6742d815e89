package port

import (
	"image"

	"fiber-inspector/internal/domain/entity"
)

// FiberAnalyzer интерфейс анализатора торца волокна
type FiberAnalyzer interface {
	// Analyze выполняет полный анализ. Ошибки отражаются в результате, а не возвращаются.
	Analyze(img image.Image) *entity.AnalysisResult

	// SetReferenceParameters меняет эталонное отношение и предел суммарной тяжести
	SetReferenceParameters(idealRatio, maxAllowedDefects float64) error

	// Params возвращает текущие параметры
	Params() entity.Params
}
