package analysis

import (
	"fmt"
	"strings"

	"fiber-inspector/internal/domain/entity"
	"fiber-inspector/internal/domain/port"
)

// SummaryDescriber строит текстовую сводку по результату.
type SummaryDescriber struct{}

// Describe реализует port.Describer.
func (SummaryDescriber) Describe(result *entity.AnalysisResult, idealRatio float64) string {
	return Summary(result, idealRatio)
}

// Summary возвращает многострочный отчёт: вердикт, метрики и нумерованный список дефектов.
func Summary(result *entity.AnalysisResult, idealRatio float64) string {
	var b strings.Builder

	if result.Acceptable {
		b.WriteString("PASS: Fiber meets quality standards.\n")
	} else {
		b.WriteString("FAIL: Fiber does not meet quality standards.\n")
	}

	fmt.Fprintf(&b, "Core-Cladding Ratio: %.3f (Ideal: %.3f)\n", result.CoreCladRatio, idealRatio)
	fmt.Fprintf(&b, "Concentricity: %.3f\n", result.Concentricity)
	fmt.Fprintf(&b, "Overall Quality Score: %.2f\n", result.OverallQuality)
	fmt.Fprintf(&b, "Defects found: %d\n", len(result.Defects))

	if len(result.Defects) > 0 {
		b.WriteString("Defect List:\n")
		for i, d := range result.Defects {
			fmt.Fprintf(&b, "%d. %s (Severity: %.2f)\n", i+1, d.Description, d.Severity)
		}
	}

	return b.String()
}

var _ port.Describer = SummaryDescriber{}
