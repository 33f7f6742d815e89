package entity

import (
	"errors"
	"fmt"
	"image"
	"time"
)

// ErrInvalidParams недопустимые параметры анализа.
var ErrInvalidParams = errors.New("invalid analysis parameters")

// Значения по умолчанию для эталонных параметров.
const (
	DefaultIdealCoreCladRatio = 0.8
	DefaultMaxAllowedDefects  = 5.0
	DefaultMinDefectArea      = 20.0
	DefaultMaxDefectArea      = 500.0
)

// Params эталонные параметры анализа. Передаются в каждый анализ по значению.
type Params struct {
	IdealCoreCladRatio float64 // эталонное отношение сердцевина/оболочка
	MaxAllowedDefects  float64 // предел суммарной тяжести дефектов
	MinDefectArea      float64 // нижняя граница площади контура (не включая)
	MaxDefectArea      float64 // верхняя граница площади контура (включая)
}

// DefaultParams возвращает параметры по умолчанию.
func DefaultParams() Params {
	return Params{
		IdealCoreCladRatio: DefaultIdealCoreCladRatio,
		MaxAllowedDefects:  DefaultMaxAllowedDefects,
		MinDefectArea:      DefaultMinDefectArea,
		MaxDefectArea:      DefaultMaxDefectArea,
	}
}

// Validate проверяет параметры.
func (p Params) Validate() error {
	if !(p.IdealCoreCladRatio > 0) {
		return fmt.Errorf("%w: ideal core-clad ratio must be > 0, got %v", ErrInvalidParams, p.IdealCoreCladRatio)
	}
	if !(p.MaxAllowedDefects >= 0) {
		return fmt.Errorf("%w: max allowed defects must be >= 0, got %v", ErrInvalidParams, p.MaxAllowedDefects)
	}
	if !(p.MinDefectArea >= 0) {
		return fmt.Errorf("%w: min defect area must be >= 0, got %v", ErrInvalidParams, p.MinDefectArea)
	}
	if !(p.MaxDefectArea > p.MinDefectArea) {
		return fmt.Errorf("%w: defect area range (%v, %v] is empty", ErrInvalidParams, p.MinDefectArea, p.MaxDefectArea)
	}
	return nil
}

// AnalysisResult итог анализа одного изображения.
// Defects идут в порядке обхода контуров, без сортировки по положению или тяжести.
type AnalysisResult struct {
	Acceptable     bool
	CoreCladRatio  float64
	Concentricity  float64
	OverallQuality float64 // в [0,1]
	Defects        []Defect
	Annotated      *image.RGBA
	Summary        string
}

// TotalSeverity возвращает сумму тяжестей всех дефектов.
func (r *AnalysisResult) TotalSeverity() float64 {
	total := 0.0
	for _, d := range r.Defects {
		total += d.Severity
	}
	return total
}

// InspectionRecord сохраняемая запись об одной проверке.
type InspectionRecord struct {
	ID        string
	Timestamp time.Time
	ImagePath string
	Operator  string
	Notes     string
	Result    *AnalysisResult
}
