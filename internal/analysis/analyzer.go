package analysis

import (
	"errors"
	"fmt"
	"image"
	"sync"

	"github.com/sirupsen/logrus"

	"fiber-inspector/internal/domain/entity"
	"fiber-inspector/internal/domain/port"
)

// Components зависимости анализатора. Пустые политики заменяются правилами по умолчанию.
type Components struct {
	Vision     port.VisionPrimitives
	Painter    port.Painter
	Classifier port.DefectClassifier
	Scorer     port.SeverityScorer
	Describer  port.Describer
	Logger     logrus.FieldLogger
}

// Analyzer последовательно выполняет весь конвейер анализа торца волокна.
//
// Один мьютекс защищает и параметры, и весь вызов Analyze: пока идёт анализ,
// смена параметров и другие вызовы Analyze на этом экземпляре ждут.
// Для параллельной обработки нужны отдельные экземпляры.
type Analyzer struct {
	mu     sync.Mutex
	params entity.Params

	geometry   *GeometryDetector
	defects    *DefectDetector
	classifier port.DefectClassifier
	scorer     port.SeverityScorer
	annotator  *Annotator
	describer  port.Describer
	logger     logrus.FieldLogger
}

// NewAnalyzer создаёт анализатор с заданными параметрами.
func NewAnalyzer(c Components, params entity.Params) (*Analyzer, error) {
	if c.Vision == nil {
		return nil, errors.New("vision primitives are not configured")
	}
	if c.Painter == nil {
		return nil, errors.New("painter is not configured")
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	a := &Analyzer{
		params:     params,
		geometry:   NewGeometryDetector(c.Vision),
		defects:    NewDefectDetector(c.Vision),
		classifier: c.Classifier,
		scorer:     c.Scorer,
		annotator:  NewAnnotator(c.Painter),
		describer:  c.Describer,
		logger:     c.Logger,
	}
	if a.classifier == nil {
		a.classifier = RuleClassifier{}
	}
	if a.scorer == nil {
		a.scorer = RuleSeverityScorer{}
	}
	if a.describer == nil {
		a.describer = SummaryDescriber{}
	}
	if a.logger == nil {
		a.logger = logrus.StandardLogger()
	}
	return a, nil
}

// SetReferenceParameters меняет эталонное отношение и предел суммарной тяжести.
// При ошибке прежние параметры сохраняются.
func (a *Analyzer) SetReferenceParameters(idealRatio, maxAllowedDefects float64) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	p := a.params
	p.IdealCoreCladRatio = idealRatio
	p.MaxAllowedDefects = maxAllowedDefects
	if err := p.Validate(); err != nil {
		return err
	}
	a.params = p
	return nil
}

// SetDefectAreaRange меняет диапазон площадей (minArea, maxArea] для кандидатов в дефекты.
func (a *Analyzer) SetDefectAreaRange(minArea, maxArea float64) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	p := a.params
	p.MinDefectArea = minArea
	p.MaxDefectArea = maxArea
	if err := p.Validate(); err != nil {
		return err
	}
	a.params = p
	return nil
}

// Params возвращает копию текущих параметров.
func (a *Analyzer) Params() entity.Params {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.params
}

// Analyze анализирует изображение с текущими параметрами.
// Ошибки не возвращаются: они отражаются в Acceptable=false и в Summary.
func (a *Analyzer) Analyze(img image.Image) *entity.AnalysisResult {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.run(img, a.params)
}

// AnalyzeWith анализирует изображение с явно переданными параметрами, не меняя сохранённые.
func (a *Analyzer) AnalyzeWith(img image.Image, params entity.Params) (*entity.AnalysisResult, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.run(img, params), nil
}

// run: геометрия -> дефекты -> годность -> аннотация -> качество -> сводка.
// Качество считается раньше сводки, сводка печатает уже итоговое значение.
func (a *Analyzer) run(src image.Image, params entity.Params) (result *entity.AnalysisResult) {
	result = &entity.AnalysisResult{Defects: []entity.Defect{}}
	defer func() {
		if r := recover(); r != nil {
			if result.Annotated == nil {
				result.Annotated = image.NewRGBA(image.Rectangle{})
			}
			a.fail(result, fmt.Errorf("%w: panic: %v", ErrVisionPrimitive, r))
		}
	}()

	fiber, err := entity.NewFiberImage(src)
	switch {
	case errors.Is(err, entity.ErrEmptyImage):
		result.Annotated = image.NewRGBA(image.Rectangle{})
		result.Summary = fmt.Sprintf("Analysis skipped: %v", err)
		a.logger.WithError(err).Debug("invalid input image")
		return result
	case err != nil:
		result.Annotated = image.NewRGBA(image.Rectangle{})
		a.fail(result, fmt.Errorf("%w: %w", ErrVisionPrimitive, err))
		return result
	}
	result.Annotated = fiber.CopyRGBA()

	geometry, err := a.geometry.Locate(fiber)
	if err != nil {
		a.fail(result, err)
		return result
	}
	result.CoreCladRatio = geometry.Ratio()
	result.Concentricity = geometry.Concentricity()
	if !finite(result.CoreCladRatio) || !finite(result.Concentricity) {
		a.fail(result, fmt.Errorf("%w: ratio=%v concentricity=%v", ErrNumeric, result.CoreCladRatio, result.Concentricity))
		return result
	}
	a.logger.WithFields(logrus.Fields{
		"center_x":        geometry.Center.X,
		"center_y":        geometry.Center.Y,
		"cladding_radius": geometry.CladdingRadius,
		"core_radius":     geometry.CoreRadius,
	}).Debug("geometry located")

	defects, err := a.detectDefects(fiber, params)
	if err != nil {
		a.fail(result, err)
		return result
	}
	result.Defects = defects

	verdict := Evaluate(defects, result.CoreCladRatio, params)
	result.Acceptable = verdict.Acceptable()
	a.logger.WithFields(logrus.Fields{
		"defects":        len(defects),
		"total_severity": verdict.TotalSeverity,
		"critical":       verdict.Critical,
		"ratio_ok":       verdict.RatioOK,
		"acceptable":     result.Acceptable,
	}).Debug("acceptability evaluated")

	result.Annotated = a.annotator.Render(fiber.Image(), defects, geometry)
	result.OverallQuality = QualityScore(result, params.IdealCoreCladRatio)
	result.Summary = a.describer.Describe(result, params.IdealCoreCladRatio)

	return result
}

// detectDefects находит, классифицирует и оценивает дефекты.
func (a *Analyzer) detectDefects(fiber *entity.FiberImage, params entity.Params) ([]entity.Defect, error) {
	regions, err := a.defects.Detect(fiber, params.MinDefectArea, params.MaxDefectArea)
	if err != nil {
		return nil, err
	}

	defects := make([]entity.Defect, 0, len(regions))
	for _, region := range regions {
		kind := a.classifier.Classify(region.Box)
		d := entity.Defect{
			Type:        kind,
			Box:         region.Box,
			Description: kind.Description(),
		}

		severity := a.scorer.Score(d)
		if !finite(severity) {
			return nil, fmt.Errorf("%w: severity %v for %s at %+v", ErrNumeric, severity, kind, region.Box)
		}
		d.Severity = entity.Clamp01(severity)
		defects = append(defects, d)
	}
	return defects, nil
}

func (a *Analyzer) fail(result *entity.AnalysisResult, err error) {
	result.Acceptable = false
	result.Summary = fmt.Sprintf("Analysis error: %v", err)
	a.logger.WithError(err).Warn("fiber analysis failed")
}

var _ port.FiberAnalyzer = (*Analyzer)(nil)
