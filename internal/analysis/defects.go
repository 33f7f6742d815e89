package analysis

import (
	"fiber-inspector/internal/domain/entity"
	"fiber-inspector/internal/domain/port"
)

const (
	thresholdBlockSize = 11
	thresholdC         = 2
)

// DefectDetector выделяет кандидатов в дефекты адаптивной бинаризацией и поиском контуров.
type DefectDetector struct {
	vision port.VisionPrimitives
}

// NewDefectDetector создаёт детектор дефектов.
func NewDefectDetector(vision port.VisionPrimitives) *DefectDetector {
	return &DefectDetector{vision: vision}
}

// Detect возвращает контуры с площадью в (minArea, maxArea] в порядке обхода контуров.
func (d *DefectDetector) Detect(img *entity.FiberImage, minArea, maxArea float64) ([]entity.Contour, error) {
	gray, err := d.vision.Grayscale(img.Image())
	if err != nil {
		return nil, primitiveError("grayscale", err)
	}

	mask, err := d.vision.AdaptiveThreshold(gray, port.ThresholdParams{
		BlockSize: thresholdBlockSize,
		C:         thresholdC,
		Inverse:   true,
	})
	if err != nil {
		return nil, primitiveError("adaptive threshold", err)
	}

	contours, err := d.vision.FindContours(mask)
	if err != nil {
		return nil, primitiveError("find contours", err)
	}

	regions := make([]entity.Contour, 0, len(contours))
	for _, c := range contours {
		if c.Area > minArea && c.Area <= maxArea {
			regions = append(regions, c)
		}
	}
	return regions, nil
}
