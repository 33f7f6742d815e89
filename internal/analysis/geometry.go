package analysis

import (
	"fmt"
	"math"

	"fiber-inspector/internal/domain/entity"
	"fiber-inspector/internal/domain/port"
)

const (
	// DefaultCoreFraction калибровочная доля радиуса оболочки, принимаемая за радиус сердцевины.
	// Сердцевина отдельно не сегментируется.
	DefaultCoreFraction = 0.8

	blurKernel                = 5
	houghEdgeThreshold        = 100
	houghAccumulatorThreshold = 30
)

// GeometryDetector находит центр волокна и радиусы сердцевины и оболочки.
// Самая большая окружность считается оболочкой.
type GeometryDetector struct {
	vision       port.VisionPrimitives
	CoreFraction float64
}

// NewGeometryDetector создаёт детектор геометрии.
func NewGeometryDetector(vision port.VisionPrimitives) *GeometryDetector {
	return &GeometryDetector{vision: vision, CoreFraction: DefaultCoreFraction}
}

// Locate оценивает геометрию. Без окружностей центр в середине кадра, радиусы нулевые.
func (d *GeometryDetector) Locate(img *entity.FiberImage) (entity.Geometry, error) {
	gray, err := d.vision.Grayscale(img.Image())
	if err != nil {
		return entity.Geometry{}, primitiveError("grayscale", err)
	}

	blurred, err := d.vision.GaussianBlur(gray, blurKernel)
	if err != nil {
		return entity.Geometry{}, primitiveError("gaussian blur", err)
	}

	circles, err := d.vision.HoughCircles(blurred, port.HoughParams{
		DP:                   1,
		MinDist:              float64(img.Height()) / 8,
		EdgeThreshold:        houghEdgeThreshold,
		AccumulatorThreshold: houghAccumulatorThreshold,
	})
	if err != nil {
		return entity.Geometry{}, primitiveError("hough circles", err)
	}

	cladding, ok := largestCircle(circles)
	if !ok {
		mid := img.Midpoint()
		return entity.Geometry{Center: mid, CoreCenter: mid}, nil
	}
	if !finite(cladding.X) || !finite(cladding.Y) || !finite(cladding.Radius) || cladding.Radius < 0 {
		return entity.Geometry{}, fmt.Errorf("%w: circle (%v, %v) r=%v", ErrNumeric, cladding.X, cladding.Y, cladding.Radius)
	}

	center := cladding.Center()
	return entity.Geometry{
		Center:         center,
		CoreCenter:     center,
		CladdingRadius: cladding.Radius,
		CoreRadius:     cladding.Radius * d.CoreFraction,
	}, nil
}

// largestCircle выбирает окружность наибольшего радиуса, при равенстве первую.
func largestCircle(circles []entity.Circle) (entity.Circle, bool) {
	if len(circles) == 0 {
		return entity.Circle{}, false
	}
	largest := circles[0]
	for _, c := range circles[1:] {
		if c.Radius > largest.Radius {
			largest = c
		}
	}
	return largest, true
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
