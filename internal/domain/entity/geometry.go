package entity

import (
	"image"
	"math"
)

// Circle кандидат окружности, найденный детектором.
type Circle struct {
	X, Y   float64
	Radius float64
}

// Center возвращает центр окружности, округлённый до пикселя.
func (c Circle) Center() image.Point {
	return image.Pt(int(math.Round(c.X)), int(math.Round(c.Y)))
}

// Contour область бинарной маски: площадь контура и его рамка.
type Contour struct {
	Area float64
	Box  BoundingBox
}

// Geometry оценка геометрии торца волокна.
// CoreCenter хранится отдельно от Center, чтобы концентричность считалась по измеренным центрам.
type Geometry struct {
	Center         image.Point // центр оболочки
	CoreCenter     image.Point // центр сердцевины
	CoreRadius     float64
	CladdingRadius float64
}

// Ratio возвращает отношение радиуса сердцевины к радиусу оболочки, 0 если оболочка не найдена.
func (g Geometry) Ratio() float64 {
	if g.CladdingRadius <= 0 {
		return 0
	}
	return g.CoreRadius / g.CladdingRadius
}

// Concentricity возвращает 1 минус нормированное смещение центров сердцевины и оболочки.
// Нормировка идёт на максимально возможное смещение (CladdingRadius - CoreRadius).
func (g Geometry) Concentricity() float64 {
	if g.CladdingRadius <= 0 || g.CoreRadius <= 0 {
		return 0
	}

	maxOffset := g.CladdingRadius - g.CoreRadius
	if maxOffset <= 0 {
		// сердцевина совпадает с оболочкой
		return 1
	}

	dx := float64(g.CoreCenter.X - g.Center.X)
	dy := float64(g.CoreCenter.Y - g.Center.Y)
	return Clamp01(1 - math.Hypot(dx, dy)/maxOffset)
}

// Clamp01 ограничивает значение отрезком [0,1].
func Clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
