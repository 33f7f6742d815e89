package port

import (
	"image"

	"fiber-inspector/internal/domain/entity"
)

// HoughParams параметры поиска окружностей (градиентный метод Хафа).
type HoughParams struct {
	DP                   float64 // обратное разрешение аккумулятора
	MinDist              float64 // минимальное расстояние между центрами
	EdgeThreshold        float64 // верхний порог детектора границ
	AccumulatorThreshold float64 // порог аккумулятора для центров
	MinRadius            int     // 0: без ограничения
	MaxRadius            int     // 0: без ограничения
}

// ThresholdParams параметры адаптивной бинаризации.
type ThresholdParams struct {
	BlockSize int     // размер локального окна, нечётный
	C         float64 // константа, вычитаемая из локального среднего
	Inverse   bool    // инвертированная полярность
}

// VisionPrimitives низкоуровневые операции компьютерного зрения.
// Любая операция может вернуть ошибку формата или численную ошибку.
type VisionPrimitives interface {
	// Grayscale переводит изображение в одноканальную яркость
	Grayscale(img image.Image) (*image.Gray, error)

	// GaussianBlur сглаживает изображение квадратным ядром kernel×kernel
	GaussianBlur(src *image.Gray, kernel int) (*image.Gray, error)

	// HoughCircles возвращает все найденные окружности
	HoughCircles(src *image.Gray, params HoughParams) ([]entity.Circle, error)

	// AdaptiveThreshold строит бинарную маску по локальному окну
	AdaptiveThreshold(src *image.Gray, params ThresholdParams) (*image.Gray, error)

	// FindContours возвращает внешние контуры маски в порядке обхода
	FindContours(mask *image.Gray) ([]entity.Contour, error)
}
