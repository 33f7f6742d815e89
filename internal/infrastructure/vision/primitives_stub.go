//go:build !gocv
// +build !gocv

package vision

import (
	"errors"
	"image"

	"fiber-inspector/internal/domain/entity"
	"fiber-inspector/internal/domain/port"
)

// ErrNotEnabled сборка без тега gocv.
var ErrNotEnabled = errors.New("gocv build tag is not enabled")

// GoCVPrimitives заглушка для сборки без OpenCV.
type GoCVPrimitives struct{}

// NewGoCVPrimitives создаёт заглушку (без OpenCV).
func NewGoCVPrimitives() *GoCVPrimitives {
	return &GoCVPrimitives{}
}

// Grayscale возвращает ошибку, если сборка без тега gocv.
func (p *GoCVPrimitives) Grayscale(img image.Image) (*image.Gray, error) {
	return nil, ErrNotEnabled
}

// GaussianBlur возвращает ошибку, если сборка без тега gocv.
func (p *GoCVPrimitives) GaussianBlur(src *image.Gray, kernel int) (*image.Gray, error) {
	return nil, ErrNotEnabled
}

// HoughCircles возвращает ошибку, если сборка без тега gocv.
func (p *GoCVPrimitives) HoughCircles(src *image.Gray, params port.HoughParams) ([]entity.Circle, error) {
	return nil, ErrNotEnabled
}

// AdaptiveThreshold возвращает ошибку, если сборка без тега gocv.
func (p *GoCVPrimitives) AdaptiveThreshold(src *image.Gray, params port.ThresholdParams) (*image.Gray, error) {
	return nil, ErrNotEnabled
}

// FindContours возвращает ошибку, если сборка без тега gocv.
func (p *GoCVPrimitives) FindContours(mask *image.Gray) ([]entity.Contour, error) {
	return nil, ErrNotEnabled
}

var _ port.VisionPrimitives = (*GoCVPrimitives)(nil)
