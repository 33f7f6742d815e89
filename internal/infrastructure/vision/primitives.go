//go:build gocv
// +build gocv

package vision

import (
	"errors"
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"fiber-inspector/internal/domain/entity"
	"fiber-inspector/internal/domain/port"
)

// GoCVPrimitives операции компьютерного зрения поверх OpenCV.
type GoCVPrimitives struct{}

// NewGoCVPrimitives создаёт набор примитивов на gocv.
func NewGoCVPrimitives() *GoCVPrimitives {
	return &GoCVPrimitives{}
}

// Grayscale переводит изображение в одноканальную яркость.
func (p *GoCVPrimitives) Grayscale(img image.Image) (*image.Gray, error) {
	if g, ok := img.(*image.Gray); ok {
		return copyGray(g), nil
	}

	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return nil, fmt.Errorf("convert image: %w", err)
	}
	defer mat.Close()
	if mat.Empty() {
		return nil, errors.New("empty image")
	}

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(mat, &gray, gocv.ColorBGRToGray)

	return matToGray(gray)
}

// GaussianBlur сглаживает изображение ядром kernel×kernel.
func (p *GoCVPrimitives) GaussianBlur(src *image.Gray, kernel int) (*image.Gray, error) {
	if kernel <= 0 || kernel%2 == 0 {
		return nil, fmt.Errorf("blur kernel must be odd and positive, got %d", kernel)
	}
	mat, err := grayToMat(src)
	if err != nil {
		return nil, err
	}
	defer mat.Close()

	blur := gocv.NewMat()
	defer blur.Close()
	gocv.GaussianBlur(mat, &blur, image.Pt(kernel, kernel), 0, 0, gocv.BorderDefault)

	return matToGray(blur)
}

// HoughCircles ищет окружности градиентным методом Хафа.
func (p *GoCVPrimitives) HoughCircles(src *image.Gray, params port.HoughParams) ([]entity.Circle, error) {
	mat, err := grayToMat(src)
	if err != nil {
		return nil, err
	}
	defer mat.Close()

	circles := gocv.NewMat()
	defer circles.Close()
	gocv.HoughCirclesWithParams(mat, &circles, gocv.HoughGradient,
		params.DP, params.MinDist, params.EdgeThreshold, params.AccumulatorThreshold,
		params.MinRadius, params.MaxRadius)

	result := make([]entity.Circle, 0, circles.Cols())
	for i := 0; i < circles.Cols(); i++ {
		v := circles.GetVecfAt(0, i)
		if len(v) < 3 {
			continue
		}
		result = append(result, entity.Circle{
			X:      float64(v[0]),
			Y:      float64(v[1]),
			Radius: float64(v[2]),
		})
	}
	return result, nil
}

// AdaptiveThreshold строит бинарную маску по гауссову локальному среднему.
func (p *GoCVPrimitives) AdaptiveThreshold(src *image.Gray, params port.ThresholdParams) (*image.Gray, error) {
	if params.BlockSize < 3 || params.BlockSize%2 == 0 {
		return nil, fmt.Errorf("threshold block size must be odd and >= 3, got %d", params.BlockSize)
	}
	mat, err := grayToMat(src)
	if err != nil {
		return nil, err
	}
	defer mat.Close()

	typ := gocv.ThresholdBinary
	if params.Inverse {
		typ = gocv.ThresholdBinaryInv
	}

	mask := gocv.NewMat()
	defer mask.Close()
	gocv.AdaptiveThreshold(mat, &mask, 255, gocv.AdaptiveThresholdGaussian, typ, params.BlockSize, float32(params.C))

	return matToGray(mask)
}

// FindContours возвращает внешние контуры маски с площадью и рамкой.
func (p *GoCVPrimitives) FindContours(mask *image.Gray) ([]entity.Contour, error) {
	mat, err := grayToMat(mask)
	if err != nil {
		return nil, err
	}
	defer mat.Close()

	contours := gocv.FindContours(mat, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	result := make([]entity.Contour, 0, contours.Size())
	for i := 0; i < contours.Size(); i++ {
		c := contours.At(i)
		result = append(result, entity.Contour{
			Area: gocv.ContourArea(c),
			Box:  entity.BoxFromRect(gocv.BoundingRect(c)),
		})
	}
	return result, nil
}

// grayToMat превращает *image.Gray в одноканальный gocv.Mat.
func grayToMat(img *image.Gray) (gocv.Mat, error) {
	if img == nil || img.Bounds().Empty() {
		return gocv.NewMat(), errors.New("empty image")
	}
	mat, err := gocv.ImageGrayToMatGray(compactGray(img))
	if err != nil {
		return gocv.NewMat(), fmt.Errorf("convert gray image: %w", err)
	}
	return mat, nil
}

func matToGray(mat gocv.Mat) (*image.Gray, error) {
	if mat.Empty() {
		return nil, errors.New("empty result")
	}
	img, err := mat.ToImage()
	if err != nil {
		return nil, err
	}
	gray, ok := img.(*image.Gray)
	if !ok {
		return nil, fmt.Errorf("unexpected mat type %v", mat.Type())
	}
	return gray, nil
}

var _ port.VisionPrimitives = (*GoCVPrimitives)(nil)
