package analysis

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"sync/atomic"

	"fiber-inspector/internal/domain/entity"
	"fiber-inspector/internal/domain/port"
)

var errBoom = errors.New("boom")

// fakeVision возвращает заранее заданные окружности и контуры.
type fakeVision struct {
	circles  []entity.Circle
	contours []entity.Contour

	failOn  string
	panicOn string

	blurKernels []int
	hough       []port.HoughParams
	thresholds  []port.ThresholdParams

	active    atomic.Int32
	maxActive atomic.Int32
	calls     atomic.Int32
}

func (f *fakeVision) enter(op string) error {
	f.calls.Add(1)
	if n := f.active.Add(1); n > f.maxActive.Load() {
		f.maxActive.Store(n)
	}
	defer f.active.Add(-1)

	if f.panicOn == op {
		panic("corrupted buffer in " + op)
	}
	if f.failOn == op {
		return errBoom
	}
	return nil
}

func (f *fakeVision) Grayscale(img image.Image) (*image.Gray, error) {
	if err := f.enter("grayscale"); err != nil {
		return nil, err
	}
	b := img.Bounds()
	gray := image.NewGray(b)
	draw.Draw(gray, b, img, b.Min, draw.Src)
	return gray, nil
}

func (f *fakeVision) GaussianBlur(src *image.Gray, kernel int) (*image.Gray, error) {
	if err := f.enter("blur"); err != nil {
		return nil, err
	}
	f.blurKernels = append(f.blurKernels, kernel)
	return src, nil
}

func (f *fakeVision) HoughCircles(src *image.Gray, params port.HoughParams) ([]entity.Circle, error) {
	if err := f.enter("hough"); err != nil {
		return nil, err
	}
	f.hough = append(f.hough, params)
	return f.circles, nil
}

func (f *fakeVision) AdaptiveThreshold(src *image.Gray, params port.ThresholdParams) (*image.Gray, error) {
	if err := f.enter("threshold"); err != nil {
		return nil, err
	}
	f.thresholds = append(f.thresholds, params)
	return src, nil
}

func (f *fakeVision) FindContours(mask *image.Gray) ([]entity.Contour, error) {
	if err := f.enter("contours"); err != nil {
		return nil, err
	}
	return f.contours, nil
}

type circleCall struct {
	center image.Point
	radius int
	color  color.NRGBA
}

// recordingPainter запоминает вызовы отрисовки.
type recordingPainter struct {
	base    *image.RGBA
	rects   []image.Rectangle
	colors  []color.NRGBA
	circles []circleCall
	points  []image.Point
	texts   []string
}

func (p *recordingPainter) NewCanvas(base image.Image) port.Canvas {
	p.base = entity.CopyRGBA(base)
	return p
}

func (p *recordingPainter) Rectangle(r image.Rectangle, c color.NRGBA, thickness int) {
	p.rects = append(p.rects, r)
	p.colors = append(p.colors, c)
}

func (p *recordingPainter) Circle(center image.Point, radius int, c color.NRGBA, thickness int) {
	p.circles = append(p.circles, circleCall{center: center, radius: radius, color: c})
}

func (p *recordingPainter) Point(pt image.Point, c color.NRGBA, size int) {
	p.points = append(p.points, pt)
}

func (p *recordingPainter) Text(origin image.Point, text string, c color.NRGBA) {
	p.texts = append(p.texts, text)
}

func (p *recordingPainter) Image() *image.RGBA {
	return p.base
}

type fixedScorer float64

func (s fixedScorer) Score(entity.Defect) float64 { return float64(s) }

type fixedClassifier entity.DefectType

func (c fixedClassifier) Classify(entity.BoundingBox) entity.DefectType { return entity.DefectType(c) }

func testImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 40, A: 255})
		}
	}
	return img
}

func contour(area float64, x, y, w, h int) entity.Contour {
	return entity.Contour{Area: area, Box: entity.BoundingBox{X: x, Y: y, Width: w, Height: h}}
}
