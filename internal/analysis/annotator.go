package analysis

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"fiber-inspector/internal/domain/entity"
	"fiber-inspector/internal/domain/port"
)

var (
	colorScratch       = color.NRGBA{R: 255, G: 165, B: 0, A: 255}
	colorChip          = color.NRGBA{R: 255, A: 255}
	colorCrack         = color.NRGBA{R: 255, B: 255, A: 255}
	colorContamination = color.NRGBA{G: 255, B: 255, A: 255}
	colorUnknown       = color.NRGBA{R: 128, G: 128, B: 128, A: 255}

	colorCladding = color.NRGBA{G: 255, A: 255}
	colorCore     = color.NRGBA{B: 255, A: 255}
	colorCenter   = color.NRGBA{R: 255, A: 255}
	colorLabel    = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

const (
	boxThickness    = 2
	circleThickness = 2
	centerSize      = 3
	labelOffset     = 4
)

// Annotator рисует геометрию и дефекты поверх копии изображения.
type Annotator struct {
	painter port.Painter
}

// NewAnnotator создаёт аннотатор.
func NewAnnotator(painter port.Painter) *Annotator {
	return &Annotator{painter: painter}
}

// Render рисует рамки дефектов с подписями, окружности оболочки и сердцевины и центр.
// Геометрия берётся готовой, повторно не вычисляется.
func (a *Annotator) Render(img image.Image, defects []entity.Defect, geometry entity.Geometry) *image.RGBA {
	canvas := a.painter.NewCanvas(img)

	for _, d := range defects {
		rect := d.Box.Rect()
		canvas.Rectangle(rect, DefectColor(d.Type, d.Severity), boxThickness)

		label := fmt.Sprintf("%s (%.2f)", d.Description, d.Severity)
		canvas.Text(image.Pt(rect.Min.X, rect.Min.Y-labelOffset), label, colorLabel)
	}

	if geometry.CladdingRadius > 0 {
		canvas.Circle(geometry.Center, int(geometry.CladdingRadius), colorCladding, circleThickness)
	}
	if geometry.CoreRadius > 0 {
		canvas.Circle(geometry.CoreCenter, int(geometry.CoreRadius), colorCore, circleThickness)
	}
	canvas.Point(geometry.Center, colorCenter, centerSize)

	return canvas.Image()
}

// DefectColor цвет рамки по категории с непрозрачностью 0.3 + severity*0.7.
func DefectColor(t entity.DefectType, severity float64) color.NRGBA {
	var c color.NRGBA
	switch t {
	case entity.DefectScratch:
		c = colorScratch
	case entity.DefectChip:
		c = colorChip
	case entity.DefectCrack:
		c = colorCrack
	case entity.DefectContamination:
		c = colorContamination
	default:
		c = colorUnknown
	}
	opacity := 0.3 + entity.Clamp01(severity)*0.7
	c.A = uint8(math.Round(opacity * 255))
	return c
}
