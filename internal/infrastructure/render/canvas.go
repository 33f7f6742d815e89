package render

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"fiber-inspector/internal/domain/entity"
	"fiber-inspector/internal/domain/port"
)

// Painter создаёт RGBA-холсты. Текст рисуется растровым шрифтом 7x13.
type Painter struct {
	Face font.Face
}

// NewPainter создаёт painter со шрифтом по умолчанию.
func NewPainter() *Painter {
	return &Painter{Face: basicfont.Face7x13}
}

// NewCanvas копирует base и возвращает холст поверх копии.
func (p *Painter) NewCanvas(base image.Image) port.Canvas {
	face := p.Face
	if face == nil {
		face = basicfont.Face7x13
	}
	return &Canvas{dst: entity.CopyRGBA(base), face: face}
}

// Canvas холст поверх RGBA-буфера.
type Canvas struct {
	dst  *image.RGBA
	face font.Face
}

// Image возвращает итоговый буфер.
func (c *Canvas) Image() *image.RGBA {
	return c.dst
}

// Rectangle рисует контур прямоугольника толщиной thickness внутрь от границы r.
// Полосы не перекрываются, поэтому углы смешиваются один раз.
func (c *Canvas) Rectangle(r image.Rectangle, col color.NRGBA, thickness int) {
	r = r.Canon()
	if r.Empty() {
		return
	}
	if thickness < 1 {
		thickness = 1
	}
	t := thickness
	if 2*t >= r.Dy() || 2*t >= r.Dx() {
		c.fill(r, col)
		return
	}

	c.fill(image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+t), col)
	c.fill(image.Rect(r.Min.X, r.Max.Y-t, r.Max.X, r.Max.Y), col)
	c.fill(image.Rect(r.Min.X, r.Min.Y+t, r.Min.X+t, r.Max.Y-t), col)
	c.fill(image.Rect(r.Max.X-t, r.Min.Y+t, r.Max.X, r.Max.Y-t), col)
}

// Circle рисует окружность: пиксели, чьё расстояние до центра отличается от radius не более чем на thickness/2.
func (c *Canvas) Circle(center image.Point, radius int, col color.NRGBA, thickness int) {
	if radius <= 0 {
		return
	}
	if thickness < 1 {
		thickness = 1
	}
	half := float64(thickness) / 2
	reach := radius + thickness

	area := image.Rect(center.X-reach, center.Y-reach, center.X+reach+1, center.Y+reach+1).Intersect(c.dst.Bounds())
	for y := area.Min.Y; y < area.Max.Y; y++ {
		for x := area.Min.X; x < area.Max.X; x++ {
			d := math.Hypot(float64(x-center.X), float64(y-center.Y))
			if math.Abs(d-float64(radius)) <= half {
				c.blend(x, y, col)
			}
		}
	}
}

// Point рисует квадратную точку размером size с центром в p.
func (c *Canvas) Point(p image.Point, col color.NRGBA, size int) {
	if size < 1 {
		size = 1
	}
	topLeft := p.Sub(image.Pt(size/2, size/2))
	c.fill(image.Rectangle{Min: topLeft, Max: topLeft.Add(image.Pt(size, size))}, col)
}

// Text пишет строку от левой точки базовой линии origin.
func (c *Canvas) Text(origin image.Point, text string, col color.NRGBA) {
	d := &font.Drawer{
		Dst:  c.dst,
		Src:  image.NewUniform(col),
		Face: c.face,
		Dot:  fixed.P(origin.X, origin.Y),
	}
	d.DrawString(text)
}

func (c *Canvas) fill(r image.Rectangle, col color.NRGBA) {
	r = r.Intersect(c.dst.Bounds())
	if r.Empty() {
		return
	}
	op := draw.Over
	if col.A == 0xff {
		op = draw.Src
	}
	draw.Draw(c.dst, r, image.NewUniform(col), image.Point{}, op)
}

func (c *Canvas) blend(x, y int, col color.NRGBA) {
	c.fill(image.Rect(x, y, x+1, y+1), col)
}

var _ port.Painter = (*Painter)(nil)
