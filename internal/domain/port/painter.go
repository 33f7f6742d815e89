package port

import (
	"image"
	"image/color"
)

// Canvas холст для отрисовки поверх копии изображения.
// Цвета с альфой меньше 255 смешиваются с подложкой.
type Canvas interface {
	Rectangle(r image.Rectangle, c color.NRGBA, thickness int)
	Circle(center image.Point, radius int, c color.NRGBA, thickness int)
	Point(p image.Point, c color.NRGBA, size int)
	Text(origin image.Point, text string, c color.NRGBA)
	Image() *image.RGBA
}

// Painter создаёт холст поверх копии base.
type Painter interface {
	NewCanvas(base image.Image) Canvas
}
