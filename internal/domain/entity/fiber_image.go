package entity

import (
	"errors"
	"fmt"
	"image"
	"reflect"

	"golang.org/x/image/draw"
)

var (
	// ErrEmptyImage пустое или отсутствующее изображение.
	ErrEmptyImage = errors.New("empty image")
	// ErrMalformedImage буфер пикселей не соответствует границам.
	ErrMalformedImage = errors.New("malformed image buffer")
)

// FiberImage неизменяемый входной буфер анализа.
// Допустимые формы: 8-битный Gray и 8-битный RGBA/NRGBA, остальное переводится в RGBA.
type FiberImage struct {
	img image.Image
}

// NewFiberImage приводит изображение к канонической форме.
func NewFiberImage(img image.Image) (*FiberImage, error) {
	if isNil(img) {
		return nil, ErrEmptyImage
	}
	if img.Bounds().Empty() {
		return nil, ErrEmptyImage
	}

	switch src := img.(type) {
	case *image.Gray:
		if err := checkPix(len(src.Pix), src.Stride, src.Rect, 1); err != nil {
			return nil, err
		}
		return &FiberImage{img: img}, nil
	case *image.RGBA:
		if err := checkPix(len(src.Pix), src.Stride, src.Rect, 4); err != nil {
			return nil, err
		}
		return &FiberImage{img: img}, nil
	case *image.NRGBA:
		if err := checkPix(len(src.Pix), src.Stride, src.Rect, 4); err != nil {
			return nil, err
		}
		return &FiberImage{img: img}, nil
	}

	b := img.Bounds()
	rgba := image.NewRGBA(b)
	draw.Draw(rgba, b, img, b.Min, draw.Src)
	return &FiberImage{img: rgba}, nil
}

// isNil ловит и nil-интерфейс, и типизированный nil-указатель любого типа изображения.
func isNil(img image.Image) bool {
	if img == nil {
		return true
	}
	v := reflect.ValueOf(img)
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}

func checkPix(n, stride int, r image.Rectangle, bpp int) error {
	row := r.Dx() * bpp
	if stride < row {
		return fmt.Errorf("%w: stride %d < row %d", ErrMalformedImage, stride, row)
	}
	if need := (r.Dy()-1)*stride + row; n < need {
		return fmt.Errorf("%w: pix %d < %d", ErrMalformedImage, n, need)
	}
	return nil
}

// Image возвращает каноническое изображение. Вызывающий не должен его менять.
func (f *FiberImage) Image() image.Image {
	return f.img
}

// Bounds возвращает границы изображения.
func (f *FiberImage) Bounds() image.Rectangle {
	return f.img.Bounds()
}

// Width ширина в пикселях
func (f *FiberImage) Width() int {
	return f.img.Bounds().Dx()
}

// Height высота в пикселях
func (f *FiberImage) Height() int {
	return f.img.Bounds().Dy()
}

// Channels число каналов канонической формы: 1 или 4.
func (f *FiberImage) Channels() int {
	if _, ok := f.img.(*image.Gray); ok {
		return 1
	}
	return 4
}

// Midpoint возвращает центр изображения.
func (f *FiberImage) Midpoint() image.Point {
	b := f.img.Bounds()
	return image.Pt(b.Min.X+b.Dx()/2, b.Min.Y+b.Dy()/2)
}

// CopyRGBA возвращает RGBA-копию изображения для отрисовки поверх.
func (f *FiberImage) CopyRGBA() *image.RGBA {
	return CopyRGBA(f.img)
}

// CopyRGBA копирует произвольное изображение в новый RGBA-буфер.
func CopyRGBA(img image.Image) *image.RGBA {
	if isNil(img) {
		return image.NewRGBA(image.Rectangle{})
	}
	b := img.Bounds()
	dst := image.NewRGBA(b)
	draw.Draw(dst, b, img, b.Min, draw.Src)
	return dst
}
