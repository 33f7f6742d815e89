package vision

import "image"

// copyGray копирует изображение построчно в плотный буфер с теми же границами.
// Подизображения с ненулевым Rect.Min и широким Stride переносятся корректно.
func copyGray(src *image.Gray) *image.Gray {
	b := src.Bounds()
	out := image.NewGray(b)
	w := b.Dx()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		copy(out.Pix[out.PixOffset(b.Min.X, y):][:w], src.Pix[src.PixOffset(b.Min.X, y):][:w])
	}
	return out
}

// compactGray возвращает src, если строки уже идут без зазоров, иначе плотную копию.
func compactGray(src *image.Gray) *image.Gray {
	if src.Stride == src.Bounds().Dx() && len(src.Pix) == src.Stride*src.Bounds().Dy() {
		return src
	}
	return copyGray(src)
}
