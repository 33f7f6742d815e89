package imageio

import (
	"image"

	"fiber-inspector/internal/domain/port"
)

// DefaultPreviewSide ограничение большей стороны превью.
const DefaultPreviewSide = 1280

// Codec реализация port.ImageCodec поверх функций пакета.
type Codec struct {
	PreviewSide int
}

// NewCodec создаёт кодек с размером превью по умолчанию.
func NewCodec() *Codec {
	return &Codec{PreviewSide: DefaultPreviewSide}
}

func (c *Codec) Decode(data []byte) (image.Image, error) {
	return DecodeBytes(data)
}

func (c *Codec) Load(path string) (image.Image, error) {
	return DecodeFile(path)
}

func (c *Codec) Save(path string, img image.Image) error {
	return WriteFile(path, img)
}

func (c *Codec) Preview(img image.Image) ([]byte, error) {
	return JPEGBytes(Fit(img, c.PreviewSide))
}

var _ port.ImageCodec = (*Codec)(nil)
