package port

import "image"

// ImageCodec чтение входных снимков и кодирование аннотированных изображений
type ImageCodec interface {
	// Decode декодирует снимок из байтов (PNG, JPEG, GIF, TIFF, BMP, WebP)
	Decode(data []byte) (image.Image, error)

	// Load читает снимок с диска
	Load(path string) (image.Image, error)

	// Save пишет изображение на диск, формат по расширению
	Save(path string, img image.Image) error

	// Preview кодирует уменьшенную JPEG-копию для отправки оператору
	Preview(img image.Image) ([]byte, error)
}
