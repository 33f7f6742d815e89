package entity

import "image"

// DefectType категория дефекта торца волокна.
// Порядок объявления задаёт целочисленный код в JSON-схеме результата.
type DefectType int

const (
	DefectScratch       DefectType = iota // царапина
	DefectChip                            // скол
	DefectCrack                           // трещина
	DefectContamination                   // загрязнение
	DefectUnknown                         // неизвестный дефект
)

// String возвращает короткое имя категории.
func (t DefectType) String() string {
	switch t {
	case DefectScratch:
		return "scratch"
	case DefectChip:
		return "chip"
	case DefectCrack:
		return "crack"
	case DefectContamination:
		return "contamination"
	default:
		return "unknown"
	}
}

// Description возвращает человекочитаемое описание категории.
func (t DefectType) Description() string {
	switch t {
	case DefectScratch:
		return "Surface scratch"
	case DefectChip:
		return "Edge chip"
	case DefectCrack:
		return "Internal crack"
	case DefectContamination:
		return "Surface contamination"
	default:
		return "Unknown defect"
	}
}

// Valid сообщает, входит ли код в объявленный набор категорий.
func (t DefectType) Valid() bool {
	return t >= DefectScratch && t <= DefectUnknown
}

// BoundingBox представляет ограничивающий прямоугольник, выровненный по осям
type BoundingBox struct {
	X      int // координата X левого верхнего угла
	Y      int // координата Y левого верхнего угла
	Width  int // ширина области в пикселях
	Height int // высота области в пикселях
}

// BoxFromRect переводит image.Rectangle в BoundingBox.
func BoxFromRect(r image.Rectangle) BoundingBox {
	return BoundingBox{X: r.Min.X, Y: r.Min.Y, Width: r.Dx(), Height: r.Dy()}
}

// Rect возвращает прямоугольник в координатах image.
func (b BoundingBox) Rect() image.Rectangle {
	return image.Rect(b.X, b.Y, b.X+b.Width, b.Y+b.Height)
}

// Area возвращает площадь прямоугольника в пикселях
func (b BoundingBox) Area() int {
	return b.Width * b.Height
}

// AspectRatio возвращает отношение ширины к высоте.
// Для нулевой высоты результат следует правилам IEEE (Inf или NaN).
func (b BoundingBox) AspectRatio() float64 {
	return float64(b.Width) / float64(b.Height)
}

// Center возвращает координаты центра прямоугольника
func (b BoundingBox) Center() (x, y int) {
	return b.X + b.Width/2, b.Y + b.Height/2
}

// Defect представляет классифицированный дефект.
type Defect struct {
	Type        DefectType
	Box         BoundingBox
	Severity    float64 // нормированная тяжесть в [0,1]
	Description string
}
