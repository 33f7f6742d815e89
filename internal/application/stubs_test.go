package app

import (
	"context"
	"errors"
	"image"
	"strings"
	"sync"
	"sync/atomic"

	"fiber-inspector/internal/domain/entity"
)

type stubAnalyzer struct {
	acceptable bool
	calls      atomic.Int32
	params     entity.Params
}

func (a *stubAnalyzer) Analyze(img image.Image) *entity.AnalysisResult {
	a.calls.Add(1)
	return &entity.AnalysisResult{
		Acceptable:     a.acceptable,
		CoreCladRatio:  0.8,
		Concentricity:  1,
		OverallQuality: 0.9,
		Defects:        []entity.Defect{},
		Annotated:      entity.CopyRGBA(img),
		Summary:        "PASS: Fiber meets quality standards.",
	}
}

func (a *stubAnalyzer) SetReferenceParameters(idealRatio, maxAllowedDefects float64) error {
	p := a.params
	p.IdealCoreCladRatio = idealRatio
	p.MaxAllowedDefects = maxAllowedDefects
	if err := p.Validate(); err != nil {
		return err
	}
	a.params = p
	return nil
}

func (a *stubAnalyzer) Params() entity.Params {
	return a.params
}

var errBadImage = errors.New("bad image")

type stubCodec struct {
	mu    sync.Mutex
	saved []string
}

func (c *stubCodec) Decode(data []byte) (image.Image, error) {
	if string(data) == "bad" {
		return nil, errBadImage
	}
	return image.NewRGBA(image.Rect(0, 0, 4, 4)), nil
}

func (c *stubCodec) Load(path string) (image.Image, error) {
	if strings.Contains(path, "missing") {
		return nil, errBadImage
	}
	return image.NewGray(image.Rect(0, 0, 4, 4)), nil
}

func (c *stubCodec) Save(path string, img image.Image) error {
	c.mu.Lock()
	c.saved = append(c.saved, path)
	c.mu.Unlock()
	return nil
}

func (c *stubCodec) Preview(img image.Image) ([]byte, error) {
	return []byte("jpeg"), nil
}

type stubPublisher struct {
	mu      sync.Mutex
	records []string
	err     error
}

func (p *stubPublisher) Publish(ctx context.Context, rec *entity.InspectionRecord) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.records = append(p.records, rec.ID)
	return nil
}
