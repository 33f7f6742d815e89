package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"fiber-inspector/internal/domain/entity"
)

// ErrInvalidRecord запись не соответствует схеме результата.
var ErrInvalidRecord = errors.New("invalid inspection record")

type boxJSON struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

type defectJSON struct {
	Type        int     `json:"type"`
	BoundingBox boxJSON `json:"bounding_box"`
	Severity    float64 `json:"severity"`
	Description string  `json:"description"`
}

type resultJSON struct {
	IsAcceptable   bool         `json:"is_acceptable"`
	CoreCladRatio  float64      `json:"core_clad_ratio"`
	Concentricity  float64      `json:"concentricity"`
	OverallQuality float64      `json:"overall_quality"`
	Summary        string       `json:"summary"`
	Defects        []defectJSON `json:"defects"`
}

type recordJSON struct {
	ID        string      `json:"id"`
	Timestamp time.Time   `json:"timestamp"`
	ImagePath string      `json:"image_path"`
	Operator  string      `json:"operator"`
	Notes     string      `json:"notes"`
	Result    *resultJSON `json:"result"`
}

func toResultJSON(r *entity.AnalysisResult) *resultJSON {
	if r == nil {
		return nil
	}
	out := &resultJSON{
		IsAcceptable:   r.Acceptable,
		CoreCladRatio:  r.CoreCladRatio,
		Concentricity:  r.Concentricity,
		OverallQuality: r.OverallQuality,
		Summary:        r.Summary,
		Defects:        make([]defectJSON, 0, len(r.Defects)),
	}
	for _, d := range r.Defects {
		out.Defects = append(out.Defects, defectJSON{
			Type: int(d.Type),
			BoundingBox: boxJSON{
				X:      d.Box.X,
				Y:      d.Box.Y,
				Width:  d.Box.Width,
				Height: d.Box.Height,
			},
			Severity:    d.Severity,
			Description: d.Description,
		})
	}
	return out
}

func (j *resultJSON) toEntity() (*entity.AnalysisResult, error) {
	r := &entity.AnalysisResult{
		Acceptable:     j.IsAcceptable,
		CoreCladRatio:  j.CoreCladRatio,
		Concentricity:  j.Concentricity,
		OverallQuality: j.OverallQuality,
		Summary:        j.Summary,
		Defects:        make([]entity.Defect, 0, len(j.Defects)),
	}
	for i, d := range j.Defects {
		t := entity.DefectType(d.Type)
		if !t.Valid() {
			return nil, fmt.Errorf("%w: defect %d has unknown type %d", ErrInvalidRecord, i, d.Type)
		}
		if d.Severity < 0 || d.Severity > 1 {
			return nil, fmt.Errorf("%w: defect %d severity %v out of [0,1]", ErrInvalidRecord, i, d.Severity)
		}
		r.Defects = append(r.Defects, entity.Defect{
			Type: t,
			Box: entity.BoundingBox{
				X:      d.BoundingBox.X,
				Y:      d.BoundingBox.Y,
				Width:  d.BoundingBox.Width,
				Height: d.BoundingBox.Height,
			},
			Severity:    d.Severity,
			Description: d.Description,
		})
	}
	return r, nil
}

// MarshalResult кодирует результат анализа в JSON-схему (без изображения).
func MarshalResult(r *entity.AnalysisResult) ([]byte, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: nil result", ErrInvalidRecord)
	}
	return json.MarshalIndent(toResultJSON(r), "", "  ")
}

// UnmarshalResult декодирует результат анализа из JSON-схемы.
func UnmarshalResult(data []byte) (*entity.AnalysisResult, error) {
	var j resultJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	return j.toEntity()
}

// MarshalRecord кодирует запись проверки.
func MarshalRecord(rec *entity.InspectionRecord) ([]byte, error) {
	if rec == nil {
		return nil, fmt.Errorf("%w: nil record", ErrInvalidRecord)
	}
	return json.MarshalIndent(recordJSON{
		ID:        rec.ID,
		Timestamp: rec.Timestamp,
		ImagePath: rec.ImagePath,
		Operator:  rec.Operator,
		Notes:     rec.Notes,
		Result:    toResultJSON(rec.Result),
	}, "", "  ")
}

// UnmarshalRecord декодирует запись проверки.
func UnmarshalRecord(data []byte) (*entity.InspectionRecord, error) {
	var j recordJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	if j.ID == "" {
		return nil, fmt.Errorf("%w: missing id", ErrInvalidRecord)
	}
	rec := &entity.InspectionRecord{
		ID:        j.ID,
		Timestamp: j.Timestamp,
		ImagePath: j.ImagePath,
		Operator:  j.Operator,
		Notes:     j.Notes,
	}
	if j.Result != nil {
		r, err := j.Result.toEntity()
		if err != nil {
			return nil, err
		}
		rec.Result = r
	}
	return rec, nil
}
