package app

import (
	"time"

	"github.com/google/uuid"

	"fiber-inspector/internal/domain/entity"
)

// RecordMeta сведения о проверке, которые не даёт анализатор.
type RecordMeta struct {
	ImagePath string
	Operator  string
	Notes     string
}

// recorder выдаёт идентификаторы и время для новых записей.
type recorder struct {
	now   func() time.Time
	newID func() string
}

func defaultRecorder() recorder {
	return recorder{
		now:   time.Now,
		newID: func() string { return uuid.NewString() },
	}
}

func (r recorder) record(result *entity.AnalysisResult, meta RecordMeta) *entity.InspectionRecord {
	return &entity.InspectionRecord{
		ID:        r.newID(),
		Timestamp: r.now(),
		ImagePath: meta.ImagePath,
		Operator:  meta.Operator,
		Notes:     meta.Notes,
		Result:    result,
	}
}
