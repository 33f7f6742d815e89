package port

import (
	"context"
	"errors"

	"fiber-inspector/internal/domain/entity"
)

// ErrRecordNotFound запись проверки не найдена
var ErrRecordNotFound = errors.New("inspection record not found")

// ResultRepository интерфейс хранилища записей проверок
type ResultRepository interface {
	// Save сохраняет запись, ID должен быть заполнен
	Save(ctx context.Context, record *entity.InspectionRecord) error

	// Get возвращает запись по ID
	Get(ctx context.Context, id string) (*entity.InspectionRecord, error)

	// List возвращает все записи в порядке времени проверки
	List(ctx context.Context) ([]*entity.InspectionRecord, error)
}

// ResultPublisher интерфейс рассылки результатов во внешние системы
type ResultPublisher interface {
	Publish(ctx context.Context, record *entity.InspectionRecord) error
}
