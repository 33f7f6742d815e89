package port

import (
	"context"

	"fiber-inspector/internal/domain/entity"
)

// UserRepository интерфейс хранилища операторов бота
type UserRepository interface {
	// Get возвращает оператора по ID, создаёт нового если не найден
	Get(ctx context.Context, userID, chatID int64) (*entity.User, error)

	// Save сохраняет состояние оператора
	Save(ctx context.Context, user *entity.User) error

	// UpdateState обновляет состояние диалога
	UpdateState(ctx context.Context, userID int64, state entity.UserState) error

	// SetLastRecord запоминает ID последней проверки оператора
	SetLastRecord(ctx context.Context, userID int64, recordID string) error
}
