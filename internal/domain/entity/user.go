package entity

import "strconv"

// UserState состояние пользователя в диалоге
type UserState string

const (
	StateMainMenu      UserState = "main_menu"      // В главном меню
	StateAwaitingPhoto UserState = "awaiting_photo" // Ожидание фото торца волокна
	StateProcessing    UserState = "processing"     // Анализ изображения
)

// User представляет оператора, работающего через бота
type User struct {
	ID           int64     // Telegram User ID
	ChatID       int64     // Telegram Chat ID
	State        UserState // Текущее состояние пользователя
	LastRecordID string    // ID последней записи проверки
}

// NewUser создаёт нового пользователя с начальным состоянием
func NewUser(userID, chatID int64) *User {
	return &User{
		ID:     userID,
		ChatID: chatID,
		State:  StateMainMenu,
	}
}

// SetState обновляет состояние пользователя
func (u *User) SetState(state UserState) {
	u.State = state
}

// Operator возвращает имя оператора для записи проверки.
func (u *User) Operator() string {
	return "telegram:" + strconv.FormatInt(u.ID, 10)
}
