package app

import (
	"context"

	"fiber-inspector/internal/domain/entity"
	"fiber-inspector/internal/domain/port"
)

type UserService struct {
	repo port.UserRepository
}

func NewUserService(repo port.UserRepository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) Get(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	return s.repo.Get(ctx, userID, chatID)
}

func (s *UserService) SetState(ctx context.Context, userID, chatID int64, state entity.UserState) (*entity.User, error) {
	user, err := s.repo.Get(ctx, userID, chatID)
	if err != nil {
		return nil, err
	}

	user.SetState(state)
	if err := s.repo.Save(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// BeginCheck переводит оператора в ожидание снимка торца.
func (s *UserService) BeginCheck(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	return s.SetState(ctx, userID, chatID, entity.StateAwaitingPhoto)
}

func (s *UserService) Cancel(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	return s.SetState(ctx, userID, chatID, entity.StateMainMenu)
}

// Finish возвращает оператора в меню и запоминает последнюю проверку.
func (s *UserService) Finish(ctx context.Context, userID, chatID int64, recordID string) (*entity.User, error) {
	user, err := s.SetState(ctx, userID, chatID, entity.StateMainMenu)
	if err != nil {
		return nil, err
	}
	if recordID == "" {
		return user, nil
	}
	if err := s.repo.SetLastRecord(ctx, userID, recordID); err != nil {
		return nil, err
	}
	user.LastRecordID = recordID
	return user, nil
}
