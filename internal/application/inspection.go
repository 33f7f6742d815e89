package app

import (
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/sirupsen/logrus"

	"fiber-inspector/internal/domain/entity"
	"fiber-inspector/internal/domain/port"
)

// ErrNoInspections у оператора ещё нет проверок.
var ErrNoInspections = errors.New("no inspections yet")

type InspectionService struct {
	users     *UserService
	analyzer  port.FiberAnalyzer
	codec     port.ImageCodec
	results   port.ResultRepository
	publisher port.ResultPublisher
	logger    logrus.FieldLogger
	recorder  recorder
}

// InspectionOutput содержит запись проверки и превью аннотированного снимка.
type InspectionOutput struct {
	Record    *entity.InspectionRecord
	Annotated []byte
}

// NewInspectionService создаёт сервис проверки торцов. publisher может быть nil.
func NewInspectionService(
	users *UserService,
	analyzer port.FiberAnalyzer,
	codec port.ImageCodec,
	results port.ResultRepository,
	publisher port.ResultPublisher,
	logger logrus.FieldLogger,
) *InspectionService {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &InspectionService{
		users:     users,
		analyzer:  analyzer,
		codec:     codec,
		results:   results,
		publisher: publisher,
		logger:    logger,
		recorder:  defaultRecorder(),
	}
}

// Inspect анализирует изображение, сохраняет запись и публикует её.
// Ошибка публикации только логируется.
func (s *InspectionService) Inspect(ctx context.Context, img image.Image, meta RecordMeta) (*entity.InspectionRecord, error) {
	if s.analyzer == nil {
		return nil, errors.New("analyzer is not configured")
	}

	result := s.analyzer.Analyze(img)
	rec := s.recorder.record(result, meta)

	log := s.logger.WithFields(logrus.Fields{
		"record":     rec.ID,
		"image":      meta.ImagePath,
		"operator":   meta.Operator,
		"acceptable": result.Acceptable,
		"quality":    result.OverallQuality,
		"defects":    len(result.Defects),
	})

	if s.results != nil {
		if err := s.results.Save(ctx, rec); err != nil {
			return nil, fmt.Errorf("save inspection: %w", err)
		}
	}
	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, rec); err != nil {
			log.WithError(err).Warn("failed to publish inspection")
		}
	}

	log.Info("fiber inspected")
	return rec, nil
}

// ProcessPhoto обрабатывает снимок оператора бота и возвращает его в главное меню.
func (s *InspectionService) ProcessPhoto(ctx context.Context, user *entity.User, photo []byte) (*InspectionOutput, error) {
	if s.codec == nil {
		return nil, errors.New("image codec is not configured")
	}
	if _, err := s.users.SetState(ctx, user.ID, user.ChatID, entity.StateProcessing); err != nil {
		return nil, err
	}

	out, err := s.processPhoto(ctx, user, photo)
	if err != nil {
		// оператор может сразу прислать другой снимок
		if _, stateErr := s.users.SetState(ctx, user.ID, user.ChatID, entity.StateAwaitingPhoto); stateErr != nil {
			s.logger.WithError(stateErr).Warn("failed to reset user state")
		}
		return nil, err
	}

	if _, err := s.users.Finish(ctx, user.ID, user.ChatID, out.Record.ID); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *InspectionService) processPhoto(ctx context.Context, user *entity.User, photo []byte) (*InspectionOutput, error) {
	img, err := s.codec.Decode(photo)
	if err != nil {
		return nil, fmt.Errorf("decode photo: %w", err)
	}

	rec, err := s.Inspect(ctx, img, RecordMeta{Operator: user.Operator()})
	if err != nil {
		return nil, err
	}

	preview, err := s.codec.Preview(rec.Result.Annotated)
	if err != nil {
		return nil, fmt.Errorf("encode annotated image: %w", err)
	}
	return &InspectionOutput{Record: rec, Annotated: preview}, nil
}

// SetReferenceParameters меняет эталонные параметры анализатора.
func (s *InspectionService) SetReferenceParameters(idealRatio, maxAllowedDefects float64) error {
	if err := s.analyzer.SetReferenceParameters(idealRatio, maxAllowedDefects); err != nil {
		return err
	}
	s.logger.WithFields(logrus.Fields{
		"ideal_ratio": idealRatio,
		"max_defects": maxAllowedDefects,
	}).Info("reference parameters updated")
	return nil
}

// Params текущие параметры анализатора
func (s *InspectionService) Params() entity.Params {
	return s.analyzer.Params()
}

// Last возвращает последнюю проверку оператора.
func (s *InspectionService) Last(ctx context.Context, userID, chatID int64) (*entity.InspectionRecord, error) {
	user, err := s.users.Get(ctx, userID, chatID)
	if err != nil {
		return nil, err
	}
	if user.LastRecordID == "" || s.results == nil {
		return nil, ErrNoInspections
	}
	return s.results.Get(ctx, user.LastRecordID)
}
