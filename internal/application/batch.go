package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"fiber-inspector/internal/domain/entity"
	"fiber-inspector/internal/domain/port"
)

// AnalyzerFactory создаёт отдельный анализатор для каждого обработчика пакета.
type AnalyzerFactory func() (port.FiberAnalyzer, error)

// BatchOptions параметры пакетной проверки.
type BatchOptions struct {
	Workers  int
	OutDir   string // каталог для аннотированных снимков, пусто: не сохранять
	Operator string
	Notes    string
}

// BatchItem результат проверки одного файла.
type BatchItem struct {
	Path          string
	Record        *entity.InspectionRecord
	AnnotatedPath string
	Err           error
}

type BatchService struct {
	factory   AnalyzerFactory
	codec     port.ImageCodec
	results   port.ResultRepository
	publisher port.ResultPublisher
	logger    logrus.FieldLogger
	recorder  recorder
}

// NewBatchService создаёт сервис пакетной проверки. results и publisher могут быть nil.
func NewBatchService(
	factory AnalyzerFactory,
	codec port.ImageCodec,
	results port.ResultRepository,
	publisher port.ResultPublisher,
	logger logrus.FieldLogger,
) *BatchService {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &BatchService{
		factory:   factory,
		codec:     codec,
		results:   results,
		publisher: publisher,
		logger:    logger,
		recorder:  defaultRecorder(),
	}
}

// Run проверяет файлы пулом обработчиков, по анализатору на обработчик.
// Результаты идут в порядке paths. Ошибки отдельных файлов лежат в BatchItem.Err,
// ошибка создания анализатора или отмена контекста прерывают весь пакет.
func (s *BatchService) Run(ctx context.Context, paths []string, opts BatchOptions) ([]BatchItem, error) {
	if s.factory == nil || s.codec == nil {
		return nil, errors.New("batch service is not configured")
	}

	items := make([]BatchItem, len(paths))
	for i, p := range paths {
		items[i].Path = p
	}
	if len(paths) == 0 {
		return items, nil
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = 1
	}
	if workers > len(paths) {
		workers = len(paths)
	}

	g, gctx := errgroup.WithContext(ctx)
	jobs := make(chan int)

	g.Go(func() error {
		defer close(jobs)
		for i := range paths {
			select {
			case jobs <- i:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	for w := 0; w < workers; w++ {
		g.Go(func() error {
			analyzer, err := s.factory()
			if err != nil {
				return fmt.Errorf("create analyzer: %w", err)
			}
			for i := range jobs {
				items[i] = s.process(gctx, analyzer, paths[i], opts)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return items, err
	}

	s.logger.WithFields(logrus.Fields{
		"files":   len(paths),
		"workers": workers,
	}).Info("batch finished")
	return items, nil
}

func (s *BatchService) process(ctx context.Context, analyzer port.FiberAnalyzer, path string, opts BatchOptions) BatchItem {
	item := BatchItem{Path: path}
	log := s.logger.WithField("image", path)

	img, err := s.codec.Load(path)
	if err != nil {
		item.Err = err
		log.WithError(err).Warn("failed to load image")
		return item
	}

	result := analyzer.Analyze(img)
	rec := s.recorder.record(result, RecordMeta{
		ImagePath: path,
		Operator:  opts.Operator,
		Notes:     opts.Notes,
	})
	item.Record = rec

	if s.results != nil {
		if err := s.results.Save(ctx, rec); err != nil {
			item.Err = fmt.Errorf("save inspection: %w", err)
			return item
		}
	}
	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, rec); err != nil {
			log.WithError(err).Warn("failed to publish inspection")
		}
	}

	if opts.OutDir != "" {
		item.AnnotatedPath = AnnotatedPath(opts.OutDir, path)
		if err := s.codec.Save(item.AnnotatedPath, result.Annotated); err != nil {
			item.Err = fmt.Errorf("save annotated image: %w", err)
			return item
		}
	}

	log.WithFields(logrus.Fields{
		"record":     rec.ID,
		"acceptable": result.Acceptable,
		"quality":    result.OverallQuality,
		"defects":    len(result.Defects),
	}).Debug("file inspected")
	return item
}

// AnnotatedPath путь аннотированного снимка: <dir>/<имя>_annotated.png
func AnnotatedPath(dir, source string) string {
	base := filepath.Base(source)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, name+"_annotated.png")
}
