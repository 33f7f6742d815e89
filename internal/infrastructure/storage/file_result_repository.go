package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"fiber-inspector/internal/domain/entity"
	"fiber-inspector/internal/domain/port"
)

const (
	recordPrefix    = "fiber_analysis_"
	recordExt       = ".json"
	recordTimestamp = "20060102_150405"
)

// FileResultRepository хранит каждую запись отдельным JSON-файлом в каталоге.
type FileResultRepository struct {
	dir    string
	logger logrus.FieldLogger

	mu    sync.RWMutex
	paths map[string]string // id -> путь к файлу
}

// NewFileResultRepository создаёт хранилище в каталоге dir, создавая его при необходимости.
func NewFileResultRepository(dir string, logger logrus.FieldLogger) (*FileResultRepository, error) {
	if dir == "" {
		return nil, errors.New("results dir is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create results dir: %w", err)
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &FileResultRepository{
		dir:    dir,
		logger: logger,
		paths:  make(map[string]string),
	}, nil
}

// Dir каталог хранилища
func (r *FileResultRepository) Dir() string {
	return r.dir
}

// FileName имя файла записи: fiber_analysis_<дата_время>_<первые 8 символов id>.json
func FileName(rec *entity.InspectionRecord) string {
	short := rec.ID
	if len(short) > 8 {
		short = short[:8]
	}
	return recordPrefix + rec.Timestamp.Format(recordTimestamp) + "_" + short + recordExt
}

// Save записывает запись на диск через временный файл.
func (r *FileResultRepository) Save(ctx context.Context, rec *entity.InspectionRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if rec == nil || rec.ID == "" {
		return fmt.Errorf("%w: record id is required", ErrInvalidRecord)
	}

	data, err := MarshalRecord(rec)
	if err != nil {
		return err
	}

	path := filepath.Join(r.dir, FileName(rec))
	tmp, err := os.CreateTemp(r.dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write record: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close record: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("rename record: %w", err)
	}

	r.mu.Lock()
	r.paths[rec.ID] = path
	r.mu.Unlock()
	return nil
}

// Get читает запись по ID.
func (r *FileResultRepository) Get(ctx context.Context, id string) (*entity.InspectionRecord, error) {
	r.mu.RLock()
	path, ok := r.paths[id]
	r.mu.RUnlock()
	if ok {
		return r.load(path)
	}

	records, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		if rec.ID == id {
			return rec, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", port.ErrRecordNotFound, id)
}

// List читает все записи каталога по возрастанию времени проверки.
// Файлы, которые не удалось разобрать, пропускаются.
func (r *FileResultRepository) List(ctx context.Context) ([]*entity.InspectionRecord, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, fmt.Errorf("read results dir: %w", err)
	}

	records := make([]*entity.InspectionRecord, 0, len(entries))
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, recordPrefix) || !strings.HasSuffix(name, recordExt) {
			continue
		}
		path := filepath.Join(r.dir, name)
		rec, err := r.load(path)
		if err != nil {
			r.logger.WithError(err).WithField("file", name).Warn("skip unreadable record")
			continue
		}
		r.mu.Lock()
		r.paths[rec.ID] = path
		r.mu.Unlock()
		records = append(records, rec)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Timestamp.Before(records[j].Timestamp)
	})
	return records, nil
}

func (r *FileResultRepository) load(path string) (*entity.InspectionRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read record: %w", err)
	}
	rec, err := UnmarshalRecord(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return rec, nil
}

var _ port.ResultRepository = (*FileResultRepository)(nil)
