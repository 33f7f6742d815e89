package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"fiber-inspector/internal/domain/entity"
	"fiber-inspector/internal/domain/port"
)

// MemoryResultRepository in-memory хранилище записей проверок
type MemoryResultRepository struct {
	mu      sync.RWMutex
	records map[string]*entity.InspectionRecord
}

// NewMemoryResultRepository создаёт новое in-memory хранилище
func NewMemoryResultRepository() *MemoryResultRepository {
	return &MemoryResultRepository{
		records: make(map[string]*entity.InspectionRecord),
	}
}

// Save сохраняет запись
func (r *MemoryResultRepository) Save(ctx context.Context, rec *entity.InspectionRecord) error {
	if rec == nil || rec.ID == "" {
		return fmt.Errorf("%w: record id is required", ErrInvalidRecord)
	}
	r.mu.Lock()
	r.records[rec.ID] = rec
	r.mu.Unlock()
	return nil
}

// Get возвращает запись по ID
func (r *MemoryResultRepository) Get(ctx context.Context, id string) (*entity.InspectionRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.records[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", port.ErrRecordNotFound, id)
	}
	return rec, nil
}

// List возвращает все записи по возрастанию времени
func (r *MemoryResultRepository) List(ctx context.Context) ([]*entity.InspectionRecord, error) {
	r.mu.RLock()
	records := make([]*entity.InspectionRecord, 0, len(r.records))
	for _, rec := range r.records {
		records = append(records, rec)
	}
	r.mu.RUnlock()

	sort.Slice(records, func(i, j int) bool {
		if records[i].Timestamp.Equal(records[j].Timestamp) {
			return records[i].ID < records[j].ID
		}
		return records[i].Timestamp.Before(records[j].Timestamp)
	})
	return records, nil
}

var _ port.ResultRepository = (*MemoryResultRepository)(nil)
