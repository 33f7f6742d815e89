package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"fiber-inspector/internal/domain/entity"
	"fiber-inspector/internal/domain/port"
)

func record(id string, ts time.Time) *entity.InspectionRecord {
	return &entity.InspectionRecord{
		ID:        id,
		Timestamp: ts,
		Operator:  "cli",
		Result:    sampleResult(),
	}
}

func TestFileName(t *testing.T) {
	rec := record("abcdef0123456789", time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))
	require.Equal(t, "fiber_analysis_20260102_030405_abcdef01.json", FileName(rec))

	rec.ID = "short"
	require.Equal(t, "fiber_analysis_20260102_030405_short.json", FileName(rec))
}

func TestFileResultRepository(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	repo, err := NewFileResultRepository(dir, nil)
	require.NoError(t, err)

	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	second := record("22222222-aaaa", base.Add(time.Minute))
	first := record("11111111-bbbb", base)
	require.NoError(t, repo.Save(ctx, second))
	require.NoError(t, repo.Save(ctx, first))

	// посторонние файлы игнорируются
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fiber_analysis_broken.json"), []byte("{"), 0o644))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, first.ID, list[0].ID)
	require.Equal(t, second.ID, list[1].ID)

	got, err := repo.Get(ctx, second.ID)
	require.NoError(t, err)
	require.Equal(t, second.Result.Defects, got.Result.Defects)

	// новый экземпляр находит запись сканированием каталога
	reopened, err := NewFileResultRepository(dir, nil)
	require.NoError(t, err)
	got, err = reopened.Get(ctx, first.ID)
	require.NoError(t, err)
	require.Equal(t, first.ID, got.ID)

	_, err = reopened.Get(ctx, "missing")
	require.ErrorIs(t, err, port.ErrRecordNotFound)

	require.ErrorIs(t, repo.Save(ctx, &entity.InspectionRecord{}), ErrInvalidRecord)
}

func TestNewFileResultRepository_EmptyDir(t *testing.T) {
	_, err := NewFileResultRepository("", nil)
	require.Error(t, err)
}

func TestFileResultRepository_WarnsOnBrokenFile(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	logger, hook := test.NewNullLogger()
	repo, err := NewFileResultRepository(dir, logger)
	require.NoError(t, err)

	require.NoError(t, repo.Save(ctx, record("33333333-cccc", time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC))))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fiber_analysis_broken.json"), []byte("{"), 0o644))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.Len(t, hook.Entries, 1)
	entry := hook.LastEntry()
	require.Equal(t, logrus.WarnLevel, entry.Level)
	require.Equal(t, "fiber_analysis_broken.json", entry.Data["file"])
	require.NotNil(t, entry.Data[logrus.ErrorKey])
}
