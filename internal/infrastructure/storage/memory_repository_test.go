package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"fiber-inspector/internal/domain/entity"
	"fiber-inspector/internal/domain/port"
)

func TestMemoryResultRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryResultRepository()

	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Save(ctx, record("b", base)))
	require.NoError(t, repo.Save(ctx, record("a", base)))
	require.NoError(t, repo.Save(ctx, record("c", base.Add(-time.Hour))))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"c", "a", "b"}, []string{list[0].ID, list[1].ID, list[2].ID})

	_, err = repo.Get(ctx, "zzz")
	require.ErrorIs(t, err, port.ErrRecordNotFound)

	require.Error(t, repo.Save(ctx, nil))
}

func TestMemoryUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository()

	user, err := repo.Get(ctx, 7, 70)
	require.NoError(t, err)
	require.Equal(t, entity.StateMainMenu, user.State)

	require.NoError(t, repo.UpdateState(ctx, 7, entity.StateAwaitingPhoto))
	require.NoError(t, repo.SetLastRecord(ctx, 7, "rec-1"))

	again, err := repo.Get(ctx, 7, 70)
	require.NoError(t, err)
	require.Equal(t, entity.StateAwaitingPhoto, again.State)
	require.Equal(t, "rec-1", again.LastRecordID)

	// неизвестный пользователь не создаётся
	require.NoError(t, repo.UpdateState(ctx, 8, entity.StateProcessing))
	fresh, err := repo.Get(ctx, 8, 80)
	require.NoError(t, err)
	require.Equal(t, entity.StateMainMenu, fresh.State)
}
