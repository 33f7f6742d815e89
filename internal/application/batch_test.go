package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"fiber-inspector/internal/domain/entity"
	"fiber-inspector/internal/domain/port"
	"fiber-inspector/internal/infrastructure/storage"
)

func TestBatchService_RunKeepsInputOrder(t *testing.T) {
	logger, _ := test.NewNullLogger()
	var created atomic.Int32
	factory := func() (port.FiberAnalyzer, error) {
		created.Add(1)
		return &stubAnalyzer{params: entity.DefaultParams()}, nil
	}
	codec := &stubCodec{}
	results := storage.NewMemoryResultRepository()
	svc := NewBatchService(factory, codec, results, nil, logger)

	paths := make([]string, 20)
	for i := range paths {
		paths[i] = fmt.Sprintf("/data/img_%02d.png", i)
	}
	paths[7] = "/data/missing.png"

	items, err := svc.Run(context.Background(), paths, BatchOptions{Workers: 4, OutDir: "/out", Operator: "cli"})
	require.NoError(t, err)
	require.Len(t, items, len(paths))
	require.LessOrEqual(t, created.Load(), int32(4))

	for i, item := range items {
		require.Equal(t, paths[i], item.Path)
		if i == 7 {
			require.ErrorIs(t, item.Err, errBadImage)
			require.Nil(t, item.Record)
			continue
		}
		require.NoError(t, item.Err)
		require.Equal(t, paths[i], item.Record.ImagePath)
		require.Equal(t, "cli", item.Record.Operator)
		require.Equal(t, filepath.Join("/out", fmt.Sprintf("img_%02d_annotated.png", i)), item.AnnotatedPath)
	}

	stored, err := results.List(context.Background())
	require.NoError(t, err)
	require.Len(t, stored, 19)
	require.Len(t, codec.saved, 19)
}

func TestBatchService_FactoryErrorAborts(t *testing.T) {
	logger, _ := test.NewNullLogger()
	boom := errors.New("no opencv")
	svc := NewBatchService(func() (port.FiberAnalyzer, error) { return nil, boom }, &stubCodec{}, nil, nil, logger)

	_, err := svc.Run(context.Background(), []string{"a.png", "b.png"}, BatchOptions{Workers: 2})
	require.ErrorIs(t, err, boom)
}

func TestBatchService_Empty(t *testing.T) {
	svc := NewBatchService(func() (port.FiberAnalyzer, error) { return &stubAnalyzer{}, nil }, &stubCodec{}, nil, nil, nil)
	items, err := svc.Run(context.Background(), nil, BatchOptions{})
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestAnnotatedPath(t *testing.T) {
	require.Equal(t, filepath.Join("out", "fiber_1_annotated.png"), AnnotatedPath("out", "/in/fiber_1.jpeg"))
}
