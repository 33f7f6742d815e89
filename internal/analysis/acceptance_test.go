package analysis

import (
	"testing"

	"github.com/stretchr/testify/require"

	"fiber-inspector/internal/domain/entity"
)

func TestEvaluate_IdealRatioNoDefects(t *testing.T) {
	p := entity.DefaultParams()
	require.True(t, Evaluate(nil, p.IdealCoreCladRatio, p).Acceptable())
}

func TestEvaluate_TwoCriticalDefects(t *testing.T) {
	p := entity.DefaultParams()
	p.MaxAllowedDefects = 100
	defects := []entity.Defect{{Severity: 0.71}, {Severity: 0.71}}

	a := Evaluate(defects, p.IdealCoreCladRatio, p)
	require.False(t, a.Acceptable())
	require.Equal(t, 2, a.Critical)
	require.True(t, a.RatioOK)
	require.True(t, a.SeverityOK)
	require.False(t, a.CriticalOK)
}

func TestEvaluate_SingleCriticalDefect(t *testing.T) {
	p := entity.DefaultParams()
	defects := []entity.Defect{{Severity: 0.9}, {Severity: 0.7}}
	require.True(t, Evaluate(defects, p.IdealCoreCladRatio, p).Acceptable())
}

func TestEvaluate_RatioBounds(t *testing.T) {
	p := entity.DefaultParams()
	ideal := p.IdealCoreCladRatio

	require.True(t, Evaluate(nil, 0.7*ideal, p).RatioOK)
	require.True(t, Evaluate(nil, 1.3*ideal, p).RatioOK)
	require.False(t, Evaluate(nil, 0.69*ideal, p).RatioOK)
	require.False(t, Evaluate(nil, 1.31*ideal, p).RatioOK)
	require.False(t, Evaluate(nil, 0, p).Acceptable())
}

func TestEvaluate_SeveritySumIsStrict(t *testing.T) {
	p := entity.DefaultParams()
	p.MaxAllowedDefects = 1.0
	defects := []entity.Defect{{Severity: 0.5}, {Severity: 0.5}}

	a := Evaluate(defects, p.IdealCoreCladRatio, p)
	require.InDelta(t, 1.0, a.TotalSeverity, 1e-12)
	require.False(t, a.SeverityOK)

	p.MaxAllowedDefects = 1.01
	require.True(t, Evaluate(defects, p.IdealCoreCladRatio, p).Acceptable())
}
