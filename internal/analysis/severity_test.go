package analysis

import (
	"testing"

	"github.com/stretchr/testify/require"

	"fiber-inspector/internal/domain/entity"
)

func TestRuleSeverityScorer(t *testing.T) {
	cases := []struct {
		kind entity.DefectType
		w, h int
		want float64
	}{
		{entity.DefectScratch, 10, 10, 0.35},
		{entity.DefectChip, 0, 0, 0.5},
		{entity.DefectCrack, 40, 40, 1.0},
		{entity.DefectContamination, 20, 25, 0.45},
		{entity.DefectUnknown, 10, 20, 0.5},
		{entity.DefectContamination, 100, 100, 0.7},
	}

	for _, tc := range cases {
		d := entity.Defect{Type: tc.kind, Box: entity.BoundingBox{Width: tc.w, Height: tc.h}}
		require.InDelta(t, tc.want, RuleSeverityScorer{}.Score(d), 1e-9, "%s %dx%d", tc.kind, tc.w, tc.h)
	}
}

func TestRuleSeverityScorer_Bounded(t *testing.T) {
	for kind := entity.DefectScratch; kind <= entity.DefectUnknown+1; kind++ {
		for side := 0; side <= 200; side += 5 {
			d := entity.Defect{Type: kind, Box: entity.BoundingBox{Width: side, Height: side}}
			s := RuleSeverityScorer{}.Score(d)
			require.GreaterOrEqual(t, s, 0.0)
			require.LessOrEqual(t, s, 1.0)
		}
	}
}
