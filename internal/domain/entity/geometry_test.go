package entity

import (
	"image"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGeometry_RatioWithoutCladding(t *testing.T) {
	g := Geometry{Center: image.Pt(320, 240), CoreCenter: image.Pt(320, 240)}
	require.Zero(t, g.Ratio())
	require.Zero(t, g.Concentricity())
}

func TestGeometry_ConcentricCircles(t *testing.T) {
	g := Geometry{Center: image.Pt(50, 50), CoreCenter: image.Pt(50, 50), CoreRadius: 80, CladdingRadius: 100}
	require.InDelta(t, 0.8, g.Ratio(), 1e-12)
	require.Equal(t, 1.0, g.Concentricity())
}

func TestGeometry_OffsetCore(t *testing.T) {
	g := Geometry{Center: image.Pt(0, 0), CoreCenter: image.Pt(3, 4), CoreRadius: 40, CladdingRadius: 50}
	// смещение 5 из максимально возможных 10
	require.InDelta(t, 0.5, g.Concentricity(), 1e-12)

	g.CoreCenter = image.Pt(30, 40)
	require.Zero(t, g.Concentricity())
}

func TestGeometry_CoreFillsCladding(t *testing.T) {
	g := Geometry{CoreRadius: 50, CladdingRadius: 50}
	require.Equal(t, 1.0, g.Concentricity())
}

func TestClamp01(t *testing.T) {
	require.Equal(t, 0.0, Clamp01(-0.5))
	require.Equal(t, 1.0, Clamp01(1.5))
	require.Equal(t, 0.25, Clamp01(0.25))
	require.Equal(t, 0.0, Clamp01(math.NaN()))
}
