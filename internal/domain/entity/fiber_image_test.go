package entity

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewFiberImage_Empty(t *testing.T) {
	_, err := NewFiberImage(nil)
	require.ErrorIs(t, err, ErrEmptyImage)

	var gray *image.Gray
	_, err = NewFiberImage(gray)
	require.ErrorIs(t, err, ErrEmptyImage)

	_, err = NewFiberImage(image.NewRGBA(image.Rectangle{}))
	require.ErrorIs(t, err, ErrEmptyImage)

	var ycbcr *image.YCbCr
	require.NotPanics(t, func() { _, err = NewFiberImage(ycbcr) })
	require.ErrorIs(t, err, ErrEmptyImage)
}

func TestNewFiberImage_MalformedBuffer(t *testing.T) {
	cases := map[string]image.Image{
		"rgba short pix": &image.RGBA{Rect: image.Rect(0, 0, 10, 10)},
		"gray short pix": &image.Gray{Pix: make([]uint8, 50), Stride: 10, Rect: image.Rect(0, 0, 10, 10)},
		"nrgba stride":   &image.NRGBA{Pix: make([]uint8, 400), Stride: 4, Rect: image.Rect(0, 0, 10, 10)},
	}
	for name, img := range cases {
		var err error
		require.NotPanics(t, func() { _, err = NewFiberImage(img) }, name)
		require.ErrorIs(t, err, ErrMalformedImage, name)
	}
}

func TestNewFiberImage_AcceptsSubImage(t *testing.T) {
	parent := image.NewGray(image.Rect(0, 0, 30, 30))
	sub := parent.SubImage(image.Rect(10, 10, 20, 20))

	f, err := NewFiberImage(sub)
	require.NoError(t, err)
	require.Equal(t, 10, f.Width())
	require.Equal(t, image.Pt(15, 15), f.Midpoint())
}

func TestNewFiberImage_KeepsCanonicalForms(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 4, 2))
	f, err := NewFiberImage(gray)
	require.NoError(t, err)
	require.Same(t, gray, f.Image())
	require.Equal(t, 1, f.Channels())
	require.Equal(t, 4, f.Width())
	require.Equal(t, 2, f.Height())
	require.Equal(t, image.Pt(2, 1), f.Midpoint())

	rgba := image.NewRGBA(image.Rect(0, 0, 3, 3))
	f, err = NewFiberImage(rgba)
	require.NoError(t, err)
	require.Same(t, rgba, f.Image())
	require.Equal(t, 4, f.Channels())
}

func TestNewFiberImage_ConvertsOtherForms(t *testing.T) {
	src := image.NewGray16(image.Rect(0, 0, 2, 2))
	src.SetGray16(1, 1, color.Gray16{Y: 0xffff})

	f, err := NewFiberImage(src)
	require.NoError(t, err)

	rgba, ok := f.Image().(*image.RGBA)
	require.True(t, ok)
	require.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, rgba.RGBAAt(1, 1))
	require.Equal(t, 4, f.Channels())
}

func TestCopyRGBA_IsIndependent(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	dst := CopyRGBA(src)
	dst.SetRGBA(0, 0, color.RGBA{R: 1, A: 255})
	require.Equal(t, color.RGBA{}, src.RGBAAt(0, 0))

	require.True(t, CopyRGBA(nil).Bounds().Empty())
	require.True(t, CopyRGBA((*image.Gray)(nil)).Bounds().Empty())
}
