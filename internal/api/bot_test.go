package telegram

import (
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/require"

	"fiber-inspector/internal/domain/entity"
)

func TestParseParams(t *testing.T) {
	ideal, maxDefects, err := parseParams(" 0.75  4 ")
	require.NoError(t, err)
	require.Equal(t, 0.75, ideal)
	require.Equal(t, 4.0, maxDefects)

	ideal, _, err = parseParams("0,6 2")
	require.NoError(t, err)
	require.Equal(t, 0.6, ideal)

	_, _, err = parseParams("0.8")
	require.Error(t, err)
	_, _, err = parseParams("x 5")
	require.Error(t, err)
	_, _, err = parseParams("0.8 y")
	require.Error(t, err)
}

func TestImageFileID(t *testing.T) {
	msg := &tgbotapi.Message{Photo: []tgbotapi.PhotoSize{{FileID: "small"}, {FileID: "large"}}}
	id, ok := imageFileID(msg)
	require.True(t, ok)
	require.Equal(t, "large", id)

	msg = &tgbotapi.Message{Document: &tgbotapi.Document{FileID: "doc", MimeType: "image/tiff"}}
	id, ok = imageFileID(msg)
	require.True(t, ok)
	require.Equal(t, "doc", id)

	msg = &tgbotapi.Message{Document: &tgbotapi.Document{FileID: "pdf", MimeType: "application/pdf"}}
	_, ok = imageFileID(msg)
	require.False(t, ok)

	_, ok = imageFileID(&tgbotapi.Message{Text: "hi"})
	require.False(t, ok)
}

func TestCaption(t *testing.T) {
	pass := caption(&entity.AnalysisResult{Acceptable: true, OverallQuality: 0.93, CoreCladRatio: 0.8})
	require.Contains(t, pass, "✅ Годен")
	require.Contains(t, pass, "Качество: 0.93")
	require.Contains(t, pass, "дефектов: 0")

	fail := caption(&entity.AnalysisResult{Defects: []entity.Defect{{}, {}}})
	require.Contains(t, fail, "❌ Брак")
	require.Contains(t, fail, "дефектов: 2")
}

func TestFormatParams(t *testing.T) {
	out := formatParams(entity.DefaultParams())
	require.Contains(t, out, "0.800")
	require.Contains(t, out, "5.00")
	require.Contains(t, out, "(20, 500]")
}
