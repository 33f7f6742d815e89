package storage

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"fiber-inspector/internal/domain/entity"
)

func TestWriteCSV(t *testing.T) {
	ts := time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC)
	failed := record("id-2", ts)
	failed.Result = &entity.AnalysisResult{Summary: "Analysis error: boom"}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, []*entity.InspectionRecord{record("id-1", ts), failed}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	require.Equal(t, "Result ID,Date,Quality Score,Core-Clad Ratio,Concentricity,Defect Count,Is Acceptable", lines[0])
	require.Equal(t, "id-1,2026-02-03 04:05:06,0.8750,0.8123,0.9700,2,Yes", lines[1])
	require.Equal(t, "id-2,2026-02-03 04:05:06,0.0000,0.0000,0.0000,0,No", lines[2])
}

func TestWriteReport(t *testing.T) {
	now := time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC)
	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, record("id-1", now), now))

	out := buf.String()
	require.True(t, strings.HasPrefix(out, "FIBER INSPECTION REPORT\n"))
	require.Contains(t, out, "Date: 2026-02-03 04:05:06")
	require.Contains(t, out, "- Quality Score: 0.88")
	require.Contains(t, out, "- Core-Clad Ratio: 0.812")
	require.Contains(t, out, "1. Surface scratch (Severity: 0.41)")
	require.Contains(t, out, "2. Unknown defect (Severity: 0.50)")
	require.Contains(t, out, "PASS: Fiber meets quality standards.")

	require.Error(t, WriteReport(&buf, &entity.InspectionRecord{ID: "x"}, now))
}

func TestWriteHTMLReport(t *testing.T) {
	now := time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC)
	var buf bytes.Buffer
	require.NoError(t, WriteHTMLReport(&buf, record("id-1", now), now))

	out := buf.String()
	require.Contains(t, out, "<h1>FIBER INSPECTION REPORT</h1>")
	require.Contains(t, out, "<h2>DEFECT DETAILS</h2>")
	require.Contains(t, out, "<li>Surface scratch (Severity: 0.41)</li>")
	require.Contains(t, out, "<pre><code>PASS: Fiber meets quality standards.")
}
