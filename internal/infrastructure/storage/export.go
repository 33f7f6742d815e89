package storage

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/yuin/goldmark"

	"fiber-inspector/internal/domain/entity"
)

const exportDateLayout = "2006-01-02 15:04:05"

var csvHeader = []string{
	"Result ID", "Date", "Quality Score", "Core-Clad Ratio", "Concentricity", "Defect Count", "Is Acceptable",
}

// WriteCSV выгружает записи проверок в CSV, по строке на запись.
func WriteCSV(w io.Writer, records []*entity.InspectionRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, rec := range records {
		r := rec.Result
		if r == nil {
			r = &entity.AnalysisResult{}
		}
		acceptable := "No"
		if r.Acceptable {
			acceptable = "Yes"
		}
		row := []string{
			rec.ID,
			rec.Timestamp.Format(exportDateLayout),
			formatFloat(r.OverallQuality),
			formatFloat(r.CoreCladRatio),
			formatFloat(r.Concentricity),
			strconv.Itoa(len(r.Defects)),
			acceptable,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row %s: %w", rec.ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteReport пишет текстовый отчёт по одной проверке.
// Разметка отчёта совместима с Markdown, см. WriteHTMLReport.
func WriteReport(w io.Writer, rec *entity.InspectionRecord, now time.Time) error {
	r := rec.Result
	if r == nil {
		return fmt.Errorf("%w: record %s has no result", ErrInvalidRecord, rec.ID)
	}

	var b strings.Builder
	b.WriteString("FIBER INSPECTION REPORT\n")
	b.WriteString("=======================\n\n")
	fmt.Fprintf(&b, "Date: %s\n\n", now.Format(exportDateLayout))
	if rec.ID != "" {
		fmt.Fprintf(&b, "Record: %s\n\n", rec.ID)
	}
	if rec.ImagePath != "" {
		fmt.Fprintf(&b, "Image: %s\n\n", rec.ImagePath)
	}

	b.WriteString("ANALYSIS RESULTS\n")
	b.WriteString("----------------\n\n")
	fmt.Fprintf(&b, "- Quality Score: %.2f\n", r.OverallQuality)
	fmt.Fprintf(&b, "- Core-Clad Ratio: %.3f\n", r.CoreCladRatio)
	fmt.Fprintf(&b, "- Concentricity: %.3f\n", r.Concentricity)
	fmt.Fprintf(&b, "- Defects found: %d\n\n", len(r.Defects))

	b.WriteString("DEFECT DETAILS\n")
	b.WriteString("--------------\n\n")
	for i, d := range r.Defects {
		fmt.Fprintf(&b, "%d. %s (Severity: %.2f)\n", i+1, d.Description, d.Severity)
	}
	if len(r.Defects) > 0 {
		b.WriteString("\n")
	}

	b.WriteString("SUMMARY\n")
	b.WriteString("-------\n\n")
	b.WriteString("```\n")
	b.WriteString(strings.TrimRight(r.Summary, "\n"))
	b.WriteString("\n```\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteHTMLReport рендерит текстовый отчёт в HTML.
func WriteHTMLReport(w io.Writer, rec *entity.InspectionRecord, now time.Time) error {
	var src bytes.Buffer
	if err := WriteReport(&src, rec, now); err != nil {
		return err
	}
	if err := goldmark.Convert(src.Bytes(), w); err != nil {
		return fmt.Errorf("render html report: %w", err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
