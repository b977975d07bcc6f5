// Package exporter renders computed summaries as downloadable CSV and
// XLSX documents.
package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/xuri/excelize/v2"

	"sedash/pkg/contracts/domain"
)

// summaryHeaders is the column layout shared by both output formats.
var summaryHeaders = []string{
	"indicator", "indicator_name", "geography", "geography_name",
	"count", "mean", "pct_change", "slope", "earliest", "latest", "error",
}

// Exporter writes summary exports.
type Exporter struct {
	logger *slog.Logger
}

// New creates a new exporter.
func New(logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Exporter{logger: logger.With(slog.String("component", "exporter"))}
}

// SummaryCSV writes one row per batch entry. The output starts with a
// UTF-8 BOM so Excel opens it correctly.
func (e *Exporter) SummaryCSV(w io.Writer, entries []domain.BatchSummaryEntry) error {
	if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return fmt.Errorf("write BOM: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(summaryHeaders); err != nil {
		return fmt.Errorf("write headers: %w", err)
	}

	for i, entry := range entries {
		if err := cw.Write(summaryRecord(entry)); err != nil {
			return fmt.Errorf("write record %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// SummaryXLSX writes the entries as a single-sheet workbook.
func (e *Exporter) SummaryXLSX(w io.Writer, entries []domain.BatchSummaryEntry) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Summaries"
	f.SetSheetName("Sheet1", sheet)

	for col, header := range summaryHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return fmt.Errorf("write header %s: %w", header, err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		f.SetRowStyle(sheet, 1, 1, headerStyle)
	}

	for i, entry := range entries {
		for col, value := range summaryCells(entry) {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return fmt.Errorf("data cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("write row %d: %w", i+2, err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}

	e.logger.Debug("summary workbook written", slog.Int("rows", len(entries)))
	return nil
}

// summaryRecord renders one entry as CSV fields; absent statistics become
// empty fields.
func summaryRecord(entry domain.BatchSummaryEntry) []string {
	cells := summaryCells(entry)
	record := make([]string, len(cells))
	for i, v := range cells {
		switch t := v.(type) {
		case nil:
			record[i] = ""
		case string:
			record[i] = t
		case int:
			record[i] = strconv.Itoa(t)
		case float64:
			record[i] = strconv.FormatFloat(t, 'f', -1, 64)
		default:
			record[i] = fmt.Sprint(t)
		}
	}
	return record
}

// summaryCells lays out one entry in the shared column order.
func summaryCells(entry domain.BatchSummaryEntry) []interface{} {
	cells := []interface{}{
		entry.Key.IndicatorID, nil, entry.Key.GeoCode, nil,
		nil, nil, nil, nil, nil, nil, nil,
	}
	if entry.Error != "" {
		cells[10] = entry.Error
		return cells
	}
	if s := entry.Summary; s != nil {
		cells[1] = s.Indicator.Name
		cells[3] = s.Geography.Name
		cells[4] = s.Count
		cells[5] = deref(s.Mean)
		cells[6] = deref(s.PctChange)
		cells[7] = deref(s.Slope)
		cells[8] = deref(s.Earliest)
		cells[9] = deref(s.Latest)
	}
	return cells
}

func deref(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
