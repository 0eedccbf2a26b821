// Package export writes the peak log to spreadsheet files.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/starford/peaklog/internal/models"
)

// SheetName is the worksheet that holds the log in XLSX exports.
const SheetName = "Climbs"

// Header is the column row written first in every export.
var Header = []string{
	"peak_name", "range", "rank", "elevation", "towns",
	"latitude", "longitude", "date_climbed", "notes",
}

// Format is an export file format.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

// FormatFor picks the format from path's extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return FormatXLSX, nil
	case ".csv":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("export: unsupported file extension %q (want .xlsx or .csv)", filepath.Ext(path))
	}
}

// WriteFile writes entries to path in the format implied by its extension.
func WriteFile(path string, entries []models.LogEntry) error {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}
	if format == FormatXLSX {
		return WriteXLSX(path, entries)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: create %s: %w", path, err)
	}
	if err := WriteCSV(f, entries); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteCSV writes a header row and one row per entry.
func WriteCSV(w io.Writer, entries []models.LogEntry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("export: write csv: %w", err)
	}
	for _, e := range entries {
		if err := cw.Write(record(e)); err != nil {
			return fmt.Errorf("export: write csv: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("export: write csv: %w", err)
	}
	return nil
}

// WriteXLSX writes entries to a new workbook at path.
func WriteXLSX(path string, entries []models.LogEntry) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("export: rename sheet: %w", err)
	}
	sw, err := f.NewStreamWriter(SheetName)
	if err != nil {
		return fmt.Errorf("export: stream writer: %w", err)
	}

	header := make([]any, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("export: write header: %w", err)
	}
	for i, e := range entries {
		row := []any{
			e.PeakName, e.Range, e.Rank, e.ElevationFeet, e.Towns,
			e.Latitude, e.Longitude, e.DateClimbed.String(), e.Notes,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := sw.SetRow(cell, row); err != nil {
			return fmt.Errorf("export: write row %d: %w", i+2, err)
		}
	}
	if err := sw.Flush(); err != nil {
		return fmt.Errorf("export: flush: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("export: save %s: %w", path, err)
	}
	return nil
}

func record(e models.LogEntry) []string {
	return []string{
		e.PeakName,
		e.Range,
		e.Rank,
		strconv.Itoa(e.ElevationFeet),
		e.Towns,
		strconv.FormatFloat(e.Latitude, 'f', -1, 64),
		strconv.FormatFloat(e.Longitude, 'f', -1, 64),
		e.DateClimbed.String(),
		e.Notes,
	}
}
