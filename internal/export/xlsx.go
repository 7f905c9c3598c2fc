package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/MichaelStober/EventViewer/internal/event"
)

// WriteXLSX writes one workbook with a row per record, using the same
// flattened column set as the CSV export.
func (s *Service) WriteXLSX(records []*event.Record, path string) error {
	start := time.Now()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	f := excelize.NewFile()
	const sheet = "Events"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)
	// excelize always starts with a default sheet.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return err
	}

	if len(records) > 0 {
		for i, field := range Flatten(records[0]) {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			if err := f.SetCellValue(sheet, cell, field.Name); err != nil {
				return fmt.Errorf("write header: %w", err)
			}
		}
	}
	for row, rec := range records {
		for col, field := range Flatten(rec) {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, field.Value); err != nil {
				return fmt.Errorf("write row %d: %w", row+1, err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"path", path,
		"events", len(records),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return nil
}
