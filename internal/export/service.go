package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/MichaelStober/EventViewer/internal/event"
)

// Service writes analysis results as JSON, CSV and XLSX files.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// WriteJSON writes the full record, nulls preserved, indented.
func (s *Service) WriteJSON(rec *event.Record, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	b, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	s.logger.Info("export.json.ok", "path", path, "event", rec.Name)
	return nil
}

// WriteCSV writes one flattened row; nested lists are joined with "; ".
func (s *Service) WriteCSV(rec *event.Record, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			s.logger.Warn("export.csv.close_error", "path", path, "error", err)
		}
	}()

	fields := Flatten(rec)
	header := make([]string, len(fields))
	row := make([]string, len(fields))
	for i, f := range fields {
		header[i] = f.Name
		row[i] = f.Value
	}

	w := csv.NewWriter(file)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	if err := w.Write(row); err != nil {
		return fmt.Errorf("write csv row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	s.logger.Info("export.csv.ok", "path", path, "event", rec.Name)
	return nil
}

// BatchSummary aggregates a batch run for the summary JSON.
type BatchSummary struct {
	TotalAnalyzed         int             `json:"total_analyzed"`
	SuccessfulExtractions int             `json:"successful_extractions"`
	SuccessRate           float64         `json:"success_rate"`
	Categories            map[string]int  `json:"categories"`
	AverageConfidence     float64         `json:"average_confidence"`
	Events                []*event.Record `json:"events"`
}

// Summarize builds the batch summary over the successful records.
func Summarize(records []*event.Record, attempted int) BatchSummary {
	summary := BatchSummary{
		TotalAnalyzed:         attempted,
		SuccessfulExtractions: len(records),
		Categories:            map[string]int{},
		Events:                records,
	}
	if attempted > 0 {
		summary.SuccessRate = float64(len(records)) / float64(attempted)
	}
	var confidenceSum float64
	for _, rec := range records {
		summary.Categories[string(rec.Category)]++
		confidenceSum += rec.Metadata.Confidence
	}
	if len(records) > 0 {
		summary.AverageConfidence = confidenceSum / float64(len(records))
	}
	return summary
}

// WriteBatchSummary writes the aggregate JSON for a batch run.
func (s *Service) WriteBatchSummary(records []*event.Record, attempted int, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	b, err := json.MarshalIndent(Summarize(records, attempted), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	s.logger.Info("export.summary.ok", "path", path, "events", len(records))
	return nil
}

// Field is one flattened column of a record.
type Field struct {
	Name  string
	Value string
}

// Flatten produces the fixed CSV/XLSX column set for one record.
func Flatten(rec *event.Record) []Field {
	performers := make([]string, 0, len(rec.Metadata.Performers))
	for _, p := range rec.Metadata.Performers {
		performers = append(performers, p.Name)
	}
	return []Field{
		{"veranstaltungsname", rec.Name},
		{"kategorie", string(rec.Category)},
		{"beschreibung", strOrEmpty(rec.Description)},
		{"veranstaltungsort", strOrEmpty(rec.Location.Venue)},
		{"adresse", strOrEmpty(rec.Location.Address)},
		{"stadt", strOrEmpty(rec.Location.City)},
		{"postleitzahl", strOrEmpty(rec.Location.PostalCode)},
		{"bundesland", strOrEmpty(rec.Location.State)},
		{"beginn", timeOrEmpty(rec.Schedule.Start)},
		{"ende", timeOrEmpty(rec.Schedule.End)},
		{"kostenlos", strconv.FormatBool(rec.Pricing.Free)},
		{"preis", floatOrEmpty(rec.Pricing.Price)},
		{"vorverkauf", floatOrEmpty(rec.Pricing.Advance)},
		{"abendkasse", floatOrEmpty(rec.Pricing.BoxOffice)},
		{"veranstalter", strOrEmpty(rec.Metadata.Contact.Organizer)},
		{"telefon", strOrEmpty(rec.Metadata.Contact.Phone)},
		{"email", strOrEmpty(rec.Metadata.Contact.Email)},
		{"website", strOrEmpty(rec.Metadata.Contact.Website)},
		{"vertrauenswuerdigkeit", strconv.FormatFloat(rec.Metadata.Confidence, 'f', 2, 64)},
		{"erkannte_links", strings.Join(rec.DetectedURLs, "; ")},
		{"erkannte_qr_codes", strings.Join(rec.DetectedQRCodes, "; ")},
		{"kuenstler", strings.Join(performers, "; ")},
	}
}

func strOrEmpty(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func floatOrEmpty(p *float64) string {
	if p == nil {
		return ""
	}
	return strconv.FormatFloat(*p, 'f', 2, 64)
}

func timeOrEmpty(t *event.Timestamp) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
