package merge

import (
	"log/slog"

	"github.com/MichaelStober/EventViewer/constants"
	"github.com/MichaelStober/EventViewer/internal/event"
)

// All confidence arithmetic lives in this file so the enrichment bonus and
// the quality pass cannot drift apart.

const (
	maxSourceBonus     = 0.2
	perSignalBonus     = 0.05
	qualityFactorCount = 7
)

// SourceBonus is the confidence increment for n corroborating page signals,
// added exactly once per enrichment call.
func SourceBonus(n int) float64 {
	bonus := perSignalBonus * float64(n)
	if bonus > maxSourceBonus {
		return maxSourceBonus
	}
	return bonus
}

// QualityScore counts which of the seven completeness factors hold and
// returns k/7 plus the factor names, for logging.
func QualityScore(rec *event.Record) (float64, []string) {
	var factors []string

	// Name is required at construction, so this factor always holds.
	if rec.Name != "" {
		factors = append(factors, "event_name")
	}
	if rec.Location.Venue != nil || rec.Location.Address != nil {
		factors = append(factors, "location")
	}
	if rec.Schedule.Start != nil {
		factors = append(factors, "datetime")
	}
	if rec.Pricing.Free || rec.Pricing.Price != nil {
		factors = append(factors, "pricing")
	}
	if rec.Metadata.Contact.Phone != nil || rec.Metadata.Contact.Email != nil ||
		rec.Metadata.Contact.Website != nil {
		factors = append(factors, "contact")
	}
	if len(rec.DetectedQRCodes) > 0 || len(rec.DetectedURLs) > 0 {
		factors = append(factors, "sources")
	}
	if rec.Category != "" && rec.Category != constants.Andere {
		factors = append(factors, "category")
	}

	return float64(len(factors)) / qualityFactorCount, factors
}

// QualityPass runs once per record after enrichment (or right after primary
// extraction when enrichment was skipped). When the completeness score
// exceeds the current confidence, confidence moves to the average of the two;
// otherwise it stays put.
func QualityPass(rec *event.Record, logger *slog.Logger) float64 {
	if logger == nil {
		logger = slog.Default()
	}

	score, factors := QualityScore(rec)
	logger.Info("merge.quality.assessed",
		"event", rec.Name,
		"score", score,
		"factors", factors,
	)

	if score > rec.Metadata.Confidence {
		rec.SetConfidence((rec.Metadata.Confidence + score) / 2)
	}
	return score
}
