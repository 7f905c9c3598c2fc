package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/MichaelStober/EventViewer/internal/common"
	"github.com/MichaelStober/EventViewer/internal/detect"
	"github.com/MichaelStober/EventViewer/internal/event"
	"github.com/MichaelStober/EventViewer/internal/llm"
	"github.com/MichaelStober/EventViewer/internal/merge"
	"github.com/MichaelStober/EventViewer/internal/scrape"
)

// Analyzer drives one poster through detection, primary extraction,
// enrichment and the final quality pass.
type Analyzer struct {
	logger        *slog.Logger
	detector      *detect.Detector
	extractor     llm.VisionExtractor
	fetcher       *scrape.Fetcher
	merger        *merge.Engine
	scrapeEnabled bool
}

func NewAnalyzer(logger *slog.Logger, detector *detect.Detector, extractor llm.VisionExtractor,
	fetcher *scrape.Fetcher, merger *merge.Engine, scrapeEnabled bool) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{
		logger:        logger,
		detector:      detector,
		extractor:     extractor,
		fetcher:       fetcher,
		merger:        merger,
		scrapeEnabled: scrapeEnabled,
	}
}

// AnalyzePoster runs the full per-poster pipeline and returns the enriched
// record, or an error when primary extraction yields nothing.
func (a *Analyzer) AnalyzePoster(ctx context.Context, path string) (*event.Record, error) {
	rid := uuid.New().String()
	ctx = common.WithRequestID(common.WithPosterPath(ctx, path), rid)
	start := time.Now()

	a.logger.Info("pipeline.analyze.start", "req_id", rid, "path", path)

	// Phase 1: local signals. Never fails; empty results on any problem.
	qrCodes, rawURLs := a.detector.DetectAll(path)
	validURLs := detect.ValidateGermanURLs(rawURLs)
	a.logger.Info("pipeline.detect.done",
		"req_id", rid, "qr_codes", len(qrCodes), "valid_urls", len(validURLs))

	// Phase 2: primary extraction.
	rec, err := a.extractor.AnalyzePoster(ctx, llm.ExtractRequest{
		ImagePath: path,
		QRCodes:   qrCodes,
		URLs:      validURLs,
	})
	if err != nil {
		a.logger.Error("pipeline.extract.failed", "req_id", rid, "path", path, "error", err)
		return nil, err
	}

	// Phase 3: enrichment, on a clone so a failed phase cannot corrupt the
	// extracted record.
	if a.scrapeEnabled && len(validURLs) > 0 {
		if enriched := a.enrich(ctx, rec, validURLs); enriched != nil {
			rec = enriched
		}
	} else {
		a.logger.Info("pipeline.enrich.skipped", "req_id", rid,
			"scrape_enabled", a.scrapeEnabled, "urls", len(validURLs))
	}

	// Phase 4: quality pass, once per record.
	merge.QualityPass(rec, a.logger)

	a.logger.Info("pipeline.analyze.ok",
		"req_id", rid,
		"event", rec.Name,
		"confidence", rec.Metadata.Confidence,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return rec, nil
}

// enrich fetches the candidate URLs and merges their signals into a clone of
// rec. It returns nil when the phase produced nothing usable.
func (a *Analyzer) enrich(ctx context.Context, rec *event.Record, urls []string) (enriched *event.Record) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("pipeline.enrich.panic", "recovered", r)
			enriched = nil
		}
	}()

	signals := a.fetcher.FetchAll(ctx, urls)
	if len(signals) == 0 {
		return nil
	}

	enriched = rec.Clone()
	a.merger.Enrich(enriched, signals)
	return enriched
}
