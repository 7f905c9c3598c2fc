package merge

import (
	"log/slog"

	"github.com/MichaelStober/EventViewer/internal/event"
	"github.com/MichaelStober/EventViewer/internal/scrape"
)

// Engine folds scraped page signals into the canonical record. Rules only
// ever fill empty fields, so the engine is idempotent per field and earlier
// signals win ties.
type Engine struct {
	logger *slog.Logger
	rules  []Rule
}

func NewEngine(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{logger: logger, rules: defaultRules()}
}

// Enrich applies the rule list to each signal in input order, then adds the
// per-call source bonus to the confidence score.
func (e *Engine) Enrich(rec *event.Record, signals []*scrape.PageSignal) {
	for _, sig := range signals {
		for _, rule := range e.rules {
			if rule.Apply(rec, sig) {
				e.logger.Debug("merge.rule.applied", "rule", rule.Name, "url", sig.URL)
			}
		}
	}

	if len(signals) > 0 {
		rec.SetConfidence(rec.Metadata.Confidence + SourceBonus(len(signals)))
		e.logger.Info("merge.enrich.done",
			"event", rec.Name,
			"signals", len(signals),
			"confidence", rec.Metadata.Confidence,
		)
	}
}
