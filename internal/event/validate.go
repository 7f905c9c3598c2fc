package event

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/MichaelStober/EventViewer/internal/common"
)

var rePostalCode = regexp.MustCompile(`^\d{5}$`)

// Validate checks the record invariants. It is called once at construction
// time; a non-nil error means the record must be discarded.
func (r *Record) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return common.NewAppError("EVENT_INVALID", "veranstaltungsname must not be empty", common.ErrValidation)
	}
	if r.Location.PostalCode != nil && !rePostalCode.MatchString(*r.Location.PostalCode) {
		return common.NewAppError("EVENT_INVALID",
			fmt.Sprintf("postleitzahl %q must be exactly 5 digits", *r.Location.PostalCode),
			common.ErrValidation)
	}
	if r.Schedule.Start != nil && r.Schedule.End != nil &&
		r.Schedule.End.Before(r.Schedule.Start.Time) {
		return common.NewAppError("EVENT_INVALID", "ende must not precede beginn", common.ErrValidation)
	}
	for name, price := range map[string]*float64{
		"preis":      r.Pricing.Price,
		"vorverkauf": r.Pricing.Advance,
		"abendkasse": r.Pricing.BoxOffice,
	} {
		if price != nil && *price < 0 {
			return common.NewAppError("EVENT_INVALID",
				fmt.Sprintf("%s must not be negative", name), common.ErrValidation)
		}
	}
	if r.Metadata.Confidence < 0 || r.Metadata.Confidence > 1 {
		return common.NewAppError("EVENT_INVALID", "vertrauenswuerdigkeit must be within [0,1]", common.ErrValidation)
	}
	return nil
}
