package event

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/MichaelStober/EventViewer/constants"
)

// Timestamp wraps time.Time so JSON timestamps from the model can be parsed
// with or without a timezone suffix (the model replies in bare ISO-8601).
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		return nil
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unrecognized timestamp %q", s)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.Format("2006-01-02T15:04:05") + `"`), nil
}

// Location describes where the event takes place. All fields are optional
// and independently settable.
type Location struct {
	Venue      *string `json:"veranstaltungsort"`
	Address    *string `json:"adresse"`
	City       *string `json:"stadt"`
	PostalCode *string `json:"postleitzahl"`
	State      *string `json:"bundesland"`
}

// Schedule holds event timing. End must not precede Start when both are set.
type Schedule struct {
	Start *Timestamp `json:"beginn"`
	End   *Timestamp `json:"ende"`
	Doors *Timestamp `json:"einlass"`
}

// Pricing holds ticket pricing. Prices are non-negative when present.
type Pricing struct {
	Free      bool     `json:"kostenlos"`
	Price     *float64 `json:"preis"`
	Currency  string   `json:"waehrung"`
	Advance   *float64 `json:"vorverkauf"`
	BoxOffice *float64 `json:"abendkasse"`
}

// Performer is one artist entry from the poster.
type Performer struct {
	Name string  `json:"name"`
	Info *string `json:"info"`
}

// TicketInfo describes where tickets can be bought.
type TicketInfo struct {
	Outlets     []string `json:"verkaufsstellen"`
	OnlineLinks []string `json:"online_links"`
	Phone       *string  `json:"telefon"`
}

// Contact is the organizer contact block.
type Contact struct {
	Organizer *string `json:"veranstalter"`
	Phone     *string `json:"telefon"`
	Email     *string `json:"email"`
	Website   *string `json:"website"`
}

// Metadata carries performers, ticketing, contacts, contributing sources and
// the derived confidence score.
type Metadata struct {
	Performers []Performer `json:"kuenstler"`
	TicketInfo TicketInfo  `json:"ticketinfo"`
	Contact    Contact     `json:"kontakt"`
	Sources    []string    `json:"quellen"`
	Confidence float64     `json:"vertrauenswuerdigkeit"`
}

// Record is the canonical event record. It is constructed once by the primary
// extractor and only ever mutated additively by the merge engine.
type Record struct {
	Name            string             `json:"veranstaltungsname"`
	Location        Location           `json:"ort"`
	Schedule        Schedule           `json:"termine"`
	Pricing         Pricing            `json:"preise"`
	Description     *string            `json:"beschreibung"`
	Category        constants.Category `json:"kategorie"`
	Metadata        Metadata           `json:"metadaten"`
	DetectedURLs    []string           `json:"erkannte_links"`
	DetectedQRCodes []string           `json:"erkannte_qr_codes"`
	Language        string             `json:"sprache"`
}

// New returns a record with defaults applied. Name validation happens in
// Validate so parse-time failures surface as one typed error.
func New(name string) *Record {
	return &Record{
		Name:     name,
		Category: constants.Andere,
		Pricing:  Pricing{Currency: "EUR"},
		Language: "de",
	}
}

// ApplyDefaults fills the fixed defaults on a record decoded from JSON.
func (r *Record) ApplyDefaults() {
	if r.Pricing.Currency == "" {
		r.Pricing.Currency = "EUR"
	}
	if r.Language == "" {
		r.Language = "de"
	}
	if r.Category == "" {
		r.Category = constants.Andere
	}
}

// Clone returns a deep copy via JSON round-trip. Enrichment runs on a clone
// so a failed phase leaves the original record untouched.
func (r *Record) Clone() *Record {
	b, err := json.Marshal(r)
	if err != nil {
		shallow := *r
		return &shallow
	}
	var out Record
	if err := json.Unmarshal(b, &out); err != nil {
		shallow := *r
		return &shallow
	}
	return &out
}

// AddSource appends a source identifier unless it is already recorded.
func (r *Record) AddSource(source string) {
	for _, s := range r.Metadata.Sources {
		if s == source {
			return
		}
	}
	r.Metadata.Sources = append(r.Metadata.Sources, source)
}

// SetConfidence writes the confidence score clamped to [0,1].
func (r *Record) SetConfidence(score float64) {
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	r.Metadata.Confidence = score
}
