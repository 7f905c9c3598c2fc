package merge

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/MichaelStober/EventViewer/internal/event"
	"github.com/MichaelStober/EventViewer/internal/scrape"
)

var (
	rePrice   = regexp.MustCompile(`(\d+(?:,\d+)?)\s*(?:€|euro?)|euro?\s*(\d+(?:,\d+)?)`)
	reAddress = regexp.MustCompile(`([A-ZÄÖÜ][a-zäöüß\-]+(?:\s+[A-ZÄÖÜ][a-zäöüß\-]+)*)\s+(\d+[a-z]?),?\s*(\d{5})\s+([A-ZÄÖÜ][a-zäöüß\-]+)`)
	reEmail   = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	rePhone   = regexp.MustCompile(`(?:\+49|0)[\s\-]?\d{2,5}[\s\-]?\d{3,8}`)
)

var ticketKeywords = []string{"tickets", "karten", "vorverkauf", "reservierung", "buchung"}

// Rule fills exactly one currently-empty field group from a page signal.
// Rules never overwrite values the primary extractor produced.
type Rule struct {
	Name  string
	Apply func(rec *event.Record, sig *scrape.PageSignal) bool
}

// defaultRules is the fixed evaluation order per signal. New fields get a new
// entry here instead of edits to existing rules.
func defaultRules() []Rule {
	return []Rule{
		{Name: "price", Apply: applyPrice},
		{Name: "address", Apply: applyAddress},
		{Name: "email", Apply: applyEmail},
		{Name: "phone", Apply: applyPhone},
		{Name: "website", Apply: applyWebsite},
		{Name: "ticket_links", Apply: applyTicketLinks},
		{Name: "source", Apply: applySource},
	}
}

func applyPrice(rec *event.Record, sig *scrape.PageSignal) bool {
	if rec.Pricing.Price != nil || rec.Pricing.Free {
		return false
	}
	match := rePrice.FindStringSubmatch(strings.ToLower(sig.Text))
	if match == nil {
		return false
	}
	raw := match[1]
	if raw == "" {
		raw = match[2]
	}
	price, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
	if err != nil || price < 0 {
		return false
	}
	rec.Pricing.Price = &price
	rec.Pricing.Free = false
	return true
}

// applyAddress populates street, postal code and city together or not at all.
func applyAddress(rec *event.Record, sig *scrape.PageSignal) bool {
	if rec.Location.Address != nil {
		return false
	}
	match := reAddress.FindStringSubmatch(sig.Text)
	if match == nil {
		return false
	}
	address := match[1] + " " + match[2]
	postalCode := match[3]
	city := match[4]
	rec.Location.Address = &address
	rec.Location.PostalCode = &postalCode
	rec.Location.City = &city
	return true
}

func applyEmail(rec *event.Record, sig *scrape.PageSignal) bool {
	if rec.Metadata.Contact.Email != nil {
		return false
	}
	match := reEmail.FindString(sig.Text)
	if match == "" {
		return false
	}
	rec.Metadata.Contact.Email = &match
	return true
}

func applyPhone(rec *event.Record, sig *scrape.PageSignal) bool {
	if rec.Metadata.Contact.Phone != nil {
		return false
	}
	match := rePhone.FindString(sig.Text)
	if match == "" {
		return false
	}
	rec.Metadata.Contact.Phone = &match
	return true
}

func applyWebsite(rec *event.Record, sig *scrape.PageSignal) bool {
	if rec.Metadata.Contact.Website != nil {
		return false
	}
	website := sig.URL
	rec.Metadata.Contact.Website = &website
	return true
}

func applyTicketLinks(rec *event.Record, sig *scrape.PageSignal) bool {
	text := strings.ToLower(sig.Text)
	relevant := false
	for _, keyword := range ticketKeywords {
		if strings.Contains(text, keyword) {
			relevant = true
			break
		}
	}
	if !relevant {
		return false
	}
	for _, link := range rec.Metadata.TicketInfo.OnlineLinks {
		if link == sig.URL {
			return false
		}
	}
	rec.Metadata.TicketInfo.OnlineLinks = append(rec.Metadata.TicketInfo.OnlineLinks, sig.URL)
	return true
}

func applySource(rec *event.Record, sig *scrape.PageSignal) bool {
	before := len(rec.Metadata.Sources)
	rec.AddSource(sig.URL)
	return len(rec.Metadata.Sources) > before
}
