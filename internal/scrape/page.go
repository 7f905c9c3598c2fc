package scrape

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PageSignal is the loosely structured evidence pulled from one fetched page.
// It is consumed once by the merge engine and then discarded.
type PageSignal struct {
	URL        string
	Title      string
	Text       string
	Structured StructuredData
	Meta       map[string]string
}

// StructuredData holds embedded markup: the first JSON-LD object found and
// any microdata items resolved to property maps.
type StructuredData struct {
	JSONLD    map[string]any
	Microdata []map[string]string
}

// ExtractSignals parses an HTML body into a PageSignal.
func ExtractSignals(pageURL string, body io.Reader) (*PageSignal, error) {
	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, err
	}

	signal := &PageSignal{
		URL:   pageURL,
		Title: strings.TrimSpace(doc.Find("title").First().Text()),
		Meta:  extractMeta(doc),
	}
	signal.Structured = extractStructuredData(doc)

	// Text extraction mutates the document, so it runs last.
	doc.Find("script, style").Remove()
	signal.Text = normalizeText(doc.Text())

	return signal, nil
}

// normalizeText collapses page text to single-spaced, non-empty fragments.
func normalizeText(raw string) string {
	var parts []string
	for _, line := range strings.Split(raw, "\n") {
		for _, chunk := range strings.Split(strings.TrimSpace(line), "  ") {
			chunk = strings.TrimSpace(chunk)
			if chunk != "" {
				parts = append(parts, chunk)
			}
		}
	}
	return strings.Join(parts, " ")
}

func extractStructuredData(doc *goquery.Document) StructuredData {
	var structured StructuredData

	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		var data map[string]any
		if err := json.Unmarshal([]byte(s.Text()), &data); err != nil {
			return true // keep looking
		}
		structured.JSONLD = data
		return false
	})

	doc.Find("[itemtype]").Each(func(_ int, item *goquery.Selection) {
		entry := map[string]string{
			"type": item.AttrOr("itemtype", ""),
		}
		item.Find("[itemprop]").Each(func(_ int, prop *goquery.Selection) {
			name := prop.AttrOr("itemprop", "")
			if name == "" {
				return
			}
			value := prop.AttrOr("content", "")
			if value == "" {
				value = strings.TrimSpace(prop.Text())
			}
			entry[name] = value
		})
		structured.Microdata = append(structured.Microdata, entry)
	})

	return structured
}

func extractMeta(doc *goquery.Document) map[string]string {
	meta := map[string]string{}
	doc.Find("meta").Each(func(_ int, s *goquery.Selection) {
		name := s.AttrOr("name", "")
		if name == "" {
			name = s.AttrOr("property", "")
		}
		content := s.AttrOr("content", "")
		if name != "" && content != "" {
			meta[name] = content
		}
	})
	return meta
}
