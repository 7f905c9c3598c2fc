package scrape

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eventPage = `<!DOCTYPE html>
<html lang="de">
<head>
  <title>  Sommerfest 2026 - Stadtpark  </title>
  <meta name="description" content="Das grosse Sommerfest im Stadtpark">
  <meta property="og:title" content="Sommerfest 2026">
  <meta name="empty" content="">
  <script type="application/ld+json">{not json}</script>
  <script type="application/ld+json">
    {"@type": "Event", "name": "Sommerfest 2026", "startDate": "2026-07-18T16:00"}
  </script>
  <script type="application/ld+json">
    {"@type": "Event", "name": "second object, ignored"}
  </script>
  <style>body { color: red; }</style>
</head>
<body>
  <script>console.log("tracking");</script>
  <div itemtype="https://schema.org/Event">
    <span itemprop="name">Sommerfest 2026</span>
    <meta itemprop="startDate" content="2026-07-18T16:00">
    <span itemprop=""></span>
  </div>
  <p>Eintritt   12,50€
     Tickets unter www.sommerfest.de</p>
</body>
</html>`

func TestExtractSignals(t *testing.T) {
	signal, err := ExtractSignals("https://sommerfest.de", strings.NewReader(eventPage))
	require.NoError(t, err)

	assert.Equal(t, "https://sommerfest.de", signal.URL)
	assert.Equal(t, "Sommerfest 2026 - Stadtpark", signal.Title)

	// script and style content never reaches the text
	assert.NotContains(t, signal.Text, "tracking")
	assert.NotContains(t, signal.Text, "color: red")
	assert.Contains(t, signal.Text, "Eintritt 12,50€ Tickets unter www.sommerfest.de")

	assert.Equal(t, "Das grosse Sommerfest im Stadtpark", signal.Meta["description"])
	assert.Equal(t, "Sommerfest 2026", signal.Meta["og:title"])
	assert.NotContains(t, signal.Meta, "empty")
}

func TestExtractSignals_StructuredData(t *testing.T) {
	signal, err := ExtractSignals("https://sommerfest.de", strings.NewReader(eventPage))
	require.NoError(t, err)

	// the first parseable JSON-LD block wins, malformed ones are skipped
	require.NotNil(t, signal.Structured.JSONLD)
	assert.Equal(t, "Sommerfest 2026", signal.Structured.JSONLD["name"])
	assert.Equal(t, "2026-07-18T16:00", signal.Structured.JSONLD["startDate"])

	require.Len(t, signal.Structured.Microdata, 1)
	item := signal.Structured.Microdata[0]
	assert.Equal(t, "https://schema.org/Event", item["type"])
	assert.Equal(t, "Sommerfest 2026", item["name"])
	assert.Equal(t, "2026-07-18T16:00", item["startDate"])
}

func TestExtractSignals_MinimalPage(t *testing.T) {
	signal, err := ExtractSignals("https://example.de", strings.NewReader("<html><body>Hallo</body></html>"))
	require.NoError(t, err)

	assert.Empty(t, signal.Title)
	assert.Equal(t, "Hallo", signal.Text)
	assert.Nil(t, signal.Structured.JSONLD)
	assert.Empty(t, signal.Structured.Microdata)
}

func TestNormalizeText(t *testing.T) {
	raw := "  Zeile eins  \n\n   Spalte a    Spalte b\n\tZeile zwei  "
	assert.Equal(t, "Zeile eins Spalte a Spalte b Zeile zwei", normalizeText(raw))
	assert.Equal(t, "", normalizeText("  \n \n  "))
}
