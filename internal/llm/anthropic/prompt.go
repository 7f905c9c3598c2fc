package anthropic

import "strings"

// buildAnalysisPrompt embeds the strict JSON schema description plus any
// locally detected signals as hints. German instructions for German posters.
func buildAnalysisPrompt(qrCodes, urls []string) string {
	var hints strings.Builder
	if len(qrCodes) > 0 {
		hints.WriteString("\n\nErkannte QR-Codes: " + strings.Join(qrCodes, ", "))
	}
	if len(urls) > 0 {
		hints.WriteString("\n\nErkannte URLs: " + strings.Join(urls, ", "))
	}

	return `Analysiere dieses deutsche Veranstaltungsplakat und extrahiere alle Event-Informationen.
Gib die Daten im folgenden exakten JSON-Format zurueck:

{
    "veranstaltungsname": "Name der Veranstaltung (PFLICHT)",
    "ort": {
        "veranstaltungsort": "Name der Location",
        "adresse": "Strasse und Hausnummer",
        "stadt": "Stadt",
        "postleitzahl": "5-stellige PLZ",
        "bundesland": "Deutsches Bundesland"
    },
    "termine": {
        "beginn": "YYYY-MM-DDTHH:MM:SS (ISO format)",
        "ende": "YYYY-MM-DDTHH:MM:SS (optional)",
        "einlass": "YYYY-MM-DDTHH:MM:SS (optional)"
    },
    "preise": {
        "kostenlos": false,
        "preis": 25.50,
        "waehrung": "EUR",
        "vorverkauf": 20.00,
        "abendkasse": 25.50
    },
    "beschreibung": "Event-Beschreibung vom Plakat",
    "kategorie": "musik|comedy|essen|party|theater|sport|workshop|festival|kultur|andere",
    "metadaten": {
        "kuenstler": [
            {"name": "Kuenstlername", "info": "Zusatzinfo ueber Kuenstler"}
        ],
        "ticketinfo": {
            "verkaufsstellen": ["Verkaufsstelle 1", "Verkaufsstelle 2"],
            "online_links": ["https://tickets.example.com"],
            "telefon": "Telefonnummer fuer Tickets"
        },
        "kontakt": {
            "veranstalter": "Name des Veranstalters",
            "telefon": "Kontakt-Telefon",
            "email": "kontakt@example.de",
            "website": "https://example.de"
        },
        "quellen": ["Quellenangaben"],
        "vertrauenswuerdigkeit": 0.85
    }
}` + hints.String() + `

WICHTIGE REGELN:
1. Gib NUR gueltiges JSON zurueck, keine zusaetzlichen Texte
2. Verwende null fuer fehlende Werte, nicht leere Strings
3. Datums-/Zeitangaben immer im ISO-Format (YYYY-MM-DDTHH:MM:SS)
4. Deutsche Telefonnummern im Format +49 oder mit Vorwahl
5. Preise als Zahlen, nicht als Strings
6. Bei unklaren Kategorien verwende "andere"
7. Vertrauenswuerdigkeit zwischen 0.0 und 1.0
8. Extrahiere ALLE sichtbaren Informationen vom Plakat`
}
