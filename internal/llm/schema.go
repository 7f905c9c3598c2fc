package llm

// BuildEventJSONSchema returns a JSON-Schema (draft 2020-12 subset) as a
// generic map. The model reply is validated against it once, at parse time;
// later stages can rely on shape instead of re-checking field presence.
func BuildEventJSONSchema() map[string]any {
	nullableString := func() map[string]any {
		return map[string]any{"type": []string{"string", "null"}}
	}
	nullablePrice := func() map[string]any {
		return map[string]any{"type": []string{"number", "null"}, "minimum": 0.0}
	}
	nullableTimestamp := func() map[string]any {
		return map[string]any{
			"type":    []string{"string", "null"},
			"pattern": `^\d{4}-\d{2}-\d{2}([T ]\d{2}:\d{2}(:\d{2})?([+-]\d{2}:\d{2}|Z)?)?$`,
		}
	}

	return map[string]any{
		"type":     "object",
		"required": []string{"veranstaltungsname"},
		"properties": map[string]any{
			"veranstaltungsname": map[string]any{"type": "string", "minLength": 1},
			"ort": map[string]any{
				"type": []string{"object", "null"},
				"properties": map[string]any{
					"veranstaltungsort": nullableString(),
					"adresse":           nullableString(),
					"stadt":             nullableString(),
					"postleitzahl": map[string]any{
						"type":    []string{"string", "null"},
						"pattern": `^\d{5}$`,
					},
					"bundesland": nullableString(),
				},
			},
			"termine": map[string]any{
				"type": []string{"object", "null"},
				"properties": map[string]any{
					"beginn":  nullableTimestamp(),
					"ende":    nullableTimestamp(),
					"einlass": nullableTimestamp(),
				},
			},
			"preise": map[string]any{
				"type": []string{"object", "null"},
				"properties": map[string]any{
					"kostenlos":  map[string]any{"type": []string{"boolean", "null"}},
					"preis":      nullablePrice(),
					"waehrung":   map[string]any{"type": []string{"string", "null"}, "minLength": 3, "maxLength": 3},
					"vorverkauf": nullablePrice(),
					"abendkasse": nullablePrice(),
				},
			},
			"beschreibung": nullableString(),
			"kategorie":    nullableString(),
			"metadaten": map[string]any{
				"type": []string{"object", "null"},
				"properties": map[string]any{
					"kuenstler": map[string]any{
						"type": []string{"array", "null"},
						"items": map[string]any{
							"type":     "object",
							"required": []string{"name"},
							"properties": map[string]any{
								"name": map[string]any{"type": "string", "minLength": 1},
								"info": nullableString(),
							},
						},
					},
					"ticketinfo": map[string]any{"type": []string{"object", "null"}},
					"kontakt":    map[string]any{"type": []string{"object", "null"}},
					"quellen": map[string]any{
						"type":  []string{"array", "null"},
						"items": map[string]any{"type": "string"},
					},
					"vertrauenswuerdigkeit": map[string]any{
						"type":    []string{"number", "null"},
						"minimum": 0.0,
						"maximum": 1.0,
					},
				},
			},
		},
	}
}
