package llm

import (
	"encoding/json"
	"strings"

	"github.com/MichaelStober/EventViewer/constants"
	"github.com/MichaelStober/EventViewer/internal/common"
	"github.com/MichaelStober/EventViewer/internal/event"
)

// ExtractJSONObject slices the first '{' through the last '}' out of a model
// reply, dropping any prose wrapper around the JSON body.
func ExtractJSONObject(reply string) (string, error) {
	start := strings.Index(reply, "{")
	end := strings.LastIndex(reply, "}")
	if start == -1 || end == -1 || end < start {
		return "", common.NewAppError("PARSE_ERROR", "no JSON object in model reply", common.ErrExtraction)
	}
	return reply[start : end+1], nil
}

// ParseRecord turns a raw model reply into a validated event record. Detected
// codes and URLs override same-name keys from the reply. Any decode or
// validation failure is a hard extraction failure.
func ParseRecord(reply string, qrCodes, urls []string) (*event.Record, error) {
	body, err := ExtractJSONObject(reply)
	if err != nil {
		return nil, err
	}

	raw := []byte(body)
	if err := ValidateJSONAgainstSchema(BuildEventJSONSchema(), raw); err != nil {
		return nil, common.NewAppError("PARSE_ERROR", "model reply violates schema", err)
	}

	var rec event.Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, common.NewAppError("PARSE_ERROR", "decode model reply", err)
	}

	if len(qrCodes) > 0 {
		rec.DetectedQRCodes = qrCodes
	}
	if len(urls) > 0 {
		rec.DetectedURLs = urls
	}

	rec.Category, _ = constants.Canonicalize(string(rec.Category))
	rec.ApplyDefaults()

	if err := rec.Validate(); err != nil {
		return nil, err
	}
	return &rec, nil
}
