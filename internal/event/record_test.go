package event

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/MichaelStober/EventViewer/constants"
)

func strptr(s string) *string { return &s }

func floatptr(f float64) *float64 { return &f }

func tsptr(t time.Time) *Timestamp { return &Timestamp{Time: t} }

func TestNewDefaults(t *testing.T) {
	rec := New("Sommerfest")
	require.Equal(t, "Sommerfest", rec.Name)
	require.Equal(t, constants.Andere, rec.Category)
	require.Equal(t, "EUR", rec.Pricing.Currency)
	require.Equal(t, "de", rec.Language)
	require.NoError(t, rec.Validate())
}

func TestValidate_EmptyName(t *testing.T) {
	rec := New("   ")
	require.Error(t, rec.Validate())
}

func TestValidate_PostalCode(t *testing.T) {
	tests := []struct {
		plz   string
		valid bool
	}{
		{"80331", true},
		{"1234", false},
		{"123456", false},
		{"8033a", false},
		{"8033 ", false},
	}
	for _, tc := range tests {
		rec := New("Konzert")
		rec.Location.PostalCode = strptr(tc.plz)
		err := rec.Validate()
		if tc.valid {
			require.NoError(t, err, "plz %q", tc.plz)
		} else {
			require.Error(t, err, "plz %q", tc.plz)
		}
	}
}

func TestValidate_EndBeforeStart(t *testing.T) {
	start := time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC)

	rec := New("Konzert")
	rec.Schedule.Start = tsptr(start)
	rec.Schedule.End = tsptr(start.Add(-time.Hour))
	require.Error(t, rec.Validate())

	rec.Schedule.End = tsptr(start.Add(2 * time.Hour))
	require.NoError(t, rec.Validate())

	// equal start and end is allowed
	rec.Schedule.End = tsptr(start)
	require.NoError(t, rec.Validate())
}

func TestValidate_NegativePrice(t *testing.T) {
	rec := New("Konzert")
	rec.Pricing.Advance = floatptr(-1)
	require.Error(t, rec.Validate())
}

func TestSetConfidence_Clamped(t *testing.T) {
	rec := New("Konzert")
	rec.SetConfidence(1.7)
	require.Equal(t, 1.0, rec.Metadata.Confidence)
	rec.SetConfidence(-0.3)
	require.Equal(t, 0.0, rec.Metadata.Confidence)
	rec.SetConfidence(0.42)
	require.Equal(t, 0.42, rec.Metadata.Confidence)
}

func TestAddSource_Dedup(t *testing.T) {
	rec := New("Konzert")
	rec.AddSource("https://example.de")
	rec.AddSource("https://tickets.example.de")
	rec.AddSource("https://example.de")
	require.Equal(t, []string{"https://example.de", "https://tickets.example.de"}, rec.Metadata.Sources)
}

func TestTimestamp_UnmarshalLayouts(t *testing.T) {
	var s Schedule
	payload := `{"beginn":"2025-06-01T20:00:00","ende":"2025-06-01T23:30:00+02:00","einlass":null}`
	require.NoError(t, json.Unmarshal([]byte(payload), &s))
	require.NotNil(t, s.Start)
	require.Equal(t, 20, s.Start.Hour())
	require.NotNil(t, s.End)
	require.Nil(t, s.Doors)

	var bad Schedule
	require.Error(t, json.Unmarshal([]byte(`{"beginn":"01.06.2025"}`), &bad))
}

func TestTimestamp_MarshalNullWhenZero(t *testing.T) {
	b, err := json.Marshal(Schedule{})
	require.NoError(t, err)
	require.JSONEq(t, `{"beginn":null,"ende":null,"einlass":null}`, string(b))
}

func TestClone_Independent(t *testing.T) {
	rec := New("Konzert")
	rec.Location.City = strptr("München")
	rec.AddSource("https://example.de")

	clone := rec.Clone()
	clone.Location.City = strptr("Berlin")
	clone.AddSource("https://other.de")
	clone.SetConfidence(0.9)

	require.Equal(t, "München", *rec.Location.City)
	require.Len(t, rec.Metadata.Sources, 1)
	require.Equal(t, 0.0, rec.Metadata.Confidence)
}

func TestApplyDefaults(t *testing.T) {
	var rec Record
	rec.Name = "Konzert"
	rec.ApplyDefaults()
	require.Equal(t, "EUR", rec.Pricing.Currency)
	require.Equal(t, "de", rec.Language)
	require.Equal(t, constants.Andere, rec.Category)

	rec.Pricing.Currency = "CHF"
	rec.ApplyDefaults()
	require.Equal(t, "CHF", rec.Pricing.Currency)
}
