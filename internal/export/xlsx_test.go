package export

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/MichaelStober/EventViewer/internal/event"
)

func TestWriteXLSX(t *testing.T) {
	second := event.New("Poetry Slam")
	second.SetConfidence(0.5)
	records := []*event.Record{sampleRecord(), second}

	path := filepath.Join(t.TempDir(), "events.xlsx")
	require.NoError(t, NewService(nil).WriteXLSX(records, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Events"}, f.GetSheetList())

	rows, err := f.GetRows("Events")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "veranstaltungsname", rows[0][0])
	assert.Equal(t, "Jazz im Park", rows[1][0])
	assert.Equal(t, "Poetry Slam", rows[2][0])
	assert.Equal(t, "musik", rows[1][1])
}

func TestWriteXLSX_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leer.xlsx")
	require.NoError(t, NewService(nil).WriteXLSX(nil, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Events")
	require.NoError(t, err)
	assert.Empty(t, rows)
}
