package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"

	"audioscribe/internal/app/model"
)

func sampleTranscriptions() []model.Transcription {
	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return []model.Transcription{
		{ID: 1, User: "alice", LastConversionTime: ts, AudioFileName: "ep1.mp3", AudioDuration: 360, Language: "en", Transcription: "hello world"},
		{ID: 2, User: "alice", LastConversionTime: ts.Add(time.Hour), AudioFileName: "ep2.mp3", AudioDuration: 120, Language: "en", Transcription: "second episode"},
	}
}

func TestToExcel(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.xlsx")
	require.NoError(t, ToExcel(sampleTranscriptions(), out))

	file, err := xlsx.OpenFile(out)
	require.NoError(t, err)
	require.Len(t, file.Sheets, 1)

	sheet := file.Sheets[0]
	require.Len(t, sheet.Rows, 3) // header + 2 records
	assert.Equal(t, "ID", sheet.Rows[0].Cells[0].Value)
	assert.Equal(t, "ep1.mp3", sheet.Rows[1].Cells[3].Value)
	assert.Equal(t, "hello world", sheet.Rows[1].Cells[6].Value)
}

func TestToTxt(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.txt")
	require.NoError(t, ToTxt(sampleTranscriptions(), out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# ep1.mp3")
	assert.Contains(t, string(data), "hello world")
	assert.Contains(t, string(data), "second episode")
}

func TestToJSON(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, ToJSON(sampleTranscriptions(), out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	var records []map[string]any
	require.NoError(t, json.Unmarshal(data, &records))
	require.Len(t, records, 2)
	assert.Equal(t, "ep2.mp3", records[1]["audioFileName"])
	assert.Equal(t, float64(120), records[1]["audioDuration"])
}
