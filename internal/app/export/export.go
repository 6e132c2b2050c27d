package export

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/tealeg/xlsx"

	"audioscribe/internal/app/model"
)

// transcriptRecord is the flat shape used for JSON export.
type transcriptRecord struct {
	ID            int    `json:"id"`
	User          string `json:"user"`
	ConvertedAt   string `json:"convertedAt"`
	AudioFileName string `json:"audioFileName"`
	AudioDuration int    `json:"audioDuration"`
	Language      string `json:"language"`
	Transcription string `json:"transcription"`
}

func toRecord(t model.Transcription) transcriptRecord {
	return transcriptRecord{
		ID:            t.ID,
		User:          t.User,
		ConvertedAt:   t.LastConversionTime.Format(time.RFC3339),
		AudioFileName: t.AudioFileName,
		AudioDuration: t.AudioDuration,
		Language:      t.Language,
		Transcription: t.Transcription,
	}
}

// ToExcel writes transcriptions to an xlsx workbook.
func ToExcel(transcriptions []model.Transcription, outputFilePath string) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Transcriptions")
	if err != nil {
		return fmt.Errorf("failed to add sheet: %w", err)
	}

	headerRow := sheet.AddRow()
	headerRow.AddCell().Value = "ID"
	headerRow.AddCell().Value = "User"
	headerRow.AddCell().Value = "Last Conversion Time"
	headerRow.AddCell().Value = "Audio File Name"
	headerRow.AddCell().Value = "Audio Duration"
	headerRow.AddCell().Value = "Language"
	headerRow.AddCell().Value = "Transcription"
	headerRow.AddCell().Value = "Error Message"

	for _, t := range transcriptions {
		row := sheet.AddRow()
		row.AddCell().Value = fmt.Sprint(t.ID)
		row.AddCell().Value = t.User
		row.AddCell().Value = t.LastConversionTime.Format(time.RFC3339)
		row.AddCell().Value = t.AudioFileName
		row.AddCell().Value = fmt.Sprintf("%ds", t.AudioDuration)
		row.AddCell().Value = t.Language
		row.AddCell().Value = t.Transcription
		row.AddCell().Value = t.ErrorMessage
	}

	if err := file.Save(outputFilePath); err != nil {
		return fmt.Errorf("failed to save xlsx: %w", err)
	}
	return nil
}

// ToTxt writes one transcript per block, separated by the file name header.
func ToTxt(transcriptions []model.Transcription, outputFilePath string) error {
	blocks := lo.Map(transcriptions, func(t model.Transcription, _ int) string {
		return fmt.Sprintf("# %s (%s)\n%s\n", t.AudioFileName, t.LastConversionTime.Format(time.RFC3339), t.Transcription)
	})
	content := strings.Join(blocks, "\n")
	if err := os.WriteFile(outputFilePath, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write txt: %w", err)
	}
	return nil
}

// ToJSON writes transcriptions as an indented JSON array.
func ToJSON(transcriptions []model.Transcription, outputFilePath string) error {
	records := lo.Map(transcriptions, func(t model.Transcription, _ int) transcriptRecord {
		return toRecord(t)
	})
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode json: %w", err)
	}
	if err := os.WriteFile(outputFilePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write json: %w", err)
	}
	return nil
}
