package export

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"audioscribe/internal/app/export"
	"audioscribe/internal/app/repository/sqlite"
	"audioscribe/internal/app/util/files"
)

var userNickname string
var outputFilePath string

func init() {
	Cmd.Flags().StringVarP(&userNickname, "userNickname", "n", "", "set userNickname")
	Cmd.Flags().StringVarP(&outputFilePath, "outputFilePath", "o", "", "output path, format chosen by extension (.xlsx, .txt, .json)")

	Cmd.MarkFlagRequired("userNickname")
	Cmd.MarkFlagRequired("outputFilePath")
}

// Cmd represents the export command
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export the specified user's transcripts to a file",
	Long: `Export the specified user's transcripts to a file.

The output format follows the file extension: .xlsx for a spreadsheet,
.txt for plain text blocks, .json for a structured dump.`,
	Run: func(cmd *cobra.Command, args []string) {
		projectRoot, err := files.GetProjectRoot()
		if err != nil {
			log.Fatalf("Failed to get project root: %v\n", err)
		}

		dbPath := filepath.Join(projectRoot, "data/transcription.db")
		db := sqlite.NewSQLiteDB(dbPath)
		defer db.Close()

		transcriptions, err := db.GetAllByUser(userNickname)
		if err != nil {
			log.Fatal(err)
		}

		switch strings.ToLower(filepath.Ext(outputFilePath)) {
		case ".xlsx":
			err = export.ToExcel(transcriptions, outputFilePath)
		case ".txt":
			err = export.ToTxt(transcriptions, outputFilePath)
		case ".json":
			err = export.ToJSON(transcriptions, outputFilePath)
		default:
			log.Fatalf("Unsupported export format: %s\n", filepath.Ext(outputFilePath))
		}
		if err != nil {
			log.Fatalf("Export failed: %v\n", err)
		}

		fmt.Printf("export finished, exported file path: %v\n", outputFilePath)
	},
}
