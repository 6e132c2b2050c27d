package batch

import (
	"log"

	"github.com/spf13/cobra"

	"audioscribe/internal/app"
	"audioscribe/internal/app/converter"
)

var (
	userNickname string
	audioDir     string
	convertCount int
	parallel     int
	noProgress   bool
)

func init() {
	Cmd.Flags().StringVarP(&userNickname, "userNickname", "n", "",
		"Which user owns the audio files, this parameter affects the 'user' field when they are saved to the database")
	Cmd.Flags().StringVarP(&audioDir, "audioDir", "d", "",
		"audioDir specifies the audio file directory, example: ./test/data/audio")
	Cmd.Flags().IntVarP(&convertCount, "count", "c", 500, "maximum number of files to process")
	Cmd.Flags().IntVarP(&parallel, "parallel", "P", 1, "number of files to process in parallel")
	Cmd.Flags().BoolVar(&noProgress, "no-progress", false, "disable the progress bar")

	Cmd.MarkFlagRequired("userNickname")
	Cmd.MarkFlagRequired("audioDir")
}

// Cmd represents the batch command
var Cmd = &cobra.Command{
	Use:   "batch",
	Short: "Transcribe every unprocessed audio file in a directory",
	Long: `Transcribe every unprocessed audio file in a directory.

- Iterate through the audio files in the specified directory, oldest first
- Skip files that were already processed successfully
- Save every outcome to the database, including failures`,
	Run: func(cmd *cobra.Command, args []string) {
		showProgress := !noProgress && converter.ShouldShowProgress(false)

		c := app.InitializeProgressAwareConverter(converter.ProgressConfig{Enabled: showProgress})
		defer c.Close()

		if err := c.DoWithProgress(userNickname, audioDir, convertCount, parallel); err != nil {
			log.Fatalf("Batch transcription failed: %v\n", err)
		}
	},
}
