package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"audioscribe/cmd/a2t/cmd/batch"
	"audioscribe/cmd/a2t/cmd/download"
	"audioscribe/cmd/a2t/cmd/embed"
	"audioscribe/cmd/a2t/cmd/export"
	"audioscribe/cmd/a2t/cmd/providers"
	"audioscribe/cmd/a2t/cmd/serve"
	"audioscribe/cmd/a2t/cmd/transcribe"
	"audioscribe/cmd/a2t/cmd/version"
	"audioscribe/cmd/a2t/cmd/worker"
)

var Verbose bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "a2t",
	Short: "Transcribe audio files into text using speech recognition providers",
	Long: `Transcribe audio files into text using speech recognition providers.

- Transcribe single files or batch-process whole directories
- Long recordings are split into chunks with rolling context prompts
- Results are saved to sqlite or postgres and can be exported or searched`,
	TraverseChildren: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(transcribe.Cmd)
	rootCmd.AddCommand(batch.Cmd)
	rootCmd.AddCommand(download.Cmd)
	rootCmd.AddCommand(embed.Cmd)
	rootCmd.AddCommand(export.Cmd)
	rootCmd.AddCommand(providers.Cmd)
	rootCmd.AddCommand(serve.Cmd)
	rootCmd.AddCommand(worker.Cmd)
	rootCmd.AddCommand(version.Cmd)

	rootCmd.PersistentFlags().BoolVarP(&Verbose, "verbose", "V", false, "verbose output")
}
