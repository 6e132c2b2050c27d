package worker

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"audioscribe/internal/app"
	temporalclient "audioscribe/internal/app/temporal/client"
	temporalworker "audioscribe/internal/app/temporal/worker"
	"audioscribe/internal/app/temporal/workflows"
)

var (
	submitFile     string
	submitUser     string
	submitProvider string
	submitWait     bool
)

func init() {
	submitCmd.Flags().StringVarP(&submitFile, "file", "f", "", "audio file to transcribe")
	submitCmd.Flags().StringVarP(&submitUser, "userNickname", "n", "", "user to record the transcript under")
	submitCmd.Flags().StringVarP(&submitProvider, "provider", "p", "", "provider to use")
	submitCmd.Flags().BoolVarP(&submitWait, "wait", "w", false, "wait for the workflow to finish and print the text")

	submitCmd.MarkFlagRequired("file")

	Cmd.AddCommand(submitCmd)
}

// Cmd represents the worker command
var Cmd = &cobra.Command{
	Use:   "worker",
	Short: "Run a Temporal worker processing transcription workflows",
	Long: `Run a Temporal worker processing transcription workflows.

The worker polls the transcription task queue and executes single-file and
batch workflows. Temporal server location comes from TEMPORAL_HOST.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := app.LoadProvidersConfig()
		registry, err := app.BuildRegistry(cfg)
		if err != nil {
			log.Fatalf("Failed to build provider registry: %v\n", err)
		}

		db, err := app.NewTranscriptionDAO()
		if err != nil {
			log.Fatalf("Failed to open transcription database: %v\n", err)
		}
		defer db.Close()

		if err := temporalworker.Run(registry, db); err != nil {
			log.Fatalf("Worker exited with error: %v\n", err)
		}
	},
}

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit a transcription workflow to a running worker",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		c, err := temporalclient.NewSubmitClient()
		if err != nil {
			log.Fatalf("Failed to connect to Temporal: %v\n", err)
		}
		defer c.Close()

		workflowID, err := c.SubmitFile(ctx, workflows.SingleFileRequest{
			FilePath: submitFile,
			User:     submitUser,
			Provider: submitProvider,
		})
		if err != nil {
			log.Fatalf("Failed to submit workflow: %v\n", err)
		}
		fmt.Printf("started workflow %s\n", workflowID)

		if submitWait {
			result, err := c.WaitForResult(ctx, workflowID)
			if err != nil {
				log.Fatalf("Workflow failed: %v\n", err)
			}
			fmt.Println(result.Text)
		}
	},
}
