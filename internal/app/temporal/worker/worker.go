package worker

import (
	"fmt"
	"os"

	"go.temporal.io/sdk/worker"
	"go.uber.org/zap"

	"audioscribe/internal/app/provider"
	"audioscribe/internal/app/repository"
	"audioscribe/internal/app/temporal/activities"
	"audioscribe/internal/app/temporal/common"
	"audioscribe/internal/app/temporal/workflows"
)

// Run starts a Temporal worker serving the transcription task queue and
// blocks until an interrupt arrives.
func Run(registry provider.ProviderRegistry, db repository.TranscriptionDAO) error {
	logger := common.MustNewLogger(common.GetEnv("ENV", "production") == "development")
	defer logger.Sync()

	config := common.DefaultTemporalConfig()
	workerIdentity := common.GetEnv("WORKER_IDENTITY", fmt.Sprintf("a2t-worker-%s", hostname()))

	logger.Info("Starting transcription worker",
		zap.String("temporalHost", config.HostPort),
		zap.String("taskQueue", config.TaskQueue),
		zap.String("namespace", config.Namespace),
		zap.String("identity", workerIdentity),
	)

	temporalClient, err := common.NewTemporalClient(config)
	if err != nil {
		return err
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, config.TaskQueue, worker.Options{
		Identity:                               workerIdentity,
		MaxConcurrentActivityExecutionSize:     10,
		MaxConcurrentWorkflowTaskExecutionSize: 10,
	})

	w.RegisterWorkflow(workflows.SingleFileTranscriptionWorkflow)
	w.RegisterWorkflow(workflows.BatchTranscriptionWorkflow)

	transcribeActivities := activities.NewTranscribeActivities(registry, db)
	w.RegisterActivity(transcribeActivities.TranscribeFile)
	w.RegisterActivity(transcribeActivities.SaveTranscript)
	w.RegisterActivity(transcribeActivities.CheckProviderHealth)

	logger.Info("Worker registered, polling for tasks")
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Worker stopped with error", zap.Error(err))
		return err
	}
	return nil
}

func hostname() string {
	h, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return h
}
