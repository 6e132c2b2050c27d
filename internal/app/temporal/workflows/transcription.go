package workflows

import (
	"fmt"
	"path/filepath"
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"audioscribe/internal/app/temporal/activities"
)

// SingleFileRequest starts a transcription workflow for one audio file.
type SingleFileRequest struct {
	FileID   string `json:"file_id"`
	FilePath string `json:"file_path"`
	User     string `json:"user"`
	Provider string `json:"provider"`
	Language string `json:"language"`
	Prompt   string `json:"prompt"`
}

// SingleFileResult is the workflow output.
type SingleFileResult struct {
	FileID         string        `json:"file_id"`
	Text           string        `json:"text"`
	Provider       string        `json:"provider"`
	ProcessingTime time.Duration `json:"processing_time"`
	Error          string        `json:"error,omitempty"`
}

// SingleFileTranscriptionWorkflow transcribes one file and records the result.
func SingleFileTranscriptionWorkflow(ctx workflow.Context, req SingleFileRequest) (SingleFileResult, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("Starting single file transcription workflow", "fileId", req.FileID)

	startTime := workflow.Now(ctx)

	activityOptions := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Minute,
		HeartbeatTimeout:    30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    100 * time.Second,
			MaximumAttempts:    3,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, activityOptions)

	var transcription activities.TranscriptionResult
	err := workflow.ExecuteActivity(ctx, "TranscribeFile", activities.TranscriptionRequest{
		FileID:   req.FileID,
		FilePath: req.FilePath,
		User:     req.User,
		Provider: req.Provider,
		Language: req.Language,
		Prompt:   req.Prompt,
	}).Get(ctx, &transcription)
	if err != nil {
		logger.Error("Failed to transcribe file", "error", err)
		return SingleFileResult{
			FileID: req.FileID,
			Error:  fmt.Sprintf("Failed to transcribe: %v", err),
		}, err
	}

	err = workflow.ExecuteActivity(ctx, "SaveTranscript", activities.SaveTranscriptRequest{
		User:     req.User,
		FilePath: req.FilePath,
		FileName: filepath.Base(req.FilePath),
		Language: transcription.Language,
		Text:     transcription.Text,
	}).Get(ctx, nil)
	if err != nil {
		logger.Error("Failed to save transcript", "error", err)
		return SingleFileResult{
			FileID: req.FileID,
			Error:  fmt.Sprintf("Failed to save transcript: %v", err),
		}, err
	}

	result := SingleFileResult{
		FileID:         req.FileID,
		Text:           transcription.Text,
		Provider:       transcription.Provider,
		ProcessingTime: workflow.Now(ctx).Sub(startTime),
	}

	logger.Info("Single file transcription completed",
		"fileId", req.FileID,
		"provider", result.Provider,
		"duration", result.ProcessingTime)

	return result, nil
}

// BatchRequest starts one child workflow per audio file.
type BatchRequest struct {
	User     string   `json:"user"`
	Files    []string `json:"files"`
	Provider string   `json:"provider"`
	Language string   `json:"language"`
	Parallel int      `json:"parallel"`
}

// BatchResult aggregates per-file outcomes.
type BatchResult struct {
	Total     int                `json:"total"`
	Succeeded int                `json:"succeeded"`
	Failed    int                `json:"failed"`
	Results   []SingleFileResult `json:"results"`
}

// BatchTranscriptionWorkflow fans out child workflows for a batch of files
// with bounded parallelism.
func BatchTranscriptionWorkflow(ctx workflow.Context, req BatchRequest) (BatchResult, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("Starting batch transcription workflow", "files", len(req.Files))

	parallel := req.Parallel
	if parallel < 1 {
		parallel = 2
	}

	result := BatchResult{Total: len(req.Files)}
	sem := workflow.NewSemaphore(ctx, int64(parallel))

	futures := make([]workflow.ChildWorkflowFuture, len(req.Files))
	for i, file := range req.Files {
		if err := sem.Acquire(ctx, 1); err != nil {
			return result, err
		}

		childCtx := workflow.WithChildOptions(ctx, workflow.ChildWorkflowOptions{
			WorkflowID: fmt.Sprintf("transcribe-%s-%d", workflow.GetInfo(ctx).WorkflowExecution.ID, i),
		})
		futures[i] = workflow.ExecuteChildWorkflow(childCtx, SingleFileTranscriptionWorkflow, SingleFileRequest{
			FileID:   fmt.Sprintf("%d", i),
			FilePath: file,
			User:     req.User,
			Provider: req.Provider,
			Language: req.Language,
		})

		i := i
		workflow.Go(ctx, func(gctx workflow.Context) {
			_ = futures[i].Get(gctx, nil)
			sem.Release(1)
		})
	}

	for _, future := range futures {
		var fileResult SingleFileResult
		if err := future.Get(ctx, &fileResult); err != nil {
			result.Failed++
			fileResult.Error = err.Error()
		} else {
			result.Succeeded++
		}
		result.Results = append(result.Results, fileResult)
	}

	logger.Info("Batch transcription completed",
		"total", result.Total,
		"succeeded", result.Succeeded,
		"failed", result.Failed)

	return result, nil
}
