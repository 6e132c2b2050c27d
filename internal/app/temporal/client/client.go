package client

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.temporal.io/sdk/client"

	"audioscribe/internal/app/temporal/common"
	"audioscribe/internal/app/temporal/workflows"
)

// SubmitClient starts transcription workflows on a Temporal server and
// optionally waits for their results.
type SubmitClient struct {
	temporalClient client.Client
	taskQueue      string
}

// NewSubmitClient dials the Temporal server from the usual environment
// configuration.
func NewSubmitClient() (*SubmitClient, error) {
	config := common.DefaultTemporalConfig()
	c, err := common.NewTemporalClient(config)
	if err != nil {
		return nil, err
	}
	return &SubmitClient{
		temporalClient: c,
		taskQueue:      config.TaskQueue,
	}, nil
}

func (s *SubmitClient) Close() {
	s.temporalClient.Close()
}

// SubmitFile starts a single-file transcription workflow and returns its
// workflow ID.
func (s *SubmitClient) SubmitFile(ctx context.Context, req workflows.SingleFileRequest) (string, error) {
	if req.FileID == "" {
		req.FileID = uuid.New().String()
	}
	workflowID := fmt.Sprintf("transcribe-%s-%d", req.FileID, time.Now().Unix())

	we, err := s.temporalClient.ExecuteWorkflow(ctx, client.StartWorkflowOptions{
		ID:        workflowID,
		TaskQueue: s.taskQueue,
	}, "SingleFileTranscriptionWorkflow", req)
	if err != nil {
		return "", fmt.Errorf("failed to start workflow: %w", err)
	}
	return we.GetID(), nil
}

// SubmitBatch starts a batch workflow covering the given files.
func (s *SubmitClient) SubmitBatch(ctx context.Context, req workflows.BatchRequest) (string, error) {
	workflowID := fmt.Sprintf("batch-%s-%d", uuid.New().String(), time.Now().Unix())

	we, err := s.temporalClient.ExecuteWorkflow(ctx, client.StartWorkflowOptions{
		ID:        workflowID,
		TaskQueue: s.taskQueue,
	}, "BatchTranscriptionWorkflow", req)
	if err != nil {
		return "", fmt.Errorf("failed to start batch workflow: %w", err)
	}
	return we.GetID(), nil
}

// WaitForResult blocks until a single-file workflow finishes.
func (s *SubmitClient) WaitForResult(ctx context.Context, workflowID string) (*workflows.SingleFileResult, error) {
	run := s.temporalClient.GetWorkflow(ctx, workflowID, "")

	var result workflows.SingleFileResult
	if err := run.Get(ctx, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
