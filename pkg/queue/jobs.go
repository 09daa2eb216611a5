package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"github.com/artem13815/cvdesk/pkg/cv"
)

const (
	// ExtractCVTask is scheduled each time a CV is uploaded.
	ExtractCVTask = "cv:extract"

	maxRetry = 5
)

// Client enqueues CV processing jobs into Redis via asynq.
type Client struct {
	client *asynq.Client
}

func NewClient(opt asynq.RedisClientOpt) *Client {
	return &Client{client: asynq.NewClient(opt)}
}

var _ cv.ProcessingQueue = (*Client)(nil)

func (c *Client) Close() error { return c.client.Close() }

// EnqueueExtract enqueues a text extraction job.
func (c *Client) EnqueueExtract(ctx context.Context, job cv.ExtractJob) error {
	task, err := NewExtractTask(job)
	if err != nil {
		return err
	}
	if _, err := c.client.EnqueueContext(ctx, task, asynq.MaxRetry(maxRetry)); err != nil {
		return fmt.Errorf("enqueue extract task: %w", err)
	}
	return nil
}

func NewExtractTask(job cv.ExtractJob) (*asynq.Task, error) {
	data, err := json.Marshal(job)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}
	return asynq.NewTask(ExtractCVTask, data), nil
}

// DecodeExtract reads the payload written by NewExtractTask.
func DecodeExtract(task *asynq.Task) (cv.ExtractJob, error) {
	var job cv.ExtractJob
	if err := json.Unmarshal(task.Payload(), &job); err != nil {
		return cv.ExtractJob{}, fmt.Errorf("decode payload: %w", err)
	}
	return job, nil
}
