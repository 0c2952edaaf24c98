package client

import (
	"context"
	"fmt"

	"connectrpc.com/connect"

	labelguildv1 "github.com/kazz187/labelguild/api/labelguildv1"
	"github.com/kazz187/labelguild/api/labelguildv1/labelguildv1connect"
)

// TaskClient provides client operations for tasks
type TaskClient struct {
	client labelguildv1connect.TaskServiceClient
}

// NewTaskClient creates a new task client
func NewTaskClient(cfg Config) *TaskClient {
	return &TaskClient{
		client: labelguildv1connect.NewTaskServiceClient(cfg.httpClient(), cfg.BaseURL, cfg.options()...),
	}
}

// ListTasks lists the tasks matching the filter together with the counts of
// the whole collection.
func (c *TaskClient) ListTasks(ctx context.Context, filter *labelguildv1.ListTasksRequest) ([]*labelguildv1.Task, *labelguildv1.TaskCounts, error) {
	if filter == nil {
		filter = &labelguildv1.ListTasksRequest{}
	}
	resp, err := c.client.ListTasks(ctx, connect.NewRequest(filter))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return resp.Msg.Tasks, resp.Msg.Counts, nil
}

// GetTask gets a specific task
func (c *TaskClient) GetTask(ctx context.Context, taskID string) (*labelguildv1.Task, error) {
	resp, err := c.client.GetTask(ctx, connect.NewRequest(&labelguildv1.GetTaskRequest{ID: taskID}))
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return resp.Msg.Task, nil
}

func (c *TaskClient) AssignTask(ctx context.Context, req *labelguildv1.AssignTaskRequest) (*labelguildv1.Task, error) {
	resp, err := c.client.AssignTask(ctx, connect.NewRequest(req))
	if err != nil {
		return nil, fmt.Errorf("failed to assign task: %w", err)
	}
	return resp.Msg.Task, nil
}

func (c *TaskClient) ReturnTask(ctx context.Context, taskID, note string, errorTypes []string) (*labelguildv1.Task, error) {
	resp, err := c.client.ReturnTask(ctx, connect.NewRequest(&labelguildv1.ReturnTaskRequest{
		ID:           taskID,
		ReviewerNote: note,
		ErrorTypes:   errorTypes,
	}))
	if err != nil {
		return nil, fmt.Errorf("failed to return task: %w", err)
	}
	return resp.Msg.Task, nil
}

func (c *TaskClient) ApproveTask(ctx context.Context, taskID string) (*labelguildv1.Task, error) {
	resp, err := c.client.ApproveTask(ctx, connect.NewRequest(&labelguildv1.ApproveTaskRequest{ID: taskID}))
	if err != nil {
		return nil, fmt.Errorf("failed to approve task: %w", err)
	}
	return resp.Msg.Task, nil
}
