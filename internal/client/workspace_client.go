package client

import (
	"context"
	"fmt"

	"connectrpc.com/connect"

	labelguildv1 "github.com/kazz187/labelguild/api/labelguildv1"
	"github.com/kazz187/labelguild/api/labelguildv1/labelguildv1connect"
)

// WorkspaceClient drives one annotation workspace session at a time.
type WorkspaceClient struct {
	client labelguildv1connect.WorkspaceServiceClient
}

func NewWorkspaceClient(cfg Config) *WorkspaceClient {
	return &WorkspaceClient{
		client: labelguildv1connect.NewWorkspaceServiceClient(cfg.httpClient(), cfg.BaseURL, cfg.options()...),
	}
}

func (c *WorkspaceClient) Open(ctx context.Context, taskID string) (*labelguildv1.Workspace, error) {
	resp, err := c.client.OpenWorkspace(ctx, connect.NewRequest(&labelguildv1.OpenWorkspaceRequest{TaskID: taskID}))
	if err != nil {
		return nil, fmt.Errorf("failed to open workspace: %w", err)
	}
	return resp.Msg.Workspace, nil
}

type sessionCall func(context.Context, *connect.Request[labelguildv1.SessionRequest]) (*connect.Response[labelguildv1.WorkspaceResponse], error)

func (c *WorkspaceClient) session(ctx context.Context, call sessionCall, op, sessionID string) (*labelguildv1.Workspace, error) {
	resp, err := call(ctx, connect.NewRequest(&labelguildv1.SessionRequest{SessionID: sessionID}))
	if err != nil {
		return nil, fmt.Errorf("failed to %s: %w", op, err)
	}
	return resp.Msg.Workspace, nil
}

func (c *WorkspaceClient) Get(ctx context.Context, sessionID string) (*labelguildv1.Workspace, error) {
	return c.session(ctx, c.client.GetWorkspace, "get workspace", sessionID)
}

func (c *WorkspaceClient) ToggleChecklistItem(ctx context.Context, sessionID string, index int) (*labelguildv1.Workspace, error) {
	resp, err := c.client.ToggleChecklistItem(ctx, connect.NewRequest(&labelguildv1.ToggleChecklistItemRequest{
		SessionID: sessionID,
		Index:     int32(index),
	}))
	if err != nil {
		return nil, fmt.Errorf("failed to toggle checklist item: %w", err)
	}
	return resp.Msg.Workspace, nil
}

// AddLabel reports whether the label was new.
func (c *WorkspaceClient) AddLabel(ctx context.Context, sessionID, label string) (*labelguildv1.Workspace, bool, error) {
	resp, err := c.client.AddLabel(ctx, connect.NewRequest(&labelguildv1.AddLabelRequest{
		SessionID: sessionID,
		Label:     label,
	}))
	if err != nil {
		return nil, false, fmt.Errorf("failed to add label: %w", err)
	}
	return resp.Msg.Workspace, resp.Msg.Added, nil
}

func (c *WorkspaceClient) ApplyAIPrelabels(ctx context.Context, sessionID string) (*labelguildv1.Workspace, error) {
	return c.session(ctx, c.client.ApplyAIPrelabels, "apply AI prelabels", sessionID)
}

func (c *WorkspaceClient) SelectImage(ctx context.Context, sessionID string, index int) (*labelguildv1.Workspace, error) {
	resp, err := c.client.SelectImage(ctx, connect.NewRequest(&labelguildv1.SelectImageRequest{
		SessionID: sessionID,
		Index:     int32(index),
	}))
	if err != nil {
		return nil, fmt.Errorf("failed to select image: %w", err)
	}
	return resp.Msg.Workspace, nil
}

func (c *WorkspaceClient) RequestSubmit(ctx context.Context, sessionID string) (*labelguildv1.Workspace, error) {
	return c.session(ctx, c.client.RequestSubmit, "request submit", sessionID)
}

func (c *WorkspaceClient) ConfirmSubmit(ctx context.Context, sessionID string) (*labelguildv1.Workspace, error) {
	return c.session(ctx, c.client.ConfirmSubmit, "confirm submit", sessionID)
}

func (c *WorkspaceClient) CancelSubmit(ctx context.Context, sessionID string) (*labelguildv1.Workspace, error) {
	return c.session(ctx, c.client.CancelSubmit, "cancel submit", sessionID)
}

func (c *WorkspaceClient) Close(ctx context.Context, sessionID string) error {
	if _, err := c.client.CloseWorkspace(ctx, connect.NewRequest(&labelguildv1.SessionRequest{SessionID: sessionID})); err != nil {
		return fmt.Errorf("failed to close workspace: %w", err)
	}
	return nil
}
