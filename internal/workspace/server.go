package workspace

import (
	"context"
	"fmt"

	"connectrpc.com/connect"

	labelguildv1 "github.com/kazz187/labelguild/api/labelguildv1"
	"github.com/kazz187/labelguild/api/labelguildv1/labelguildv1connect"
	"github.com/kazz187/labelguild/internal/eventbus"
	"github.com/kazz187/labelguild/internal/task"
	"github.com/kazz187/labelguild/pkg/cerr"
	"github.com/kazz187/labelguild/pkg/clog"
)

var _ labelguildv1connect.WorkspaceServiceHandler = (*Server)(nil)

type Server struct {
	registry *Registry
	eventBus *eventbus.Bus
}

func NewServer(registry *Registry, eventBus *eventbus.Bus) *Server {
	return &Server{
		registry: registry,
		eventBus: eventBus,
	}
}

func (s *Server) OpenWorkspace(ctx context.Context, req *connect.Request[labelguildv1.OpenWorkspaceRequest]) (*connect.Response[labelguildv1.WorkspaceResponse], error) {
	session := s.registry.Open(ctx, req.Msg.TaskID)
	clog.AddSession(ctx, session.ID, session.TaskID)
	clog.AddAttribute(ctx, clog.SourceKey, string(session.Controller.Snapshot().View.Source))
	return respond(session), nil
}

func (s *Server) GetWorkspace(ctx context.Context, req *connect.Request[labelguildv1.SessionRequest]) (*connect.Response[labelguildv1.WorkspaceResponse], error) {
	session, err := s.session(ctx, req.Msg.SessionID)
	if err != nil {
		return nil, err
	}
	return respond(session), nil
}

func (s *Server) ToggleChecklistItem(ctx context.Context, req *connect.Request[labelguildv1.ToggleChecklistItemRequest]) (*connect.Response[labelguildv1.WorkspaceResponse], error) {
	session, err := s.session(ctx, req.Msg.SessionID)
	if err != nil {
		return nil, err
	}
	if !session.Controller.ToggleChecklist(ctx, int(req.Msg.Index)) {
		return nil, cerr.NewError(cerr.InvalidArgument, fmt.Sprintf("checklist has no item %d", req.Msg.Index), nil)
	}
	return respond(session), nil
}

func (s *Server) AddLabel(ctx context.Context, req *connect.Request[labelguildv1.AddLabelRequest]) (*connect.Response[labelguildv1.AddLabelResponse], error) {
	session, err := s.session(ctx, req.Msg.SessionID)
	if err != nil {
		return nil, err
	}
	added := session.Controller.AddLabel(ctx, req.Msg.Label)
	return connect.NewResponse(&labelguildv1.AddLabelResponse{
		Workspace: toWire(session),
		Added:     added,
	}), nil
}

func (s *Server) ApplyAIPrelabels(ctx context.Context, req *connect.Request[labelguildv1.SessionRequest]) (*connect.Response[labelguildv1.WorkspaceResponse], error) {
	session, err := s.session(ctx, req.Msg.SessionID)
	if err != nil {
		return nil, err
	}
	session.Controller.ApplyAIPrelabels(ctx)
	return respond(session), nil
}

func (s *Server) SelectImage(ctx context.Context, req *connect.Request[labelguildv1.SelectImageRequest]) (*connect.Response[labelguildv1.WorkspaceResponse], error) {
	session, err := s.session(ctx, req.Msg.SessionID)
	if err != nil {
		return nil, err
	}
	if !session.Controller.SelectImage(int(req.Msg.Index)) {
		return nil, cerr.NewError(cerr.InvalidArgument, fmt.Sprintf("workspace has no image %d", req.Msg.Index), nil)
	}
	return respond(session), nil
}

func (s *Server) RequestSubmit(ctx context.Context, req *connect.Request[labelguildv1.SessionRequest]) (*connect.Response[labelguildv1.WorkspaceResponse], error) {
	session, err := s.session(ctx, req.Msg.SessionID)
	if err != nil {
		return nil, err
	}
	if err := session.Controller.RequestSubmit(); err != nil {
		return nil, err
	}
	return respond(session), nil
}

func (s *Server) ConfirmSubmit(ctx context.Context, req *connect.Request[labelguildv1.SessionRequest]) (*connect.Response[labelguildv1.WorkspaceResponse], error) {
	session, err := s.session(ctx, req.Msg.SessionID)
	if err != nil {
		return nil, err
	}
	if err := session.Controller.ConfirmSubmit(ctx); err != nil {
		return nil, err
	}
	s.eventBus.PublishNew(eventbus.EventTypeTaskSubmitted, session.TaskID, "", map[string]string{
		"session_id": session.ID,
	})
	return respond(session), nil
}

func (s *Server) CancelSubmit(ctx context.Context, req *connect.Request[labelguildv1.SessionRequest]) (*connect.Response[labelguildv1.WorkspaceResponse], error) {
	session, err := s.session(ctx, req.Msg.SessionID)
	if err != nil {
		return nil, err
	}
	session.Controller.CancelSubmit()
	return respond(session), nil
}

func (s *Server) CloseWorkspace(ctx context.Context, req *connect.Request[labelguildv1.SessionRequest]) (*connect.Response[labelguildv1.CloseWorkspaceResponse], error) {
	session, err := s.session(ctx, req.Msg.SessionID)
	if err != nil {
		return nil, err
	}
	if err := s.registry.Close(session.ID); err != nil {
		return nil, err
	}
	return connect.NewResponse(&labelguildv1.CloseWorkspaceResponse{}), nil
}

// session looks up an open workspace and tags the request log with it.
func (s *Server) session(ctx context.Context, id string) (*Session, error) {
	session, err := s.registry.Get(id)
	if err != nil {
		return nil, err
	}
	clog.AddSession(ctx, session.ID, session.TaskID)
	return session, nil
}

func respond(session *Session) *connect.Response[labelguildv1.WorkspaceResponse] {
	return connect.NewResponse(&labelguildv1.WorkspaceResponse{Workspace: toWire(session)})
}

func toWire(session *Session) *labelguildv1.Workspace {
	snap := session.Controller.Snapshot()
	v := snap.View
	return &labelguildv1.Workspace{
		SessionID: session.ID,
		Task: task.ToWire(&task.Task{
			ID:             v.ID,
			ProjectName:    v.ProjectName,
			Dataset:        v.Dataset,
			Preset:         v.Preset,
			Status:         snap.DisplayStatus,
			AIPrelabel:     v.AIPrelabel,
			Instructions:   v.Instructions,
			Checklist:      v.Checklist,
			Labels:         v.Labels,
			ReviewerNote:   v.ReviewerNote,
			ErrorTypes:     v.ErrorTypes,
			UploadedImages: v.UploadedImages,
		}),
		Source:      string(v.Source),
		ItemName:    v.ItemName,
		Checked:     snap.Checked,
		Labels:      snap.Labels,
		AIApplied:   snap.AIApplied,
		Submitted:   snap.Submitted,
		Confirming:  snap.Confirming,
		ActiveImage: int32(snap.ActiveImage),
		AllChecked:  snap.AllChecked,
		CanSubmit:   snap.CanSubmit,
		Advisory:    snap.Advisory,
	}
}
