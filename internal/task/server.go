package task

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"connectrpc.com/connect"

	labelguildv1 "github.com/kazz187/labelguild/api/labelguildv1"
	"github.com/kazz187/labelguild/api/labelguildv1/labelguildv1connect"
	"github.com/kazz187/labelguild/internal/eventbus"
	"github.com/kazz187/labelguild/pkg/cerr"
	"github.com/kazz187/labelguild/pkg/clog"
)

var _ labelguildv1connect.TaskServiceHandler = (*Server)(nil)

type Server struct {
	store    Store
	eventBus *eventbus.Bus
	now      func() time.Time
}

func NewServer(store Store, eventBus *eventbus.Bus) *Server {
	return &Server{
		store:    store,
		eventBus: eventBus,
		now:      time.Now,
	}
}

func (s *Server) ListTasks(ctx context.Context, req *connect.Request[labelguildv1.ListTasksRequest]) (*connect.Response[labelguildv1.ListTasksResponse], error) {
	f := Filter{
		Search:   req.Msg.Search,
		Status:   Status(req.Msg.Status),
		Priority: Priority(req.Msg.Priority),
	}
	if f.Status != "" && !f.Status.Valid() {
		return nil, cerr.NewError(cerr.InvalidArgument, fmt.Sprintf("unknown status %q", f.Status), nil)
	}
	if f.Priority != "" && !f.Priority.Valid() {
		return nil, cerr.NewError(cerr.InvalidArgument, fmt.Sprintf("unknown priority %q", f.Priority), nil)
	}

	all := s.store.ReadAll(ctx)
	matched := f.Apply(all)
	clog.AddAttribute(ctx, "matched", len(matched))
	return connect.NewResponse(&labelguildv1.ListTasksResponse{
		Tasks:  ToWireAll(matched),
		Counts: CountsToWire(Count(all)),
	}), nil
}

func (s *Server) GetTask(ctx context.Context, req *connect.Request[labelguildv1.GetTaskRequest]) (*connect.Response[labelguildv1.GetTaskResponse], error) {
	t, ok := Find(s.store.ReadAll(ctx), req.Msg.ID)
	if !ok {
		return nil, cerr.NewError(cerr.NotFound, fmt.Sprintf("task %s not found", req.Msg.ID), nil)
	}
	return connect.NewResponse(&labelguildv1.GetTaskResponse{Task: ToWire(t)}), nil
}

func (s *Server) AssignTask(ctx context.Context, req *connect.Request[labelguildv1.AssignTaskRequest]) (*connect.Response[labelguildv1.AssignTaskResponse], error) {
	m := req.Msg
	ar := &AssignRequest{
		ProjectName:        m.ProjectName,
		Dataset:            m.Dataset,
		Preset:             m.Preset,
		Priority:           Priority(m.Priority),
		DueAt:              m.DueAt,
		AIPrelabel:         AIPrelabel(m.AIPrelabel),
		Instructions:       m.Instructions,
		Checklist:          m.Checklist,
		Labels:             m.Labels,
		AssignedAnnotators: m.AssignedAnnotators,
	}
	for _, img := range m.UploadedImages {
		if img != nil {
			ar.UploadedImages = append(ar.UploadedImages, UploadedImage{Name: img.Name, DataURL: img.DataURL})
		}
	}
	t, err := Assign(ar, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.store.Append(ctx, t); err != nil {
		return nil, err
	}

	clog.AddTaskID(ctx, t.ID)
	slog.InfoContext(ctx, "task assigned", "task_id", t.ID, "project", t.ProjectName, "annotators", len(t.AssignedAnnotators))
	s.eventBus.PublishNew(eventbus.EventTypeTaskAssigned, t.ID, "", map[string]string{
		"status": string(t.Status),
	})
	return connect.NewResponse(&labelguildv1.AssignTaskResponse{Task: ToWire(t)}), nil
}

func (s *Server) ReturnTask(ctx context.Context, req *connect.Request[labelguildv1.ReturnTaskRequest]) (*connect.Response[labelguildv1.ReturnTaskResponse], error) {
	t, err := s.store.Update(ctx, req.Msg.ID, func(t *Task) error {
		return Return(t, req.Msg.ReviewerNote, req.Msg.ErrorTypes)
	})
	if err != nil {
		return nil, err
	}
	s.eventBus.PublishNew(eventbus.EventTypeTaskReturned, t.ID, "", map[string]string{
		"status": string(t.Status),
	})
	return connect.NewResponse(&labelguildv1.ReturnTaskResponse{Task: ToWire(t)}), nil
}

func (s *Server) ApproveTask(ctx context.Context, req *connect.Request[labelguildv1.ApproveTaskRequest]) (*connect.Response[labelguildv1.ApproveTaskResponse], error) {
	t, err := s.store.Update(ctx, req.Msg.ID, Approve)
	if err != nil {
		return nil, err
	}
	s.eventBus.PublishNew(eventbus.EventTypeTaskApproved, t.ID, "", map[string]string{
		"status": string(t.Status),
	})
	return connect.NewResponse(&labelguildv1.ApproveTaskResponse{Task: ToWire(t)}), nil
}
