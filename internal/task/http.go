package task

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	labelguildv1 "github.com/kazz187/labelguild/api/labelguildv1"
	"github.com/kazz187/labelguild/pkg/cerr"
)

// Routes mounts read-only JSON endpoints for dashboards that do not speak
// connect. Responses are written by the cerr chi middleware.
func (s *Server) Routes(r chi.Router) {
	r.Get("/tasks", s.listTasksHTTP)
	r.Get("/tasks/{id}", s.getTaskHTTP)
}

func (s *Server) listTasksHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()
	f := Filter{
		Search:   q.Get("search"),
		Status:   Status(q.Get("status")),
		Priority: Priority(q.Get("priority")),
	}
	if f.Status != "" && !f.Status.Valid() {
		cerr.SetNewJSONError(ctx, cerr.InvalidArgument, fmt.Sprintf("unknown status %q", f.Status), nil)
		return
	}
	if f.Priority != "" && !f.Priority.Valid() {
		cerr.SetNewJSONError(ctx, cerr.InvalidArgument, fmt.Sprintf("unknown priority %q", f.Priority), nil)
		return
	}
	all := s.store.ReadAll(ctx)
	cerr.SetJSONResponse(ctx, &labelguildv1.ListTasksResponse{
		Tasks:  ToWireAll(f.Apply(all)),
		Counts: CountsToWire(Count(all)),
	})
}

func (s *Server) getTaskHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")
	t, ok := Find(s.store.ReadAll(ctx), id)
	if !ok {
		cerr.SetNewJSONError(ctx, cerr.NotFound, fmt.Sprintf("task %s not found", id), nil)
		return
	}
	cerr.SetJSONResponse(ctx, &labelguildv1.GetTaskResponse{Task: ToWire(t)})
}
