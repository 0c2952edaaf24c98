package internal

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net"
	"net/http"
	"strings"

	"connectrpc.com/connect"
	"connectrpc.com/grpchealth"
	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/kazz187/labelguild/api/labelguildv1/labelguildv1connect"
	"github.com/kazz187/labelguild/internal/config"
	"github.com/kazz187/labelguild/internal/event"
	"github.com/kazz187/labelguild/internal/task"
	"github.com/kazz187/labelguild/internal/workspace"
	"github.com/kazz187/labelguild/pkg/cerr"
	"github.com/kazz187/labelguild/pkg/clog"
)

type Server struct {
	server          *http.Server
	env             *config.Env
	taskServer      *task.Server
	workspaceServer *workspace.Server
	eventServer     *event.Server
}

func NewServer(
	env *config.Env,
	taskServer *task.Server,
	workspaceServer *workspace.Server,
	eventServer *event.Server,
) *Server {
	return &Server{
		env:             env,
		taskServer:      taskServer,
		workspaceServer: workspaceServer,
		eventServer:     eventServer,
	}
}

// Handler builds the full HTTP handler: connect services, the JSON /api
// routes, health checks, CORS and the API key guard.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Use(
			clog.SlogChiMiddleware(),
			cerr.NewConvertConnectErrorChiMiddleware(),
		)
		s.taskServer.Routes(r)
		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			cerr.SetNewJSONError(r.Context(), cerr.NotFound, "not found", nil)
		})
	})

	mux := http.NewServeMux()

	mux.Handle("/health", &HealthChecker{})
	mux.Handle("/api/", r)
	mux.Handle(grpchealth.NewHandler(grpchealth.NewStaticChecker(
		labelguildv1connect.TaskServiceName,
		labelguildv1connect.WorkspaceServiceName,
		labelguildv1connect.EventServiceName,
	)))

	handlerOpts := connect.WithInterceptors(s.interceptors()...)

	mux.Handle(labelguildv1connect.NewTaskServiceHandler(s.taskServer, handlerOpts))
	mux.Handle(labelguildv1connect.NewWorkspaceServiceHandler(s.workspaceServer, handlerOpts))
	mux.Handle(labelguildv1connect.NewEventServiceHandler(s.eventServer, handlerOpts))

	return h2c.NewHandler(cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}).Handler(s.apiKeyMiddleware(mux)), &http2.Server{})
}

// ListenAndServe starts the HTTP server. ctx becomes the base context of
// every request, so cancelling it also ends open event streams.
func (s *Server) ListenAndServe(ctx context.Context) error {
	addr := net.JoinHostPort(s.env.HTTPHost, s.env.HTTPPort)
	slog.Info("starting server", "addr", addr)

	s.server = &http.Server{
		Addr:        addr,
		Handler:     s.Handler(),
		BaseContext: func(_ net.Listener) context.Context { return ctx },
	}
	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

type HealthChecker struct{}

func (hc *HealthChecker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (s *Server) interceptors() []connect.Interceptor {
	return []connect.Interceptor{
		clog.NewSlogConnectInterceptor(),
		cerr.NewConvertConnectErrorInterceptor(),
	}
}

func (s *Server) apiKeyMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" || r.URL.Path == "/grpc.health.v1.Health/Check" {
			next.ServeHTTP(w, r)
			return
		}
		apiKey := r.Header.Get("X-API-Key")
		if apiKey == "" {
			apiKey = strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		}
		if subtle.ConstantTimeCompare([]byte(apiKey), []byte(s.env.APIKey)) != 1 {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
