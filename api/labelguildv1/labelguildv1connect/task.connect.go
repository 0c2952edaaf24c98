// Package labelguildv1connect wires the labelguild.v1 services to connect
// handlers and clients.
package labelguildv1connect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	labelguildv1 "github.com/kazz187/labelguild/api/labelguildv1"
)

const TaskServiceName = "labelguild.v1.TaskService"

const (
	TaskServiceListTasksProcedure   = "/labelguild.v1.TaskService/ListTasks"
	TaskServiceGetTaskProcedure     = "/labelguild.v1.TaskService/GetTask"
	TaskServiceAssignTaskProcedure  = "/labelguild.v1.TaskService/AssignTask"
	TaskServiceReturnTaskProcedure  = "/labelguild.v1.TaskService/ReturnTask"
	TaskServiceApproveTaskProcedure = "/labelguild.v1.TaskService/ApproveTask"
)

func clientOptions(opts []connect.ClientOption) []connect.ClientOption {
	return append([]connect.ClientOption{connect.WithCodec(labelguildv1.JSONCodec{})}, opts...)
}

func handlerOptions(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{connect.WithCodec(labelguildv1.JSONCodec{})}, opts...)
}

type TaskServiceClient interface {
	ListTasks(context.Context, *connect.Request[labelguildv1.ListTasksRequest]) (*connect.Response[labelguildv1.ListTasksResponse], error)
	GetTask(context.Context, *connect.Request[labelguildv1.GetTaskRequest]) (*connect.Response[labelguildv1.GetTaskResponse], error)
	AssignTask(context.Context, *connect.Request[labelguildv1.AssignTaskRequest]) (*connect.Response[labelguildv1.AssignTaskResponse], error)
	ReturnTask(context.Context, *connect.Request[labelguildv1.ReturnTaskRequest]) (*connect.Response[labelguildv1.ReturnTaskResponse], error)
	ApproveTask(context.Context, *connect.Request[labelguildv1.ApproveTaskRequest]) (*connect.Response[labelguildv1.ApproveTaskResponse], error)
}

func NewTaskServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) TaskServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &taskServiceClient{
		listTasks:   connect.NewClient[labelguildv1.ListTasksRequest, labelguildv1.ListTasksResponse](httpClient, baseURL+TaskServiceListTasksProcedure, opts...),
		getTask:     connect.NewClient[labelguildv1.GetTaskRequest, labelguildv1.GetTaskResponse](httpClient, baseURL+TaskServiceGetTaskProcedure, opts...),
		assignTask:  connect.NewClient[labelguildv1.AssignTaskRequest, labelguildv1.AssignTaskResponse](httpClient, baseURL+TaskServiceAssignTaskProcedure, opts...),
		returnTask:  connect.NewClient[labelguildv1.ReturnTaskRequest, labelguildv1.ReturnTaskResponse](httpClient, baseURL+TaskServiceReturnTaskProcedure, opts...),
		approveTask: connect.NewClient[labelguildv1.ApproveTaskRequest, labelguildv1.ApproveTaskResponse](httpClient, baseURL+TaskServiceApproveTaskProcedure, opts...),
	}
}

type taskServiceClient struct {
	listTasks   *connect.Client[labelguildv1.ListTasksRequest, labelguildv1.ListTasksResponse]
	getTask     *connect.Client[labelguildv1.GetTaskRequest, labelguildv1.GetTaskResponse]
	assignTask  *connect.Client[labelguildv1.AssignTaskRequest, labelguildv1.AssignTaskResponse]
	returnTask  *connect.Client[labelguildv1.ReturnTaskRequest, labelguildv1.ReturnTaskResponse]
	approveTask *connect.Client[labelguildv1.ApproveTaskRequest, labelguildv1.ApproveTaskResponse]
}

func (c *taskServiceClient) ListTasks(ctx context.Context, req *connect.Request[labelguildv1.ListTasksRequest]) (*connect.Response[labelguildv1.ListTasksResponse], error) {
	return c.listTasks.CallUnary(ctx, req)
}

func (c *taskServiceClient) GetTask(ctx context.Context, req *connect.Request[labelguildv1.GetTaskRequest]) (*connect.Response[labelguildv1.GetTaskResponse], error) {
	return c.getTask.CallUnary(ctx, req)
}

func (c *taskServiceClient) AssignTask(ctx context.Context, req *connect.Request[labelguildv1.AssignTaskRequest]) (*connect.Response[labelguildv1.AssignTaskResponse], error) {
	return c.assignTask.CallUnary(ctx, req)
}

func (c *taskServiceClient) ReturnTask(ctx context.Context, req *connect.Request[labelguildv1.ReturnTaskRequest]) (*connect.Response[labelguildv1.ReturnTaskResponse], error) {
	return c.returnTask.CallUnary(ctx, req)
}

func (c *taskServiceClient) ApproveTask(ctx context.Context, req *connect.Request[labelguildv1.ApproveTaskRequest]) (*connect.Response[labelguildv1.ApproveTaskResponse], error) {
	return c.approveTask.CallUnary(ctx, req)
}

type TaskServiceHandler interface {
	ListTasks(context.Context, *connect.Request[labelguildv1.ListTasksRequest]) (*connect.Response[labelguildv1.ListTasksResponse], error)
	GetTask(context.Context, *connect.Request[labelguildv1.GetTaskRequest]) (*connect.Response[labelguildv1.GetTaskResponse], error)
	AssignTask(context.Context, *connect.Request[labelguildv1.AssignTaskRequest]) (*connect.Response[labelguildv1.AssignTaskResponse], error)
	ReturnTask(context.Context, *connect.Request[labelguildv1.ReturnTaskRequest]) (*connect.Response[labelguildv1.ReturnTaskResponse], error)
	ApproveTask(context.Context, *connect.Request[labelguildv1.ApproveTaskRequest]) (*connect.Response[labelguildv1.ApproveTaskResponse], error)
}

func NewTaskServiceHandler(svc TaskServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	readOpts := append(opts[:len(opts):len(opts)], connect.WithIdempotency(connect.IdempotencyNoSideEffects))
	listTasks := connect.NewUnaryHandler(TaskServiceListTasksProcedure, svc.ListTasks, readOpts...)
	getTask := connect.NewUnaryHandler(TaskServiceGetTaskProcedure, svc.GetTask, readOpts...)
	assignTask := connect.NewUnaryHandler(TaskServiceAssignTaskProcedure, svc.AssignTask, opts...)
	returnTask := connect.NewUnaryHandler(TaskServiceReturnTaskProcedure, svc.ReturnTask, opts...)
	approveTask := connect.NewUnaryHandler(TaskServiceApproveTaskProcedure, svc.ApproveTask, opts...)
	return "/" + TaskServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case TaskServiceListTasksProcedure:
			listTasks.ServeHTTP(w, r)
		case TaskServiceGetTaskProcedure:
			getTask.ServeHTTP(w, r)
		case TaskServiceAssignTaskProcedure:
			assignTask.ServeHTTP(w, r)
		case TaskServiceReturnTaskProcedure:
			returnTask.ServeHTTP(w, r)
		case TaskServiceApproveTaskProcedure:
			approveTask.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}
