package labelguildv1connect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	labelguildv1 "github.com/kazz187/labelguild/api/labelguildv1"
)

const WorkspaceServiceName = "labelguild.v1.WorkspaceService"

const (
	WorkspaceServiceOpenWorkspaceProcedure       = "/labelguild.v1.WorkspaceService/OpenWorkspace"
	WorkspaceServiceGetWorkspaceProcedure        = "/labelguild.v1.WorkspaceService/GetWorkspace"
	WorkspaceServiceToggleChecklistItemProcedure = "/labelguild.v1.WorkspaceService/ToggleChecklistItem"
	WorkspaceServiceAddLabelProcedure            = "/labelguild.v1.WorkspaceService/AddLabel"
	WorkspaceServiceApplyAIPrelabelsProcedure    = "/labelguild.v1.WorkspaceService/ApplyAIPrelabels"
	WorkspaceServiceSelectImageProcedure         = "/labelguild.v1.WorkspaceService/SelectImage"
	WorkspaceServiceRequestSubmitProcedure       = "/labelguild.v1.WorkspaceService/RequestSubmit"
	WorkspaceServiceConfirmSubmitProcedure       = "/labelguild.v1.WorkspaceService/ConfirmSubmit"
	WorkspaceServiceCancelSubmitProcedure        = "/labelguild.v1.WorkspaceService/CancelSubmit"
	WorkspaceServiceCloseWorkspaceProcedure      = "/labelguild.v1.WorkspaceService/CloseWorkspace"
)

type WorkspaceServiceClient interface {
	OpenWorkspace(context.Context, *connect.Request[labelguildv1.OpenWorkspaceRequest]) (*connect.Response[labelguildv1.WorkspaceResponse], error)
	GetWorkspace(context.Context, *connect.Request[labelguildv1.SessionRequest]) (*connect.Response[labelguildv1.WorkspaceResponse], error)
	ToggleChecklistItem(context.Context, *connect.Request[labelguildv1.ToggleChecklistItemRequest]) (*connect.Response[labelguildv1.WorkspaceResponse], error)
	AddLabel(context.Context, *connect.Request[labelguildv1.AddLabelRequest]) (*connect.Response[labelguildv1.AddLabelResponse], error)
	ApplyAIPrelabels(context.Context, *connect.Request[labelguildv1.SessionRequest]) (*connect.Response[labelguildv1.WorkspaceResponse], error)
	SelectImage(context.Context, *connect.Request[labelguildv1.SelectImageRequest]) (*connect.Response[labelguildv1.WorkspaceResponse], error)
	RequestSubmit(context.Context, *connect.Request[labelguildv1.SessionRequest]) (*connect.Response[labelguildv1.WorkspaceResponse], error)
	ConfirmSubmit(context.Context, *connect.Request[labelguildv1.SessionRequest]) (*connect.Response[labelguildv1.WorkspaceResponse], error)
	CancelSubmit(context.Context, *connect.Request[labelguildv1.SessionRequest]) (*connect.Response[labelguildv1.WorkspaceResponse], error)
	CloseWorkspace(context.Context, *connect.Request[labelguildv1.SessionRequest]) (*connect.Response[labelguildv1.CloseWorkspaceResponse], error)
}

func NewWorkspaceServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) WorkspaceServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	session := func(procedure string) *connect.Client[labelguildv1.SessionRequest, labelguildv1.WorkspaceResponse] {
		return connect.NewClient[labelguildv1.SessionRequest, labelguildv1.WorkspaceResponse](httpClient, baseURL+procedure, opts...)
	}
	return &workspaceServiceClient{
		openWorkspace:       connect.NewClient[labelguildv1.OpenWorkspaceRequest, labelguildv1.WorkspaceResponse](httpClient, baseURL+WorkspaceServiceOpenWorkspaceProcedure, opts...),
		getWorkspace:        session(WorkspaceServiceGetWorkspaceProcedure),
		toggleChecklistItem: connect.NewClient[labelguildv1.ToggleChecklistItemRequest, labelguildv1.WorkspaceResponse](httpClient, baseURL+WorkspaceServiceToggleChecklistItemProcedure, opts...),
		addLabel:            connect.NewClient[labelguildv1.AddLabelRequest, labelguildv1.AddLabelResponse](httpClient, baseURL+WorkspaceServiceAddLabelProcedure, opts...),
		applyAIPrelabels:    session(WorkspaceServiceApplyAIPrelabelsProcedure),
		selectImage:         connect.NewClient[labelguildv1.SelectImageRequest, labelguildv1.WorkspaceResponse](httpClient, baseURL+WorkspaceServiceSelectImageProcedure, opts...),
		requestSubmit:       session(WorkspaceServiceRequestSubmitProcedure),
		confirmSubmit:       session(WorkspaceServiceConfirmSubmitProcedure),
		cancelSubmit:        session(WorkspaceServiceCancelSubmitProcedure),
		closeWorkspace:      connect.NewClient[labelguildv1.SessionRequest, labelguildv1.CloseWorkspaceResponse](httpClient, baseURL+WorkspaceServiceCloseWorkspaceProcedure, opts...),
	}
}

type workspaceServiceClient struct {
	openWorkspace       *connect.Client[labelguildv1.OpenWorkspaceRequest, labelguildv1.WorkspaceResponse]
	getWorkspace        *connect.Client[labelguildv1.SessionRequest, labelguildv1.WorkspaceResponse]
	toggleChecklistItem *connect.Client[labelguildv1.ToggleChecklistItemRequest, labelguildv1.WorkspaceResponse]
	addLabel            *connect.Client[labelguildv1.AddLabelRequest, labelguildv1.AddLabelResponse]
	applyAIPrelabels    *connect.Client[labelguildv1.SessionRequest, labelguildv1.WorkspaceResponse]
	selectImage         *connect.Client[labelguildv1.SelectImageRequest, labelguildv1.WorkspaceResponse]
	requestSubmit       *connect.Client[labelguildv1.SessionRequest, labelguildv1.WorkspaceResponse]
	confirmSubmit       *connect.Client[labelguildv1.SessionRequest, labelguildv1.WorkspaceResponse]
	cancelSubmit        *connect.Client[labelguildv1.SessionRequest, labelguildv1.WorkspaceResponse]
	closeWorkspace      *connect.Client[labelguildv1.SessionRequest, labelguildv1.CloseWorkspaceResponse]
}

func (c *workspaceServiceClient) OpenWorkspace(ctx context.Context, req *connect.Request[labelguildv1.OpenWorkspaceRequest]) (*connect.Response[labelguildv1.WorkspaceResponse], error) {
	return c.openWorkspace.CallUnary(ctx, req)
}

func (c *workspaceServiceClient) GetWorkspace(ctx context.Context, req *connect.Request[labelguildv1.SessionRequest]) (*connect.Response[labelguildv1.WorkspaceResponse], error) {
	return c.getWorkspace.CallUnary(ctx, req)
}

func (c *workspaceServiceClient) ToggleChecklistItem(ctx context.Context, req *connect.Request[labelguildv1.ToggleChecklistItemRequest]) (*connect.Response[labelguildv1.WorkspaceResponse], error) {
	return c.toggleChecklistItem.CallUnary(ctx, req)
}

func (c *workspaceServiceClient) AddLabel(ctx context.Context, req *connect.Request[labelguildv1.AddLabelRequest]) (*connect.Response[labelguildv1.AddLabelResponse], error) {
	return c.addLabel.CallUnary(ctx, req)
}

func (c *workspaceServiceClient) ApplyAIPrelabels(ctx context.Context, req *connect.Request[labelguildv1.SessionRequest]) (*connect.Response[labelguildv1.WorkspaceResponse], error) {
	return c.applyAIPrelabels.CallUnary(ctx, req)
}

func (c *workspaceServiceClient) SelectImage(ctx context.Context, req *connect.Request[labelguildv1.SelectImageRequest]) (*connect.Response[labelguildv1.WorkspaceResponse], error) {
	return c.selectImage.CallUnary(ctx, req)
}

func (c *workspaceServiceClient) RequestSubmit(ctx context.Context, req *connect.Request[labelguildv1.SessionRequest]) (*connect.Response[labelguildv1.WorkspaceResponse], error) {
	return c.requestSubmit.CallUnary(ctx, req)
}

func (c *workspaceServiceClient) ConfirmSubmit(ctx context.Context, req *connect.Request[labelguildv1.SessionRequest]) (*connect.Response[labelguildv1.WorkspaceResponse], error) {
	return c.confirmSubmit.CallUnary(ctx, req)
}

func (c *workspaceServiceClient) CancelSubmit(ctx context.Context, req *connect.Request[labelguildv1.SessionRequest]) (*connect.Response[labelguildv1.WorkspaceResponse], error) {
	return c.cancelSubmit.CallUnary(ctx, req)
}

func (c *workspaceServiceClient) CloseWorkspace(ctx context.Context, req *connect.Request[labelguildv1.SessionRequest]) (*connect.Response[labelguildv1.CloseWorkspaceResponse], error) {
	return c.closeWorkspace.CallUnary(ctx, req)
}

type WorkspaceServiceHandler interface {
	OpenWorkspace(context.Context, *connect.Request[labelguildv1.OpenWorkspaceRequest]) (*connect.Response[labelguildv1.WorkspaceResponse], error)
	GetWorkspace(context.Context, *connect.Request[labelguildv1.SessionRequest]) (*connect.Response[labelguildv1.WorkspaceResponse], error)
	ToggleChecklistItem(context.Context, *connect.Request[labelguildv1.ToggleChecklistItemRequest]) (*connect.Response[labelguildv1.WorkspaceResponse], error)
	AddLabel(context.Context, *connect.Request[labelguildv1.AddLabelRequest]) (*connect.Response[labelguildv1.AddLabelResponse], error)
	ApplyAIPrelabels(context.Context, *connect.Request[labelguildv1.SessionRequest]) (*connect.Response[labelguildv1.WorkspaceResponse], error)
	SelectImage(context.Context, *connect.Request[labelguildv1.SelectImageRequest]) (*connect.Response[labelguildv1.WorkspaceResponse], error)
	RequestSubmit(context.Context, *connect.Request[labelguildv1.SessionRequest]) (*connect.Response[labelguildv1.WorkspaceResponse], error)
	ConfirmSubmit(context.Context, *connect.Request[labelguildv1.SessionRequest]) (*connect.Response[labelguildv1.WorkspaceResponse], error)
	CancelSubmit(context.Context, *connect.Request[labelguildv1.SessionRequest]) (*connect.Response[labelguildv1.WorkspaceResponse], error)
	CloseWorkspace(context.Context, *connect.Request[labelguildv1.SessionRequest]) (*connect.Response[labelguildv1.CloseWorkspaceResponse], error)
}

func NewWorkspaceServiceHandler(svc WorkspaceServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	handlers := map[string]http.Handler{
		WorkspaceServiceOpenWorkspaceProcedure:       connect.NewUnaryHandler(WorkspaceServiceOpenWorkspaceProcedure, svc.OpenWorkspace, opts...),
		WorkspaceServiceGetWorkspaceProcedure:        connect.NewUnaryHandler(WorkspaceServiceGetWorkspaceProcedure, svc.GetWorkspace, opts...),
		WorkspaceServiceToggleChecklistItemProcedure: connect.NewUnaryHandler(WorkspaceServiceToggleChecklistItemProcedure, svc.ToggleChecklistItem, opts...),
		WorkspaceServiceAddLabelProcedure:            connect.NewUnaryHandler(WorkspaceServiceAddLabelProcedure, svc.AddLabel, opts...),
		WorkspaceServiceApplyAIPrelabelsProcedure:    connect.NewUnaryHandler(WorkspaceServiceApplyAIPrelabelsProcedure, svc.ApplyAIPrelabels, opts...),
		WorkspaceServiceSelectImageProcedure:         connect.NewUnaryHandler(WorkspaceServiceSelectImageProcedure, svc.SelectImage, opts...),
		WorkspaceServiceRequestSubmitProcedure:       connect.NewUnaryHandler(WorkspaceServiceRequestSubmitProcedure, svc.RequestSubmit, opts...),
		WorkspaceServiceConfirmSubmitProcedure:       connect.NewUnaryHandler(WorkspaceServiceConfirmSubmitProcedure, svc.ConfirmSubmit, opts...),
		WorkspaceServiceCancelSubmitProcedure:        connect.NewUnaryHandler(WorkspaceServiceCancelSubmitProcedure, svc.CancelSubmit, opts...),
		WorkspaceServiceCloseWorkspaceProcedure:      connect.NewUnaryHandler(WorkspaceServiceCloseWorkspaceProcedure, svc.CloseWorkspace, opts...),
	}
	return "/" + WorkspaceServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := handlers[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		h.ServeHTTP(w, r)
	})
}
