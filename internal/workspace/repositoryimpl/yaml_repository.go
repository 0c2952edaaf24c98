package repositoryimpl

import (
	"context"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/kazz187/labelguild/internal/workspace"
	"github.com/kazz187/labelguild/pkg/cerr"
	"github.com/kazz187/labelguild/pkg/storage"
)

const draftsPrefix = "workspaces"

var _ workspace.DraftRepository = (*YAMLRepository)(nil)

type YAMLRepository struct {
	storage storage.Storage
}

func NewYAMLRepository(s storage.Storage) *YAMLRepository {
	return &YAMLRepository{storage: s}
}

func path(taskID string) string {
	return fmt.Sprintf("%s/%s.yaml", draftsPrefix, taskID)
}

func resource(taskID string) cerr.Resource {
	return cerr.WorkspaceDraft(taskID, path(taskID))
}

func (r *YAMLRepository) Get(ctx context.Context, taskID string) (*workspace.Draft, error) {
	data, err := r.storage.Read(ctx, path(taskID))
	if err != nil {
		return nil, cerr.WrapStorageReadError(resource(taskID), err)
	}
	var d workspace.Draft
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, cerr.NewError(cerr.Internal, "server error", fmt.Errorf("failed to unmarshal workspace draft: %w", err))
	}
	return &d, nil
}

func (r *YAMLRepository) Save(ctx context.Context, d *workspace.Draft) error {
	data, err := yaml.Marshal(d)
	if err != nil {
		return cerr.NewError(cerr.Internal, "server error", fmt.Errorf("failed to marshal workspace draft: %w", err))
	}
	if err := r.storage.Write(ctx, path(d.TaskID), data); err != nil {
		return cerr.WrapStorageWriteError(resource(d.TaskID), err)
	}
	return nil
}

func (r *YAMLRepository) Delete(ctx context.Context, taskID string) error {
	if err := r.storage.Delete(ctx, path(taskID)); err != nil {
		return cerr.WrapStorageDeleteError(resource(taskID), err)
	}
	return nil
}
