package cerr

import (
	"errors"
	"fmt"

	"github.com/kazz187/labelguild/pkg/storage"
)

// Resource names a stored object in error messages. Path only reaches the
// logs; callers see Kind and ID.
type Resource struct {
	Kind string
	ID   string
	Path string
}

func TaskCollection(path string) Resource {
	return Resource{Kind: "task collection", Path: path}
}

func WorkspaceDraft(taskID, path string) Resource {
	return Resource{Kind: "workspace draft", ID: taskID, Path: path}
}

func (r Resource) String() string {
	if r.ID == "" {
		return r.Kind
	}
	return fmt.Sprintf("%s for %s", r.Kind, r.ID)
}

func (r Resource) wrap(op string, err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return NewError(NotFound, fmt.Sprintf("%s not found", r), err)
	}
	return NewError(Internal, "server error", fmt.Errorf("failed to %s %s at %s: %w", op, r, r.Path, err))
}

func WrapStorageReadError(r Resource, err error) error {
	return r.wrap("read", err)
}

func WrapStorageWriteError(r Resource, err error) error {
	return NewError(Internal, "server error", fmt.Errorf("failed to write %s at %s: %w", r, r.Path, err))
}

func WrapStorageDeleteError(r Resource, err error) error {
	return r.wrap("delete", err)
}
