package studio

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	internalTypes "github.com/eshaffer321/studio-go/internal/types"
	"github.com/pkg/errors"
)

// resource is the CRUD plumbing shared by the business services
type resource[T any] struct {
	client *Client
	path   string
	name   string
}

func newResource[T any](client *Client, path, name string) resource[T] {
	return resource[T]{client: client, path: path, name: name}
}

func (r resource[T]) itemPath(id string) string {
	return r.path + "/" + url.PathEscape(id)
}

func (r resource[T]) list(ctx context.Context, query url.Values) ([]*T, error) {
	return r.listAt(ctx, r.path, query)
}

func (r resource[T]) listAt(ctx context.Context, path string, query url.Values) ([]*T, error) {
	call := internalTypes.NewCall(http.MethodGet, path, nil)
	call.Query = query

	var items []*T
	if err := r.client.request(ctx, call, &items); err != nil {
		return nil, errors.Wrapf(err, "failed to list %ss", r.name)
	}
	return items, nil
}

func (r resource[T]) get(ctx context.Context, id string) (*T, error) {
	if id == "" {
		return nil, fmt.Errorf("%s id is required", r.name)
	}

	var item T
	if err := r.client.request(ctx, internalTypes.NewCall(http.MethodGet, r.itemPath(id), nil), &item); err != nil {
		return nil, errors.Wrapf(err, "failed to get %s %s", r.name, id)
	}
	return &item, nil
}

func (r resource[T]) create(ctx context.Context, params interface{}) (*T, error) {
	var item T
	if err := r.client.request(ctx, internalTypes.NewCall(http.MethodPost, r.path, params), &item); err != nil {
		return nil, errors.Wrapf(err, "failed to create %s", r.name)
	}
	return &item, nil
}

func (r resource[T]) update(ctx context.Context, id string, params interface{}) (*T, error) {
	if id == "" {
		return nil, fmt.Errorf("%s id is required", r.name)
	}
	return r.send(ctx, "update", http.MethodPut, r.itemPath(id), params)
}

// send issues a write whose failure reads "failed to <action> <name>"
func (r resource[T]) send(ctx context.Context, action, method, path string, params interface{}) (*T, error) {
	var item T
	if err := r.client.request(ctx, internalTypes.NewCall(method, path, params), &item); err != nil {
		return nil, errors.Wrapf(err, "failed to %s %s", action, r.name)
	}
	return &item, nil
}

func (r resource[T]) delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%s id is required", r.name)
	}
	if err := r.client.request(ctx, internalTypes.NewCall(http.MethodDelete, r.itemPath(id), nil), nil); err != nil {
		return errors.Wrapf(err, "failed to delete %s %s", r.name, id)
	}
	return nil
}
