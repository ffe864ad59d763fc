package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/bookstore/internal/client/models"
)

// API is the typed bookstore REST surface. Every call goes through the
// shared Dispatcher.
type API struct {
	d *Dispatcher
}

func NewAPI(d *Dispatcher) *API {
	return &API{d: d}
}

func (a *API) Dispatcher() *Dispatcher {
	return a.d
}

func (a *API) Ping(ctx context.Context) error {
	return a.d.Ping(ctx)
}

func (a *API) get(ctx context.Context, path string, out any) error {
	return a.d.Do(ctx, http.MethodGet, path, nil, out)
}

func (a *API) post(ctx context.Context, path string, body, out any) error {
	return a.d.Do(ctx, http.MethodPost, path, body, out)
}

func (a *API) put(ctx context.Context, path string, body, out any) error {
	return a.d.Do(ctx, http.MethodPut, path, body, out)
}

func (a *API) delete(ctx context.Context, path string, out any) error {
	return a.d.Do(ctx, http.MethodDelete, path, nil, out)
}

func id(v int64) string {
	return strconv.FormatInt(v, 10)
}

func requireID(name string, v int64) error {
	if v <= 0 {
		return models.Invalid(name, "must be a positive id")
	}
	return nil
}

func escape(s string) string {
	return url.PathEscape(s)
}

func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", op, err)
}

func getList[T any](ctx context.Context, a *API, op, path string) ([]T, error) {
	var out []T
	if err := a.get(ctx, path, &out); err != nil {
		return nil, wrap(op, err)
	}
	return out, nil
}
