package client

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/bookstore/internal/client/models"
)

func (a *API) Categories(ctx context.Context) ([]string, error) {
	return getList[string](ctx, a, "list categories", "/api/categories")
}

func (a *API) AddCategory(ctx context.Context, name string) error {
	if strings.TrimSpace(name) == "" {
		return models.Invalid("category", "is required")
	}
	body := map[string]string{"name": name}
	return wrap("add category", a.post(ctx, "/api/categories", body, nil))
}

func (a *API) DeleteCategory(ctx context.Context, name string) error {
	if strings.TrimSpace(name) == "" {
		return models.Invalid("category", "is required")
	}
	return wrap("delete category", a.delete(ctx, "/api/categories/"+escape(name), nil))
}

func (a *API) Publishers(ctx context.Context) ([]models.Publisher, error) {
	return getList[models.Publisher](ctx, a, "list publishers", "/api/publishers")
}

func (a *API) CreatePublisher(ctx context.Context, p models.NewPublisher) (*models.Publisher, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	var pub models.Publisher
	if err := a.post(ctx, "/api/publishers", p, &pub); err != nil {
		return nil, wrap("create publisher", err)
	}
	return &pub, nil
}

func (a *API) DeletePublisher(ctx context.Context, publisherID int64) error {
	if err := requireID("publisher", publisherID); err != nil {
		return err
	}
	return wrap("delete publisher", a.delete(ctx, "/api/publishers/"+id(publisherID), nil))
}
