package client

import (
	"context"

	"github.com/dmitrijs2005/bookstore/internal/client/models"
)

func (a *API) Reviews(ctx context.Context, bookID int64) ([]models.Review, error) {
	if err := requireID("book", bookID); err != nil {
		return nil, err
	}
	return getList[models.Review](ctx, a, "list reviews", "/api/books/"+id(bookID)+"/reviews")
}

func (a *API) AddReview(ctx context.Context, bookID int64, r models.NewReview) error {
	if err := requireID("book", bookID); err != nil {
		return err
	}
	if err := r.Validate(); err != nil {
		return err
	}
	return wrap("add review", a.post(ctx, "/api/books/"+id(bookID)+"/reviews", r, nil))
}

// DeleteMyReview removes the current user's review of a book.
func (a *API) DeleteMyReview(ctx context.Context, bookID int64) error {
	if err := requireID("book", bookID); err != nil {
		return err
	}
	return wrap("delete review", a.delete(ctx, "/api/books/"+id(bookID)+"/reviews", nil))
}

func (a *API) MyReviews(ctx context.Context) ([]models.Review, error) {
	return getList[models.Review](ctx, a, "my reviews", "/api/user/reviews")
}

func (a *API) DeleteReview(ctx context.Context, reviewID int64) error {
	if err := requireID("review", reviewID); err != nil {
		return err
	}
	return wrap("delete review", a.delete(ctx, "/api/reviews/"+id(reviewID), nil))
}
