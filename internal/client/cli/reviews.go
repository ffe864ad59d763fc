package cli

import (
	"context"

	"github.com/dmitrijs2005/bookstore/internal/client/models"
)

func (a *App) cmdReviews(ctx context.Context, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	reviews, err := load(a, "reviews", func() ([]models.Review, error) { return a.api.Reviews(ctx, id) })
	if err != nil {
		return err
	}
	a.renderReviews(reviews)
	return nil
}

func (a *App) cmdReview(ctx context.Context, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	rating, err := getSimpleText(a.reader, "Rating (1-5)", a.out)
	if err != nil {
		return err
	}
	var r models.NewReview
	if r.Rating, err = parseCount(rating); err != nil {
		return err
	}
	if r.Comment, err = GetMultiline(a.reader, "Comment", a.out); err != nil {
		return err
	}

	if err := loadErr(a, "review", func() error { return a.api.AddReview(ctx, id, r) }); err != nil {
		return err
	}
	a.println("Review added.")
	return nil
}

func (a *App) cmdUnreview(ctx context.Context, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if err := loadErr(a, "review", func() error { return a.api.DeleteMyReview(ctx, id) }); err != nil {
		return err
	}
	a.println("Review deleted.")
	return nil
}

func (a *App) cmdMyReviews(ctx context.Context, _ []string) error {
	reviews, err := load(a, "reviews", func() ([]models.Review, error) { return a.api.MyReviews(ctx) })
	if err != nil {
		return err
	}
	a.renderReviews(reviews)
	return nil
}

func (a *App) cmdDeleteReview(ctx context.Context, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if err := loadErr(a, "review", func() error { return a.api.DeleteReview(ctx, id) }); err != nil {
		return err
	}
	a.println("Review deleted.")
	return nil
}
