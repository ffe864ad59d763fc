package cli

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/bookstore/internal/client/models"
)

// cmdHome shows the landing page: new arrivals followed by discounts.
func (a *App) cmdHome(ctx context.Context, _ []string) error {
	if err := a.cmdNewBooks(ctx, nil); err != nil {
		return err
	}
	return a.cmdDiscounted(ctx, nil)
}

func (a *App) cmdBooks(ctx context.Context, _ []string) error {
	return a.showBooks("books", func() ([]models.Book, error) { return a.api.Books(ctx) })
}

func (a *App) cmdNewBooks(ctx context.Context, _ []string) error {
	a.println(titleStyle.Render("New arrivals"))
	return a.showBooks("new books", func() ([]models.Book, error) { return a.api.NewBooks(ctx) })
}

func (a *App) cmdTrending(ctx context.Context, _ []string) error {
	a.println(titleStyle.Render("Trending"))
	return a.showBooks("trending books", func() ([]models.Book, error) { return a.api.TrendingBooks(ctx) })
}

func (a *App) cmdDiscounted(ctx context.Context, _ []string) error {
	a.println(titleStyle.Render("Discounted"))
	return a.showBooks("discounted books", func() ([]models.Book, error) { return a.api.DiscountedBooks(ctx) })
}

func (a *App) showBooks(what string, fn func() ([]models.Book, error)) error {
	books, err := load(a, what, fn)
	if err != nil {
		return err
	}
	a.renderBooks(books)
	return nil
}

func (a *App) cmdBook(ctx context.Context, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	book, err := load(a, "book", func() (*models.Book, error) { return a.api.Book(ctx, id) })
	if err != nil {
		return err
	}
	reviews, err := load(a, "reviews", func() ([]models.Review, error) { return a.api.Reviews(ctx, id) })
	if err != nil {
		return err
	}
	a.renderBook(book, reviews)
	return nil
}

func (a *App) cmdCategories(ctx context.Context, _ []string) error {
	cats, err := load(a, "categories", func() ([]string, error) { return a.api.Categories(ctx) })
	if err != nil {
		return err
	}
	if len(cats) == 0 {
		a.println("No categories.")
		return nil
	}
	a.println(strings.Join(cats, "\n"))
	return nil
}

func (a *App) cmdPublishers(ctx context.Context, _ []string) error {
	pubs, err := load(a, "publishers", func() ([]models.Publisher, error) { return a.api.Publishers(ctx) })
	if err != nil {
		return err
	}
	a.renderPublishers(pubs)
	return nil
}
