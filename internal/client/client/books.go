package client

import (
	"context"

	"github.com/dmitrijs2005/bookstore/internal/client/models"
	"github.com/dmitrijs2005/bookstore/internal/netx"
)

func (a *API) Books(ctx context.Context) ([]models.Book, error) {
	return getList[models.Book](ctx, a, "list books", "/api/books")
}

func (a *API) NewBooks(ctx context.Context) ([]models.Book, error) {
	return getList[models.Book](ctx, a, "list new books", "/api/books/new")
}

func (a *API) TrendingBooks(ctx context.Context) ([]models.Book, error) {
	return getList[models.Book](ctx, a, "list trending books", "/api/books/trending")
}

func (a *API) DiscountedBooks(ctx context.Context) ([]models.Book, error) {
	return getList[models.Book](ctx, a, "list discounted books", "/api/books/discounted")
}

func (a *API) Book(ctx context.Context, bookID int64) (*models.Book, error) {
	if err := requireID("book", bookID); err != nil {
		return nil, err
	}
	var b models.Book
	if err := a.get(ctx, "/api/books/"+id(bookID), &b); err != nil {
		return nil, wrap("get book", err)
	}
	return &b, nil
}

// CreateBook lists a book for sale, uploading the cover when ImagePath is set.
func (a *API) CreateBook(ctx context.Context, nb models.NewBook) (*models.Book, error) {
	if err := nb.Validate(); err != nil {
		return nil, err
	}

	form := netx.NewForm()
	for _, f := range nb.Fields() {
		form.Set(f[0], f[1])
	}
	if nb.ImagePath != "" {
		if err := form.AddFilePath("image", nb.ImagePath); err != nil {
			return nil, err
		}
	}

	var b models.Book
	if err := a.post(ctx, "/api/books", form, &b); err != nil {
		return nil, wrap("create book", err)
	}
	return &b, nil
}

func (a *API) UpdateBook(ctx context.Context, bookID int64, upd models.BookUpdate) (*models.Message, error) {
	if err := requireID("book", bookID); err != nil {
		return nil, err
	}
	if err := upd.Validate(); err != nil {
		return nil, err
	}
	var msg models.Message
	if err := a.put(ctx, "/api/books/"+id(bookID), upd, &msg); err != nil {
		return nil, wrap("update book", err)
	}
	return &msg, nil
}

func (a *API) DeleteBook(ctx context.Context, bookID int64) error {
	if err := requireID("book", bookID); err != nil {
		return err
	}
	return wrap("delete book", a.delete(ctx, "/api/books/"+id(bookID), nil))
}

// MyBooks lists the books the current user sells.
func (a *API) MyBooks(ctx context.Context) ([]models.Book, error) {
	return getList[models.Book](ctx, a, "list my books", "/api/my-books")
}
