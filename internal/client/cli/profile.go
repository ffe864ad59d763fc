package cli

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/bookstore/internal/client/models"
)

func (a *App) cmdProfile(ctx context.Context, _ []string) error {
	info, err := load(a, "profile", func() (*models.UserInfo, error) { return a.profile.Info(ctx) })
	if err != nil {
		return err
	}

	a.println(titleStyle.Render(info.Name))
	a.printf("Username: %s\n", info.Username)
	a.printf("Email:    %s\n", info.Email)
	a.printf("Balance:  %s\n", money(info.Balance))
	a.printf("Books:    %d\n", info.BookCount)
	a.printf("Orders:   %d\n", info.OrderCount)
	if info.Avatar != "" {
		a.printf("Avatar:   %s\n", info.Avatar)
	}
	return nil
}

func (a *App) cmdSetName(ctx context.Context, args []string) error {
	name := strings.Join(args, " ")
	u, err := load(a, "profile", func() (models.User, error) { return a.profile.Rename(ctx, name) })
	if err != nil {
		return err
	}
	a.printf("Name changed to %s.\n", u.Name)
	return nil
}

func (a *App) cmdRename(ctx context.Context, args []string) error {
	u, err := load(a, "profile", func() (models.User, error) { return a.profile.ChangeUsername(ctx, args[0]) })
	if err != nil {
		return err
	}
	a.printf("Username changed to %s.\n", u.Username)
	return nil
}

func (a *App) cmdAvatar(ctx context.Context, args []string) error {
	u, err := load(a, "avatar", func() (models.User, error) { return a.profile.UploadAvatar(ctx, args[0]) })
	if err != nil {
		return err
	}
	a.printf("Avatar updated: %s\n", u.Avatar)
	return nil
}

func (a *App) cmdMyBooks(ctx context.Context, _ []string) error {
	return a.showBooks("your books", func() ([]models.Book, error) { return a.api.MyBooks(ctx) })
}

// cmdSell walks through the new-book form. A publisher id may be given,
// otherwise the typed name is created along with the book.
func (a *App) cmdSell(ctx context.Context, _ []string) error {
	var nb models.NewBook
	var err error

	if nb.Title, err = getSimpleText(a.reader, "Title", a.out); err != nil {
		return err
	}
	if nb.Author, err = getSimpleText(a.reader, "Author", a.out); err != nil {
		return err
	}
	pub, err := getSimpleText(a.reader, "Publisher (id or new name)", a.out)
	if err != nil {
		return err
	}
	if id, err := parseID(pub); err == nil {
		nb.PublisherID = id
	} else {
		nb.NewPublisher = pub
	}

	price, err := getSimpleText(a.reader, "Price", a.out)
	if err != nil {
		return err
	}
	if nb.Price, err = parsePrice(price); err != nil {
		return err
	}
	stock, err := getSimpleText(a.reader, "Stock", a.out)
	if err != nil {
		return err
	}
	if nb.Stock, err = parseCount(stock); err != nil {
		return err
	}

	if nb.Category, err = getSimpleText(a.reader, "Category", a.out); err != nil {
		return err
	}
	if nb.Description, err = GetMultiline(a.reader, "Description", a.out); err != nil {
		return err
	}
	if nb.ImagePath, err = getSimpleText(a.reader, "Cover image path (optional)", a.out); err != nil {
		return err
	}

	book, err := load(a, "book", func() (*models.Book, error) { return a.api.CreateBook(ctx, nb) })
	if err != nil {
		return err
	}
	a.printf("Book #%d listed.\n", book.ID)
	return nil
}

func (a *App) cmdUnsell(ctx context.Context, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if err := loadErr(a, "book", func() error { return a.api.DeleteBook(ctx, id) }); err != nil {
		return err
	}
	a.println("Book removed.")
	return nil
}

func (a *App) cmdWishlist(ctx context.Context, _ []string) error {
	items, err := load(a, "wishlist", func() ([]models.WishlistItem, error) { return a.api.Wishlist(ctx) })
	if err != nil {
		return err
	}
	if len(items) == 0 {
		a.println("Your wishlist is empty.")
		return nil
	}
	books := make([]models.Book, 0, len(items))
	for _, it := range items {
		books = append(books, it.Book)
	}
	a.renderBooks(books)
	return nil
}

func (a *App) cmdWish(ctx context.Context, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	msg, err := load(a, "wishlist", func() (*models.Message, error) { return a.api.ToggleWishlist(ctx, id) })
	if err != nil {
		return err
	}
	if msg.Message != "" {
		a.println(msg.Message)
	}
	return nil
}
