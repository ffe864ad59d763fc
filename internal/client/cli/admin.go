package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/bookstore/internal/client/models"
)

// cmdAdmin shows one back-office section; books is the default.
func (a *App) cmdAdmin(ctx context.Context, args []string) error {
	section := "books"
	if len(args) > 0 {
		section = args[0]
	}

	switch section {
	case "books":
		return a.showBooks("books", func() ([]models.Book, error) { return a.api.AdminBooks(ctx) })
	case "users":
		users, err := load(a, "users", func() ([]models.AdminUser, error) { return a.api.AdminUsers(ctx) })
		if err != nil {
			return err
		}
		a.renderUsers(users)
		return nil
	case "orders":
		orders, err := load(a, "orders", func() ([]models.Order, error) { return a.api.AdminOrders(ctx) })
		if err != nil {
			return err
		}
		a.renderOrders(orders, true)
		return nil
	default:
		return fmt.Errorf("unknown admin section %q (books, users or orders)", section)
	}
}

func (a *App) cmdOrderStatus(ctx context.Context, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if err := loadErr(a, "order", func() error { return a.api.UpdateOrderStatus(ctx, id, args[1]) }); err != nil {
		return err
	}
	a.printf("Order #%d is now %s.\n", id, args[1])
	return nil
}

// cmdEditBook prompts for every editable field; empty answers keep the
// current value.
func (a *App) cmdEditBook(ctx context.Context, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	var upd models.BookUpdate
	if upd.Title, err = GetOptionalText(a.reader, "Title", a.out); err != nil {
		return err
	}
	if upd.Author, err = GetOptionalText(a.reader, "Author", a.out); err != nil {
		return err
	}
	price, err := GetOptionalText(a.reader, "Price", a.out)
	if err != nil {
		return err
	}
	if price != nil {
		p, err := parsePrice(*price)
		if err != nil {
			return err
		}
		upd.Price = &p
	}
	stock, err := GetOptionalText(a.reader, "Stock", a.out)
	if err != nil {
		return err
	}
	if stock != nil {
		n, err := parseCount(*stock)
		if err != nil {
			return err
		}
		upd.Stock = &n
	}
	if upd.Category, err = GetOptionalText(a.reader, "Category", a.out); err != nil {
		return err
	}
	if upd.Description, err = GetOptionalText(a.reader, "Description", a.out); err != nil {
		return err
	}

	msg, err := load(a, "book", func() (*models.Message, error) { return a.api.UpdateBook(ctx, id, upd) })
	if err != nil {
		return err
	}
	if msg.Message != "" {
		a.println(msg.Message)
	} else {
		a.println("Book updated.")
	}
	return nil
}

func (a *App) cmdDeleteBook(ctx context.Context, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	ok, err := Confirm(a.reader, fmt.Sprintf("Delete book #%d?", id), a.out)
	if err != nil || !ok {
		return err
	}
	if err := loadErr(a, "book", func() error { return a.api.DeleteBook(ctx, id) }); err != nil {
		return err
	}
	a.println("Book deleted.")
	return nil
}

func (a *App) cmdAddPublisher(ctx context.Context, _ []string) error {
	var p models.NewPublisher
	var err error
	if p.Name, err = getSimpleText(a.reader, "Publisher name", a.out); err != nil {
		return err
	}
	if p.Description, err = GetMultiline(a.reader, "Description (optional)", a.out); err != nil {
		return err
	}

	pub, err := load(a, "publisher", func() (*models.Publisher, error) { return a.api.CreatePublisher(ctx, p) })
	if err != nil {
		return err
	}
	a.printf("Publisher #%d created.\n", pub.ID)
	return nil
}

func (a *App) cmdDeletePublisher(ctx context.Context, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if err := loadErr(a, "publisher", func() error { return a.api.DeletePublisher(ctx, id) }); err != nil {
		return err
	}
	a.println("Publisher deleted.")
	return nil
}

func (a *App) cmdAddCategory(ctx context.Context, args []string) error {
	name := strings.Join(args, " ")
	if err := loadErr(a, "category", func() error { return a.api.AddCategory(ctx, name) }); err != nil {
		return err
	}
	a.printf("Category %q added.\n", name)
	return nil
}

func (a *App) cmdDeleteCategory(ctx context.Context, args []string) error {
	name := strings.Join(args, " ")
	if err := loadErr(a, "category", func() error { return a.api.DeleteCategory(ctx, name) }); err != nil {
		return err
	}
	a.printf("Category %q deleted.\n", name)
	return nil
}
