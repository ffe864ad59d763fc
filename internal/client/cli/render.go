package cli

import (
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/dmitrijs2005/bookstore/internal/client/client"
	"github.com/dmitrijs2005/bookstore/internal/client/models"
)

// loadingDelay is how long a request may run before "Loading..." is shown.
var loadingDelay = 250 * time.Millisecond

// load runs fn and prints a loading line if it has not returned within
// loadingDelay.
func load[T any](a *App, what string, fn func() (T, error)) (T, error) {
	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		t := time.NewTimer(loadingDelay)
		defer t.Stop()
		select {
		case <-t.C:
			a.println(mutedStyle.Render("Loading " + what + "..."))
		case <-done:
		}
	}()

	v, err := fn()
	close(done)
	wg.Wait()
	return v, err
}

func loadErr(a *App, what string, fn func() error) error {
	_, err := load(a, what, func() (struct{}, error) { return struct{}{}, fn() })
	return err
}

// printErr shows err the way a user should see it. Messages from the
// service are shown verbatim.
func (a *App) printErr(err error) {
	var apiErr *client.APIError
	var fieldErr *models.FieldError
	switch {
	case errors.As(err, &apiErr):
		a.println(errorStyle.Render("Error: " + apiErr.Error()))
	case errors.As(err, &fieldErr):
		a.println(errorStyle.Render("Error: " + fieldErr.Error()))
	case errors.Is(err, client.ErrUnavailable):
		a.println(errorStyle.Render("Error: the bookstore service is unavailable, please try again later"))
	default:
		a.println(errorStyle.Render("Error: " + err.Error()))
	}
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(mutedStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return titleStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers(headers...)
}

func money(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

func itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}

func (a *App) renderBooks(books []models.Book) {
	if len(books) == 0 {
		a.println("No books found.")
		return
	}
	t := newTable("ID", "Title", "Author", "Price", "Stock", "Category")
	for _, b := range books {
		price := money(b.Price)
		if b.Discounted() {
			price += " " + mutedStyle.Render("(was "+money(b.OriginalPrice)+")")
		}
		t.Row(itoa(b.ID), b.Title, b.Author, price, strconv.Itoa(b.Stock), b.Category)
	}
	a.println(t.Render())
}

func (a *App) renderBook(b *models.Book, reviews []models.Review) {
	a.println(titleStyle.Render(b.Title))
	a.printf("by %s\n", b.Author)
	if b.Publisher != nil {
		a.printf("Publisher: %s\n", b.Publisher.Name)
	}
	if b.Category != "" {
		a.printf("Category: %s\n", b.Category)
	}
	a.printf("Price: %s", money(b.Price))
	if b.Discounted() {
		a.printf(" (was %s)", money(b.OriginalPrice))
	}
	a.printf("\nIn stock: %d\n", b.Stock)
	if b.Seller != nil {
		name := b.Seller.Username
		if name == "" {
			name = b.Seller.Name
		}
		a.printf("Sold by: %s\n", name)
	}
	if b.Description != "" {
		a.println()
		a.println(b.Description)
	}

	a.println()
	if len(reviews) == 0 {
		a.println("No reviews yet.")
		return
	}
	a.printf("Reviews (%d, average %.1f):\n", len(reviews), models.AverageRating(reviews))
	a.renderReviews(reviews)
}

func (a *App) renderReviews(reviews []models.Review) {
	if len(reviews) == 0 {
		a.println("No reviews.")
		return
	}
	t := newTable("ID", "Book", "User", "Rating", "Comment", "Date")
	for _, r := range reviews {
		book := ""
		if r.Book != nil {
			book = r.Book.Name
		}
		t.Row(itoa(r.ID), book, r.User.Username, stars(r.Rating), r.Comment, r.CreatedAt)
	}
	a.println(t.Render())
}

func stars(n int) string {
	if n < 0 {
		n = 0
	}
	if n > 5 {
		n = 5
	}
	s := ""
	for i := 0; i < 5; i++ {
		if i < n {
			s += "*"
		} else {
			s += "."
		}
	}
	return s
}

func (a *App) renderCart(items []models.CartItem) {
	if len(items) == 0 {
		a.println("Your cart is empty.")
		return
	}
	t := newTable("Item", "Book", "Price", "Qty", "Total")
	for _, it := range items {
		t.Row(itoa(it.ID), it.Book.Title, money(it.Book.Price), strconv.Itoa(it.Quantity), money(it.Total))
	}
	a.println(t.Render())
	a.printf("Total: %s\n", money(models.CartTotal(items)))
}

func (a *App) renderOrders(orders []models.Order, withUser bool) {
	if len(orders) == 0 {
		a.println("No orders yet.")
		return
	}
	headers := []string{"Order", "Date", "Status", "Items", "Total"}
	if withUser {
		headers = append(headers, "User")
	}
	t := newTable(headers...)
	for _, o := range orders {
		items := ""
		for i, it := range o.Items {
			if i > 0 {
				items += ", "
			}
			items += fmt.Sprintf("%s x%d", it.BookTitle, it.Quantity)
		}
		row := []string{itoa(o.ID), o.CreatedAt, string(o.Status), items, money(o.TotalAmount)}
		if withUser {
			user := ""
			if o.User != nil {
				user = o.User.Name
			}
			row = append(row, user)
		}
		t.Row(row...)
	}
	a.println(t.Render())
}

func (a *App) renderUsers(users []models.AdminUser) {
	if len(users) == 0 {
		a.println("No users.")
		return
	}
	t := newTable("ID", "Name", "Email", "Joined", "Books", "Orders")
	for _, u := range users {
		t.Row(itoa(u.ID), u.Name, u.Email, u.CreatedAt, strconv.Itoa(u.BookCount), strconv.Itoa(u.OrderCount))
	}
	a.println(t.Render())
}

func (a *App) renderPublishers(pubs []models.Publisher) {
	if len(pubs) == 0 {
		a.println("No publishers.")
		return
	}
	t := newTable("ID", "Name", "Books", "Description")
	for _, p := range pubs {
		t.Row(itoa(p.ID), p.Name, strconv.Itoa(p.BookCount), p.Description)
	}
	a.println(t.Render())
}
