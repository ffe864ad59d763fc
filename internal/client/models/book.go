package models

import (
	"strconv"
	"strings"

	"github.com/dmitrijs2005/bookstore/internal/filex"
)

// Ref is an {id, name} reference embedded in book and order payloads.
type Ref struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username,omitempty"`
}

type Book struct {
	ID            int64   `json:"id"`
	Title         string  `json:"title"`
	Author        string  `json:"author"`
	Price         float64 `json:"price"`
	OriginalPrice float64 `json:"original_price,omitempty"`
	Stock         int     `json:"stock"`
	ImageURL      string  `json:"image_url,omitempty"`
	Description   string  `json:"description,omitempty"`
	Category      string  `json:"category,omitempty"`
	Seller        *Ref    `json:"seller,omitempty"`
	Publisher     *Ref    `json:"publisher,omitempty"`
}

// Discounted reports whether the book is listed below its original price.
func (b Book) Discounted() bool {
	return b.OriginalPrice > 0 && b.Price < b.OriginalPrice
}

// NewBook is the multipart payload of POST /api/books. Either PublisherID
// or NewPublisher is set; NewPublisher asks the service to create one inline.
type NewBook struct {
	Title        string
	Author       string
	PublisherID  int64
	NewPublisher string
	Price        float64
	Stock        int
	Category     string
	Description  string
	ImagePath    string
}

func (b NewBook) Validate() error {
	if strings.TrimSpace(b.Title) == "" {
		return Invalid("title", "is required")
	}
	if strings.TrimSpace(b.Author) == "" {
		return Invalid("author", "is required")
	}
	if b.PublisherID == 0 && strings.TrimSpace(b.NewPublisher) == "" {
		return Invalid("publisher", "is required")
	}
	if b.Price < 0 {
		return Invalid("price", "must not be negative")
	}
	if b.Stock < 0 {
		return Invalid("stock", "must not be negative")
	}
	if b.ImagePath != "" && !filex.IsImage(b.ImagePath) {
		return Invalid("image", "must be png, jpg, jpeg or gif")
	}
	return nil
}

// Fields returns the multipart text fields in the order the service reads them.
func (b NewBook) Fields() [][2]string {
	fields := [][2]string{
		{"title", b.Title},
		{"author", b.Author},
	}
	if b.PublisherID != 0 {
		fields = append(fields, [2]string{"publisher_id", strconv.FormatInt(b.PublisherID, 10)})
	} else {
		fields = append(fields, [2]string{"new_publisher", b.NewPublisher})
	}
	return append(fields,
		[2]string{"price", strconv.FormatFloat(b.Price, 'f', -1, 64)},
		[2]string{"stock", strconv.Itoa(b.Stock)},
		[2]string{"category", b.Category},
		[2]string{"description", b.Description},
	)
}

// BookUpdate is the PUT /api/books/:id body; nil fields keep their value.
type BookUpdate struct {
	Title       *string  `json:"title,omitempty"`
	Author      *string  `json:"author,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Stock       *int     `json:"stock,omitempty"`
	Description *string  `json:"description,omitempty"`
	Category    *string  `json:"category,omitempty"`
	ImageURL    *string  `json:"image_url,omitempty"`
}

func (u BookUpdate) Validate() error {
	if u.Price != nil && *u.Price < 0 {
		return Invalid("price", "must not be negative")
	}
	if u.Stock != nil && *u.Stock < 0 {
		return Invalid("stock", "must not be negative")
	}
	if u.Title != nil && strings.TrimSpace(*u.Title) == "" {
		return Invalid("title", "must not be empty")
	}
	return nil
}

type Publisher struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	BookCount   int    `json:"book_count"`
}

type NewPublisher struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

func (p NewPublisher) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return Invalid("name", "is required")
	}
	return nil
}

type WishlistItem struct {
	ID   int64 `json:"id"`
	Book Book  `json:"book"`
}
