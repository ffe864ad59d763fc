package models

import "strings"

type Review struct {
	ID        int64  `json:"id"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
	CreatedAt string `json:"created_at"`
	User      Author `json:"user"`
	Book      *Ref   `json:"book,omitempty"`
}

// Author is the reviewer as embedded in a review.
type Author struct {
	ID       int64  `json:"id,omitempty"`
	Username string `json:"username"`
	Avatar   string `json:"avatar,omitempty"`
}

type NewReview struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

func (r NewReview) Validate() error {
	if r.Rating < 1 || r.Rating > 5 {
		return Invalid("rating", "must be between 1 and 5")
	}
	if strings.TrimSpace(r.Comment) == "" {
		return Invalid("comment", "is required")
	}
	return nil
}

// AverageRating returns the mean rating, or 0 for no reviews.
func AverageRating(reviews []Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	var sum int
	for _, r := range reviews {
		sum += r.Rating
	}
	return float64(sum) / float64(len(reviews))
}
