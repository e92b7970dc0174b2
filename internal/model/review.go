package model

import "time"

// Review represents a review row in the database. At most one review
// exists per (book, user) pair; only the creating user may modify it.
type Review struct {
	ID        int64
	BookID    int64
	UserID    int64
	Rating    int
	Comment   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ReviewRequest represents an add-or-update review submission.
type ReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// ReviewResponse represents a review in API responses.
type ReviewResponse struct {
	ID        int64     `json:"id"`
	BookID    int64     `json:"book_id"`
	UserID    int64     `json:"user_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// BookReview is a review joined with the reviewer's public identity,
// as returned when listing a book's reviews.
type BookReview struct {
	ID        int64     `json:"id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UserID    int64     `json:"user_id"`
	Username  string    `json:"username"`
}
