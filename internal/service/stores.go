package service

import (
	"context"

	"github.com/bookshop/bookshop-go/internal/model"
)

// UserStore is the persistence surface the auth service depends on.
// Implemented by repository.UserRepository.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	Exists(ctx context.Context, email, username string) (bool, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
}

// BookStore is the read-only catalog surface. Implemented by
// repository.BookRepository.
type BookStore interface {
	List(ctx context.Context) ([]model.Book, error)
	GetByID(ctx context.Context, id int64) (*model.Book, error)
	GetByISBN(ctx context.Context, isbn string) (*model.Book, error)
	SearchByAuthor(ctx context.Context, author string) ([]model.Book, error)
	SearchByTitle(ctx context.Context, title string) ([]model.Book, error)
}

// ReviewStore is the review persistence surface. Implemented by
// repository.ReviewRepository.
type ReviewStore interface {
	Create(ctx context.Context, review *model.Review) error
	Update(ctx context.Context, review *model.Review) error
	GetByID(ctx context.Context, id int64) (*model.Review, error)
	GetByBookAndUser(ctx context.Context, bookID, userID int64) (*model.Review, error)
	ListByBook(ctx context.Context, bookID int64) ([]model.BookReview, error)
	Delete(ctx context.Context, id int64) error
}
