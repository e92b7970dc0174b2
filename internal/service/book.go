package service

import (
	"context"
	"errors"

	"github.com/bookshop/bookshop-go/internal/model"
	"github.com/bookshop/bookshop-go/internal/repository"
)

var ErrBookNotFound = errors.New("book not found")

// BookService handles catalog reads. The catalog is read-only through the
// API, so every operation here is a lookup or search.
type BookService struct {
	books BookStore
}

// NewBookService creates a new BookService.
func NewBookService(books BookStore) *BookService {
	return &BookService{books: books}
}

// List returns all books ordered alphabetically by title.
func (s *BookService) List(ctx context.Context) ([]model.Book, error) {
	return s.books.List(ctx)
}

// GetByISBN returns the book with the given ISBN.
func (s *BookService) GetByISBN(ctx context.Context, isbn string) (*model.Book, error) {
	book, err := s.books.GetByISBN(ctx, isbn)
	if err != nil {
		if errors.Is(err, repository.ErrBookNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}
	return book, nil
}

// SearchByAuthor returns books whose author contains the given substring,
// case-insensitively. An empty list is a valid result.
func (s *BookService) SearchByAuthor(ctx context.Context, author string) ([]model.Book, error) {
	return s.books.SearchByAuthor(ctx, author)
}

// SearchByTitle returns books whose title contains the given substring,
// case-insensitively. An empty list is a valid result.
func (s *BookService) SearchByTitle(ctx context.Context, title string) ([]model.Book, error) {
	return s.books.SearchByTitle(ctx, title)
}
