package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/bookshop/bookshop-go/internal/model"
)

var ErrBookNotFound = errors.New("book not found")

const bookColumns = `id, isbn, title, author, description, price, publication_date`

// BookRepository handles read-only access to the book catalog.
type BookRepository struct {
	db *sql.DB
}

// NewBookRepository creates a new BookRepository.
func NewBookRepository(db *sql.DB) *BookRepository {
	return &BookRepository{db: db}
}

// List retrieves all books ordered alphabetically by title.
func (r *BookRepository) List(ctx context.Context) ([]model.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books ORDER BY title`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanBooks(rows)
}

// GetByID retrieves a book by its ID.
func (r *BookRepository) GetByID(ctx context.Context, id int64) (*model.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE id = ?`
	return r.getOne(ctx, query, id)
}

// GetByISBN retrieves a book by its ISBN.
func (r *BookRepository) GetByISBN(ctx context.Context, isbn string) (*model.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE isbn = ?`
	return r.getOne(ctx, query, isbn)
}

// SearchByAuthor retrieves books whose author contains the given substring,
// case-insensitively. An empty result is not an error.
func (r *BookRepository) SearchByAuthor(ctx context.Context, author string) ([]model.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books
		WHERE LOWER(author) LIKE LOWER(?) ORDER BY title`

	rows, err := r.db.QueryContext(ctx, query, "%"+author+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanBooks(rows)
}

// SearchByTitle retrieves books whose title contains the given substring,
// case-insensitively. An empty result is not an error.
func (r *BookRepository) SearchByTitle(ctx context.Context, title string) ([]model.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books
		WHERE LOWER(title) LIKE LOWER(?) ORDER BY title`

	rows, err := r.db.QueryContext(ctx, query, "%"+title+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanBooks(rows)
}

func (r *BookRepository) getOne(ctx context.Context, query string, arg any) (*model.Book, error) {
	book := &model.Book{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&book.ID, &book.ISBN, &book.Title, &book.Author,
		&book.Description, &book.Price, &book.PublicationDate,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}

	return book, nil
}

func scanBooks(rows *sql.Rows) ([]model.Book, error) {
	books := []model.Book{}
	for rows.Next() {
		var b model.Book
		if err := rows.Scan(
			&b.ID, &b.ISBN, &b.Title, &b.Author,
			&b.Description, &b.Price, &b.PublicationDate,
		); err != nil {
			return nil, err
		}
		books = append(books, b)
	}

	return books, rows.Err()
}
