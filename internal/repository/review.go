package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/bookshop/bookshop-go/internal/model"
)

var (
	ErrReviewNotFound  = errors.New("review not found")
	ErrDuplicateReview = errors.New("review already exists for this book and user")
)

// ReviewRepository handles review persistence operations.
type ReviewRepository struct {
	db *sql.DB
}

// NewReviewRepository creates a new ReviewRepository.
func NewReviewRepository(db *sql.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Create inserts a new review and sets the generated ID on the review struct.
// The (book_id, user_id) unique key turns a lost create-vs-create race into
// ErrDuplicateReview, which callers resolve by updating instead.
func (r *ReviewRepository) Create(ctx context.Context, review *model.Review) error {
	query := `INSERT INTO reviews (book_id, user_id, rating, comment) VALUES (?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query, review.BookID, review.UserID, review.Rating, review.Comment)
	if err != nil {
		if isDuplicateEntryError(err) {
			return ErrDuplicateReview
		}
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	review.ID = id
	return nil
}

// Update replaces the rating and comment of the review for the given
// (book, user) pair. Returns ErrReviewNotFound when no row matched.
// The pool connects with clientFoundRows=true, so rewriting a row with
// identical values still counts as a match rather than a miss.
func (r *ReviewRepository) Update(ctx context.Context, review *model.Review) error {
	query := `UPDATE reviews SET rating = ?, comment = ?, updated_at = CURRENT_TIMESTAMP
		WHERE book_id = ? AND user_id = ?`

	result, err := r.db.ExecContext(ctx, query, review.Rating, review.Comment, review.BookID, review.UserID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrReviewNotFound
	}

	return nil
}

// GetByID retrieves a review by its ID.
func (r *ReviewRepository) GetByID(ctx context.Context, id int64) (*model.Review, error) {
	query := `SELECT id, book_id, user_id, rating, comment, created_at, updated_at
		FROM reviews WHERE id = ?`
	return r.getOne(ctx, query, id)
}

// GetByBookAndUser retrieves the review a user wrote for a book, if any.
func (r *ReviewRepository) GetByBookAndUser(ctx context.Context, bookID, userID int64) (*model.Review, error) {
	query := `SELECT id, book_id, user_id, rating, comment, created_at, updated_at
		FROM reviews WHERE book_id = ? AND user_id = ?`

	review := &model.Review{}
	err := r.db.QueryRowContext(ctx, query, bookID, userID).Scan(
		&review.ID, &review.BookID, &review.UserID, &review.Rating,
		&review.Comment, &review.CreatedAt, &review.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}

	return review, nil
}

// ListByBook retrieves all reviews for a book joined with the reviewer's
// public identity, newest first.
func (r *ReviewRepository) ListByBook(ctx context.Context, bookID int64) ([]model.BookReview, error) {
	query := `SELECT r.id, r.rating, r.comment, r.created_at, u.id, u.username
		FROM reviews r
		JOIN users u ON r.user_id = u.id
		WHERE r.book_id = ?
		ORDER BY r.created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, bookID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := []model.BookReview{}
	for rows.Next() {
		var br model.BookReview
		if err := rows.Scan(
			&br.ID, &br.Rating, &br.Comment, &br.CreatedAt, &br.UserID, &br.Username,
		); err != nil {
			return nil, err
		}
		reviews = append(reviews, br)
	}

	return reviews, rows.Err()
}

// Delete removes a review by its ID. Returns ErrReviewNotFound when no
// row was deleted.
func (r *ReviewRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM reviews WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrReviewNotFound
	}

	return nil
}

func (r *ReviewRepository) getOne(ctx context.Context, query string, arg any) (*model.Review, error) {
	review := &model.Review{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&review.ID, &review.BookID, &review.UserID, &review.Rating,
		&review.Comment, &review.CreatedAt, &review.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}

	return review, nil
}
