package service

import (
	"context"
	"errors"

	"github.com/bookshop/bookshop-go/internal/model"
	"github.com/bookshop/bookshop-go/internal/repository"
)

var (
	ErrInvalidRating      = errors.New("Please provide a rating between 1 and 5")
	ErrReviewNotFound     = errors.New("review not found")
	ErrNotReviewOwner     = errors.New("Not authorized to delete this review")
	ErrAddReviewFailed    = errors.New("Failed to add review")
	ErrUpdateReviewFailed = errors.New("Failed to update review")
	ErrDeleteReviewFailed = errors.New("Failed to delete review")
)

// SubmitOutcome is the result of an add-or-update review submission.
// Created distinguishes a first review (201) from an in-place update (200).
type SubmitOutcome struct {
	Review  model.ReviewResponse
	Created bool
}

// ReviewService enforces the one-review-per-(book,user) invariant and the
// owner-only mutation rule.
type ReviewService struct {
	reviews ReviewStore
	books   BookStore
}

// NewReviewService creates a new ReviewService.
func NewReviewService(reviews ReviewStore, books BookStore) *ReviewService {
	return &ReviewService{reviews: reviews, books: books}
}

// Submit adds a review, or updates the caller's existing review of the
// same book in place. The rating must be between 1 and 5 and the book
// must exist.
func (s *ReviewService) Submit(ctx context.Context, bookID, userID int64, req model.ReviewRequest) (SubmitOutcome, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return SubmitOutcome{}, ErrInvalidRating
	}

	if _, err := s.books.GetByID(ctx, bookID); err != nil {
		if errors.Is(err, repository.ErrBookNotFound) {
			return SubmitOutcome{}, ErrBookNotFound
		}
		return SubmitOutcome{}, err
	}

	_, err := s.reviews.GetByBookAndUser(ctx, bookID, userID)
	switch {
	case err == nil:
		return s.update(ctx, bookID, userID, req)
	case errors.Is(err, repository.ErrReviewNotFound):
		// No review yet, fall through to insert.
	default:
		return SubmitOutcome{}, err
	}

	review := &model.Review{
		BookID:  bookID,
		UserID:  userID,
		Rating:  req.Rating,
		Comment: req.Comment,
	}

	if err := s.reviews.Create(ctx, review); err != nil {
		if errors.Is(err, repository.ErrDuplicateReview) {
			// Lost a race against a concurrent submission from the
			// same user; the unique key kept the pair to one row.
			return s.update(ctx, bookID, userID, req)
		}
		return SubmitOutcome{}, ErrAddReviewFailed
	}

	created, err := s.reviews.GetByBookAndUser(ctx, bookID, userID)
	if err != nil {
		return SubmitOutcome{}, ErrAddReviewFailed
	}

	return SubmitOutcome{Review: toReviewResponse(created), Created: true}, nil
}

func (s *ReviewService) update(ctx context.Context, bookID, userID int64, req model.ReviewRequest) (SubmitOutcome, error) {
	review := &model.Review{
		BookID:  bookID,
		UserID:  userID,
		Rating:  req.Rating,
		Comment: req.Comment,
	}

	if err := s.reviews.Update(ctx, review); err != nil {
		return SubmitOutcome{}, ErrUpdateReviewFailed
	}

	updated, err := s.reviews.GetByBookAndUser(ctx, bookID, userID)
	if err != nil {
		return SubmitOutcome{}, ErrUpdateReviewFailed
	}

	return SubmitOutcome{Review: toReviewResponse(updated), Created: false}, nil
}

// Delete removes a review. Only the user who created the review may
// delete it; ownership is the sole authorization check.
func (s *ReviewService) Delete(ctx context.Context, reviewID, userID int64) error {
	review, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			return ErrReviewNotFound
		}
		return err
	}

	if review.UserID != userID {
		return ErrNotReviewOwner
	}

	if err := s.reviews.Delete(ctx, reviewID); err != nil {
		// The review existed a moment ago, so a missing row here is an
		// anomaly, not a normal not-found.
		return ErrDeleteReviewFailed
	}

	return nil
}

// ListForBook returns all reviews for a book joined with the reviewer's
// public identity, newest first. Reading reviews is public.
func (s *ReviewService) ListForBook(ctx context.Context, bookID int64) ([]model.BookReview, error) {
	if _, err := s.books.GetByID(ctx, bookID); err != nil {
		if errors.Is(err, repository.ErrBookNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}

	return s.reviews.ListByBook(ctx, bookID)
}

func toReviewResponse(r *model.Review) model.ReviewResponse {
	return model.ReviewResponse{
		ID:        r.ID,
		BookID:    r.BookID,
		UserID:    r.UserID,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
}
