package service

import (
	"context"
	"errors"
	"testing"

	"github.com/bookshop/bookshop-go/internal/model"
)

func testCatalog() *fakeBookStore {
	return &fakeBookStore{books: []model.Book{
		{ID: 7, ISBN: "9780547928227", Title: "The Hobbit", Author: "J.R.R. Tolkien"},
		{ID: 8, ISBN: "9780451524935", Title: "1984", Author: "George Orwell"},
	}}
}

func newTestReviewService() (*ReviewService, *fakeReviewStore) {
	reviews := newFakeReviewStore()
	return NewReviewService(reviews, testCatalog()), reviews
}

func TestSubmitInvalidRating(t *testing.T) {
	svc, _ := newTestReviewService()
	ctx := context.Background()

	for _, rating := range []int{-1, 0, 6, 100} {
		_, err := svc.Submit(ctx, 7, 1, model.ReviewRequest{Rating: rating})
		if !errors.Is(err, ErrInvalidRating) {
			t.Errorf("Submit(rating=%d) error = %v, want ErrInvalidRating", rating, err)
		}
	}
}

func TestSubmitUnknownBook(t *testing.T) {
	svc, _ := newTestReviewService()

	_, err := svc.Submit(context.Background(), 999, 1, model.ReviewRequest{Rating: 4})
	if !errors.Is(err, ErrBookNotFound) {
		t.Errorf("Submit() error = %v, want ErrBookNotFound", err)
	}
}

func TestSubmitCreatesThenUpdatesInPlace(t *testing.T) {
	svc, store := newTestReviewService()
	ctx := context.Background()

	first, err := svc.Submit(ctx, 7, 1, model.ReviewRequest{Rating: 4, Comment: "great"})
	if err != nil {
		t.Fatalf("Submit() unexpected error: %v", err)
	}
	if !first.Created {
		t.Error("first Submit() should report a creation")
	}
	if first.Review.Rating != 4 {
		t.Errorf("first Submit() rating = %d, want 4", first.Review.Rating)
	}

	second, err := svc.Submit(ctx, 7, 1, model.ReviewRequest{Rating: 2, Comment: "changed my mind"})
	if err != nil {
		t.Fatalf("Submit() unexpected error: %v", err)
	}
	if second.Created {
		t.Error("second Submit() should report an update, not a creation")
	}
	if second.Review.ID != first.Review.ID {
		t.Errorf("update changed identity: id %d -> %d", first.Review.ID, second.Review.ID)
	}
	if second.Review.Rating != 2 || second.Review.Comment != "changed my mind" {
		t.Errorf("update not applied: %+v", second.Review)
	}

	if len(store.reviews) != 1 {
		t.Errorf("expected exactly one review row, got %d", len(store.reviews))
	}
}

func TestSubmitDistinctUsersGetDistinctRows(t *testing.T) {
	svc, store := newTestReviewService()
	ctx := context.Background()

	if _, err := svc.Submit(ctx, 7, 1, model.ReviewRequest{Rating: 4}); err != nil {
		t.Fatalf("Submit() unexpected error: %v", err)
	}
	if _, err := svc.Submit(ctx, 7, 2, model.ReviewRequest{Rating: 5}); err != nil {
		t.Fatalf("Submit() unexpected error: %v", err)
	}

	if len(store.reviews) != 2 {
		t.Errorf("expected two review rows, got %d", len(store.reviews))
	}
}

func TestSubmitLostCreateRaceFallsBackToUpdate(t *testing.T) {
	svc, store := newTestReviewService()
	ctx := context.Background()

	// Seed the concurrent winner's row.
	if _, err := svc.Submit(ctx, 7, 1, model.ReviewRequest{Rating: 5, Comment: "first"}); err != nil {
		t.Fatalf("Submit() unexpected error: %v", err)
	}

	// Make the existence probe miss once, as if the row landed between
	// the read and the insert. The unique key then rejects the insert
	// and the submission must converge on an update.
	store.getMisses = 1

	outcome, err := svc.Submit(ctx, 7, 1, model.ReviewRequest{Rating: 3, Comment: "second"})
	if err != nil {
		t.Fatalf("Submit() unexpected error: %v", err)
	}
	if outcome.Created {
		t.Error("lost race should resolve as an update")
	}
	if len(store.reviews) != 1 {
		t.Errorf("expected exactly one review row, got %d", len(store.reviews))
	}
	if outcome.Review.Rating != 3 {
		t.Errorf("rating = %d, want 3", outcome.Review.Rating)
	}
}

func TestDeleteUnknownReview(t *testing.T) {
	svc, _ := newTestReviewService()

	err := svc.Delete(context.Background(), 999, 1)
	if !errors.Is(err, ErrReviewNotFound) {
		t.Errorf("Delete() error = %v, want ErrReviewNotFound", err)
	}
}

func TestDeleteNonOwnerForbidden(t *testing.T) {
	svc, store := newTestReviewService()
	ctx := context.Background()

	outcome, err := svc.Submit(ctx, 7, 1, model.ReviewRequest{Rating: 4})
	if err != nil {
		t.Fatalf("Submit() unexpected error: %v", err)
	}

	err = svc.Delete(ctx, outcome.Review.ID, 2)
	if !errors.Is(err, ErrNotReviewOwner) {
		t.Errorf("Delete() error = %v, want ErrNotReviewOwner", err)
	}
	if len(store.reviews) != 1 {
		t.Error("forbidden delete must not remove the row")
	}
}

func TestDeleteOwnerRemovesRow(t *testing.T) {
	svc, store := newTestReviewService()
	ctx := context.Background()

	outcome, err := svc.Submit(ctx, 7, 1, model.ReviewRequest{Rating: 4})
	if err != nil {
		t.Fatalf("Submit() unexpected error: %v", err)
	}

	if err := svc.Delete(ctx, outcome.Review.ID, 1); err != nil {
		t.Fatalf("Delete() unexpected error: %v", err)
	}
	if len(store.reviews) != 0 {
		t.Error("owner delete should remove the row")
	}

	reviews, err := svc.ListForBook(ctx, 7)
	if err != nil {
		t.Fatalf("ListForBook() unexpected error: %v", err)
	}
	if len(reviews) != 0 {
		t.Errorf("deleted review still listed: %+v", reviews)
	}
}

func TestListForBookUnknownBook(t *testing.T) {
	svc, _ := newTestReviewService()

	_, err := svc.ListForBook(context.Background(), 999)
	if !errors.Is(err, ErrBookNotFound) {
		t.Errorf("ListForBook() error = %v, want ErrBookNotFound", err)
	}
}

func TestListForBookIncludesReviewerIdentity(t *testing.T) {
	svc, _ := newTestReviewService()
	ctx := context.Background()

	if _, err := svc.Submit(ctx, 7, 1, model.ReviewRequest{Rating: 4, Comment: "great"}); err != nil {
		t.Fatalf("Submit() unexpected error: %v", err)
	}

	reviews, err := svc.ListForBook(ctx, 7)
	if err != nil {
		t.Fatalf("ListForBook() unexpected error: %v", err)
	}
	if len(reviews) != 1 {
		t.Fatalf("expected one review, got %d", len(reviews))
	}
	if reviews[0].UserID != 1 || reviews[0].Username == "" {
		t.Errorf("review missing reviewer identity: %+v", reviews[0])
	}
}
