package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/bookshop/bookshop-go/internal/model"
	"github.com/bookshop/bookshop-go/internal/repository"
)

type fakeUserStore struct {
	users  map[int64]*model.User
	nextID int64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[int64]*model.User)}
}

func (f *fakeUserStore) Create(_ context.Context, user *model.User) error {
	for _, u := range f.users {
		if u.Email == user.Email || u.Username == user.Username {
			return repository.ErrDuplicateUser
		}
	}
	f.nextID++
	user.ID = f.nextID
	user.CreatedAt = time.Now()
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserStore) Exists(_ context.Context, email, username string) (bool, error) {
	for _, u := range f.users {
		if u.Email == email || u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (f *fakeUserStore) GetByID(_ context.Context, id int64) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

type fakeBookStore struct {
	books []model.Book
}

func (f *fakeBookStore) List(_ context.Context) ([]model.Book, error) {
	out := append([]model.Book(nil), f.books...)
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

func (f *fakeBookStore) GetByID(_ context.Context, id int64) (*model.Book, error) {
	for _, b := range f.books {
		if b.ID == id {
			cp := b
			return &cp, nil
		}
	}
	return nil, repository.ErrBookNotFound
}

func (f *fakeBookStore) GetByISBN(_ context.Context, isbn string) (*model.Book, error) {
	for _, b := range f.books {
		if b.ISBN == isbn {
			cp := b
			return &cp, nil
		}
	}
	return nil, repository.ErrBookNotFound
}

func (f *fakeBookStore) SearchByAuthor(_ context.Context, author string) ([]model.Book, error) {
	var out []model.Book
	for _, b := range f.books {
		if strings.Contains(strings.ToLower(b.Author), strings.ToLower(author)) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookStore) SearchByTitle(_ context.Context, title string) ([]model.Book, error) {
	var out []model.Book
	for _, b := range f.books {
		if strings.Contains(strings.ToLower(b.Title), strings.ToLower(title)) {
			out = append(out, b)
		}
	}
	return out, nil
}

type fakeReviewStore struct {
	reviews map[int64]*model.Review
	nextID  int64

	// getMisses makes GetByBookAndUser report not-found that many times,
	// to exercise the lost create-vs-create race path.
	getMisses int
}

func newFakeReviewStore() *fakeReviewStore {
	return &fakeReviewStore{reviews: make(map[int64]*model.Review)}
}

func (f *fakeReviewStore) Create(_ context.Context, review *model.Review) error {
	for _, r := range f.reviews {
		if r.BookID == review.BookID && r.UserID == review.UserID {
			return repository.ErrDuplicateReview
		}
	}
	f.nextID++
	review.ID = f.nextID
	review.CreatedAt = time.Now()
	review.UpdatedAt = review.CreatedAt
	cp := *review
	f.reviews[review.ID] = &cp
	return nil
}

func (f *fakeReviewStore) Update(_ context.Context, review *model.Review) error {
	for _, r := range f.reviews {
		if r.BookID == review.BookID && r.UserID == review.UserID {
			r.Rating = review.Rating
			r.Comment = review.Comment
			r.UpdatedAt = time.Now()
			return nil
		}
	}
	return repository.ErrReviewNotFound
}

func (f *fakeReviewStore) GetByID(_ context.Context, id int64) (*model.Review, error) {
	r, ok := f.reviews[id]
	if !ok {
		return nil, repository.ErrReviewNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeReviewStore) GetByBookAndUser(_ context.Context, bookID, userID int64) (*model.Review, error) {
	if f.getMisses > 0 {
		f.getMisses--
		return nil, repository.ErrReviewNotFound
	}
	for _, r := range f.reviews {
		if r.BookID == bookID && r.UserID == userID {
			cp := *r
			return &cp, nil
		}
	}
	return nil, repository.ErrReviewNotFound
}

func (f *fakeReviewStore) ListByBook(_ context.Context, bookID int64) ([]model.BookReview, error) {
	var out []model.BookReview
	for _, r := range f.reviews {
		if r.BookID == bookID {
			out = append(out, model.BookReview{
				ID:        r.ID,
				Rating:    r.Rating,
				Comment:   r.Comment,
				CreatedAt: r.CreatedAt,
				UserID:    r.UserID,
				Username:  fmt.Sprintf("user%d", r.UserID),
			})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeReviewStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.reviews[id]; !ok {
		return repository.ErrReviewNotFound
	}
	delete(f.reviews, id)
	return nil
}
