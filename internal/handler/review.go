package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/bookshop/bookshop-go/internal/middleware"
	"github.com/bookshop/bookshop-go/internal/model"
	"github.com/bookshop/bookshop-go/internal/service"
)

// ReviewHandler handles HTTP requests for book reviews.
type ReviewHandler struct {
	service *service.ReviewService
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(svc *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{service: svc}
}

// HandleListForBook handles GET /api/books/{bookID}/reviews requests.
// Reading reviews requires no authentication.
func (h *ReviewHandler) HandleListForBook(w http.ResponseWriter, r *http.Request) {
	param := chi.URLParam(r, "bookID")
	bookID, err := strconv.ParseInt(param, 10, 64)
	if err != nil {
		respondError(w, http.StatusNotFound, fmt.Sprintf("Book with id %s not found", param))
		return
	}

	reviews, err := h.service.ListForBook(r.Context(), bookID)
	if err != nil {
		if errors.Is(err, service.ErrBookNotFound) {
			respondError(w, http.StatusNotFound, fmt.Sprintf("Book with id %d not found", bookID))
			return
		}
		respondError(w, http.StatusInternalServerError, "Server Error")
		return
	}

	respondList(w, http.StatusOK, reviews, len(reviews))
}

// HandleSubmit handles POST /api/books/{bookID}/reviews requests.
// A first submission creates the review (201); a later submission from
// the same user for the same book updates it in place (200).
func (h *ReviewHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Not authorized to access this route")
		return
	}

	param := chi.URLParam(r, "bookID")
	bookID, err := strconv.ParseInt(param, 10, 64)
	if err != nil {
		respondError(w, http.StatusNotFound, fmt.Sprintf("Book with id %s not found", param))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err.Error() == "http: request body too large" {
			respondError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	outcome, err := h.service.Submit(r.Context(), bookID, user.ID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRating),
			errors.Is(err, service.ErrAddReviewFailed),
			errors.Is(err, service.ErrUpdateReviewFailed):
			respondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrBookNotFound):
			respondError(w, http.StatusNotFound, fmt.Sprintf("Book with id %d not found", bookID))
		default:
			respondError(w, http.StatusInternalServerError, "Server Error")
		}
		return
	}

	status := http.StatusOK
	message := "Review updated successfully"
	if outcome.Created {
		status = http.StatusCreated
		message = "Review added successfully"
	}

	writeJSON(w, status, model.Response{
		Success: true,
		Message: message,
		Data:    outcome.Review,
	})
}

// HandleDelete handles DELETE /api/reviews/{id} requests. Only the
// review's owner may delete it.
func (h *ReviewHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Not authorized to access this route")
		return
	}

	param := chi.URLParam(r, "id")
	reviewID, err := strconv.ParseInt(param, 10, 64)
	if err != nil {
		respondError(w, http.StatusNotFound, fmt.Sprintf("Review with id %s not found", param))
		return
	}

	if err := h.service.Delete(r.Context(), reviewID, user.ID); err != nil {
		switch {
		case errors.Is(err, service.ErrReviewNotFound):
			respondError(w, http.StatusNotFound, fmt.Sprintf("Review with id %d not found", reviewID))
		case errors.Is(err, service.ErrNotReviewOwner):
			respondError(w, http.StatusForbidden, err.Error())
		case errors.Is(err, service.ErrDeleteReviewFailed):
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			respondError(w, http.StatusInternalServerError, "Server Error")
		}
		return
	}

	writeJSON(w, http.StatusOK, model.Response{
		Success: true,
		Message: "Review deleted successfully",
		Data:    struct{}{},
	})
}
