package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bookshop/bookshop-go/internal/service"
)

// BookHandler handles HTTP requests for the book catalog.
type BookHandler struct {
	service *service.BookService
}

// NewBookHandler creates a new BookHandler.
func NewBookHandler(svc *service.BookService) *BookHandler {
	return &BookHandler{service: svc}
}

// HandleList handles GET /api/books requests.
func (h *BookHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.List(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Server Error")
		return
	}

	respondList(w, http.StatusOK, books, len(books))
}

// HandleGetByISBN handles GET /api/books/isbn/{isbn} requests.
func (h *BookHandler) HandleGetByISBN(w http.ResponseWriter, r *http.Request) {
	isbn := chi.URLParam(r, "isbn")

	book, err := h.service.GetByISBN(r.Context(), isbn)
	if err != nil {
		if errors.Is(err, service.ErrBookNotFound) {
			respondError(w, http.StatusNotFound, fmt.Sprintf("Book with ISBN %s not found", isbn))
			return
		}
		respondError(w, http.StatusInternalServerError, "Server Error")
		return
	}

	respondData(w, http.StatusOK, book)
}

// HandleSearchByAuthor handles GET /api/books/author/{author} requests.
// The match is a case-insensitive substring match and an empty result
// list is a valid response.
func (h *BookHandler) HandleSearchByAuthor(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.SearchByAuthor(r.Context(), chi.URLParam(r, "author"))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Server Error")
		return
	}

	respondList(w, http.StatusOK, books, len(books))
}

// HandleSearchByTitle handles GET /api/books/title/{title} requests.
func (h *BookHandler) HandleSearchByTitle(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.SearchByTitle(r.Context(), chi.URLParam(r, "title"))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Server Error")
		return
	}

	respondList(w, http.StatusOK, books, len(books))
}
