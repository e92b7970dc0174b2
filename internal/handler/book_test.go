package handler

import (
	"net/http"
	"testing"
)

func TestListBooks(t *testing.T) {
	router := newTestRouter(newMemStore())

	rr, resp := doJSON(t, router, http.MethodGet, "/api/books", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if !resp.Success {
		t.Error("success = false")
	}
	if resp.Count == nil || *resp.Count != 1 {
		t.Errorf("count = %v, want 1", resp.Count)
	}
}

func TestGetBookByISBN(t *testing.T) {
	router := newTestRouter(newMemStore())

	rr, resp := doJSON(t, router, http.MethodGet, "/api/books/isbn/9780547928227", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if resp.Data == nil {
		t.Error("data missing from response")
	}
}

func TestGetBookByISBNNotFound(t *testing.T) {
	router := newTestRouter(newMemStore())

	rr, resp := doJSON(t, router, http.MethodGet, "/api/books/isbn/0000000000", "", nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rr.Code)
	}
	if resp.Message != "Book with ISBN 0000000000 not found" {
		t.Errorf("message = %q", resp.Message)
	}
}
