package model

import "time"

// Book represents a book in the shop catalog. The catalog is read-only
// through the API; rows come from migrations or out-of-band imports.
type Book struct {
	ID              int64     `json:"id"`
	ISBN            string    `json:"isbn"`
	Title           string    `json:"title"`
	Author          string    `json:"author"`
	Description     string    `json:"description"`
	Price           float64   `json:"price"`
	PublicationDate time.Time `json:"publication_date"`
}
