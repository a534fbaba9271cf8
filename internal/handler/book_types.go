package handler

import (
	"github.com/snnyvrz/bookshelf/internal/model"
	"github.com/snnyvrz/bookshelf/internal/pagination"
)

type Book struct {
	ID        uint       `json:"id" example:"42"`
	Title     string     `json:"title" example:"Dune"`
	Author    string     `json:"author" example:"Frank Herbert"`
	Genre     string     `json:"genre,omitempty" example:"Science Fiction"`
	Year      *int       `json:"year,omitempty" example:"1965"`
	CreatedAt model.Date `json:"created_at" swaggertype:"string" example:"2025-11-24"`
	UpdatedAt model.Date `json:"updated_at" swaggertype:"string" example:"2025-11-24"`
}

type BookResponse struct {
	Data Book `json:"data"`
}

type ListBooksResponse struct {
	Data       []Book          `json:"data"`
	Term       string          `json:"term,omitempty"`
	Pagination pagination.Page `json:"pagination"`
}
