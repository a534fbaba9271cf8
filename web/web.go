// Package web holds the HTML views of the catalog.
package web

import (
	"embed"
	"html/template"
	"net/url"
	"strconv"
)

// View names, as registered in the template set.
const (
	ViewIndex      = "index.tmpl"
	ViewNewBook    = "new-book.tmpl"
	ViewUpdateBook = "update-book.tmpl"
	ViewNotFound   = "page-not-found.tmpl"
	ViewError      = "error.tmpl"
)

//go:embed templates/*.tmpl
var files embed.FS

// Templates parses every view together with the shared layout blocks.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(Funcs()).ParseFS(files, "templates/*.tmpl")
}

func Funcs() template.FuncMap {
	return template.FuncMap{
		"pageURL": PageURL,
		"inc": func(n int) int {
			return n + 1
		},
	}
}

// PageURL links to page of the plain listing, or of the search results when term is set.
func PageURL(term string, page int) string {
	q := url.Values{}
	path := "/books"
	if term != "" {
		path = "/books/search"
		q.Set("term", term)
	}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}
