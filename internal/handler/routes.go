package handler

import (
	"github.com/gin-gonic/gin"
)

// Route is one entry of a route table.
type Route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
}

// Register adds every route of table to r.
func Register(r gin.IRoutes, table []Route) {
	for _, route := range table {
		r.Handle(route.Method, route.Path, route.Handler)
	}
}
