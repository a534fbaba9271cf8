package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/snnyvrz/bookshelf/internal/validation"
	"go.uber.org/zap"
)

const faultRendererKey = "bookshelf.fault_renderer"

// FaultRenderer writes the response for an unexpected failure.
type FaultRenderer func(c *gin.Context, err error)

// ErrorBoundary is the one place where unhandled failures become responses.
// Handlers report them with c.Error; panics are recovered here as well.
// The failure is logged and rendered by the FaultRenderer chosen with
// UseFaultRenderer, or fallback when none was chosen.
func ErrorBoundary(log *zap.Logger, fallback FaultRenderer) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error("Panic recovered",
					zap.Any("panic", rec),
					zap.String("method", c.Request.Method),
					zap.String("path", c.Request.URL.Path),
					zap.String("request_id", RequestIDFrom(c)),
					zap.Stack("stack"),
				)
				render(c, fallback, fmt.Errorf("panic: %v", rec))
			}
		}()

		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		log.Error("Request failed",
			zap.Error(err),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("route", c.FullPath()),
			zap.String("request_id", RequestIDFrom(c)),
		)
		render(c, fallback, err)
	}
}

// UseFaultRenderer selects how failures below this point are rendered.
func UseFaultRenderer(r FaultRenderer) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(faultRendererKey, r)
		c.Next()
	}
}

func render(c *gin.Context, fallback FaultRenderer, err error) {
	if c.Writer.Written() {
		c.Abort()
		return
	}

	r := fallback
	if v, ok := c.Get(faultRendererKey); ok {
		if chosen, ok := v.(FaultRenderer); ok {
			r = chosen
		}
	}

	r(c, err)
	c.Abort()
}

// HTMLFaultRenderer renders view with a 500 status. The error text is only
// shown when showDetail is set.
func HTMLFaultRenderer(view string, showDetail bool) FaultRenderer {
	return func(c *gin.Context, err error) {
		data := gin.H{
			"title": "Server Error",
		}
		if showDetail {
			data["detail"] = err.Error()
		}
		c.HTML(http.StatusInternalServerError, view, data)
	}
}

func JSONFaultRenderer() FaultRenderer {
	return func(c *gin.Context, err error) {
		c.JSON(http.StatusInternalServerError, validation.ErrorResponse{
			Code:    "INTERNAL_ERROR",
			Message: "an unexpected error occurred",
		})
	}
}
