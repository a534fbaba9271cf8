package server

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	_ "github.com/snnyvrz/bookshelf/internal/docs"
	"github.com/snnyvrz/bookshelf/internal/handler"
	"github.com/snnyvrz/bookshelf/internal/metrics"
	"github.com/snnyvrz/bookshelf/internal/middleware"
	"github.com/snnyvrz/bookshelf/internal/repository"
	"github.com/snnyvrz/bookshelf/web"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Options struct {
	DB        *gorm.DB
	Log       *zap.Logger
	Registry  *prometheus.Registry
	Debug     bool
	Version   string
	StartTime time.Time
}

// NewRouter wires the HTML catalog, the JSON API, health, metrics and
// swagger routes onto one engine.
func NewRouter(opts Options) (*gin.Engine, error) {
	tmpl, err := web.Templates()
	if err != nil {
		return nil, err
	}

	m := metrics.New(opts.Registry)
	repo := repository.NewGormBookRepository(opts.DB, opts.Log)

	e := gin.New()
	if err := e.SetTrustedProxies([]string{
		"127.0.0.1",
		"::1",
	}); err != nil {
		return nil, err
	}
	e.SetHTMLTemplate(tmpl)

	e.Use(
		middleware.RequestLogger(opts.Log),
		middleware.Metrics(m),
		middleware.ErrorBoundary(opts.Log, middleware.HTMLFaultRenderer(web.ViewError, opts.Debug)),
	)

	e.GET("/", handler.RedirectToList)

	healthHandler := handler.NewHealthHandler(opts.DB, opts.StartTime, opts.Version)
	healthHandler.RegisterRoutes(e)

	bookHandler := handler.NewBookHandler(repo, m)
	bookHandler.RegisterRoutes(e)

	api := e.Group("/api", middleware.UseFaultRenderer(middleware.JSONFaultRenderer()))
	{
		apiHandler := handler.NewAPIHandler(repo)
		apiHandler.RegisterRoutes(api)
	}

	e.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	e.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{})))

	e.NoRoute(handler.NotFound)

	return e, nil
}
