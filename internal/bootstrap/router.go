package bootstrap

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	httpapi "github.com/TouhidPavel/Project-CRUD/internal/api/http"
	"github.com/TouhidPavel/Project-CRUD/internal/api/http/middleware"
	projecthttp "github.com/TouhidPavel/Project-CRUD/internal/projects/http"
	"github.com/TouhidPavel/Project-CRUD/internal/projects/repository"
)

type RouterDeps struct {
	ServiceName    string
	Version        string
	AllowedOrigins []string
	Store          repository.Store
	Logger         *logrus.Logger
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	metrics := middleware.NewMetrics()

	r.Use(
		httpapi.Recovery(dep.Logger),
		middleware.RequestIDMiddleware(dep.Logger),
		metrics.Middleware(),
		middleware.SecureHeaders(),
		middleware.CORS(dep.AllowedOrigins),
		httpapi.ErrorBoundary(dep.Logger),
	)
	r.NoRoute(httpapi.NotFound)

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.Store)
	healthHandler.RegisterRoutes(r)
	r.GET("/metrics", metrics.Handler())

	projecthttp.New(dep.Store, dep.Logger).Register(r.Group("/api/project"))

	return r
}
