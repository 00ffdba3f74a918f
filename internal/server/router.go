package server

import (
	"context"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"

	"github.com/ganiszulfa/okblog/internal/auth"
	"github.com/ganiszulfa/okblog/internal/config"
	"github.com/ganiszulfa/okblog/internal/file"
	"github.com/ganiszulfa/okblog/internal/logger"
	"github.com/ganiszulfa/okblog/internal/metrics"
)

// BucketLister is the slice of the object-store client used by the
// readiness probe.
type BucketLister interface {
	ListBuckets(ctx context.Context) ([]minio.BucketInfo, error)
}

// Dependencies groups the collaborators required by the HTTP router.
type Dependencies struct {
	Config      config.Config
	Logger      *zap.Logger
	ObjectStore BucketLister
	Verifier    auth.Verifier
	FileService *file.Service
}

// NewRouter builds a Gin engine with foundational middleware and routes.
// All file routes live under /api behind the bearer-token gate.
func NewRouter(deps Dependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.Middleware(deps.Logger))
	router.Use(metrics.Middleware())
	router.Use(cors.Default())

	registerHealthRoutes(router, deps)
	metrics.Register(router, deps.Config.Metrics.PrometheusPath)

	api := router.Group("/api")
	api.Use(auth.Middleware(deps.Verifier))
	file.RegisterRoutes(api, deps.FileService)

	return router
}
