package api

import (
	v1 "github.com/AntarMukhopadhyaya/med-bill-sub000/internal/api/v1"
	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/config"
	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/logger"
	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/rest/middleware"
	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/types"
	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Health     *v1.HealthHandler
	Document   *v1.DocumentHandler
	OrgProfile *v1.OrgProfileHandler
}

func NewRouter(handlers Handlers, cfg *config.Configuration, logger *logger.Logger) *gin.Engine {
	if cfg.Deployment.Mode != types.ModeLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.CORSMiddleware,
		middleware.RequestIDMiddleware,
		middleware.SentryMiddleware(cfg),
		middleware.SentryTags,
		middleware.AccessLog(logger),
		middleware.ErrorHandler(logger),
	)

	router.GET("/health", handlers.Health.Health)

	// v1 routes
	v1Group := router.Group("/v1")
	registerV1Routes(v1Group, handlers, middleware.RenderRateLimit(cfg))

	return router
}

func registerV1Routes(router *gin.RouterGroup, handlers Handlers, limit gin.HandlerFunc) {
	documents := router.Group("/documents")
	documents.Use(limit)
	{
		documents.POST("/invoice", handlers.Document.RenderInvoice)
		documents.POST("/ledger", handlers.Document.RenderLedger)
		documents.POST("/ledger/batch", handlers.Document.RenderLedgerBatch)
		documents.POST("/report", handlers.Document.RenderReport)
		documents.GET("/:type/:id/url", handlers.Document.GetDocumentURL)
	}

	orgProfile := router.Group("/org-profile")
	{
		orgProfile.GET("", handlers.OrgProfile.GetOrgProfile)
		orgProfile.DELETE("/cache", handlers.OrgProfile.InvalidateOrgProfile)
	}
}
