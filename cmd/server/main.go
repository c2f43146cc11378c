package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/api"
	v1 "github.com/AntarMukhopadhyaya/med-bill-sub000/internal/api/v1"
	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/asset"
	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/cache"
	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/config"
	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/httpclient"
	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/logger"
	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/pdf"
	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/repository"
	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/s3"
	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/sentry"
	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/service"
	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/types"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

func main() {
	var opts []fx.Option

	// Core dependencies
	opts = append(opts,
		fx.Provide(
			// Config
			config.NewConfig,

			// Logger
			logger.NewLogger,

			// Cache
			cache.Initialize,
			provideClock,

			// Org profile source and cache
			repository.NewOrgProfileRepository,
			cache.NewOrgProfileCache,

			// HTTP Client
			httpclient.NewDefaultClient,

			// Assets
			asset.NewEmbedder,

			// Storage
			s3.NewService,

			// PDF
			providePDFGenerator,
		),
		sentry.Module(),
	)

	// Service layer
	opts = append(opts,
		fx.Provide(
			service.NewServiceParams,
			service.NewDocumentService,
		),
	)

	// API
	opts = append(opts,
		fx.Provide(
			provideHandlers,
			api.NewRouter,
		),
		fx.Invoke(
			warmOrgProfile,
			startServer,
		),
	)

	app := fx.New(opts...)
	app.Run()
}

func provideClock() types.Clock {
	return types.SystemClock()
}

func providePDFGenerator(
	cfg *config.Configuration,
	profiles *cache.OrgProfileCache,
	embedder *asset.Embedder,
	clock types.Clock,
	logger *logger.Logger,
) pdf.Generator {
	return pdf.NewGenerator(cfg, profiles, embedder, clock, logger)
}

func provideHandlers(
	logger *logger.Logger,
	profiles *cache.OrgProfileCache,
	documentService service.DocumentService,
) api.Handlers {
	return api.Handlers{
		Health:     v1.NewHealthHandler(profiles, logger),
		Document:   v1.NewDocumentHandler(documentService, logger),
		OrgProfile: v1.NewOrgProfileHandler(profiles, logger),
	}
}

// warmOrgProfile fills the profile cache at startup; failure only delays the first fetch
func warmOrgProfile(lc fx.Lifecycle, profiles *cache.OrgProfileCache, log *logger.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if profiles.Get(ctx, false) == nil {
				log.Warnw("org profile unavailable at startup, documents will use the placeholder until it loads")
			}
			return nil
		},
	})
}

func startServer(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	r *gin.Engine,
	log *logger.Logger,
) {
	mode := cfg.Deployment.Mode
	if mode == "" {
		mode = types.ModeLocal
	}

	switch mode {
	case types.ModeLocal, types.ModeAPI:
		startAPIServer(lc, r, cfg, log)
	default:
		log.Fatalf("Unknown deployment mode: %s", mode)
	}
}

func startAPIServer(
	lc fx.Lifecycle,
	r *gin.Engine,
	cfg *config.Configuration,
	log *logger.Logger,
) {
	srv := &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("Starting API server...", "address", cfg.Server.Address)
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server...")
			return srv.Shutdown(ctx)
		},
	})
}
