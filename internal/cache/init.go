package cache

import (
	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/config"
	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/logger"
)

// Initialize creates the process-wide cache store used by the org profile cache
func Initialize(cfg *config.Configuration, log *logger.Logger) Cache {
	log.Infow("initializing cache system", "enabled", cfg.Cache.Enabled)
	return NewInMemoryCache(cfg, log)
}
