package middleware

import (
	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/config"
	ierr "github.com/AntarMukhopadhyaya/med-bill-sub000/internal/errors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RenderRateLimit throttles the document rendering routes with one shared
// token bucket. A zero limit lets every request through.
func RenderRateLimit(cfg *config.Configuration) gin.HandlerFunc {
	if cfg.Server.RenderRateLimit <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	limiter := rate.NewLimiter(rate.Limit(cfg.Server.RenderRateLimit), max(1, cfg.Server.RenderBurst))
	return func(c *gin.Context) {
		if !limiter.Allow() {
			c.Header("Retry-After", "1")
			c.Error(ierr.NewError("render rate limit exceeded").
				WithHint("Too many render requests, retry shortly").
				Mark(ierr.ErrRateLimited))
			c.Abort()
			return
		}
		c.Next()
	}
}
