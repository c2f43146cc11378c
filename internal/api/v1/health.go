package v1

import (
	"net/http"

	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/cache"
	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/logger"
	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	profiles *cache.OrgProfileCache
	logger   *logger.Logger
}

func NewHealthHandler(
	profiles *cache.OrgProfileCache,
	logger *logger.Logger,
) *HealthHandler {
	return &HealthHandler{
		profiles: profiles,
		logger:   logger,
	}
}

// @Summary Health check
// @Description Health check with the organization profile cache state
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "ok",
		"org_profile": h.profiles.State(c.Request.Context()),
	})
}
