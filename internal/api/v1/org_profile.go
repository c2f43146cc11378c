package v1

import (
	"net/http"

	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/cache"
	ierr "github.com/AntarMukhopadhyaya/med-bill-sub000/internal/errors"
	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/logger"
	"github.com/gin-gonic/gin"
)

type OrgProfileHandler struct {
	profiles *cache.OrgProfileCache
	logger   *logger.Logger
}

func NewOrgProfileHandler(profiles *cache.OrgProfileCache, logger *logger.Logger) *OrgProfileHandler {
	return &OrgProfileHandler{profiles: profiles, logger: logger}
}

// GetOrgProfile godoc
// @Summary Get the organization profile
// @Description Returns the cached organization profile printed on documents
// @Tags OrgProfile
// @Produce json
// @Param refresh query bool false "Bypass the cache TTL and fetch from the source"
// @Success 200 {object} org.Profile
// @Failure 404 {object} ierr.ErrorResponse
// @Router /org-profile [get]
func (h *OrgProfileHandler) GetOrgProfile(c *gin.Context) {
	ctx := c.Request.Context()
	profile := h.profiles.Get(ctx, c.Query("refresh") == "true")
	if profile == nil {
		c.Error(ierr.NewError("org profile unavailable").
			WithHint("Organization profile could not be loaded").
			Mark(ierr.ErrNotFound))
		return
	}

	c.Header("X-Cache-State", string(h.profiles.State(ctx)))
	c.JSON(http.StatusOK, profile)
}

// InvalidateOrgProfile godoc
// @Summary Drop the cached organization profile
// @Tags OrgProfile
// @Success 204
// @Router /org-profile/cache [delete]
func (h *OrgProfileHandler) InvalidateOrgProfile(c *gin.Context) {
	h.profiles.Invalidate(c.Request.Context())
	h.logger.Infow("org profile cache invalidated")
	c.Status(http.StatusNoContent)
}
