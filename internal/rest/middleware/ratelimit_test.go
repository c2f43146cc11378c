package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/config"
	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/logger"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRenderRateLimit(t *testing.T) {
	tests := []struct {
		name     string
		limit    float64
		burst    int
		requests int
		want     []int
	}{
		{name: "disabled", limit: 0, requests: 4, want: []int{200, 200, 200, 200}},
		{name: "burst of two", limit: 0.001, burst: 2, requests: 4, want: []int{200, 200, 429, 429}},
		{name: "zero burst still admits one", limit: 0.001, burst: 0, requests: 2, want: []int{200, 429}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.GetDefaultConfig()
			cfg.Server.RenderRateLimit = tt.limit
			cfg.Server.RenderBurst = tt.burst

			gin.SetMode(gin.TestMode)
			r := gin.New()
			r.Use(ErrorHandler(logger.NewNoopLogger()))
			r.POST("/render", RenderRateLimit(cfg), func(c *gin.Context) { c.Status(http.StatusOK) })

			got := make([]int, 0, tt.requests)
			for i := 0; i < tt.requests; i++ {
				w := httptest.NewRecorder()
				r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/render", nil))
				got = append(got, w.Code)
				if w.Code == http.StatusTooManyRequests {
					assert.Equal(t, "1", w.Header().Get("Retry-After"))
					assert.Contains(t, w.Body.String(), "Too many render requests")
				}
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
