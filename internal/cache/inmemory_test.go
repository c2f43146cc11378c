package cache

import (
	"context"
	"testing"
	"time"

	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/config"
	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/logger"
	"github.com/stretchr/testify/assert"
)

func TestInMemoryCache(t *testing.T) {
	ctx := context.Background()
	cfg := config.GetDefaultConfig()
	c := NewInMemoryCache(cfg, logger.NewNoopLogger())

	c.Set(ctx, GenerateKey(PrefixOrgProfile, "a"), 1, 0)
	c.Set(ctx, GenerateKey(PrefixOrgProfile, "b"), 2, time.Minute)
	c.Set(ctx, "other", 3, 0)

	v, ok := c.Get(ctx, "org_profile:v1::a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	c.DeleteByPrefix(ctx, PrefixOrgProfile)
	_, ok = c.Get(ctx, GenerateKey(PrefixOrgProfile, "b"))
	assert.False(t, ok)

	_, ok = c.Get(ctx, "other")
	assert.True(t, ok)

	c.Flush(ctx)
	_, ok = c.Get(ctx, "other")
	assert.False(t, ok)
}

func TestInMemoryCache_Disabled(t *testing.T) {
	ctx := context.Background()
	cfg := config.GetDefaultConfig()
	cfg.Cache.Enabled = false
	c := NewInMemoryCache(cfg, logger.NewNoopLogger())

	c.Set(ctx, "k", "v", 0)
	_, ok := c.Get(ctx, "k")
	assert.False(t, ok)
}
