package cache

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/config"
	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/domain/org"
	ierr "github.com/AntarMukhopadhyaya/med-bill-sub000/internal/errors"
	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/logger"
	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/types"
)

// OrgProfileState describes the lifecycle of the cached organization profile
type OrgProfileState string

const (
	OrgProfileStateEmpty    OrgProfileState = "empty"
	OrgProfileStateFetching OrgProfileState = "fetching"
	OrgProfileStateValid    OrgProfileState = "valid"
	OrgProfileStateStale    OrgProfileState = "stale"
)

type orgProfileEntry struct {
	profile   *org.Profile
	fetchedAt time.Time
}

// OrgProfileCache keeps the last fetched organization profile for a TTL window.
// The entry is held in the cache itself and mirrored to the shared store, so
// the TTL still applies when the shared store is disabled.
//
// A refresh that fails keeps serving the previous value. No lock is held
// while fetching, so two callers that both see a stale entry may both fetch;
// the last successful write wins.
type OrgProfileCache struct {
	source   org.Repository
	store    Cache
	clock    types.Clock
	ttl      time.Duration
	logger   *logger.Logger
	key      string
	last     atomic.Pointer[orgProfileEntry]
	fetching atomic.Int32
}

// NewOrgProfileCache wires the cache to its source. A nil clock uses the wall clock.
func NewOrgProfileCache(
	source org.Repository,
	store Cache,
	clock types.Clock,
	cfg *config.Configuration,
	log *logger.Logger,
) *OrgProfileCache {
	if clock == nil {
		clock = types.SystemClock()
	}
	return &OrgProfileCache{
		source: source,
		store:  store,
		clock:  clock,
		ttl:    cfg.OrgProfile.TTL,
		logger: log,
		key:    GenerateKey(PrefixOrgProfile, "default"),
	}
}

// Get returns the organization profile, fetching it when the cache is empty,
// older than the TTL, or forceRefresh is set. It returns nil only when no
// fetch has ever succeeded.
func (c *OrgProfileCache) Get(ctx context.Context, forceRefresh bool) *org.Profile {
	entry, ok := c.load(ctx)
	if ok && !forceRefresh && !c.expired(entry) {
		return clone(entry.profile)
	}

	profile, err := c.refresh(ctx)
	if err != nil {
		if ok {
			c.logger.Warnw("org profile refresh failed, serving stale value",
				"error", err,
				"fetched_at", entry.fetchedAt,
				"age", c.clock.Now().Sub(entry.fetchedAt).String(),
			)
			return clone(entry.profile)
		}
		c.logger.Warnw("org profile unavailable", "error", err)
		return nil
	}

	return clone(profile)
}

// State reports where the cache is in its lifecycle
func (c *OrgProfileCache) State(ctx context.Context) OrgProfileState {
	if c.fetching.Load() > 0 {
		return OrgProfileStateFetching
	}
	entry, ok := c.load(ctx)
	switch {
	case !ok:
		return OrgProfileStateEmpty
	case c.expired(entry):
		return OrgProfileStateStale
	default:
		return OrgProfileStateValid
	}
}

// Invalidate drops the cached profile so the next Get fetches
func (c *OrgProfileCache) Invalidate(ctx context.Context) {
	c.last.Store(nil)
	c.store.DeleteByPrefix(ctx, PrefixOrgProfile)
}

func (c *OrgProfileCache) refresh(ctx context.Context) (*org.Profile, error) {
	span := StartCacheSpan(ctx, "org_profile", "refresh", map[string]interface{}{
		"key": c.key,
	})
	defer FinishSpan(span)

	c.fetching.Add(1)
	defer c.fetching.Add(-1)

	profile, err := c.source.Get(ctx)
	if err == nil && profile == nil {
		err = ierr.NewError("org profile source returned no profile").
			Mark(ierr.ErrNotFound)
	}
	if err != nil {
		SetSpanError(span, err)
		return nil, err
	}

	entry := &orgProfileEntry{
		profile:   clone(profile),
		fetchedAt: c.clock.Now(),
	}
	c.last.Store(entry)
	// entries never expire in the store; staleness is judged against fetchedAt
	c.store.Set(ctx, c.key, entry, 0)

	SetSpanSuccess(span)
	c.logger.Debugw("org profile refreshed", "name", profile.Name)
	return profile, nil
}

func (c *OrgProfileCache) load(ctx context.Context) (*orgProfileEntry, bool) {
	if v, ok := c.store.Get(ctx, c.key); ok {
		if entry, ok := v.(*orgProfileEntry); ok && entry != nil && entry.profile != nil {
			return entry, true
		}
	}
	entry := c.last.Load()
	if entry == nil || entry.profile == nil {
		return nil, false
	}
	return entry, true
}

func (c *OrgProfileCache) expired(entry *orgProfileEntry) bool {
	return c.clock.Now().Sub(entry.fetchedAt) >= c.ttl
}

func clone(p *org.Profile) *org.Profile {
	if p == nil {
		return nil
	}
	cp := *p
	return &cp
}
