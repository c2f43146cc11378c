package repository

import (
	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/config"
	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/domain/org"
	ierr "github.com/AntarMukhopadhyaya/med-bill-sub000/internal/errors"
	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/logger"
	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/postgres"
	postgresRepo "github.com/AntarMukhopadhyaya/med-bill-sub000/internal/repository/postgres"
	staticRepo "github.com/AntarMukhopadhyaya/med-bill-sub000/internal/repository/static"
	supabaseRepo "github.com/AntarMukhopadhyaya/med-bill-sub000/internal/repository/supabase"
	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/types"
	"github.com/nedpals/supabase-go"
)

// NewOrgProfileRepository builds the metadata source selected by org_profile.source
func NewOrgProfileRepository(cfg *config.Configuration, logger *logger.Logger) (org.Repository, error) {
	switch cfg.OrgProfile.Source {
	case types.OrgProfileSourceSupabase:
		client := supabase.CreateClient(cfg.Supabase.BaseURL, cfg.Supabase.ServiceKey)
		if client == nil {
			return nil, ierr.NewError("failed to create supabase client").
				WithHint("Check supabase.base_url and supabase.service_key").
				Mark(ierr.ErrSystem)
		}
		return supabaseRepo.NewOrgProfileRepository(client, cfg.OrgProfile.Table, logger), nil
	case types.OrgProfileSourcePostgres:
		db, err := postgres.NewDB(cfg, logger)
		if err != nil {
			return nil, err
		}
		return postgresRepo.NewOrgProfileRepository(db, cfg.OrgProfile.Table, logger)
	case types.OrgProfileSourceStatic:
		return staticRepo.NewOrgProfileRepository(cfg.OrgProfile.Static), nil
	default:
		return nil, ierr.NewErrorf("unknown org profile source %q", cfg.OrgProfile.Source).
			WithHint("org_profile.source must be one of supabase, postgres or static").
			Mark(ierr.ErrValidation)
	}
}
