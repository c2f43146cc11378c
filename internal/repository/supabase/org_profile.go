package supabase

import (
	"context"

	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/domain/org"
	ierr "github.com/AntarMukhopadhyaya/med-bill-sub000/internal/errors"
	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/logger"
	"github.com/nedpals/supabase-go"
)

type orgProfileRepository struct {
	client *supabase.Client
	table  string
	logger *logger.Logger
}

// NewOrgProfileRepository reads the single profile row through PostgREST
func NewOrgProfileRepository(client *supabase.Client, table string, logger *logger.Logger) org.Repository {
	return &orgProfileRepository{client: client, table: table, logger: logger}
}

func (r *orgProfileRepository) Get(_ context.Context) (*org.Profile, error) {
	var rows []org.Profile
	if err := r.client.DB.From(r.table).Select("*").Execute(&rows); err != nil {
		r.logger.Errorw("failed to fetch org profile", "table", r.table, "error", err)
		return nil, ierr.WithError(err).
			WithHint("Could not load the organization profile").
			WithReportableDetails(map[string]any{"table": r.table}).
			Mark(ierr.ErrHTTPClient)
	}

	if len(rows) == 0 {
		return nil, ierr.NewError("org profile not found").
			WithHintf("Table %s has no rows", r.table).
			Mark(ierr.ErrNotFound)
	}
	if len(rows) > 1 {
		r.logger.Warnw("org profile table has more than one row, using the first",
			"table", r.table,
			"rows", len(rows),
		)
	}

	return &rows[0], nil
}
