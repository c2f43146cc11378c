package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"

	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/domain/org"
	ierr "github.com/AntarMukhopadhyaya/med-bill-sub000/internal/errors"
	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/logger"
	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/postgres"
	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
)

var identifier = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*(\.[a-zA-Z_][a-zA-Z0-9_]*)?$`)

// profileColumns lists the columns scanned into org.Profile, matching its db tags
var profileColumns = []string{
	"name",
	"address_line1",
	"address_line2",
	"city",
	"state",
	"postal_code",
	"country",
	"phone",
	"email",
	"website",
	"tax_id",
	"registration_number",
	"bank_name",
	"account_holder",
	"account_number",
	"branch_code",
	"upi_id",
}

type orgProfileRepository struct {
	db     *postgres.DB
	query  string
	logger *logger.Logger
}

func NewOrgProfileRepository(db *postgres.DB, table string, logger *logger.Logger) (org.Repository, error) {
	query, err := profileQuery(table)
	if err != nil {
		return nil, err
	}
	return &orgProfileRepository{db: db, query: query, logger: logger}, nil
}

// profileQuery selects the first row with NULL text columns read as empty strings
func profileQuery(table string) (string, error) {
	if !identifier.MatchString(table) {
		return "", ierr.NewErrorf("invalid org profile table %q", table).
			WithHint("org_profile.table must be a plain or schema-qualified table name").
			Mark(ierr.ErrValidation)
	}

	cols := lo.Map(profileColumns, func(c string, _ int) string {
		return fmt.Sprintf("COALESCE(%s, '') AS %s", c, c)
	})
	return fmt.Sprintf("SELECT %s FROM %s LIMIT 1", strings.Join(cols, ", "), table), nil
}

func (r *orgProfileRepository) Get(ctx context.Context) (*org.Profile, error) {
	var p org.Profile
	err := r.db.GetQuerier().GetContext(ctx, &p, r.query)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ierr.NewError("org profile not found").
			WithHint("The organization profile table is empty").
			Mark(ierr.ErrNotFound)
	}
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Could not load the organization profile").
			Mark(ierr.ErrDatabase)
	}

	return &p, nil
}
