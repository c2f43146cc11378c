package postgres

import (
	"reflect"
	"strings"
	"testing"

	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/domain/org"
	ierr "github.com/AntarMukhopadhyaya/med-bill-sub000/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileQuery(t *testing.T) {
	tests := []struct {
		name    string
		table   string
		wantErr bool
	}{
		{name: "plain", table: "company_profile"},
		{name: "schema qualified", table: "public.company_profile"},
		{name: "injection", table: "company_profile; DROP TABLE x", wantErr: true},
		{name: "quoted", table: `"company_profile"`, wantErr: true},
		{name: "empty", table: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := profileQuery(tt.table)
			if tt.wantErr {
				assert.True(t, ierr.IsValidation(err))
				return
			}
			require.NoError(t, err)
			assert.True(t, strings.HasSuffix(q, "FROM "+tt.table+" LIMIT 1"))
			assert.Contains(t, q, "COALESCE(upi_id, '') AS upi_id")
		})
	}
}

func TestProfileColumnsMatchModel(t *testing.T) {
	typ := reflect.TypeOf(org.Profile{})
	var tags []string
	for i := 0; i < typ.NumField(); i++ {
		tags = append(tags, typ.Field(i).Tag.Get("db"))
	}
	assert.ElementsMatch(t, tags, profileColumns)
}
