package static

import (
	"context"
	"testing"

	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/config"
	ierr "github.com/AntarMukhopadhyaya/med-bill-sub000/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrgProfileRepository_Get(t *testing.T) {
	repo := NewOrgProfileRepository(config.StaticOrgProfile{
		Name:     "Sunrise Medical Distributors",
		City:     "Pune",
		TaxID:    "27AAACS1234A1Z1",
		BankName: "HDFC Bank",
	})

	p, err := repo.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Sunrise Medical Distributors", p.Name)
	assert.Equal(t, "27AAACS1234A1Z1", p.TaxID)
	assert.True(t, p.HasBankDetails())

	p.Name = "changed"
	again, err := repo.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Sunrise Medical Distributors", again.Name)
}

func TestOrgProfileRepository_NotConfigured(t *testing.T) {
	_, err := NewOrgProfileRepository(config.StaticOrgProfile{}).Get(context.Background())
	assert.True(t, ierr.IsNotFound(err))
}
