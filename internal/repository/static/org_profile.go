package static

import (
	"context"

	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/config"
	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/domain/org"
	ierr "github.com/AntarMukhopadhyaya/med-bill-sub000/internal/errors"
)

type orgProfileRepository struct {
	profile org.Profile
}

// NewOrgProfileRepository serves the profile written in config
func NewOrgProfileRepository(c config.StaticOrgProfile) org.Repository {
	return &orgProfileRepository{profile: org.Profile{
		Name:               c.Name,
		AddressLine1:       c.AddressLine1,
		AddressLine2:       c.AddressLine2,
		City:               c.City,
		State:              c.State,
		PostalCode:         c.PostalCode,
		Country:            c.Country,
		Phone:              c.Phone,
		Email:              c.Email,
		Website:            c.Website,
		TaxID:              c.TaxID,
		RegistrationNumber: c.RegistrationNumber,
		BankName:           c.BankName,
		AccountHolder:      c.AccountHolder,
		AccountNumber:      c.AccountNumber,
		BranchCode:         c.BranchCode,
		UPIID:              c.UPIID,
	}}
}

func (r *orgProfileRepository) Get(_ context.Context) (*org.Profile, error) {
	if r.profile.Name == "" {
		return nil, ierr.NewError("org profile not configured").
			WithHint("Set org_profile.static.name or switch org_profile.source").
			Mark(ierr.ErrNotFound)
	}
	p := r.profile
	return &p, nil
}
