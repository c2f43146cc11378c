package testutil

import (
	"context"
	"sync"

	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/domain/org"
	ierr "github.com/AntarMukhopadhyaya/med-bill-sub000/internal/errors"
)

// InMemoryOrgStore implements org.Repository and counts fetches
type InMemoryOrgStore struct {
	mu      sync.RWMutex
	profile *org.Profile
	err     error
	calls   int
}

var _ org.Repository = (*InMemoryOrgStore)(nil)

func NewInMemoryOrgStore(profile *org.Profile) *InMemoryOrgStore {
	return &InMemoryOrgStore{profile: profile}
}

func (s *InMemoryOrgStore) Get(_ context.Context) (*org.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++

	if s.err != nil {
		return nil, s.err
	}
	if s.profile == nil {
		return nil, ierr.NewError("org profile not found").
			WithHint("Organization profile has not been configured").
			Mark(ierr.ErrNotFound)
	}
	cp := *s.profile
	return &cp, nil
}

// SetProfile replaces the stored profile
func (s *InMemoryOrgStore) SetProfile(profile *org.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = profile
}

// FailWith makes every following Get return err until cleared with nil
func (s *InMemoryOrgStore) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// Calls returns how many times Get was invoked
func (s *InMemoryOrgStore) Calls() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.calls
}

// SampleOrgProfile returns a fully populated profile for rendering tests
func SampleOrgProfile() *org.Profile {
	return &org.Profile{
		Name:               "Sunrise Medical Distributors",
		AddressLine1:       "14 Hospital Road",
		City:               "Pune",
		State:              "Maharashtra",
		PostalCode:         "411001",
		Country:            "India",
		Phone:              "+91 20 5555 0101",
		Email:              "billing@sunrise.example",
		Website:            "sunrise.example",
		TaxID:              "27AAACS1234F1Z9",
		RegistrationNumber: "MH-PZ-123456",
		BankName:           "Union Bank",
		AccountHolder:      "Sunrise Medical Distributors",
		AccountNumber:      "123456789012",
		BranchCode:         "UBIN0531234",
		UPIID:              "sunrise@upi",
	}
}
