package org

import (
	"strings"

	"github.com/samber/lo"
)

// Profile is the issuing organization printed in the header of every document.
// It is a single logical row owned by the data service.
type Profile struct {
	// Name is the legal or trading name of the organization
	Name string `db:"name" json:"name"`

	AddressLine1 string `db:"address_line1" json:"address_line1,omitempty"`
	AddressLine2 string `db:"address_line2" json:"address_line2,omitempty"`
	City         string `db:"city" json:"city,omitempty"`
	State        string `db:"state" json:"state,omitempty"`
	PostalCode   string `db:"postal_code" json:"postal_code,omitempty"`
	Country      string `db:"country" json:"country,omitempty"`

	Phone   string `db:"phone" json:"phone,omitempty"`
	Email   string `db:"email" json:"email,omitempty"`
	Website string `db:"website" json:"website,omitempty"`

	// TaxID is the GSTIN / VAT number
	TaxID string `db:"tax_id" json:"tax_id,omitempty"`

	// RegistrationNumber is the drug license or company registration number
	RegistrationNumber string `db:"registration_number" json:"registration_number,omitempty"`

	BankName      string `db:"bank_name" json:"bank_name,omitempty"`
	AccountHolder string `db:"account_holder" json:"account_holder,omitempty"`
	AccountNumber string `db:"account_number" json:"account_number,omitempty"`
	BranchCode    string `db:"branch_code" json:"branch_code,omitempty"`
	UPIID         string `db:"upi_id" json:"upi_id,omitempty"`
}

// AddressLines returns the non-empty postal address lines in print order
func (p *Profile) AddressLines() []string {
	if p == nil {
		return nil
	}

	locality := joinNonEmpty(", ", p.City, p.State)
	if p.PostalCode != "" {
		locality = joinNonEmpty(" - ", locality, p.PostalCode)
	}

	return lo.Compact([]string{p.AddressLine1, p.AddressLine2, locality, p.Country})
}

// ContactLine joins phone, email and website with separators
func (p *Profile) ContactLine() string {
	if p == nil {
		return ""
	}
	return joinNonEmpty("  |  ", p.Phone, p.Email, p.Website)
}

// TaxLine renders the tax and registration identifiers
func (p *Profile) TaxLine() string {
	if p == nil {
		return ""
	}
	parts := make([]string, 0, 2)
	if p.TaxID != "" {
		parts = append(parts, "GSTIN: "+p.TaxID)
	}
	if p.RegistrationNumber != "" {
		parts = append(parts, "Reg. No: "+p.RegistrationNumber)
	}
	return strings.Join(parts, "  |  ")
}

// HasBankDetails reports whether any payment detail is present
func (p *Profile) HasBankDetails() bool {
	if p == nil {
		return false
	}
	return lo.SomeBy([]string{p.BankName, p.AccountNumber, p.BranchCode, p.UPIID}, func(s string) bool {
		return s != ""
	})
}

func joinNonEmpty(sep string, parts ...string) string {
	return strings.Join(lo.Compact(parts), sep)
}
