package org

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProfile_AddressLines(t *testing.T) {
	tests := []struct {
		name    string
		profile *Profile
		want    []string
	}{
		{
			name:    "nil profile",
			profile: nil,
			want:    nil,
		},
		{
			name: "full address",
			profile: &Profile{
				AddressLine1: "12 Market Road",
				AddressLine2: "Ground Floor",
				City:         "Kolkata",
				State:        "West Bengal",
				PostalCode:   "700001",
				Country:      "India",
			},
			want: []string{"12 Market Road", "Ground Floor", "Kolkata, West Bengal - 700001", "India"},
		},
		{
			name:    "postal code only",
			profile: &Profile{AddressLine1: "Unit 4", PostalCode: "560001"},
			want:    []string{"Unit 4", "560001"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.profile.AddressLines())
		})
	}
}

func TestProfile_Lines(t *testing.T) {
	p := &Profile{Phone: "+91 1", Website: "example.com", TaxID: "GST1"}
	assert.Equal(t, "+91 1  |  example.com", p.ContactLine())
	assert.Equal(t, "GSTIN: GST1", p.TaxLine())
	assert.False(t, p.HasBankDetails())

	p.UPIID = "shop@upi"
	assert.True(t, p.HasBankDetails())

	var empty *Profile
	assert.Empty(t, empty.ContactLine())
	assert.Empty(t, empty.TaxLine())
}
