package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewContactIdentity_Normalizes(t *testing.T) {
	a := NewContactIdentity(" Jane ", "DOE", "Acme Corp")
	b := NewContactIdentity("jane", "doe", "acme corp")
	assert.Equal(t, a, b)
}

func TestContactIdentity_IgnoresEmail(t *testing.T) {
	a := Contact{FirstName: "Jane", LastName: "Doe", Company: "Acme", Email: "jane@acme.com"}
	b := Contact{FirstName: "Jane", LastName: "Doe", Company: "Acme", Email: "j.doe@acme.com"}
	assert.Equal(t, a.Identity(), b.Identity())
}

func TestHasAnyEmail(t *testing.T) {
	assert.True(t, Contact{Email: "j@acme.com"}.HasAnyEmail())
	assert.False(t, Contact{}.HasAnyEmail())
	assert.False(t, Contact{Email: EmailUnavailable}.HasAnyEmail())
}

func TestSearchFilters_Excluded(t *testing.T) {
	f := SearchFilters{ExcludeKeys: map[ContactIdentity]struct{}{
		NewContactIdentity("jane", "doe", "acme"): {},
	}}

	assert.True(t, f.Excluded(NewContactIdentity("Jane", "Doe", "Acme")))
	assert.False(t, f.Excluded(NewContactIdentity("john", "doe", "acme")))
	assert.False(t, SearchFilters{}.Excluded(NewContactIdentity("jane", "doe", "acme")))
}

func TestNewAliasSet(t *testing.T) {
	s := NewAliasSet("  USC ", "University  of Southern California", "")
	assert.Len(t, s, 2)
	assert.True(t, s.Contains("usc"))
	assert.True(t, s.Contains("university of southern california"))
	assert.False(t, s.Contains(""))
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "bain & company", NormalizeName("  Bain   &  Company "))
	assert.Empty(t, NormalizeName("   "))
}
