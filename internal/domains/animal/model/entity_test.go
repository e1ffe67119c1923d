package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAgeDisplay(t *testing.T) {
	cases := []struct {
		years, months int
		want          string
	}{
		{0, 10, "10 mois"},
		{0, 0, "0 mois"},
		{1, 0, "1 an"},
		{5, 0, "5 ans"},
		{1, 4, "1 an et 4 mois"},
		{2, 3, "2 ans et 3 mois"},
	}
	for _, tc := range cases {
		a := &Animal{AgeYears: tc.years, AgeMonths: tc.months}
		assert.Equal(t, tc.want, a.AgeDisplay())
	}
}

func TestListFilter_ValidateDropsUnknownValues(t *testing.T) {
	f := ListFilter{Search: "  rex ", Species: "LAPIN", Sex: SexFemale, AgeCategory: "bebe", Page: -3, Limit: 1000}
	assert.NoError(t, f.Validate())
	assert.Equal(t, "rex", f.Search)
	assert.Empty(t, f.Species)
	assert.Equal(t, SexFemale, f.Sex)
	assert.Empty(t, f.AgeCategory)
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, 50, f.Limit)
}
