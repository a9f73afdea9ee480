package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"countries/internal/faults"
	"countries/internal/models"
)

func TestFindCountry(t *testing.T) {
	svc := NewService(NewSeededStore())

	for _, seed := range SeedCountries() {
		name := seed.Name
		c, ok, err := svc.FindCountry(&name)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, name, c.Name)
	}
}

func TestFindCountryNotFound(t *testing.T) {
	svc := NewService(NewSeededStore())

	name := "Atlantis"
	c, ok, err := svc.FindCountry(&name)
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, models.Country{}, c)
}

func TestFindCountryNilName(t *testing.T) {
	svc := NewService(NewSeededStore())

	_, ok, err := svc.FindCountry(nil)
	assert.False(t, ok)
	require.Error(t, err)
	assert.Equal(t, faults.InvalidArgument, faults.CodeOf(err))
	assert.Equal(t, "The country's name must not be null", faults.MessageOf(err))
}

type stubFinder map[string]models.Country

func (s stubFinder) Get(name string) (models.Country, bool) {
	c, ok := s[name]
	return c, ok
}

func TestFindCountryDelegates(t *testing.T) {
	atlantis := models.Country{Name: "Atlantis", Capital: "Poseidonis", Currency: models.EUR}
	svc := NewService(stubFinder{"Atlantis": atlantis})

	name := "Atlantis"
	c, ok, err := svc.FindCountry(&name)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, atlantis, c)
}
