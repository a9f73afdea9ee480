package engine

import (
	"fmt"
	"sort"

	"countries/internal/faults"
	"countries/internal/models"
)

// Store maps country names to records.
// It is filled once by NewStore and read-only afterwards, so it is safe for concurrent use.
type Store struct {
	countries map[string]models.Country
}

// NewStore builds a store from records.
// It fails on an invalid record or a repeated name.
func NewStore(records []models.Country) (*Store, error) {
	countries := make(map[string]models.Country, len(records))
	for _, c := range records {
		if err := c.Validate(); err != nil {
			return nil, err
		}
		if _, dup := countries[c.Name]; dup {
			return nil, faults.New(faults.InvalidArgument, fmt.Sprintf("duplicate country %q", c.Name))
		}
		countries[c.Name] = c
	}
	return &Store{countries: countries}, nil
}

// SeedCountries returns the built-in reference records
func SeedCountries() []models.Country {
	return []models.Country{
		{Name: "Spain", Capital: "Madrid", Currency: models.EUR, Population: 200000, Language: "Spanish"},
		{Name: "Poland", Capital: "Warsaw", Currency: models.PLN, Population: 200001, Language: "polish"},
		{Name: "United Kingdom", Capital: "London", Currency: models.GBP, Population: 200002, Language: "English"},
	}
}

// NewSeededStore returns a store holding SeedCountries.
// It panics if the built-in records are invalid.
func NewSeededStore() *Store {
	s, err := NewStore(SeedCountries())
	if err != nil {
		panic(err)
	}
	return s
}

// Get returns the record with exactly this name
func (s *Store) Get(name string) (models.Country, bool) {
	c, ok := s.countries[name]
	return c, ok
}

// Len returns the number of records
func (s *Store) Len() int {
	return len(s.countries)
}

// Names returns every record name in ascending order
func (s *Store) Names() []string {
	names := make([]string, 0, len(s.countries))
	for n := range s.countries {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
