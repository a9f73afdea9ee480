package engine

import (
	"countries/internal/faults"
	"countries/internal/models"
)

// Finder is the read side of a store
type Finder interface {
	Get(name string) (models.Country, bool)
}

// Service looks countries up by name
type Service struct {
	store Finder
}

func NewService(store Finder) *Service {
	return &Service{store: store}
}

// FindCountry returns the country called *name.
// A nil name is a caller error; an unknown name is reported through ok == false.
func (s *Service) FindCountry(name *string) (country models.Country, ok bool, err error) {
	if name == nil {
		return models.Country{}, false, faults.New(faults.InvalidArgument, "The country's name must not be null")
	}
	country, ok = s.store.Get(*name)
	return country, ok, nil
}
