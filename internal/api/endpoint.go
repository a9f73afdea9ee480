package api

import (
	"context"

	"countries/internal/models"
	"countries/internal/rpc"
)

// GetCountryKey routes getCountryRequest messages
var GetCountryKey = rpc.OperationKey{Namespace: models.Namespace, Name: "getCountryRequest"}

// Finder looks a country up by name; a nil name is an error
type Finder interface {
	FindCountry(name *string) (models.Country, bool, error)
}

// CountryEndpoint binds the getCountry messages to a Finder
type CountryEndpoint struct {
	countries Finder
}

func NewCountryEndpoint(countries Finder) *CountryEndpoint {
	return &CountryEndpoint{countries: countries}
}

func (e *CountryEndpoint) Register(r *rpc.Router) {
	r.Handle(GetCountryKey, e.GetCountry)
}

// GetCountry answers with the named country, or with an empty response when it is unknown.
func (e *CountryEndpoint) GetCountry(ctx context.Context, p rpc.Payload) (any, error) {
	var req models.GetCountryRequest
	if err := p.Decode(&req); err != nil {
		return nil, err
	}

	country, ok, err := e.countries.FindCountry(req.Name)
	if err != nil {
		return nil, err
	}

	resp := &models.GetCountryResponse{}
	if ok {
		resp.Country = &country
	}
	return resp, nil
}
