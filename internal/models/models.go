package models

import (
	"encoding/xml"
	"fmt"

	"countries/internal/faults"
)

// Namespace is the target namespace of the countries schema
const Namespace = "http://spring.io/guides/countries-web-service"

// Currency is one of the codes enumerated by the schema
type Currency string

const (
	GBP Currency = "GBP"
	EUR Currency = "EUR"
	PLN Currency = "PLN"
)

// Currencies lists the accepted codes in schema order
var Currencies = []Currency{GBP, EUR, PLN}

// Valid reports whether c is one of Currencies
func (c Currency) Valid() bool {
	for _, known := range Currencies {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCurrency returns the Currency for an exact code, or an InvalidArgument fault.
func ParseCurrency(s string) (Currency, error) {
	c := Currency(s)
	if !c.Valid() {
		return "", faults.New(faults.InvalidArgument, fmt.Sprintf("unknown currency %q", s))
	}
	return c, nil
}

// Country is a single reference record, keyed by Name
type Country struct {
	Name       string   `xml:"countryName" json:"countryName"`
	Capital    string   `xml:"capital" json:"capital"`
	Currency   Currency `xml:"currency" json:"currency"`
	Population int      `xml:"population" json:"population"`
	Language   string   `xml:"language" json:"language"`
}

// Validate requires a name and a known currency
func (c Country) Validate() error {
	if c.Name == "" {
		return faults.New(faults.InvalidArgument, "country name must not be empty")
	}
	if !c.Currency.Valid() {
		return faults.New(faults.InvalidArgument, fmt.Sprintf("country %q: unknown currency %q", c.Name, c.Currency))
	}
	return nil
}

// GetCountryRequest asks for a country by name.
// Name is nil when the name element is missing from the message or marked xsi:nil.
type GetCountryRequest struct {
	XMLName xml.Name `xml:"http://spring.io/guides/countries-web-service getCountryRequest" json:"-"`
	Name    *string  `xml:"name" json:"name"`
}

// nillableString is an element that may carry xsi:nil
type nillableString struct {
	Nil   string `xml:"nil,attr"`
	Value string `xml:",chardata"`
}

func (n *nillableString) isNil() bool {
	return n == nil || n.Nil == "true" || n.Nil == "1"
}

func (r *GetCountryRequest) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var raw struct {
		Name *nillableString `xml:"name"`
	}
	if err := d.DecodeElement(&raw, &start); err != nil {
		return err
	}

	r.XMLName = start.Name
	r.Name = nil
	if !raw.Name.isNil() {
		name := raw.Name.Value
		r.Name = &name
	}
	return nil
}

// GetCountryResponse carries the matching country, or none when the name is unknown.
type GetCountryResponse struct {
	XMLName xml.Name `xml:"http://spring.io/guides/countries-web-service getCountryResponse" json:"-"`
	Country *Country `xml:"country,omitempty" json:"country,omitempty"`
}
