package engine

import (
	"fmt"
	"os"

	"github.com/apache/arrow/go/v18/arrow"
	"github.com/apache/arrow/go/v18/arrow/array"
	"github.com/apache/arrow/go/v18/arrow/csv"

	"countries/internal/models"
)

// Column layout of a seed file: countryName,capital,currency,population,language
var seedSchema = arrow.NewSchema([]arrow.Field{
	{Name: "countryName", Type: arrow.BinaryTypes.String},
	{Name: "capital", Type: arrow.BinaryTypes.String},
	{Name: "currency", Type: arrow.BinaryTypes.String},
	{Name: "population", Type: arrow.PrimitiveTypes.Int64},
	{Name: "language", Type: arrow.BinaryTypes.String},
}, nil)

const seedChunkRows = 256

// LoadCSV reads country records from a CSV file with a header row.
func LoadCSV(path string) ([]models.Country, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f, seedSchema, csv.WithHeader(true), csv.WithChunk(seedChunkRows))
	defer r.Release()

	var out []models.Country
	for r.Next() {
		rec := r.Record()

		names := rec.Column(0).(*array.String)
		capitals := rec.Column(1).(*array.String)
		currencies := rec.Column(2).(*array.String)
		populations := rec.Column(3).(*array.Int64)
		languages := rec.Column(4).(*array.String)

		for i := 0; i < int(rec.NumRows()); i++ {
			cur, err := models.ParseCurrency(currencies.Value(i))
			if err != nil {
				return nil, fmt.Errorf("seed file %s, row %d: %w", path, len(out)+1, err)
			}
			out = append(out, models.Country{
				Name:       names.Value(i),
				Capital:    capitals.Value(i),
				Currency:   cur,
				Population: int(populations.Value(i)),
				Language:   languages.Value(i),
			})
		}
	}
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("read seed file %s: %w", path, err)
	}
	return out, nil
}

// Open builds a store from seedFile, or from the built-in records when seedFile is empty.
func Open(seedFile string) (*Store, error) {
	if seedFile == "" {
		return NewStore(SeedCountries())
	}
	records, err := LoadCSV(seedFile)
	if err != nil {
		return nil, err
	}
	return NewStore(records)
}
