package models

import "database/sql"

// RawListing holds one unprocessed row of the source CSV.
// Values are kept verbatim so the cleaner can report bad cells by line.
type RawListing struct {
	Line            int
	Name            string
	Price           string
	FuelType        string
	Transmission    string
	OwnerType       string
	Location        string
	Year            string
	SeatingCapacity string
}

// Listing is the cleaned, typed record used by every later stage.
// Empty strings and invalid Null* values stand for missing cells.
type Listing struct {
	ID              int64
	Name            string
	Brand           string
	Price           sql.NullFloat64
	FuelType        string
	Transmission    string
	OwnerType       string
	Location        string
	Year            sql.NullInt64
	SeatingCapacity sql.NullInt64
}

// Schema describes which columns the source file carried.
type Schema struct {
	Columns            []string
	HasSeatingCapacity bool
	SeatingColumn      string
}

// Dataset is the loaded table plus its schema.
type Dataset struct {
	Source   string
	Schema   Schema
	Listings []*Listing
}

// SummaryMetrics holds the headline numbers printed on the insights page.
type SummaryMetrics struct {
	TotalCars       int
	AveragePrice    float64
	HasAveragePrice bool
	MostCommonFuel  string
	MostCommonBrand string
}

// LabelValue is one bar, cell or bucket of an aggregated series.
type LabelValue struct {
	Label string
	Value float64
}
