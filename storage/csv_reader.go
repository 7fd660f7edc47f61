package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"usedcars-report/models"
)

// RequiredColumns must all be present in the source header.
var RequiredColumns = []string{
	"Name", "Price", "Fuel_Type", "Transmission", "Owner_Type", "Location", "Year",
}

// ErrMissingColumn is returned when the header lacks a required column.
var ErrMissingColumn = errors.New("missing required column")

// CSVReader loads listing rows from a delimited file.
type CSVReader struct {
	seatingColumns []string
}

// NewCSVReader creates a reader that accepts any of seatingColumns as the
// optional seating-capacity column, first match wins.
func NewCSVReader(seatingColumns []string) *CSVReader {
	return &CSVReader{seatingColumns: seatingColumns}
}

// ReadFile opens path and parses it with Read.
func (c *CSVReader) ReadFile(path string) ([]*models.RawListing, models.Schema, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, models.Schema{}, fmt.Errorf("csv: open %q: %w", path, err)
	}
	defer f.Close()
	return c.Read(f)
}

// Read parses the header and every record of r.
func (c *CSVReader) Read(r io.Reader) ([]*models.RawListing, models.Schema, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, models.Schema{}, fmt.Errorf("csv: empty file")
	}
	if err != nil {
		return nil, models.Schema{}, fmt.Errorf("csv: read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		name = strings.TrimSpace(name)
		header[i] = name
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}

	for _, col := range RequiredColumns {
		if _, ok := index[col]; !ok {
			return nil, models.Schema{}, fmt.Errorf("csv: %w %q", ErrMissingColumn, col)
		}
	}

	schema := models.Schema{Columns: header}
	seatIdx := -1
	for _, col := range c.seatingColumns {
		if i, ok := index[col]; ok {
			schema.HasSeatingCapacity = true
			schema.SeatingColumn = col
			seatIdx = i
			break
		}
	}

	var rows []*models.RawListing
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, schema, fmt.Errorf("csv: read record: %w", err)
		}
		line, _ := cr.FieldPos(0)

		raw := &models.RawListing{
			Line:         line,
			Name:         rec[index["Name"]],
			Price:        rec[index["Price"]],
			FuelType:     rec[index["Fuel_Type"]],
			Transmission: rec[index["Transmission"]],
			OwnerType:    rec[index["Owner_Type"]],
			Location:     rec[index["Location"]],
			Year:         rec[index["Year"]],
		}
		if seatIdx >= 0 {
			raw.SeatingCapacity = rec[seatIdx]
		}
		rows = append(rows, raw)
	}

	return rows, schema, nil
}
