package services

import (
	"database/sql"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"usedcars-report/models"
	"usedcars-report/utils"
)

// nullTokens are cell values treated as missing in every column, in addition
// to blanks. Matching is case-insensitive.
var nullTokens = map[string]struct{}{
	"nan": {}, "-nan": {}, "na": {}, "n/a": {}, "#n/a": {}, "#na": {},
	"<na>": {}, "null": {}, "none": {},
}

// Cleaner transforms RawListings into typed Listings.
type Cleaner struct {
	logger *utils.Logger
}

// NewCleaner creates a Cleaner with the given logger.
func NewCleaner(logger *utils.Logger) *Cleaner {
	return &Cleaner{logger: logger}
}

// Clean converts raw rows, deriving Brand from Name. Row order is preserved.
// A non-blank numeric cell that does not parse is an error.
func (c *Cleaner) Clean(raw []*models.RawListing) ([]*models.Listing, error) {
	result := make([]*models.Listing, 0, len(raw))
	nullPrices := 0

	for _, r := range raw {
		name := normaliseText(r.Name)
		listing := &models.Listing{
			Name:         name,
			Brand:        ExtractBrand(name),
			FuelType:     normaliseText(r.FuelType),
			Transmission: normaliseText(r.Transmission),
			OwnerType:    normaliseText(r.OwnerType),
			Location:     normaliseText(r.Location),
		}

		var err error
		if listing.Price, err = parseFloat(r.Price); err != nil {
			return nil, fmt.Errorf("line %d: Price: %w", r.Line, err)
		}
		if listing.Year, err = parseInt(r.Year); err != nil {
			return nil, fmt.Errorf("line %d: Year: %w", r.Line, err)
		}
		if listing.SeatingCapacity, err = parseInt(r.SeatingCapacity); err != nil {
			return nil, fmt.Errorf("line %d: seating capacity: %w", r.Line, err)
		}
		if !listing.Price.Valid {
			nullPrices++
		}

		result = append(result, listing)
	}

	c.logger.Info("[cleaner] Cleaned %d rows (%d without price)", len(result), nullPrices)
	return result, nil
}

// ExtractBrand returns the first whitespace-delimited token of name.
func ExtractBrand(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func isNull(s string) bool {
	if s == "" {
		return true
	}
	_, ok := nullTokens[strings.ToLower(s)]
	return ok
}

func parseFloat(raw string) (sql.NullFloat64, error) {
	s := strings.TrimSpace(raw)
	if isNull(s) {
		return sql.NullFloat64{}, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return sql.NullFloat64{}, fmt.Errorf("invalid number %q", raw)
	}
	if math.IsNaN(v) {
		return sql.NullFloat64{}, nil
	}
	return sql.NullFloat64{Float64: v, Valid: true}, nil
}

// parseInt accepts integral floats such as "5.0", as exported by dataframe tools.
func parseInt(raw string) (sql.NullInt64, error) {
	s := strings.TrimSpace(raw)
	if isNull(s) {
		return sql.NullInt64{}, nil
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return sql.NullInt64{Int64: n, Valid: true}, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || math.IsInf(f, 0) {
		return sql.NullInt64{}, fmt.Errorf("invalid integer %q", raw)
	}
	return sql.NullInt64{Int64: int64(f), Valid: true}, nil
}

// normaliseText strips leading/trailing whitespace and collapses internal
// whitespace. Null tokens become the empty string.
func normaliseText(s string) string {
	s = strings.TrimSpace(s)
	if isNull(s) {
		return ""
	}
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r)
	})
	return strings.Join(fields, " ")
}
