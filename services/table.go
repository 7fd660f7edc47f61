package services

import (
	"strconv"
	"strings"

	"usedcars-report/models"
)

// TableHeader is the column projection of the full data table.
var TableHeader = []string{
	"Brand", "Name", "Location", "Year", "Fuel_Type", "Transmission", "Owner_Type", "Price",
}

// TableRows projects listings onto TableHeader, dropping any row with a
// missing value. Order is preserved.
func TableRows(listings []*models.Listing) [][]string {
	rows := make([][]string, 0, len(listings))
	for _, l := range listings {
		if l.Brand == "" || l.Name == "" || l.Location == "" || !l.Year.Valid ||
			l.FuelType == "" || l.Transmission == "" || l.OwnerType == "" || !l.Price.Valid {
			continue
		}
		rows = append(rows, []string{
			l.Brand,
			l.Name,
			l.Location,
			strconv.FormatInt(l.Year.Int64, 10),
			l.FuelType,
			l.Transmission,
			l.OwnerType,
			FormatPrice(l.Price.Float64),
		})
	}
	return rows
}

// FormatPrice prints the shortest exact decimal, keeping one fractional
// digit for whole numbers ("3.0", "12.5").
func FormatPrice(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// Paginate splits items into consecutive chunks of at most size elements.
// Every item lands in exactly one chunk, in order. size must be positive.
func Paginate[T any](items []T, size int) [][]T {
	if size <= 0 {
		panic("services: Paginate size must be positive")
	}
	pages := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		pages = append(pages, items[start:end])
	}
	return pages
}
