package storage

import "usedcars-report/models"

// ListingWriter is the interface any listing storage backend must satisfy.
type ListingWriter interface {
	Write(listings []*models.Listing) error
	Close() error
}

// ListingStore is a ListingWriter that can read back what it stored, in
// insertion order.
type ListingStore interface {
	ListingWriter
	FetchAll() ([]*models.Listing, error)
}

// TableWriter persists the flattened full-data table (header plus rows).
type TableWriter interface {
	WriteTable(header []string, rows [][]string) error
	Close() error
}

var (
	_ ListingStore  = (*PostgresWriter)(nil)
	_ TableWriter   = (*CSVWriter)(nil)
	_ TableWriter   = (*ExcelWriter)(nil)
)
