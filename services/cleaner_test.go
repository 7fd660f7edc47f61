package services

import (
	"testing"

	"usedcars-report/models"
	"usedcars-report/utils"
)

func newTestLogger() *utils.Logger { return utils.NewDiscardLogger() }

func TestExtractBrand(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Maruti Swift VDI", "Maruti"},
		{"  Land Rover Range Rover", "Land"},
		{"Mercedes-Benz\tE-Class", "Mercedes-Benz"},
		{"Audi", "Audi"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		if got := ExtractBrand(tt.name); got != tt.want {
			t.Errorf("ExtractBrand(%q) = %q; want %q", tt.name, got, tt.want)
		}
	}
}

func TestParseFloat(t *testing.T) {
	tests := []struct {
		raw   string
		want  float64
		valid bool
	}{
		{"1.75", 1.75, true},
		{" 12.5 ", 12.5, true},
		{"", 0, false},
		{"NaN", 0, false},
		{"nan", 0, false},
	}

	for _, tt := range tests {
		got, err := parseFloat(tt.raw)
		if err != nil {
			t.Fatalf("parseFloat(%q) error: %v", tt.raw, err)
		}
		if got.Valid != tt.valid || got.Float64 != tt.want {
			t.Errorf("parseFloat(%q) = %+v; want %.2f valid=%v", tt.raw, got, tt.want, tt.valid)
		}
	}

	if _, err := parseFloat("12 lakh"); err == nil {
		t.Error("expected error for non-numeric price")
	}
}

func TestParseInt(t *testing.T) {
	tests := []struct {
		raw   string
		want  int64
		valid bool
	}{
		{"2015", 2015, true},
		{"5.0", 5, true},
		{"", 0, false},
		{"null", 0, false},
	}

	for _, tt := range tests {
		got, err := parseInt(tt.raw)
		if err != nil {
			t.Fatalf("parseInt(%q) error: %v", tt.raw, err)
		}
		if got.Valid != tt.valid || got.Int64 != tt.want {
			t.Errorf("parseInt(%q) = %+v; want %d valid=%v", tt.raw, got, tt.want, tt.valid)
		}
	}

	for _, bad := range []string{"5.5", "abc"} {
		if _, err := parseInt(bad); err == nil {
			t.Errorf("parseInt(%q): expected error", bad)
		}
	}
}

func TestCleanerDerivesBrandAndKeepsOrder(t *testing.T) {
	c := NewCleaner(newTestLogger())
	raw := []*models.RawListing{
		{Line: 2, Name: "Maruti Swift VDI", Price: "5.5", Year: "2014", FuelType: "Diesel"},
		{Line: 3, Name: "Honda  City 1.5", Price: "", Year: "2012", FuelType: "Petrol"},
	}

	cleaned, err := c.Clean(raw)
	if err != nil {
		t.Fatalf("Clean: %v", err)
	}
	if len(cleaned) != 2 {
		t.Fatalf("expected 2 listings, got %d", len(cleaned))
	}
	if cleaned[0].Brand != "Maruti" || cleaned[1].Brand != "Honda" {
		t.Errorf("brands: got %q, %q", cleaned[0].Brand, cleaned[1].Brand)
	}
	if cleaned[1].Name != "Honda City 1.5" {
		t.Errorf("name not normalised: %q", cleaned[1].Name)
	}
	if cleaned[1].Price.Valid {
		t.Error("blank price should be null")
	}
	if cleaned[0].SeatingCapacity.Valid {
		t.Error("absent seating capacity should be null")
	}
}

func TestCleanerRejectsBadNumber(t *testing.T) {
	c := NewCleaner(newTestLogger())
	raw := []*models.RawListing{{Line: 7, Name: "Tata Nano", Price: "cheap", Year: "2012"}}
	if _, err := c.Clean(raw); err == nil {
		t.Error("expected error for unparseable price")
	}
}

func TestCleanerTreatsNullTokensAsMissingText(t *testing.T) {
	c := NewCleaner(newTestLogger())
	raw := []*models.RawListing{{
		Line: 4, Name: "Hyundai i20 Asta", Price: "4.2", Year: "2015",
		FuelType: "NaN", Transmission: " NA ", OwnerType: "First", Location: "#N/A",
	}}

	cleaned, err := c.Clean(raw)
	if err != nil {
		t.Fatalf("Clean: %v", err)
	}
	l := cleaned[0]
	if l.FuelType != "" || l.Transmission != "" || l.Location != "" {
		t.Errorf("null tokens kept: fuel=%q transmission=%q location=%q", l.FuelType, l.Transmission, l.Location)
	}
	if l.OwnerType != "First" {
		t.Errorf("owner type: got %q", l.OwnerType)
	}
	if rows := TableRows(cleaned); len(rows) != 0 {
		t.Errorf("row with missing text should leave the table, got %v", rows)
	}
}
