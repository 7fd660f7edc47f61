package services

import (
	"database/sql"
	"math"
	"testing"

	"usedcars-report/models"
)

func price(v float64) sql.NullFloat64 { return sql.NullFloat64{Float64: v, Valid: true} }
func year(v int64) sql.NullInt64      { return sql.NullInt64{Int64: v, Valid: true} }

func sampleListings() []*models.Listing {
	return []*models.Listing{
		{Name: "Maruti Swift VDI", Brand: "Maruti", Price: price(5.5), FuelType: "Diesel", Transmission: "Manual", OwnerType: "First", Location: "Pune", Year: year(2014)},
		{Name: "Maruti Alto LXi", Brand: "Maruti", Price: price(2.5), FuelType: "Petrol", Transmission: "Manual", OwnerType: "First", Location: "Delhi", Year: year(2012)},
		{Name: "Audi A4 2.0 TDI", Brand: "Audi", Price: price(17.5), FuelType: "Diesel", Transmission: "Automatic", OwnerType: "Second", Location: "Mumbai", Year: year(2013)},
		{Name: "Honda City 1.5", Brand: "Honda", FuelType: "Petrol", Transmission: "Manual", OwnerType: "First", Location: "Chennai", Year: year(2012)},
		{Name: "Tata Nano Cx", Brand: "Tata", Price: price(1.5), FuelType: "Diesel", Transmission: "Manual", Location: "Kolkata", Year: year(2011)},
	}
}

func TestInsightCounts(t *testing.T) {
	svc := NewInsightService(newTestLogger())
	m := svc.Generate(sampleListings())
	if m.TotalCars != 5 {
		t.Errorf("TotalCars: got %d, want 5", m.TotalCars)
	}
}

func TestInsightAveragePriceSkipsNulls(t *testing.T) {
	svc := NewInsightService(newTestLogger())
	m := svc.Generate(sampleListings())
	want := (5.5 + 2.5 + 17.5 + 1.5) / 4
	if !m.HasAveragePrice || math.Abs(m.AveragePrice-want) > 1e-9 {
		t.Errorf("AveragePrice: got %.4f, want %.4f", m.AveragePrice, want)
	}
}

func TestInsightAverageOfOneTwoThree(t *testing.T) {
	svc := NewInsightService(newTestLogger())
	m := svc.Generate([]*models.Listing{{Price: price(1)}, {Price: price(2)}, {Price: price(3)}})
	if m.AveragePrice != 2.0 {
		t.Errorf("AveragePrice: got %v, want 2.0", m.AveragePrice)
	}
}

func TestInsightModes(t *testing.T) {
	svc := NewInsightService(newTestLogger())
	m := svc.Generate(sampleListings())
	if m.MostCommonFuel != "Diesel" {
		t.Errorf("MostCommonFuel: got %q, want Diesel", m.MostCommonFuel)
	}
	if m.MostCommonBrand != "Maruti" {
		t.Errorf("MostCommonBrand: got %q, want Maruti", m.MostCommonBrand)
	}
}

func TestModeTieTakesSmallest(t *testing.T) {
	for i := 0; i < 20; i++ {
		if got := mode(map[string]int{"Petrol": 2, "Diesel": 2, "CNG": 1}); got != "Diesel" {
			t.Fatalf("mode tie: got %q, want Diesel", got)
		}
	}
}

func TestInsightEmptyInput(t *testing.T) {
	svc := NewInsightService(newTestLogger())
	m := svc.Generate(nil)
	if m.TotalCars != 0 || m.HasAveragePrice {
		t.Errorf("expected empty metrics, got %+v", m)
	}
}

func TestInsightIdempotent(t *testing.T) {
	svc := NewInsightService(newTestLogger())
	a := svc.Generate(sampleListings())
	b := svc.Generate(sampleListings())
	if *a != *b {
		t.Errorf("metrics differ between runs: %+v vs %+v", a, b)
	}
}
