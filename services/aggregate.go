package services

import (
	"sort"
	"strconv"

	"usedcars-report/config"
	"usedcars-report/models"
)

// BrandCounts returns the n brands with the most listings.
func BrandCounts(listings []*models.Listing, n int) []models.LabelValue {
	counts := make(map[string]int)
	for _, l := range listings {
		if l.Brand != "" {
			counts[l.Brand]++
		}
	}
	return top(byValueDesc(countsToValues(counts)), n)
}

// AveragePriceByBrand returns the n brands with the highest mean price.
// Brands whose listings carry no price are excluded.
func AveragePriceByBrand(listings []*models.Listing, n int) []models.LabelValue {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, l := range listings {
		if l.Brand == "" || !l.Price.Valid {
			continue
		}
		sums[l.Brand] += l.Price.Float64
		counts[l.Brand]++
	}

	out := make([]models.LabelValue, 0, len(sums))
	for brand, sum := range sums {
		out = append(out, models.LabelValue{Label: brand, Value: sum / float64(counts[brand])})
	}
	return top(byValueDesc(out), n)
}

// SeatingDistribution counts listings per seating capacity, ascending.
// Without a seating column in the schema the fallback table is returned
// instead and usedFallback is true.
func SeatingDistribution(ds *models.Dataset, fallback map[int]int) (dist []models.LabelValue, usedFallback bool) {
	counts := make(map[int]int)
	if ds.Schema.HasSeatingCapacity {
		for _, l := range ds.Listings {
			if l.SeatingCapacity.Valid {
				counts[int(l.SeatingCapacity.Int64)]++
			}
		}
	} else {
		counts = fallback
		usedFallback = true
	}

	for _, seats := range config.SortedKeys(counts) {
		dist = append(dist, models.LabelValue{Label: strconv.Itoa(seats), Value: float64(counts[seats])})
	}
	return dist, usedFallback
}

// TransmissionCounts counts listings per transmission type, most common first.
func TransmissionCounts(listings []*models.Listing) []models.LabelValue {
	counts := make(map[string]int)
	for _, l := range listings {
		if l.Transmission != "" {
			counts[l.Transmission]++
		}
	}
	return byValueDesc(countsToValues(counts))
}

// Prices returns every non-null price in row order.
func Prices(listings []*models.Listing) []float64 {
	out := make([]float64, 0, len(listings))
	for _, l := range listings {
		if l.Price.Valid {
			out = append(out, l.Price.Float64)
		}
	}
	return out
}

// YearCounts counts listings per model year, oldest first.
func YearCounts(listings []*models.Listing) []models.LabelValue {
	counts := make(map[int]int)
	for _, l := range listings {
		if l.Year.Valid {
			counts[int(l.Year.Int64)]++
		}
	}
	out := make([]models.LabelValue, 0, len(counts))
	for _, y := range config.SortedKeys(counts) {
		out = append(out, models.LabelValue{Label: strconv.Itoa(y), Value: float64(counts[y])})
	}
	return out
}

func countsToValues(counts map[string]int) []models.LabelValue {
	out := make([]models.LabelValue, 0, len(counts))
	for k, n := range counts {
		out = append(out, models.LabelValue{Label: k, Value: float64(n)})
	}
	return out
}

// byValueDesc sorts by value descending, label ascending on ties.
func byValueDesc(vs []models.LabelValue) []models.LabelValue {
	sort.Slice(vs, func(i, j int) bool {
		if vs[i].Value != vs[j].Value {
			return vs[i].Value > vs[j].Value
		}
		return vs[i].Label < vs[j].Label
	})
	return vs
}

func top(vs []models.LabelValue, n int) []models.LabelValue {
	if n > 0 && len(vs) > n {
		return vs[:n]
	}
	return vs
}
