package services

import (
	"usedcars-report/models"
	"usedcars-report/utils"
)

type InsightService struct {
	logger *utils.Logger
}

func NewInsightService(logger *utils.Logger) *InsightService {
	return &InsightService{logger: logger}
}

// Generate computes the headline metrics for the insights page.
func (s *InsightService) Generate(listings []*models.Listing) *models.SummaryMetrics {
	m := &models.SummaryMetrics{TotalCars: len(listings)}
	if len(listings) == 0 {
		s.logger.Warn("[insights] No listings, metrics are empty")
		return m
	}

	var total float64
	var priced int
	fuels := make(map[string]int)
	brands := make(map[string]int)

	for _, l := range listings {
		if l.Price.Valid {
			total += l.Price.Float64
			priced++
		}
		if l.FuelType != "" {
			fuels[l.FuelType]++
		}
		if l.Brand != "" {
			brands[l.Brand]++
		}
	}

	if priced > 0 {
		m.AveragePrice = total / float64(priced)
		m.HasAveragePrice = true
	}
	m.MostCommonFuel = mode(fuels)
	m.MostCommonBrand = mode(brands)

	s.logger.Info("[insights] %d cars, avg price %.2f lakh over %d priced, fuel=%s brand=%s",
		m.TotalCars, m.AveragePrice, priced, m.MostCommonFuel, m.MostCommonBrand)
	return m
}

// mode returns the most frequent key; ties go to the smallest key.
func mode(counts map[string]int) string {
	best, bestN := "", 0
	for k, n := range counts {
		if n > bestN || (n == bestN && k < best) {
			best, bestN = k, n
		}
	}
	return best
}
