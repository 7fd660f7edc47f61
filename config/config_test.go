package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, k := range []string{"INPUT_CSV_PATH", "OUTPUT_PDF_PATH", "ROWS_PER_PAGE", "REPORT_RENDERER", "SEATING_FALLBACK", "POSTGRES_ENABLED"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	assert.Equal(t, "used_cars_data.csv", cfg.InputCSVPath)
	assert.Equal(t, "used_cars_full_report.pdf", cfg.OutputPDFPath)
	assert.Equal(t, 40, cfg.RowsPerPage)
	assert.Equal(t, RendererPDF, cfg.Renderer)
	assert.Equal(t, []string{"Seating_Capacity", "Seats"}, cfg.SeatingColumns)
	assert.Equal(t, DefaultSeatingCapacity, cfg.SeatingFallback)
	assert.False(t, cfg.PostgresEnabled)
	require.NoError(t, cfg.Validate())
}

func TestLoadOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("ROWS_PER_PAGE", "25")
	t.Setenv("REPORT_RENDERER", "Chrome")
	t.Setenv("SEATING_FALLBACK", "5:10, 7:2")
	t.Setenv("POSTGRES_ENABLED", "true")
	t.Setenv("CHART_DIR", "charts")

	cfg := Load()
	assert.Equal(t, 25, cfg.RowsPerPage)
	assert.Equal(t, RendererChrome, cfg.Renderer)
	assert.Equal(t, map[int]int{5: 10, 7: 2}, cfg.SeatingFallback)
	assert.True(t, cfg.PostgresEnabled)
	assert.Equal(t, filepath.Join("charts", TopBrandsFile), cfg.ChartPath(TopBrandsFile))
}

func TestDefaultSeatingCapacityTotal(t *testing.T) {
	total := 0
	for _, n := range DefaultSeatingCapacity {
		total += n
	}
	assert.Equal(t, 7075, total)
	assert.Equal(t, []int{2, 4, 5, 6, 7, 8, 9, 10}, SortedKeys(DefaultSeatingCapacity))
}

func TestParseSeatingErrors(t *testing.T) {
	for _, raw := range []string{"", "5", "x:1", "5:y"} {
		_, err := ParseSeating(raw)
		assert.Error(t, err, "ParseSeating(%q)", raw)
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{InputCSVPath: "in.csv", OutputPDFPath: "out.pdf", RowsPerPage: 0, Renderer: RendererPDF}
	assert.Error(t, cfg.Validate())

	cfg.RowsPerPage = 40
	cfg.Renderer = "docx"
	assert.Error(t, cfg.Validate())
}

func TestDSN(t *testing.T) {
	cfg := &Config{PostgresHost: "db", PostgresPort: "5433", PostgresUser: "u", PostgresPassword: "p", PostgresDB: "cars", PostgresSSLMode: "disable"}
	assert.Equal(t, "host=db port=5433 user=u password=p dbname=cars sslmode=disable", cfg.DSN())
}
