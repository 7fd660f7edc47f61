package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"usedcars-report/config"
	"usedcars-report/models"
	"usedcars-report/storage"
	"usedcars-report/utils"
)

// writeDataset writes n complete rows plus one row without a price.
func writeDataset(t *testing.T, dir string, n int, withSeats bool) string {
	t.Helper()
	var b strings.Builder
	header := "S.No.,Name,Location,Year,Kilometers_Driven,Fuel_Type,Transmission,Owner_Type,Price"
	if withSeats {
		header += ",Seats"
	}
	b.WriteString(header + "\n")

	names := []string{"Maruti Swift VDI", "Hyundai Creta 1.6", "Honda City 1.5", "Maruti Alto LXi"}
	for i := 0; i < n; i++ {
		fuel := "Petrol"
		if i%3 == 0 {
			fuel = "Diesel"
		}
		fmt.Fprintf(&b, "%d,%s,Pune,%d,41000,%s,Manual,First,%.2f", i, names[i%len(names)], 2010+i%8, fuel, float64(i%10)+1)
		if withSeats {
			b.WriteString(",5.0")
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "%d,Tata Nano Cx,Delhi,2012,30000,Petrol,Manual,First,", n)
	if withSeats {
		b.WriteString(",4.0")
	}
	b.WriteString("\n")

	path := filepath.Join(dir, "used_cars_data.csv")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0644))
	return path
}

func testConfig(dir, input string) *config.Config {
	return &config.Config{
		InputCSVPath:    input,
		OutputPDFPath:   filepath.Join(dir, "out", "used_cars_full_report.pdf"),
		ChartDir:        filepath.Join(dir, "charts"),
		RowsPerPage:     40,
		Renderer:        config.RendererPDF,
		SeatingColumns:  []string{"Seating_Capacity"},
		SeatingFallback: config.DefaultSeatingCapacity,
	}
}

func TestRunProducesReport(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir, writeDataset(t, dir, 85, false))
	cfg.TableCSVPath = filepath.Join(dir, "out", "table.csv")
	cfg.XLSXOutputPath = filepath.Join(dir, "out", "table.xlsx")

	p, err := New(cfg, utils.NewDiscardLogger())
	require.NoError(t, err)
	res, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 86, res.Metrics.TotalCars)
	assert.Equal(t, "Petrol", res.Metrics.MostCommonFuel)
	assert.Equal(t, "Maruti", res.Metrics.MostCommonBrand)
	assert.True(t, res.Metrics.HasAveragePrice)
	assert.True(t, res.SeatingFallback)

	pages := res.Document.TablePages()
	require.Len(t, pages, 3)
	assert.Len(t, pages[2].Rows, 5)
	assert.GreaterOrEqual(t, res.Pages, 6)

	for _, c := range append(res.Charts, res.Logo) {
		_, err := os.Stat(c.Path)
		assert.NoError(t, err, c.Path)
	}
	for _, f := range []string{cfg.OutputPDFPath, cfg.TableCSVPath, cfg.XLSXOutputPath} {
		_, err := os.Stat(f)
		assert.NoError(t, err, f)
	}
}

func TestRunReadsSeatingAlias(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir, writeDataset(t, dir, 10, true))
	cfg.SeatingColumns = []string{"Seating_Capacity", "Seats"}

	p, err := New(cfg, utils.NewDiscardLogger())
	require.NoError(t, err)
	res, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.False(t, res.SeatingFallback)
	assert.Equal(t, "Seats", res.Dataset.Schema.SeatingColumn)
}

func TestRunIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir, writeDataset(t, dir, 30, false))

	p, err := New(cfg, utils.NewDiscardLogger())
	require.NoError(t, err)
	first, err := p.Run(context.Background())
	require.NoError(t, err)
	second, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, *first.Metrics, *second.Metrics)
	assert.Equal(t, first.Document.TablePages(), second.Document.TablePages())
}

func stageOf(t *testing.T, err error) Stage {
	t.Helper()
	var se *StageError
	require.True(t, errors.As(err, &se), "expected StageError, got %v", err)
	return se.Stage
}

func TestRunMissingInputFailsLoad(t *testing.T) {
	dir := t.TempDir()
	p, err := New(testConfig(dir, filepath.Join(dir, "missing.csv")), utils.NewDiscardLogger())
	require.NoError(t, err)
	_, err = p.Run(context.Background())
	assert.Equal(t, StageLoad, stageOf(t, err))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestRunMissingColumnFailsLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.csv")
	require.NoError(t, os.WriteFile(path, []byte("Name,Price\nMaruti Swift,4.5\n"), 0644))
	p, err := New(testConfig(dir, path), utils.NewDiscardLogger())
	require.NoError(t, err)
	_, err = p.Run(context.Background())
	assert.Equal(t, StageLoad, stageOf(t, err))
}

func TestRunEmptyTableFailsAggregate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.csv")
	require.NoError(t, os.WriteFile(path, []byte("Name,Location,Year,Fuel_Type,Transmission,Owner_Type,Price\n"), 0644))
	p, err := New(testConfig(dir, path), utils.NewDiscardLogger())
	require.NoError(t, err)
	_, err = p.Run(context.Background())
	assert.Equal(t, StageAggregate, stageOf(t, err))
}

func TestRunUnwritableOutputFailsSerialize(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir, writeDataset(t, dir, 5, false))
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))
	cfg.OutputPDFPath = filepath.Join(blocker, "report.pdf")

	p, err := New(cfg, utils.NewDiscardLogger())
	require.NoError(t, err)
	_, err = p.Run(context.Background())
	assert.Equal(t, StageSerialize, stageOf(t, err))
}

func TestNewRejectsBadConfig(t *testing.T) {
	cfg := testConfig(t.TempDir(), "in.csv")
	cfg.Renderer = "latex"
	_, err := New(cfg, utils.NewDiscardLogger())
	assert.Equal(t, StageConfig, stageOf(t, err))
}

func TestStageErrorMessage(t *testing.T) {
	err := fail(StageRender, errors.New("boom"))
	assert.Equal(t, "render stage: boom", err.Error())
}

// memStore is an in-memory storage.ListingStore.
type memStore struct {
	rows     []*models.Listing
	writes   int
	fetchErr error
	closed   bool
}

func (m *memStore) Write(listings []*models.Listing) error {
	m.writes++
	m.rows = append([]*models.Listing(nil), listings...)
	return nil
}

func (m *memStore) FetchAll() ([]*models.Listing, error) {
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	return m.rows, nil
}

func (m *memStore) Close() error {
	m.closed = true
	return nil
}

func withStore(p *Pipeline, store *memStore) {
	p.cfg.PostgresEnabled = true
	p.openStore = func(context.Context) (storage.ListingStore, error) { return store, nil }
}

func TestRunPersistedEmptyInputIgnoresStaleRows(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.csv")
	require.NoError(t, os.WriteFile(path, []byte("Name,Location,Year,Fuel_Type,Transmission,Owner_Type,Price\n"), 0644))
	p, err := New(testConfig(dir, path), utils.NewDiscardLogger())
	require.NoError(t, err)

	store := &memStore{rows: []*models.Listing{{Name: "Maruti Swift", Brand: "Maruti", FuelType: "Petrol"}}}
	withStore(p, store)

	_, err = p.Run(context.Background())
	assert.Equal(t, StageAggregate, stageOf(t, err))
	assert.Equal(t, 1, store.writes)
	assert.Empty(t, store.rows)
	assert.True(t, store.closed)
}

func TestRunPersistedReadsBackStoredRows(t *testing.T) {
	dir := t.TempDir()
	p, err := New(testConfig(dir, writeDataset(t, dir, 12, false)), utils.NewDiscardLogger())
	require.NoError(t, err)

	store := &memStore{}
	withStore(p, store)

	res, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 13, res.Metrics.TotalCars)
	assert.Len(t, store.rows, 13)
}

func TestRunPersistedFetchFailureFallsBack(t *testing.T) {
	dir := t.TempDir()
	p, err := New(testConfig(dir, writeDataset(t, dir, 12, false)), utils.NewDiscardLogger())
	require.NoError(t, err)
	withStore(p, &memStore{fetchErr: errors.New("connection reset")})

	res, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 13, res.Metrics.TotalCars)
}

func TestRunPersistOpenFailure(t *testing.T) {
	dir := t.TempDir()
	p, err := New(testConfig(dir, writeDataset(t, dir, 3, false)), utils.NewDiscardLogger())
	require.NoError(t, err)
	p.cfg.PostgresEnabled = true
	p.openStore = func(context.Context) (storage.ListingStore, error) { return nil, errors.New("refused") }

	_, err = p.Run(context.Background())
	assert.Equal(t, StagePersist, stageOf(t, err))
}
