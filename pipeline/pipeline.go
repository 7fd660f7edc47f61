package pipeline

import (
	"context"
	"fmt"
	"time"

	"usedcars-report/charts"
	"usedcars-report/config"
	"usedcars-report/document"
	"usedcars-report/models"
	"usedcars-report/services"
	"usedcars-report/storage"
	"usedcars-report/utils"
)

const topBrands = 10

// Result is what a successful run produced.
type Result struct {
	Dataset         *models.Dataset
	Metrics         *models.SummaryMetrics
	Charts          []models.ChartArtifact
	Logo            models.ChartArtifact
	Document        *models.ReportDocument
	OutputPath      string
	Pages           int
	SeatingFallback bool
}

// Pipeline runs load → aggregate → render → assemble → serialize once.
type Pipeline struct {
	cfg       *config.Config
	logger    *utils.Logger
	renderer  document.Renderer
	openStore func(ctx context.Context) (storage.ListingStore, error)
}

// New builds a Pipeline using the renderer named in cfg.
func New(cfg *config.Config, logger *utils.Logger) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fail(StageConfig, err)
	}
	r, err := document.NewRenderer(cfg, logger)
	if err != nil {
		return nil, fail(StageConfig, err)
	}
	p := &Pipeline{cfg: cfg, logger: logger, renderer: r}
	p.openStore = p.openPostgres
	return p, nil
}

func (p *Pipeline) openPostgres(ctx context.Context) (storage.ListingStore, error) {
	retry := &utils.RetryConfig{MaxAttempts: p.cfg.MaxRetries, BaseDelay: 2 * time.Second, Logger: p.logger}
	pg, err := storage.NewPostgresWriter(ctx, p.cfg.DSN(), retry)
	if err != nil {
		return nil, err
	}
	return pg, nil
}

// Run executes every stage in order. The first failure aborts the run and is
// returned as a *StageError.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	res := &Result{OutputPath: p.cfg.OutputPDFPath}

	ds, err := p.load()
	if err != nil {
		return nil, fail(StageLoad, err)
	}
	res.Dataset = ds

	analysed := ds.Listings
	if p.cfg.PostgresEnabled {
		stored, err := p.persist(ctx, ds.Listings)
		if err != nil {
			return nil, fail(StagePersist, err)
		}
		analysed = stored
	}

	res.Metrics = services.NewInsightService(p.logger).Generate(analysed)
	if res.Metrics.TotalCars == 0 {
		return nil, fail(StageAggregate, fmt.Errorf("dataset %q has no rows", ds.Source))
	}
	data, usedFallback := p.aggregate(ds, analysed)
	res.SeatingFallback = usedFallback

	gen := charts.NewGenerator(p.cfg.ChartDir, p.logger)
	res.Charts, res.Logo, err = gen.GenerateAll(data)
	if err != nil {
		return nil, fail(StageRender, err)
	}

	res.Document, err = document.NewAssembler(p.cfg.RowsPerPage).Assemble(res.Metrics, res.Charts, res.Logo, analysed)
	if err != nil {
		return nil, fail(StageAssemble, err)
	}
	p.logger.Info("[pipeline] Assembled %d sections (%d table pages)",
		len(res.Document.Sections), len(res.Document.TablePages()))

	if err := p.renderer.Render(ctx, res.Document, p.cfg.OutputPDFPath); err != nil {
		return nil, fail(StageSerialize, err)
	}
	res.Pages, err = document.Inspect(p.cfg.OutputPDFPath)
	if err != nil {
		return nil, fail(StageSerialize, err)
	}

	if err := p.export(res.Document); err != nil {
		return nil, fail(StageExport, err)
	}

	p.logger.Info("[pipeline] Done in %v: %d pages", time.Since(start).Round(time.Millisecond), res.Pages)
	return res, nil
}

func (p *Pipeline) load() (*models.Dataset, error) {
	p.logger.Info("[loader] Reading %s", p.cfg.InputCSVPath)
	raw, schema, err := storage.NewCSVReader(p.cfg.SeatingColumns).ReadFile(p.cfg.InputCSVPath)
	if err != nil {
		return nil, err
	}
	listings, err := services.NewCleaner(p.logger).Clean(raw)
	if err != nil {
		return nil, fmt.Errorf("clean %q: %w", p.cfg.InputCSVPath, err)
	}
	if schema.HasSeatingCapacity {
		p.logger.Debug("[loader] Seating capacity read from column %q", schema.SeatingColumn)
	}
	return &models.Dataset{Source: p.cfg.InputCSVPath, Schema: schema, Listings: listings}, nil
}

// persist replaces the stored listings and reads them back; the stored copy
// feeds the rest of the run. A failed read-back falls back to the in-memory
// rows. Nothing is read back for an empty input, so rows from an earlier
// run never reach the report.
func (p *Pipeline) persist(ctx context.Context, listings []*models.Listing) ([]*models.Listing, error) {
	store, err := p.openStore(ctx)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	if err := store.Write(listings); err != nil {
		return nil, err
	}
	p.logger.Info("[pipeline] Stored %d listings in PostgreSQL (table: used_cars)", len(listings))
	if len(listings) == 0 {
		return listings, nil
	}

	stored, err := store.FetchAll()
	if err != nil {
		p.logger.Error("Failed to fetch listings from DB for insights: %v", err)
		return listings, nil
	}
	return stored, nil
}

func (p *Pipeline) aggregate(ds *models.Dataset, listings []*models.Listing) (charts.Data, bool) {
	view := &models.Dataset{Source: ds.Source, Schema: ds.Schema, Listings: listings}
	seating, usedFallback := services.SeatingDistribution(view, p.cfg.SeatingFallback)
	if usedFallback {
		p.logger.Warn("[aggregate] No seating column (looked for %v), plotting the configured default distribution",
			p.cfg.SeatingColumns)
	}

	return charts.Data{
		TopBrands:     services.BrandCounts(listings, topBrands),
		AvgPriceBrand: services.AveragePriceByBrand(listings, topBrands),
		Seating:       seating,
		Transmission:  services.TransmissionCounts(listings),
		Prices:        services.Prices(listings),
		YearCounts:    services.YearCounts(listings),
	}, usedFallback
}

func (p *Pipeline) export(doc *models.ReportDocument) error {
	var rows [][]string
	for _, page := range doc.TablePages() {
		rows = append(rows, page.Rows...)
	}

	var writers []storage.TableWriter
	defer func() {
		for _, w := range writers {
			_ = w.Close()
		}
	}()

	if p.cfg.TableCSVPath != "" {
		w, err := storage.NewCSVWriter(p.cfg.TableCSVPath)
		if err != nil {
			return err
		}
		writers = append(writers, w)
	}
	if p.cfg.XLSXOutputPath != "" {
		w, err := storage.NewExcelWriter(p.cfg.XLSXOutputPath)
		if err != nil {
			return err
		}
		writers = append(writers, w)
	}

	for _, w := range writers {
		if err := w.WriteTable(services.TableHeader, rows); err != nil {
			return err
		}
	}
	if len(writers) > 0 {
		p.logger.Info("[export] Wrote %d table rows to %d export(s)", len(rows), len(writers))
	}
	return nil
}
