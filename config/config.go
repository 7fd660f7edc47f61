package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Fixed chart and logo file names, placed under ChartDir.
const (
	TopBrandsFile      = "top_brands.png"
	AvgPriceBrandFile  = "avg_price_brand.png"
	SeatingHeatmapFile = "seating_capacity_heatmap.png"
	TransmissionFile   = "transmission_types.png"
	PriceDistFile      = "price_distribution.png"
	CarsByYearFile     = "cars_by_year.png"
	LogoFile           = "logo_placeholder.png"
)

// Renderer names accepted in REPORT_RENDERER.
const (
	RendererPDF    = "pdf"
	RendererChrome = "chrome"
)

// DefaultSeatingCapacity is the distribution plotted when the dataset carries
// no seating column. It is not derived from any input file.
var DefaultSeatingCapacity = map[int]int{
	2:  15,
	4:  119,
	5:  5932,
	6:  36,
	7:  794,
	8:  169,
	9:  3,
	10: 7,
}

// Config holds all application configuration loaded from environment variables.
type Config struct {
	InputCSVPath  string
	OutputPDFPath string
	ChartDir      string
	RowsPerPage   int
	Renderer      string
	ChromeBin     string

	SeatingColumns  []string
	SeatingFallback map[int]int

	TableCSVPath   string
	XLSXOutputPath string

	PostgresEnabled  bool
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string
	MaxRetries       int
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	fallback := copySeating(DefaultSeatingCapacity)
	if raw := os.Getenv("SEATING_FALLBACK"); raw != "" {
		parsed, err := ParseSeating(raw)
		if err != nil {
			log.Printf("[config] Ignoring SEATING_FALLBACK: %v", err)
		} else {
			fallback = parsed
		}
	}

	return &Config{
		InputCSVPath:  getEnv("INPUT_CSV_PATH", "used_cars_data.csv"),
		OutputPDFPath: getEnv("OUTPUT_PDF_PATH", "used_cars_full_report.pdf"),
		ChartDir:      getEnv("CHART_DIR", "."),
		RowsPerPage:   getEnvInt("ROWS_PER_PAGE", 40),
		Renderer:      strings.ToLower(getEnv("REPORT_RENDERER", RendererPDF)),
		ChromeBin:     getEnv("CHROME_BIN", ""),

		SeatingColumns:  splitList(getEnv("SEATING_COLUMNS", "Seating_Capacity,Seats")),
		SeatingFallback: fallback,

		TableCSVPath:   getEnv("TABLE_CSV_PATH", ""),
		XLSXOutputPath: getEnv("XLSX_OUTPUT_PATH", ""),

		PostgresEnabled:  getEnvBool("POSTGRES_ENABLED", false),
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "report"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "report123"),
		PostgresDB:       getEnv("POSTGRES_DB", "used_cars"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		MaxRetries:       getEnvInt("MAX_RETRIES", 3),
	}
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

// ChartPath joins a chart file name onto ChartDir.
func (c *Config) ChartPath(name string) string {
	return filepath.Join(c.ChartDir, name)
}

// Validate rejects settings the pipeline cannot run with.
func (c *Config) Validate() error {
	if c.InputCSVPath == "" {
		return fmt.Errorf("config: INPUT_CSV_PATH is empty")
	}
	if c.OutputPDFPath == "" {
		return fmt.Errorf("config: OUTPUT_PDF_PATH is empty")
	}
	if c.RowsPerPage <= 0 {
		return fmt.Errorf("config: ROWS_PER_PAGE must be positive, got %d", c.RowsPerPage)
	}
	switch c.Renderer {
	case RendererPDF, RendererChrome:
	default:
		return fmt.Errorf("config: unknown REPORT_RENDERER %q", c.Renderer)
	}
	return nil
}

// ParseSeating parses "seats:count" pairs separated by commas, e.g. "5:10,7:2".
func ParseSeating(raw string) (map[int]int, error) {
	out := make(map[int]int)
	for _, pair := range splitList(raw) {
		k, v, ok := strings.Cut(pair, ":")
		if !ok {
			return nil, fmt.Errorf("malformed pair %q", pair)
		}
		seats, err := strconv.Atoi(strings.TrimSpace(k))
		if err != nil {
			return nil, fmt.Errorf("bad seating capacity %q: %w", k, err)
		}
		count, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return nil, fmt.Errorf("bad count %q: %w", v, err)
		}
		out[seats] = count
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no pairs in %q", raw)
	}
	return out, nil
}

// SortedKeys returns the keys of an int-keyed count table in ascending order.
func SortedKeys(m map[int]int) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

func copySeating(m map[int]int) map[int]int {
	out := make(map[int]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}
