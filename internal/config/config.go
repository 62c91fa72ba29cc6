// =============================================================================
// Tributos - Configuration Module
// =============================================================================
//
// This module loads the source catalog and application settings from a single
// YAML file. The catalog is what makes the pipeline parameterized: each data
// source declares its workbook path, layout kind, header offset and column
// conventions, so one pipeline serves every tab of the original dashboards
// instead of a copy per tab.
//
// CONFIGURATION LAYOUT (config.yaml):
//
//   output_dir: ./output
//   export_name: "{name}_{timestamp}.csv"
//   log_level: info
//   columns:
//     year: ANO
//     category_candidates: ["TRIBUTO/MÊS/ANO", "TRIBUTO"]
//     budgeted: ORÇADO
//     collected: ARRECADADO
//     target: META
//     month_offset: 1
//   sources:
//     - name: arrecadacao-tributos
//       kind: annual
//       path: ./data/Arrecadacao Tributos.xlsx
//       header_row: 2
//     - name: evolucao-arrecadacao
//       kind: monthly
//       path: ./data/Evolucao Arrecadacao.xlsx
//
// =============================================================================

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Source kinds. Annual sources are single-sheet tables keyed by a year
// column; monthly sources are multi-sheet workbooks with one sheet per year
// and twelve positional month columns per category row.
const (
	KindAnnual  = "annual"
	KindMonthly = "monthly"
)

// Config holds the full application configuration.
type Config struct {
	// OutputDir is where exports are written.
	// Default: "./output"
	OutputDir string `yaml:"output_dir"`

	// ExportName is the naming pattern for export files. Placeholders:
	//   {name}      - the source name
	//   {timestamp} - current timestamp (YYYYMMDD_HHMMSS)
	//   {uuid}      - a random UUID
	// Default: "{name}_{timestamp}.csv"
	ExportName string `yaml:"export_name"`

	// LogLevel controls diagnostic verbosity: "debug", "info", "warn",
	// "error". The --verbose flag forces "debug".
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// Columns holds the workbook column conventions shared by all sources.
	Columns ColumnSettings `yaml:"columns"`

	// Sources is the data source catalog.
	Sources []Source `yaml:"sources"`
}

// ColumnSettings names the columns the pipeline relies on. Names are matched
// after normalization, so they are trimmed upper-case labels.
type ColumnSettings struct {
	// Year is the year column of annual tables.
	// Default: "ANO"
	Year string `yaml:"year"`

	// CategoryCandidates are the recognized category-label columns of
	// monthly sheets, checked in order. The composite label must stay ahead
	// of the plain one; the first present column wins.
	// Default: ["TRIBUTO/MÊS/ANO", "TRIBUTO"]
	CategoryCandidates []string `yaml:"category_candidates"`

	// Budgeted, Collected and Target are the annual amount columns of
	// monthly sheets.
	// Defaults: "ORÇADO", "ARRECADADO", "META"
	Budgeted  string `yaml:"budgeted"`
	Collected string `yaml:"collected"`
	Target    string `yaml:"target"`

	// MonthOffset is the position of the January column within a monthly
	// sheet; the twelve month columns are MonthOffset..MonthOffset+11. The
	// source workbooks place the category label at position 0 and the months
	// immediately after, hence the default of 1. A sheet with extra leading
	// columns sets this explicitly instead of silently misaligning months.
	MonthOffset int `yaml:"month_offset"`

	// Exclude lists annual-table columns that are not categories (the year
	// column is always excluded). Default: ["TOTAL"]
	Exclude []string `yaml:"exclude"`
}

// Source describes one data source workbook.
type Source struct {
	// Name identifies the source in output, exports and logs.
	Name string `yaml:"name"`

	// Kind is KindAnnual or KindMonthly.
	Kind string `yaml:"kind"`

	// Path is the workbook location on disk.
	Path string `yaml:"path"`

	// HeaderRow is the 0-based row index of the real header. The annual
	// workbooks carry two banner rows above the header, hence the default
	// of 2 for annual sources. Monthly sheets have their header in row 0.
	HeaderRow *int `yaml:"header_row"`

	// MonthOffset overrides Columns.MonthOffset for this source when set.
	MonthOffset *int `yaml:"month_offset"`
}

// EffectiveHeaderRow resolves the header row for a source, applying the
// per-kind default.
func (s Source) EffectiveHeaderRow() int {
	if s.HeaderRow != nil {
		return *s.HeaderRow
	}
	if s.Kind == KindAnnual {
		return 2
	}
	return 0
}

// Load reads, defaults and validates the configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(cfg *Config) {
	if cfg.OutputDir == "" {
		cfg.OutputDir = "./output"
	}
	if cfg.ExportName == "" {
		cfg.ExportName = "{name}_{timestamp}.csv"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.Columns.Year == "" {
		cfg.Columns.Year = "ANO"
	}
	if len(cfg.Columns.CategoryCandidates) == 0 {
		cfg.Columns.CategoryCandidates = []string{"TRIBUTO/MÊS/ANO", "TRIBUTO"}
	}
	if cfg.Columns.Budgeted == "" {
		cfg.Columns.Budgeted = "ORÇADO"
	}
	if cfg.Columns.Collected == "" {
		cfg.Columns.Collected = "ARRECADADO"
	}
	if cfg.Columns.Target == "" {
		cfg.Columns.Target = "META"
	}
	if cfg.Columns.MonthOffset == 0 {
		cfg.Columns.MonthOffset = 1
	}
	if len(cfg.Columns.Exclude) == 0 {
		cfg.Columns.Exclude = []string{"TOTAL"}
	}
}

// validate checks the configuration for inconsistencies that would make the
// run meaningless rather than merely degraded.
func validate(cfg *Config) error {
	if len(cfg.Sources) == 0 {
		return fmt.Errorf("no sources configured")
	}

	seen := make(map[string]bool, len(cfg.Sources))
	for i, src := range cfg.Sources {
		if src.Name == "" {
			return fmt.Errorf("source %d has no name", i)
		}
		if seen[src.Name] {
			return fmt.Errorf("duplicate source name %q", src.Name)
		}
		seen[src.Name] = true

		if src.Path == "" {
			return fmt.Errorf("source %q has no path", src.Name)
		}
		switch src.Kind {
		case KindAnnual, KindMonthly:
		default:
			return fmt.Errorf("source %q has unknown kind %q", src.Name, src.Kind)
		}
	}

	// Missing workbooks are a runtime advisory, not a config error, so paths
	// are not checked here. The output directory is created eagerly.
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", cfg.OutputDir, err)
	}

	return nil
}

// SourceByName returns the source with the given name.
func (c *Config) SourceByName(name string) (Source, bool) {
	for _, src := range c.Sources {
		if src.Name == name {
			return src, true
		}
	}
	return Source{}, false
}

// MonthOffsetFor resolves the month offset for a source.
func (c *Config) MonthOffsetFor(src Source) int {
	if src.MonthOffset != nil {
		return *src.MonthOffset
	}
	return c.Columns.MonthOffset
}
