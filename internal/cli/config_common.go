package cli

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vvka-141/retailsql/internal/config"
	"github.com/vvka-141/retailsql/pkg/retailsql"
)

// Environment variables consulted between flags and retailsql.yaml.
const (
	envDriver      = "RETAILSQL_DRIVER"
	envDB          = "RETAILSQL_DB"
	envDSN         = "RETAILSQL_DSN"
	envDatabaseURL = "DATABASE_URL"
	envAWSRegion   = "AWS_REGION"
)

// settings is the fully resolved configuration of one command invocation.
type settings struct {
	Store   retailsql.StoreConfig
	CSVPath string
	Output  retailsql.OutputConfig
	Timeout time.Duration
	Verbose bool
}

func defaultSettings() settings {
	return settings{
		Store: retailsql.StoreConfig{
			Driver: retailsql.DefaultDriver,
			Path:   retailsql.DefaultStorePath,
			Table:  retailsql.DefaultTable,
		},
		CSVPath: retailsql.DefaultCSVPath,
		Output: retailsql.OutputConfig{
			Dir:             retailsql.DefaultOutputDir,
			AnalysisChart:   retailsql.DefaultAnalysisChart,
			AdditionalChart: retailsql.DefaultAdditionalChart,
			Workbook:        retailsql.DefaultWorkbook,
			DPI:             retailsql.DefaultDPI,
		},
		Timeout: retailsql.DefaultTimeout,
	}
}

// resolveSettings merges, lowest to highest priority: defaults, retailsql.yaml,
// environment, flags. A positional CSV argument overrides input.csv.
func resolveSettings(cmd *cobra.Command, args []string) (*settings, error) {
	projectCfg, err := loadProjectConfig(rootFlags.config, cmd.Flags().Changed("config"))
	if err != nil {
		return nil, err
	}

	s := defaultSettings()
	s.Verbose = getVerboseFlag(cmd)

	if err := applyProjectConfig(&s, projectCfg); err != nil {
		return nil, err
	}
	applyEnvironment(&s, os.Getenv)
	applyFlags(&s, cmd)
	if len(args) > 0 {
		s.CSVPath = args[0]
	}

	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// loadProjectConfig loads godotenv and project configuration.
// A missing config file is only an error when the path was given explicitly.
func loadProjectConfig(path string, explicit bool) (*config.ProjectConfig, error) {
	_ = godotenv.Load()

	projectCfg, err := config.Load(path)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			if explicit {
				return nil, fmt.Errorf("config file %s not found: %w", path, retailsql.ErrInvalidConfig)
			}
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load %s: %v: %w", path, err, retailsql.ErrInvalidConfig)
	}
	return projectCfg, nil
}

func applyProjectConfig(s *settings, cfg *config.ProjectConfig) error {
	if cfg == nil {
		return nil
	}

	setString(&s.Store.Driver, cfg.Store.Driver)
	setString(&s.Store.Path, cfg.Store.Path)
	setString(&s.Store.DSN, cfg.Store.DSN)
	setString(&s.Store.Table, cfg.Store.Table)
	setString(&s.Store.Auth, cfg.Store.Auth)
	setString(&s.Store.AWSRegion, cfg.Store.AWSRegion)
	setString(&s.Store.GoogleInstance, cfg.Store.GoogleInstance)
	setString(&s.CSVPath, cfg.Input.CSV)
	setString(&s.Output.Dir, cfg.Output.Dir)
	setString(&s.Output.AnalysisChart, cfg.Output.AnalysisChart)
	setString(&s.Output.AdditionalChart, cfg.Output.AdditionalChart)
	setString(&s.Output.Workbook, cfg.Output.Workbook)
	if cfg.Output.DPI != 0 {
		s.Output.DPI = cfg.Output.DPI
	}

	if cfg.Timeout != "" {
		parsed, err := time.ParseDuration(cfg.Timeout)
		if err != nil {
			return fmt.Errorf("invalid timeout %q in %s: %w", cfg.Timeout, config.ConfigFileName, retailsql.ErrInvalidConfig)
		}
		s.Timeout = parsed
	}
	return nil
}

func applyEnvironment(s *settings, getenv func(string) string) {
	setString(&s.Store.Driver, getenv(envDriver))
	setString(&s.Store.Path, getenv(envDB))
	setString(&s.Store.AWSRegion, getenv(envAWSRegion))
	if dsn := getenv(envDSN); dsn != "" {
		s.Store.DSN = dsn
	} else {
		setString(&s.Store.DSN, getenv(envDatabaseURL))
	}
}

func applyFlags(s *settings, cmd *cobra.Command) {
	flags := cmd.Flags()
	if flags.Changed("driver") {
		s.Store.Driver = rootFlags.driver
	}
	if flags.Changed("db") {
		s.Store.Path = rootFlags.dbPath
	}
	if flags.Changed("dsn") {
		s.Store.DSN = rootFlags.dsn
	}
	if flags.Changed("table") {
		s.Store.Table = rootFlags.table
	}
	if flags.Changed("auth") {
		s.Store.Auth = rootFlags.auth
	}
	if flags.Changed("aws-region") {
		s.Store.AWSRegion = rootFlags.awsRegion
	}
	if flags.Changed("google-instance") {
		s.Store.GoogleInstance = rootFlags.googleInstance
	}
	if flags.Changed("timeout") {
		s.Timeout = rootFlags.timeout
	}
	if flags.Lookup("out-dir") != nil && flags.Changed("out-dir") {
		s.Output.Dir = outputFlags.dir
	}
	if flags.Lookup("dpi") != nil && flags.Changed("dpi") {
		s.Output.DPI = outputFlags.dpi
	}
}

func (s *settings) validate() error {
	var errs []error
	if err := s.Store.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := s.Output.Validate(); err != nil {
		errs = append(errs, err)
	}
	if s.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("timeout must be positive, got %s: %w", s.Timeout, retailsql.ErrInvalidConfig))
	}
	return errors.Join(errs...)
}

// logSettingsVerbose logs the resolved settings with any DSN password redacted.
func logSettingsVerbose(logger retailsql.Logger, s *settings) {
	logger.Verbose("Settings resolved:")
	logger.Verbose("  Driver: %s", s.Store.Driver)
	if s.Store.Driver == retailsql.DriverSQLite {
		logger.Verbose("  Database: %s", s.Store.Path)
	} else {
		logger.Verbose("  DSN: %s", redactDSN(s.Store.DSN))
		if s.Store.Auth != "" {
			logger.Verbose("  Auth: %s", s.Store.Auth)
		}
	}
	logger.Verbose("  Table: %s", s.Store.Table)
	logger.Verbose("  Timeout: %s", s.Timeout)
}

func redactDSN(dsn string) string {
	u, err := url.Parse(dsn)
	if err != nil || u.Scheme == "" {
		return "(unparsed DSN)"
	}
	return u.Redacted()
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
