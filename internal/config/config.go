package config

import (
	"errors"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

type StoreConfig struct {
	Driver         string `yaml:"driver"`
	Path           string `yaml:"path"`
	DSN            string `yaml:"dsn,omitempty"`
	Table          string `yaml:"table"`
	Auth           string `yaml:"auth,omitempty"`
	AWSRegion      string `yaml:"aws_region,omitempty"`
	GoogleInstance string `yaml:"google_instance,omitempty"`
}

type InputConfig struct {
	CSV string `yaml:"csv"`
}

type OutputConfig struct {
	Dir             string `yaml:"dir"`
	AnalysisChart   string `yaml:"analysis_chart"`
	AdditionalChart string `yaml:"additional_chart"`
	Workbook        string `yaml:"workbook"`
	DPI             int    `yaml:"dpi"`
}

type ProjectConfig struct {
	Store   StoreConfig  `yaml:"store"`
	Input   InputConfig  `yaml:"input"`
	Output  OutputConfig `yaml:"output"`
	Timeout string       `yaml:"timeout"`
}

const ConfigFileName = "retailsql.yaml"

// Load reads the project config at path. Unknown keys are rejected so that
// typos do not silently fall back to defaults.
func Load(path string) (*ProjectConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}
	defer f.Close()

	var cfg ProjectConfig
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return &cfg, nil
		}
		return nil, err
	}
	return &cfg, nil
}
