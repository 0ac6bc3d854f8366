// Package runconfig loads the engine's Config and ambient logging
// settings from a YAML file, with environment-variable expansion and a
// graceful fallback to defaults when no file is present.
package runconfig

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/amazingrofa/geofac/engine"
	"github.com/amazingrofa/geofac/internal/telemetry"
	"github.com/amazingrofa/geofac/kernel"
)

// File is the on-disk shape of a GRFC run configuration.
type File struct {
	Logging   LoggingConfig   `yaml:"logging"`
	Search    SearchConfig    `yaml:"search"`
	Whitelist WhitelistConfig `yaml:"whitelist"`
}

// LoggingConfig controls the telemetry logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// SearchConfig mirrors engine.Config's tunable fields in their YAML
// serializable form.
type SearchConfig struct {
	Precision        uint32  `yaml:"precision"`
	Samples          int64   `yaml:"samples"`
	MSpan            int64   `yaml:"m_span"`
	Sigma            float64 `yaml:"sigma"`
	J                int     `yaml:"j"`
	Threshold        float64 `yaml:"threshold"`
	KLo              float64 `yaml:"k_lo"`
	KHi              float64 `yaml:"k_hi"`
	SearchTimeoutMs  int64   `yaml:"search_timeout_ms"`
	KernelVariant    string  `yaml:"kernel_variant"`
	NewtonIterations int     `yaml:"newton_iterations"`
	Workers          int     `yaml:"workers"`
}

// WhitelistConfig gates the single named 127-bit challenge.
type WhitelistConfig struct {
	Allow bool `yaml:"allow_whitelisted_challenge"`
}

// Default returns the configuration used when no file is found.
func Default() *File {
	def := engine.DefaultConfig()
	return &File{
		Logging: LoggingConfig{Level: "info", Format: "json"},
		Search: SearchConfig{
			Precision:        def.Precision,
			Samples:          def.Samples,
			MSpan:            def.MSpan,
			Sigma:            def.Sigma,
			J:                def.J,
			Threshold:        def.Threshold,
			KLo:              def.KLo,
			KHi:              def.KHi,
			SearchTimeoutMs:  def.SearchTimeout.Milliseconds(),
			KernelVariant:    "gaussian",
			NewtonIterations: def.NewtonIterations,
			Workers:          def.Workers,
		},
		Whitelist: WhitelistConfig{Allow: false},
	}
}

// Load reads path as YAML with environment-variable expansion, falling
// back to Default() if the file does not exist.
func Load(path string) (*File, error) {
	f := Default()
	if path == "" {
		path = "grfc.yaml"
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return f, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("runconfig: read %s: %w", path, err)
	}

	expanded := []byte(os.ExpandEnv(string(data)))
	if err := yaml.Unmarshal(expanded, f); err != nil {
		return nil, fmt.Errorf("runconfig: parse %s: %w", path, err)
	}
	return f, nil
}

// Save writes f to path as YAML.
func (f *File) Save(path string) error {
	data, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("runconfig: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("runconfig: write %s: %w", path, err)
	}
	return nil
}

// Validate checks the fields Load cannot enforce via YAML tags alone.
func (f *File) Validate() error {
	if f.Search.Samples < 0 {
		return fmt.Errorf("search.samples must be >= 0")
	}
	if f.Search.MSpan < 0 {
		return fmt.Errorf("search.m_span must be >= 0")
	}
	if f.Search.Sigma <= 0 {
		return fmt.Errorf("search.sigma must be positive")
	}
	if f.Search.Threshold <= 0 || f.Search.Threshold >= 1 {
		return fmt.Errorf("search.threshold must be in (0,1)")
	}
	if f.Search.KLo <= 0 || f.Search.KLo >= f.Search.KHi {
		return fmt.Errorf("search.k_lo must be positive and less than search.k_hi")
	}
	switch f.Search.KernelVariant {
	case "gaussian", "dirichlet":
	default:
		return fmt.Errorf("search.kernel_variant must be gaussian or dirichlet, got %q", f.Search.KernelVariant)
	}
	if f.Search.NewtonIterations < 0 || f.Search.NewtonIterations > 3 {
		return fmt.Errorf("search.newton_iterations must be in [0,3]")
	}
	return nil
}

// EngineConfig translates the loaded file into an engine.Config.
func (f *File) EngineConfig() engine.Config {
	variant := engine.DefaultConfig().KernelVariant
	switch f.Search.KernelVariant {
	case "dirichlet":
		variant = kernel.Dirichlet
	case "gaussian":
		variant = kernel.Gaussian
	}

	return engine.Config{
		Precision:                 f.Search.Precision,
		Samples:                   f.Search.Samples,
		MSpan:                     f.Search.MSpan,
		Sigma:                     f.Search.Sigma,
		J:                         f.Search.J,
		Threshold:                 f.Search.Threshold,
		KLo:                       f.Search.KLo,
		KHi:                       f.Search.KHi,
		SearchTimeout:             time.Duration(f.Search.SearchTimeoutMs) * time.Millisecond,
		AllowWhitelistedChallenge: f.Whitelist.Allow,
		KernelVariant:             variant,
		NewtonIterations:          f.Search.NewtonIterations,
		Workers:                   f.Search.Workers,
	}
}

// Logger builds a telemetry.Logger from the file's logging section.
func (f *File) Logger() *telemetry.Logger {
	return telemetry.New(telemetry.Config{
		Level:  telemetry.Level(f.Logging.Level),
		Format: telemetry.Format(f.Logging.Format),
	})
}
