// Package config provides configuration loading and validation for the analyzer.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/jonathan/resume-analyzer/internal/fetch"
	"github.com/jonathan/resume-analyzer/internal/pipeline"
	"github.com/jonathan/resume-analyzer/internal/ranking"
	"github.com/jonathan/resume-analyzer/internal/skills"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// Default values applied by MergeWithDefaults.
const (
	DefaultConcurrency    = 4
	DefaultQueue          = "resume.analysis"
	DefaultExchange       = "resume.analysis.results"
	DefaultWorkers        = 4
	DefaultPrefetch       = 8
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "text"
	DefaultS3Region       = "auto"
	DefaultExtractTimeout = 30 * time.Second
)

// Config is the analyzer configuration, loaded from a JSON or YAML file.
// All fields are optional; missing values use defaults or environment variables.
type Config struct {
	// Analysis tables
	ContextChars *int              `json:"context_chars,omitempty" yaml:"context_chars,omitempty" validate:"omitempty,gte=0,lte=1000"`
	Skills       skills.Table      `json:"skills,omitempty" yaml:"skills,omitempty" validate:"omitempty,dive"`
	Roles        ranking.RoleTable `json:"roles,omitempty" yaml:"roles,omitempty" validate:"omitempty,dive,keys,required,endkeys,min=1,dive,required"`
	Weights      *types.Weights    `json:"weights,omitempty" yaml:"weights,omitempty"`

	// Batch
	Concurrency    int    `json:"concurrency,omitempty" yaml:"concurrency,omitempty" validate:"omitempty,min=1,max=64"`
	ExtractTimeout string `json:"extract_timeout,omitempty" yaml:"extract_timeout,omitempty"` // Go duration, e.g. "30s"

	// Sources
	UploadDir   string     `json:"upload_dir,omitempty" yaml:"upload_dir,omitempty"`     // Directory resume filenames from the database are relative to
	DatabaseURL string     `json:"database_url,omitempty" yaml:"database_url,omitempty"` // PostgreSQL connection URL
	S3          S3Config   `json:"s3" yaml:"s3"`
	HTTP        HTTPConfig `json:"http" yaml:"http"`
	AMQP        AMQPConfig `json:"amqp" yaml:"amqp"`

	// Logging
	LogLevel  string `json:"log_level,omitempty" yaml:"log_level,omitempty" validate:"omitempty,oneof=debug info warn error"`
	LogFormat string `json:"log_format,omitempty" yaml:"log_format,omitempty" validate:"omitempty,oneof=text json"`
}

// S3Config locates resumes stored in an S3 compatible bucket.
type S3Config struct {
	Bucket    string `json:"bucket,omitempty" yaml:"bucket,omitempty"`
	Region    string `json:"region,omitempty" yaml:"region,omitempty"`
	Endpoint  string `json:"endpoint,omitempty" yaml:"endpoint,omitempty" validate:"omitempty,url"` // R2 or MinIO endpoint
	AccessKey string `json:"access_key,omitempty" yaml:"access_key,omitempty"`
	SecretKey string `json:"secret_key,omitempty" yaml:"secret_key,omitempty"`
}

// HTTPConfig enables reading resumes from http:// and https:// URLs.
type HTTPConfig struct {
	Enabled   bool   `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	UserAgent string `json:"user_agent,omitempty" yaml:"user_agent,omitempty"`
}

// AMQPConfig configures the queue worker.
type AMQPConfig struct {
	URL      string `json:"url,omitempty" yaml:"url,omitempty"`
	Queue    string `json:"queue,omitempty" yaml:"queue,omitempty"`
	Exchange string `json:"exchange,omitempty" yaml:"exchange,omitempty"`
	Workers  int    `json:"workers,omitempty" yaml:"workers,omitempty" validate:"omitempty,min=1,max=64"`
	Prefetch int    `json:"prefetch,omitempty" yaml:"prefetch,omitempty" validate:"omitempty,min=0"`
}

var validate = validator.New()

// LoadConfig loads configuration from a JSON or YAML file, chosen by extension.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, &LoadError{Message: "config path is empty"}
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, &LoadError{Path: path, Message: "failed to get current directory", Cause: err}
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Message: "failed to read config file", Cause: err}
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, &LoadError{Path: path, Message: "failed to parse config YAML", Cause: err}
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, &LoadError{Path: path, Message: "failed to parse config JSON", Cause: err}
		}
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return newValidationError(err)
	}
	if c.Weights != nil {
		if c.Weights.Skill+c.Weights.Experience+c.Weights.Education == 0 {
			return &ValidationError{Field: "weights", Message: "at least one weight must be positive"}
		}
	}
	if len(c.Skills) > 0 {
		if err := c.Skills.Validate(); err != nil {
			return &ValidationError{Field: "skills", Message: err.Error()}
		}
	}
	if c.ExtractTimeout != "" {
		d, err := time.ParseDuration(c.ExtractTimeout)
		if err != nil || d <= 0 {
			return &ValidationError{Field: "extract_timeout", Message: fmt.Sprintf("invalid duration %q", c.ExtractTimeout)}
		}
	}
	return nil
}

// MergeWithDefaults returns a new Config with unset fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.ContextChars == nil {
		result.ContextChars = defaults.ContextChars
	}
	if len(result.Skills) == 0 {
		result.Skills = defaults.Skills
	}
	if len(result.Roles) == 0 {
		result.Roles = defaults.Roles
	}
	if result.Weights == nil {
		result.Weights = defaults.Weights
	}
	if result.Concurrency == 0 {
		result.Concurrency = defaults.Concurrency
	}
	if result.ExtractTimeout == "" {
		result.ExtractTimeout = defaults.ExtractTimeout
	}
	if result.UploadDir == "" {
		result.UploadDir = defaults.UploadDir
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.LogFormat == "" {
		result.LogFormat = defaults.LogFormat
	}

	if result.S3.Bucket == "" {
		result.S3.Bucket = defaults.S3.Bucket
	}
	if result.S3.Region == "" {
		result.S3.Region = defaults.S3.Region
	}
	if result.S3.Endpoint == "" {
		result.S3.Endpoint = defaults.S3.Endpoint
	}
	if result.S3.AccessKey == "" {
		result.S3.AccessKey = defaults.S3.AccessKey
	}
	if result.S3.SecretKey == "" {
		result.S3.SecretKey = defaults.S3.SecretKey
	}

	// Bool fields: cannot distinguish unset from false, so HTTP.Enabled is not merged
	if result.HTTP.UserAgent == "" {
		result.HTTP.UserAgent = defaults.HTTP.UserAgent
	}

	if result.AMQP.URL == "" {
		result.AMQP.URL = defaults.AMQP.URL
	}
	if result.AMQP.Queue == "" {
		result.AMQP.Queue = defaults.AMQP.Queue
	}
	if result.AMQP.Exchange == "" {
		result.AMQP.Exchange = defaults.AMQP.Exchange
	}
	if result.AMQP.Workers == 0 {
		result.AMQP.Workers = defaults.AMQP.Workers
	}
	if result.AMQP.Prefetch == 0 {
		result.AMQP.Prefetch = defaults.AMQP.Prefetch
	}

	return result
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	contextChars := skills.DefaultContextChars
	weights := ranking.DefaultWeights()
	return Config{
		ContextChars:   &contextChars,
		Skills:         skills.DefaultTable(),
		Roles:          ranking.DefaultRoles(),
		Weights:        &weights,
		Concurrency:    DefaultConcurrency,
		ExtractTimeout: DefaultExtractTimeout.String(),
		S3:             S3Config{Region: DefaultS3Region},
		HTTP:           HTTPConfig{UserAgent: fetch.DefaultUserAgent},
		AMQP: AMQPConfig{
			Queue:    DefaultQueue,
			Exchange: DefaultExchange,
			Workers:  DefaultWorkers,
			Prefetch: DefaultPrefetch,
		},
		LogLevel:  DefaultLogLevel,
		LogFormat: DefaultLogFormat,
	}
}

// ApplyEnv fills connection settings that the file left empty from the environment.
func (c *Config) ApplyEnv() {
	setFromEnv(&c.DatabaseURL, "DATABASE_URL")
	setFromEnv(&c.UploadDir, "UPLOAD_DIR")
	setFromEnv(&c.AMQP.URL, "AMQP_URL")
	setFromEnv(&c.S3.Bucket, "S3_BUCKET")
	setFromEnv(&c.S3.Region, "S3_REGION")
	setFromEnv(&c.S3.Endpoint, "S3_ENDPOINT")
	setFromEnv(&c.S3.AccessKey, "S3_ACCESS_KEY")
	setFromEnv(&c.S3.SecretKey, "S3_SECRET_KEY")
	setFromEnv(&c.LogLevel, "LOG_LEVEL")
}

func setFromEnv(field *string, key string) {
	if *field == "" {
		*field = os.Getenv(key)
	}
}

// ExtractTimeoutDuration returns the per-resume extraction timeout, or the default
// when unset or invalid.
func (c *Config) ExtractTimeoutDuration() time.Duration {
	if d, err := time.ParseDuration(c.ExtractTimeout); err == nil && d > 0 {
		return d
	}
	return DefaultExtractTimeout
}

// Analyzer compiles the configured tables into a pipeline.Analyzer. Tables left
// unset use the built-in ones. extra options are applied last.
func (c *Config) Analyzer(extra ...pipeline.Option) (*pipeline.Analyzer, error) {
	var opts []pipeline.Option
	if len(c.Skills) > 0 {
		if err := c.Skills.Validate(); err != nil {
			return nil, err
		}
		m, err := skills.Compile(c.Skills)
		if err != nil {
			return nil, err
		}
		opts = append(opts, pipeline.WithMatcher(m))
	}
	if len(c.Roles) > 0 {
		opts = append(opts, pipeline.WithRoles(c.Roles))
	}
	if c.Weights != nil {
		opts = append(opts, pipeline.WithWeights(*c.Weights))
	}
	if c.ContextChars != nil {
		opts = append(opts, pipeline.WithContextChars(*c.ContextChars))
	}
	return pipeline.New(append(opts, extra...)...), nil
}
