package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Env         string
	ListenAddr  string
	DatabaseURL string
	Storage     string // postgres|memory

	ScanWorkers       int
	PollInterval      time.Duration
	JobLease          time.Duration
	MaxAttempts       int
	ModuleConcurrency int
	ModuleTimeout     time.Duration
	DefaultModules    []string

	WhoisServer   string
	CrtshURL      string
	CrtshMaxCerts int
	CrtshRate     float64
	DNSServer     string

	RedisURL    string
	ScanLogSize int

	LLM LLMConfig

	LogLevel  string
	LogFormat string
	LogFile   string

	MetricsEnabled bool
}

type LLMConfig struct {
	Backend              string // ollama|openai
	Timeout              time.Duration
	OllamaBaseURL        string
	OllamaModel          string
	OpenAIBaseURL        string
	OpenAIAPIKey         string
	OpenAIModel          string
	OpenAIEmbeddingModel string
}

var (
	ErrNoDatabaseURL  = errors.New("DATABASE_URL not set")
	ErrInvalidStorage = errors.New("invalid STORAGE: must be postgres or memory")
	ErrInvalidBackend = errors.New("invalid LLM_BACKEND: must be ollama or openai")
	ErrInvalidWorkers = errors.New("invalid SCAN_WORKERS: must be non-negative")
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_env", "development")
	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("database_url", "")
	v.SetDefault("storage", "postgres")
	v.SetDefault("scan_workers", 2)
	v.SetDefault("scan_poll_interval", "500ms")
	v.SetDefault("scan_job_lease", "15m")
	v.SetDefault("scan_max_attempts", 3)
	v.SetDefault("module_concurrency", 1)
	v.SetDefault("module_timeout", "30s")
	v.SetDefault("default_modules", "whois,certificate_transparency")
	v.SetDefault("whois_server", "")
	v.SetDefault("crtsh_url", "https://crt.sh")
	v.SetDefault("crtsh_max_certificates", 100)
	v.SetDefault("crtsh_rate", 1.0)
	v.SetDefault("dns_server", "1.1.1.1:53")
	v.SetDefault("redis_url", "")
	v.SetDefault("scan_log_size", 100)
	v.SetDefault("llm_backend", "ollama")
	v.SetDefault("llm_timeout", "120s")
	v.SetDefault("ollama_base_url", "http://localhost:11434")
	v.SetDefault("ollama_model", "llama3")
	v.SetDefault("openai_base_url", "https://api.openai.com/v1")
	v.SetDefault("openai_api_key", "")
	v.SetDefault("openai_model", "gpt-4o-mini")
	v.SetDefault("openai_embedding_model", "text-embedding-3-small")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
	v.SetDefault("log_file", "")
	v.SetDefault("metrics_enabled", true)
}

// Load reads configuration from the environment and, when configFile is
// set, from that YAML file. Environment variables win over the file.
// Validation errors come back together with the populated Config so callers
// can decide whether they are fatal.
func Load(configFile string) (Config, error) {
	v, err := NewViper(configFile)
	if err != nil {
		return Config{}, err
	}
	return FromViper(v)
}

// NewViper returns a viper instance with defaults, environment binding and
// the optional config file applied. Callers may bind flags onto it before
// calling FromViper.
func NewViper(configFile string) (*viper.Viper, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}
	return v, nil
}

// FromViper builds a Config out of an already populated viper instance.
func FromViper(v *viper.Viper) (Config, error) {
	cfg := Config{
		Env:               v.GetString("app_env"),
		ListenAddr:        v.GetString("listen_addr"),
		DatabaseURL:       v.GetString("database_url"),
		Storage:           strings.ToLower(v.GetString("storage")),
		ScanWorkers:       v.GetInt("scan_workers"),
		PollInterval:      v.GetDuration("scan_poll_interval"),
		JobLease:          v.GetDuration("scan_job_lease"),
		MaxAttempts:       v.GetInt("scan_max_attempts"),
		ModuleConcurrency: v.GetInt("module_concurrency"),
		ModuleTimeout:     v.GetDuration("module_timeout"),
		DefaultModules:    splitList(v.GetString("default_modules")),
		WhoisServer:       v.GetString("whois_server"),
		CrtshURL:          v.GetString("crtsh_url"),
		CrtshMaxCerts:     v.GetInt("crtsh_max_certificates"),
		CrtshRate:         v.GetFloat64("crtsh_rate"),
		DNSServer:         v.GetString("dns_server"),
		RedisURL:          v.GetString("redis_url"),
		ScanLogSize:       v.GetInt("scan_log_size"),
		LLM: LLMConfig{
			Backend:              strings.ToLower(v.GetString("llm_backend")),
			Timeout:              v.GetDuration("llm_timeout"),
			OllamaBaseURL:        v.GetString("ollama_base_url"),
			OllamaModel:          v.GetString("ollama_model"),
			OpenAIBaseURL:        v.GetString("openai_base_url"),
			OpenAIAPIKey:         v.GetString("openai_api_key"),
			OpenAIModel:          v.GetString("openai_model"),
			OpenAIEmbeddingModel: v.GetString("openai_embedding_model"),
		},
		LogLevel:       v.GetString("log_level"),
		LogFormat:      v.GetString("log_format"),
		LogFile:        v.GetString("log_file"),
		MetricsEnabled: v.GetBool("metrics_enabled"),
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch c.Storage {
	case "postgres":
		if c.DatabaseURL == "" {
			return ErrNoDatabaseURL
		}
	case "memory":
	default:
		return ErrInvalidStorage
	}
	switch c.LLM.Backend {
	case "ollama", "openai":
	default:
		return ErrInvalidBackend
	}
	if c.ScanWorkers < 0 {
		return ErrInvalidWorkers
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
