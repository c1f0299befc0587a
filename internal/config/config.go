package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	HTTP struct {
		Addr string
	}
	DB struct {
		Driver string
		DSN    string
	}
	Site struct {
		BaseURL string
		Name    string
	}
	LLM struct {
		Provider          string
		APIKey            string
		Model             string
		BaseURL           string
		Temperature       float64
		MaxTokens         int
		Timeout           time.Duration
		CommonDefinitions string
		Prompt            string
	}
	Generation struct {
		MaxCombinations int
		Types           []string
		AutoPublish     bool
	}
	NATS struct {
		URL     string
		Subject string
	}
	Log struct {
		Level string
	}
	AdminEmail string
}

// Load reads config from environment (PAGEGEN_ prefix) and optional pagegen.yaml.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("PAGEGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetConfigName("pagegen")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional config file

	setDefaults(v)
	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("site.base_url", "http://localhost:8080")
	v.SetDefault("site.name", "pagegen")
	v.SetDefault("llm.temperature", 0.7)
	v.SetDefault("llm.max_tokens", 2000)
	v.SetDefault("llm.timeout", "60s")
	v.SetDefault("generation.max_combinations", 100)
	v.SetDefault("generation.types", []string{"page", "post"})
	v.SetDefault("nats.subject", "pagegen.documents.generated")
	v.SetDefault("log.level", "info")
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	cfg.HTTP.Addr = v.GetString("http.addr")
	cfg.DB.Driver = v.GetString("db.driver")
	cfg.DB.DSN = v.GetString("db.dsn")
	cfg.Site.BaseURL = strings.TrimRight(v.GetString("site.base_url"), "/")
	cfg.Site.Name = v.GetString("site.name")
	cfg.LLM.Provider = strings.ToLower(v.GetString("llm.provider"))
	cfg.LLM.APIKey = v.GetString("llm.api_key")
	cfg.LLM.Model = v.GetString("llm.model")
	cfg.LLM.BaseURL = v.GetString("llm.base_url")
	cfg.LLM.Temperature = v.GetFloat64("llm.temperature")
	cfg.LLM.MaxTokens = v.GetInt("llm.max_tokens")
	cfg.LLM.CommonDefinitions = v.GetString("llm.common_definitions")
	cfg.LLM.Prompt = v.GetString("llm.prompt")
	cfg.Generation.MaxCombinations = v.GetInt("generation.max_combinations")
	cfg.Generation.Types = splitList(v.GetStringSlice("generation.types"))
	cfg.Generation.AutoPublish = v.GetBool("generation.auto_publish")
	cfg.NATS.URL = v.GetString("nats.url")
	cfg.NATS.Subject = v.GetString("nats.subject")
	cfg.Log.Level = v.GetString("log.level")
	cfg.AdminEmail = v.GetString("admin_email")

	timeout, err := time.ParseDuration(v.GetString("llm.timeout"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAGEGEN_LLM_TIMEOUT: %w", err)
	}
	cfg.LLM.Timeout = timeout

	if cfg.DB.Driver == "" {
		return nil, fmt.Errorf("PAGEGEN_DB_DRIVER is required (sqlite3, mysql, postgres)")
	}
	if cfg.DB.DSN == "" {
		return nil, fmt.Errorf("PAGEGEN_DB_DSN is required")
	}
	if cfg.Generation.MaxCombinations < 1 {
		return nil, fmt.Errorf("PAGEGEN_GENERATION_MAX_COMBINATIONS must be at least 1")
	}
	if len(cfg.Generation.Types) == 0 {
		return nil, fmt.Errorf("PAGEGEN_GENERATION_TYPES must name at least one document type")
	}

	return cfg, nil
}

// splitList accepts both YAML lists and a comma-separated env value.
func splitList(in []string) []string {
	var out []string
	for _, s := range in {
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
