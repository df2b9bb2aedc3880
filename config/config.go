package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig
	CORS       CORSConfig
	RateLimit  RateLimitConfig
	Readiness  ReadinessConfig

	// Knowledge base
	Qdrant    QdrantConfig
	Embedding EmbeddingConfig
	Voyage    VoyageConfig
	GenAI     GenAIConfig
	Knowledge KnowledgeConfig

	// Generation backends
	Ollama          OllamaConfig
	Coder           CoderConfig
	StableDiffusion StableDiffusionConfig

	// LLM Provider Abstraction
	LLM LLMConfig

	// Routing and orchestration
	Router     RouterConfig
	Generation GenerationConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port            int
	Mode            string
	ShutdownTimeout time.Duration
	TrustedProxies  []string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

type CORSConfig struct {
	AllowedOrigins []string
}

type RateLimitConfig struct {
	Enabled  bool
	Requests int
	Window   time.Duration
}

type ReadinessConfig struct {
	Enabled  bool
	Interval time.Duration
	MaxWait  time.Duration
}

type QdrantConfig struct {
	URL            string
	APIKey         string
	CollectionName string
	VectorSize     int
	Distance       string
}

// EmbeddingConfig selects the embedding provider ("voyage" or "genai").
type EmbeddingConfig struct {
	Provider  string
	CacheSize int
	CacheTTL  time.Duration
}

type VoyageConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type GenAIConfig struct {
	APIKey string
	Model  string
}

type KnowledgeConfig struct {
	ChunkSize    int
	ChunkOverlap int
	FetchTimeout time.Duration
	UserAgent    string
	MaxBodyBytes int
}

type OllamaConfig struct {
	URL         string
	Model       string
	Timeout     time.Duration
	MaxTokens   int
	Temperature float64
}

type CoderConfig struct {
	Model          string
	MaxTokens      int
	Temperature    float64
	Timeout        time.Duration
	AutoPull       bool
	BreakerPercent float64
}

type StableDiffusionConfig struct {
	Enabled bool
	URL     string
	Model   string
	Timeout time.Duration
}

// LLMConfig holds configuration for the LLM provider abstraction layer
type LLMConfig struct {
	Providers       []ProviderConfig `yaml:"providers"`
	FallbackEnabled bool             `yaml:"fallback_enabled"`
	RetryAttempts   int              `yaml:"retry_attempts"`
	RetryDelay      string           `yaml:"retry_delay"`
	MaxTotalTimeout string           `yaml:"max_total_timeout"`
}

// ProviderConfig holds configuration for a single cloud LLM provider
type ProviderConfig struct {
	Name     string `yaml:"name"`
	Enabled  bool   `yaml:"enabled"`
	Priority int    `yaml:"priority"`
	APIKey   string `yaml:"api_key"`
	BaseURL  string `yaml:"base_url,omitempty"`
	Model    string `yaml:"model"`
	Timeout  string `yaml:"timeout"`
}

// RouterConfig holds the intent classifier constants.
type RouterConfig struct {
	MinConfidence float64
	CodeScale     float64
	ImageScale    float64
	FreshScale    float64
	CodeBoost     float64
	ImageBoost    float64
}

type GenerationConfig struct {
	TopK             int
	ContextThreshold float64
}

// Load loads configuration using Viper.
// Config file name: config.yaml, searched in ./config, . and /etc/app/
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile loads configuration from an explicit file when path is set,
// otherwise from the default search paths.
func LoadFile(path string) (*Config, error) {
	// .env is optional; real environment variables win over it
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	if path != "" {
		viper.SetConfigFile(path)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath("./config")
		viper.AddConfigPath(".")
		viper.AddConfigPath("/etc/app/")
	}

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.HTTPServer.ShutdownTimeout = viper.GetDuration("http_server.shutdown_timeout")
	cfg.HTTPServer.TrustedProxies = splitList(viper.Get("http_server.trusted_proxies"))
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	cfg.CORS.AllowedOrigins = splitList(viper.Get("cors.allowed_origins"))
	cfg.RateLimit.Enabled = viper.GetBool("rate_limit.enabled")
	cfg.RateLimit.Requests = viper.GetInt("rate_limit.requests")
	cfg.RateLimit.Window = viper.GetDuration("rate_limit.window")
	cfg.Readiness.Enabled = viper.GetBool("readiness.enabled")
	cfg.Readiness.Interval = viper.GetDuration("readiness.interval")
	cfg.Readiness.MaxWait = viper.GetDuration("readiness.max_wait")

	// Knowledge base
	cfg.Qdrant.URL = viper.GetString("qdrant.url")
	cfg.Qdrant.APIKey = viper.GetString("qdrant.api_key")
	cfg.Qdrant.CollectionName = viper.GetString("qdrant.collection_name")
	cfg.Qdrant.VectorSize = viper.GetInt("qdrant.vector_size")
	cfg.Qdrant.Distance = viper.GetString("qdrant.distance")
	if qdrantURL := viper.GetString("qdrant_url"); qdrantURL != "" {
		cfg.Qdrant.URL = qdrantURL
	}

	cfg.Embedding.Provider = strings.ToLower(viper.GetString("embedding.provider"))
	cfg.Embedding.CacheSize = viper.GetInt("embedding.cache_size")
	cfg.Embedding.CacheTTL = viper.GetDuration("embedding.cache_ttl")

	cfg.Voyage.APIKey = expandEnvVar(viper.GetString("voyage.api_key"))
	cfg.Voyage.Model = viper.GetString("voyage.model")
	cfg.Voyage.BaseURL = viper.GetString("voyage.base_url")
	if voyageKey := viper.GetString("voyage_api_key"); voyageKey != "" {
		cfg.Voyage.APIKey = voyageKey
	}

	cfg.GenAI.APIKey = expandEnvVar(viper.GetString("genai.api_key"))
	cfg.GenAI.Model = viper.GetString("genai.model")
	if genaiKey := viper.GetString("gemini_api_key"); genaiKey != "" && cfg.GenAI.APIKey == "" {
		cfg.GenAI.APIKey = genaiKey
	}

	cfg.Knowledge.ChunkSize = viper.GetInt("knowledge.chunk_size")
	cfg.Knowledge.ChunkOverlap = viper.GetInt("knowledge.chunk_overlap")
	cfg.Knowledge.FetchTimeout = viper.GetDuration("knowledge.fetch_timeout")
	cfg.Knowledge.UserAgent = viper.GetString("knowledge.user_agent")
	cfg.Knowledge.MaxBodyBytes = viper.GetInt("knowledge.max_body_bytes")

	// Generation backends
	cfg.Ollama.URL = viper.GetString("ollama.url")
	cfg.Ollama.Model = viper.GetString("ollama.model")
	cfg.Ollama.Timeout = viper.GetDuration("ollama.timeout")
	cfg.Ollama.MaxTokens = viper.GetInt("ollama.max_tokens")
	cfg.Ollama.Temperature = viper.GetFloat64("ollama.temperature")
	if ollamaURL := viper.GetString("ollama_base_url"); ollamaURL != "" {
		cfg.Ollama.URL = ollamaURL
	}

	cfg.Coder.Model = viper.GetString("coder.model")
	cfg.Coder.MaxTokens = viper.GetInt("coder.max_tokens")
	cfg.Coder.Temperature = viper.GetFloat64("coder.temperature")
	cfg.Coder.Timeout = viper.GetDuration("coder.timeout")
	cfg.Coder.AutoPull = viper.GetBool("coder.auto_pull")
	cfg.Coder.BreakerPercent = viper.GetFloat64("coder.breaker_error_percent")

	cfg.StableDiffusion.Enabled = viper.GetBool("stable_diffusion.enabled")
	cfg.StableDiffusion.URL = viper.GetString("stable_diffusion.url")
	cfg.StableDiffusion.Model = viper.GetString("stable_diffusion.model")
	cfg.StableDiffusion.Timeout = viper.GetDuration("stable_diffusion.timeout")

	// LLM Provider Abstraction
	cfg.LLM.FallbackEnabled = viper.GetBool("llm.fallback_enabled")
	cfg.LLM.RetryAttempts = viper.GetInt("llm.retry_attempts")
	cfg.LLM.RetryDelay = viper.GetString("llm.retry_delay")
	cfg.LLM.MaxTotalTimeout = viper.GetString("llm.max_total_timeout")

	// Load cloud provider configurations. The local Ollama provider is always
	// first in the chain, so an empty list is valid.
	if viper.IsSet("llm.providers") {
		providersRaw := viper.Get("llm.providers")
		if providersList, ok := providersRaw.([]interface{}); ok {
			for _, p := range providersList {
				if providerMap, ok := p.(map[string]interface{}); ok {
					provider := ProviderConfig{
						Name:     getStringFromMap(providerMap, "name"),
						Enabled:  getBoolFromMap(providerMap, "enabled"),
						Priority: getIntFromMap(providerMap, "priority"),
						APIKey:   expandEnvVar(getStringFromMap(providerMap, "api_key")),
						BaseURL:  getStringFromMap(providerMap, "base_url"),
						Model:    getStringFromMap(providerMap, "model"),
						Timeout:  getStringFromMap(providerMap, "timeout"),
					}
					cfg.LLM.Providers = append(cfg.LLM.Providers, provider)
				}
			}
		}
	}
	if err := validateLLMConfig(&cfg.LLM); err != nil {
		return nil, fmt.Errorf("invalid llm config: %w", err)
	}

	// Routing and orchestration
	cfg.Router.MinConfidence = viper.GetFloat64("router.min_confidence")
	cfg.Router.CodeScale = viper.GetFloat64("router.code_scale")
	cfg.Router.ImageScale = viper.GetFloat64("router.image_scale")
	cfg.Router.FreshScale = viper.GetFloat64("router.fresh_scale")
	cfg.Router.CodeBoost = viper.GetFloat64("router.code_boost")
	cfg.Router.ImageBoost = viper.GetFloat64("router.image_boost")

	cfg.Generation.TopK = viper.GetInt("generation.top_k")
	cfg.Generation.ContextThreshold = viper.GetFloat64("generation.context_threshold")

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("http_server.shutdown_timeout", "15s")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)

	viper.SetDefault("cors.allowed_origins", []string{"http://localhost:3000", "http://localhost:8080"})
	viper.SetDefault("rate_limit.enabled", true)
	viper.SetDefault("rate_limit.requests", 100)
	viper.SetDefault("rate_limit.window", "1h")
	viper.SetDefault("readiness.enabled", true)
	viper.SetDefault("readiness.interval", "5s")
	viper.SetDefault("readiness.max_wait", "20m")

	viper.SetDefault("qdrant.url", "http://localhost:6333")
	viper.SetDefault("qdrant.collection_name", "aurax_knowledge")
	viper.SetDefault("qdrant.vector_size", 1024)
	viper.SetDefault("qdrant.distance", "Cosine")
	viper.SetDefault("embedding.provider", "voyage")
	viper.SetDefault("embedding.cache_size", 1000)
	viper.SetDefault("embedding.cache_ttl", "30m")
	viper.SetDefault("knowledge.chunk_size", 800)
	viper.SetDefault("knowledge.chunk_overlap", 100)
	viper.SetDefault("knowledge.fetch_timeout", "30s")
	viper.SetDefault("knowledge.user_agent", "aurax-orchestrator/1.0")
	viper.SetDefault("knowledge.max_body_bytes", 5<<20)

	viper.SetDefault("ollama.url", "http://localhost:11434")
	viper.SetDefault("ollama.model", "mistral:7b")
	viper.SetDefault("ollama.timeout", "120s")
	viper.SetDefault("ollama.max_tokens", 2000)
	viper.SetDefault("ollama.temperature", 0.7)
	viper.SetDefault("coder.model", "qwen2.5-coder:7b")
	viper.SetDefault("coder.max_tokens", 3000)
	viper.SetDefault("coder.temperature", 0.3)
	viper.SetDefault("coder.timeout", "180s")
	viper.SetDefault("coder.auto_pull", true)
	viper.SetDefault("coder.breaker_error_percent", 50)
	viper.SetDefault("stable_diffusion.enabled", true)
	viper.SetDefault("stable_diffusion.url", "http://localhost:7860")
	viper.SetDefault("stable_diffusion.model", "runwayml/stable-diffusion-v1-5")
	viper.SetDefault("stable_diffusion.timeout", "5m")

	// LLM defaults
	viper.SetDefault("llm.fallback_enabled", true)
	viper.SetDefault("llm.retry_attempts", 2)
	viper.SetDefault("llm.retry_delay", "1s")
	viper.SetDefault("llm.max_total_timeout", "180s")

	viper.SetDefault("router.min_confidence", 0.4)
	viper.SetDefault("router.code_scale", 2.0)
	viper.SetDefault("router.image_scale", 3.0)
	viper.SetDefault("router.fresh_scale", 2.5)
	viper.SetDefault("router.code_boost", 0.3)
	viper.SetDefault("router.image_boost", 0.4)
	viper.SetDefault("generation.top_k", 3)
	viper.SetDefault("generation.context_threshold", 0.5)
}

func validate(cfg *Config) error {
	if cfg.HTTPServer.Port <= 0 || cfg.HTTPServer.Port > 65535 {
		return fmt.Errorf("http_server.port out of range: %d", cfg.HTTPServer.Port)
	}
	switch cfg.Embedding.Provider {
	case "voyage", "genai":
	default:
		return fmt.Errorf("embedding.provider must be voyage or genai, got %q", cfg.Embedding.Provider)
	}
	if cfg.RateLimit.Enabled && (cfg.RateLimit.Requests <= 0 || cfg.RateLimit.Window <= 0) {
		return fmt.Errorf("rate_limit requires positive requests and window")
	}
	if cfg.Knowledge.ChunkOverlap >= cfg.Knowledge.ChunkSize {
		return fmt.Errorf("knowledge.chunk_overlap must be smaller than knowledge.chunk_size")
	}
	if cfg.Generation.ContextThreshold < 0 || cfg.Generation.ContextThreshold > 1 {
		return fmt.Errorf("generation.context_threshold must be within [0,1]")
	}
	return nil
}

// expandEnvVar expands environment variables in the format ${VAR_NAME}
func expandEnvVar(value string) string {
	if value == "" {
		return value
	}

	if strings.HasPrefix(value, "${") && strings.HasSuffix(value, "}") {
		envVar := value[2 : len(value)-1]
		if envValue := viper.GetString(envVar); envValue != "" {
			return envValue
		}
		if envValue := viper.GetString(strings.ToLower(envVar)); envValue != "" {
			return envValue
		}
		if envValue := os.Getenv(envVar); envValue != "" {
			return envValue
		}
		return ""
	}

	return value
}

// validateLLMConfig validates the cloud provider list. An empty list is valid.
func validateLLMConfig(cfg *LLMConfig) error {
	priorityMap := make(map[int]bool)

	for i, provider := range cfg.Providers {
		if provider.Name == "" {
			return fmt.Errorf("provider %d: name is required", i)
		}
		if provider.Model == "" {
			return fmt.Errorf("provider %s: model is required", provider.Name)
		}
		if !provider.Enabled {
			continue
		}
		if provider.Priority <= 0 {
			return fmt.Errorf("provider %s: priority must be positive", provider.Name)
		}
		if priorityMap[provider.Priority] {
			return fmt.Errorf("provider %s: duplicate priority %d", provider.Name, provider.Priority)
		}
		priorityMap[provider.Priority] = true
	}

	return nil
}

// splitList accepts either a YAML list or a comma-separated env value.
func splitList(raw any) []string {
	var parts []string
	switch v := raw.(type) {
	case []string:
		parts = v
	case []interface{}:
		for _, item := range v {
			if s, ok := item.(string); ok {
				parts = append(parts, s)
			}
		}
	case string:
		parts = strings.Split(v, ",")
	}

	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Helper functions to safely extract values from map[string]interface{}
func getStringFromMap(m map[string]interface{}, key string) string {
	if val, ok := m[key]; ok {
		if str, ok := val.(string); ok {
			return str
		}
	}
	return ""
}

func getBoolFromMap(m map[string]interface{}, key string) bool {
	if val, ok := m[key]; ok {
		if b, ok := val.(bool); ok {
			return b
		}
	}
	return false
}

func getIntFromMap(m map[string]interface{}, key string) int {
	if val, ok := m[key]; ok {
		if i, ok := val.(int); ok {
			return i
		}
		if f, ok := val.(float64); ok {
			return int(f)
		}
	}
	return 0
}
