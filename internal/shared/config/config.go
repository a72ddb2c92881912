package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	ctopics "github.com/radieske/a1betting-bridge/pkg/contracts/topics"
)

// Config centraliza variáveis de ambiente e parâmetros de execução do bridge
// Inclui backend, cache, tópicos, WebSocket e portas
type Config struct {
	Env         string `yaml:"env"`          // "local", "dev", "prod"
	ServiceName string `yaml:"service_name"` // ex: "integration-bridge"
	LogLevel    string `yaml:"log_level"`    // debug | info | warn | error

	// Backend A1Betting
	APIURL         string        `yaml:"api_url"`     // override explícito (API_URL / VITE_API_URL)
	SiteOrigin     string        `yaml:"site_origin"` // origem do deploy quando não há override
	WebSocketURL   string        `yaml:"websocket_url"`
	RequestTimeout time.Duration `yaml:"request_timeout"`

	// Cache de respostas vivas (vazio = desligado)
	RedisAddr string        `yaml:"redis_addr"`
	CacheTTL  time.Duration `yaml:"cache_ttl"`

	// Eventos de mudança de modo (vazio = desligado)
	KafkaBrokers     string `yaml:"kafka_brokers"` // "a:9092,b:9092"
	TopicModeChanges string `yaml:"topic_mode_changes"`

	// Re-probe do backend enquanto degradado
	ReprobeEnabled bool          `yaml:"reprobe_enabled"`
	ReprobeInitial time.Duration `yaml:"reprobe_initial"`
	ReprobeMax     time.Duration `yaml:"reprobe_max"`

	AllowedOrigins []string `yaml:"allowed_origins"` // CORS da UI

	// Portas do serviço
	HTTPPort    string `yaml:"http_port"`    // API consumida pela UI
	MetricsPort string `yaml:"metrics_port"` // /metrics e /healthz
}

// Load carrega o arquivo YAML opcional (CONFIG_FILE) e aplica as variáveis
// de ambiente por cima; env sempre vence o arquivo
func Load() (Config, error) {
	cfg := defaults()

	if path := getEnv("CONFIG_FILE", ""); path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if len(data) > 0 {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	cfg.Env = getEnv("ENV", cfg.Env)
	cfg.ServiceName = getEnv("SERVICE_NAME", cfg.ServiceName)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)

	// API_URL tem precedência; VITE_API_URL mantém compatibilidade com o front
	cfg.APIURL = getEnv("API_URL", getEnv("VITE_API_URL", cfg.APIURL))
	cfg.SiteOrigin = getEnv("SITE_ORIGIN", cfg.SiteOrigin)
	cfg.WebSocketURL = getEnv("WEBSOCKET_URL", getEnv("VITE_WEBSOCKET_URL", cfg.WebSocketURL))
	cfg.RequestTimeout = getDuration("REQUEST_TIMEOUT", cfg.RequestTimeout)

	cfg.RedisAddr = getEnv("REDIS_ADDR", cfg.RedisAddr)
	cfg.CacheTTL = getDuration("CACHE_TTL", cfg.CacheTTL)

	cfg.KafkaBrokers = getEnv("KAFKA_BROKERS", cfg.KafkaBrokers)
	cfg.TopicModeChanges = getEnv("KAFKA_TOPIC_MODE_CHANGES", cfg.TopicModeChanges)

	cfg.ReprobeEnabled = getBool("REPROBE_ENABLED", cfg.ReprobeEnabled)
	cfg.ReprobeInitial = getDuration("REPROBE_INITIAL", cfg.ReprobeInitial)
	cfg.ReprobeMax = getDuration("REPROBE_MAX", cfg.ReprobeMax)

	cfg.AllowedOrigins = getList("ALLOWED_ORIGINS", cfg.AllowedOrigins)

	cfg.HTTPPort = getEnv("HTTP_PORT", cfg.HTTPPort)
	cfg.MetricsPort = getEnv("METRICS_PORT", cfg.MetricsPort)

	// WebSocket local só é assumido em desenvolvimento
	if cfg.WebSocketURL == "" && cfg.IsDevelopment() {
		cfg.WebSocketURL = "ws://localhost:8000"
	}

	return cfg, nil
}

// IsDevelopment indica ambiente local/dev
func (c Config) IsDevelopment() bool {
	return c.Env == "local" || c.Env == "dev"
}

func defaults() Config {
	return Config{
		Env:              "local",
		ServiceName:      "integration-bridge",
		RequestTimeout:   8 * time.Second,
		CacheTTL:         5 * time.Minute,
		TopicModeChanges: ctopics.IntegrationModeChanges,
		ReprobeEnabled:   true,
		ReprobeInitial:   5 * time.Second,
		ReprobeMax:       2 * time.Minute,
		AllowedOrigins:   []string{"http://localhost:3000", "http://localhost:5173"},
		HTTPPort:         "8090",
		MetricsPort:      "9100",
	}
}

// getEnv retorna o valor da variável de ambiente ou o default
func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

// getList lê uma lista separada por vírgula ("a,b"); vazia mantém o default
func getList(key string, def []string) []string {
	v, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

func getBool(key string, def bool) bool {
	if v, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}
