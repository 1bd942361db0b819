package configs

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"listing-site/internal/constants"

	"github.com/joho/godotenv"
)

// Варианты хранилища кэша каталога
const (
	CacheBackendFile     = "file"
	CacheBackendRedis    = "redis"
	CacheBackendPostgres = "postgres"
)

type RESTConfig struct {
	Port               string
	CORSAllowedOrigins []string
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
}

type CatalogConfig struct {
	APIURL        string
	CacheKey      string
	CacheWindow   time.Duration
	CacheHitDelay time.Duration
	FetchTimeout  time.Duration
}

type CacheConfig struct {
	Backend     string
	Dir         string
	RedisURL    string
	DatabaseURL string
}

type ConsultingConfig struct {
	// Пустой адрес отключает пересылку формы
	FormURL         string
	FeedbackDelay   time.Duration
	DeliveryTimeout time.Duration
}

type RabbitMQConfig struct {
	Enabled  bool
	URL      string
	Exchange string
}

type StdoutLogConfig struct {
	Level string
	JSON  bool
}

type FluentBitConfig struct {
	Enabled bool
	Host    string
	Port    int
	Level   string
}

// AppConfig хранит всю конфигурацию приложения
type AppConfig struct {
	AppName      string
	Rest         RESTConfig
	Catalog      CatalogConfig
	Cache        CacheConfig
	Consulting   ConsultingConfig
	RabbitMQ     RabbitMQConfig
	FluentBit    FluentBitConfig
	StdoutLogger StdoutLogConfig
}

// LoadConfig читает конфигурацию из окружения. Файл .env необязателен.
func LoadConfig(envPath ...string) (*AppConfig, error) {
	var err error
	if len(envPath) > 0 {
		err = godotenv.Load(envPath...)
	} else {
		err = godotenv.Load()
	}
	if err != nil {
		log.Printf("Info: Could not load .env file (path: %v): %v. Using process environment.\n", envPath, err)
	}

	cfg := &AppConfig{}

	cfg.AppName = getEnvAsString("APP_NAME", "listing-site")

	cfg.Rest.Port = getEnvAsString("PORT", "8080")
	cfg.Rest.CORSAllowedOrigins = getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"*"})
	cfg.Rest.ReadTimeout = getEnvAsDuration("HTTP_READ_TIMEOUT", 15*time.Second)
	cfg.Rest.WriteTimeout = getEnvAsDuration("HTTP_WRITE_TIMEOUT", 60*time.Second)

	cfg.Catalog.APIURL = getEnvAsString("CATALOG_API_URL", constants.DefaultCatalogAPIURL)
	cfg.Catalog.CacheKey = getEnvAsString("CATALOG_CACHE_KEY", constants.DefaultCatalogCacheKey)
	cfg.Catalog.CacheWindow = time.Duration(getEnvAsInt("CATALOG_CACHE_WINDOW_MINUTES", int(constants.DefaultCacheWindow/time.Minute))) * time.Minute
	cfg.Catalog.CacheHitDelay = time.Duration(getEnvAsInt("CATALOG_CACHE_HIT_DELAY_MS", int(constants.DefaultCacheHitDelay/time.Millisecond))) * time.Millisecond
	cfg.Catalog.FetchTimeout = time.Duration(getEnvAsInt("CATALOG_FETCH_TIMEOUT_SECONDS", int(constants.DefaultFetchTimeout/time.Second))) * time.Second

	if cfg.Catalog.APIURL == "" {
		return nil, fmt.Errorf("CATALOG_API_URL must not be empty")
	}
	if cfg.Catalog.CacheKey == "" {
		return nil, fmt.Errorf("CATALOG_CACHE_KEY must not be empty")
	}
	if cfg.Catalog.CacheWindow <= 0 {
		return nil, fmt.Errorf("CATALOG_CACHE_WINDOW_MINUTES must be positive")
	}

	cfg.Cache.Backend = strings.ToLower(getEnvAsString("CACHE_BACKEND", CacheBackendFile))
	cfg.Cache.Dir = getEnvAsString("CACHE_DIR", "./data/cache")
	cfg.Cache.RedisURL = os.Getenv("REDIS_URL")
	cfg.Cache.DatabaseURL = os.Getenv("DATABASE_URL")

	switch cfg.Cache.Backend {
	case CacheBackendFile:
	case CacheBackendRedis:
		if cfg.Cache.RedisURL == "" {
			return nil, fmt.Errorf("REDIS_URL environment variable is required for CACHE_BACKEND=redis")
		}
	case CacheBackendPostgres:
		if cfg.Cache.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL environment variable is required for CACHE_BACKEND=postgres")
		}
	default:
		return nil, fmt.Errorf("unknown CACHE_BACKEND %q", cfg.Cache.Backend)
	}

	cfg.Consulting.FormURL = os.Getenv("CONSULTING_FORM_URL")
	cfg.Consulting.FeedbackDelay = time.Duration(getEnvAsInt("CONSULTING_FEEDBACK_DELAY_MS", int(constants.DefaultConsultingFeedbackDelay/time.Millisecond))) * time.Millisecond
	cfg.Consulting.DeliveryTimeout = getEnvAsDuration("CONSULTING_DELIVERY_TIMEOUT", constants.DefaultConsultingDeliveryTimeout)

	cfg.RabbitMQ.Enabled = getEnvAsBool("RABBITMQ_ENABLED", false)
	if cfg.RabbitMQ.Enabled {
		cfg.RabbitMQ.URL = os.Getenv("RABBITMQ_URL")
		if cfg.RabbitMQ.URL == "" {
			return nil, fmt.Errorf("RABBITMQ_URL environment variable is required when RABBITMQ_ENABLED is true")
		}
		cfg.RabbitMQ.Exchange = getEnvAsString("RABBITMQ_EXCHANGE", constants.DefaultConsultingExchange)
	}

	cfg.FluentBit.Enabled = getEnvAsBool("FLUENTBIT_ENABLED", false)
	if cfg.FluentBit.Enabled {
		cfg.FluentBit.Host = os.Getenv("FLUENTBIT_HOST")
		if cfg.FluentBit.Host == "" {
			log.Println("WARNING: FLUENTBIT_ENABLED is true, but FLUENTBIT_HOST is not set. Disabling Fluent Bit.")
			cfg.FluentBit.Enabled = false
		}
		cfg.FluentBit.Port = getEnvAsInt("FLUENTBIT_PORT", 24224)
		cfg.FluentBit.Level = getEnvAsString("FLUENTBIT_LOG_LEVEL", "info")
	}

	cfg.StdoutLogger.Level = getEnvAsString("STDOUT_LOG_LEVEL", "debug")
	cfg.StdoutLogger.JSON = getEnvAsBool("STDOUT_LOG_JSON", false)

	return cfg, nil
}

func getEnvAsString(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt читает переменную как int, при ошибке разбора пишет предупреждение
func getEnvAsInt(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueInt, err := strconv.Atoi(strings.TrimSpace(valueStr))
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as int: %v. Using default value: %d\n", key, valueStr, err, defaultValue)
		return defaultValue
	}
	return valueInt
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valBool, err := strconv.ParseBool(strings.TrimSpace(valStr))
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as bool: %v. Using default value: %t\n", key, valStr, err, defaultValue)
		return defaultValue
	}
	return valBool
}

// getEnvAsDuration принимает формат time.ParseDuration ("15s", "1m30s")
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	d, err := time.ParseDuration(strings.TrimSpace(valStr))
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as duration: %v. Using default value: %s\n", key, valStr, err, defaultValue)
		return defaultValue
	}
	return d
}

// getEnvAsList разбирает список через запятую, пустые элементы выбрасываются
func getEnvAsList(key string, defaultValue []string) []string {
	valStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(valStr, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
