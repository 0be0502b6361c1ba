package config

import (
	"errors"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Redis    RedisConfig
	Places   PlacesConfig
	OpenAI   OpenAIConfig
	Rewards  RewardsConfig
}

type AppConfig struct {
	Name        string
	Version     string
	Environment string
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type JWTConfig struct {
	SecretKey string
}

type RedisConfig struct {
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
}

type PlacesConfig struct {
	APIKey        string
	BaseURL       string
	RadiusMeters  int
	TimeoutSec    int
	Retries       int
	MinConfidence float64
}

type OpenAIConfig struct {
	APIKey     string
	BaseURL    string
	Model      string
	TimeoutSec int
}

type RewardsConfig struct {
	RulesPath string
	Version   string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, errors.New("invalid redis database")
	}

	minConfidence, err := strconv.ParseFloat(getEnv("MIN_CONFIDENCE", "0.5"), 64)
	if err != nil {
		return nil, errors.New("invalid min confidence")
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Keel API"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
		},
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "keel"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		JWT: JWTConfig{
			SecretKey: getEnv("JWT_SECRET", ""),
		},
		Redis: RedisConfig{
			RedisHost:     getEnv("REDIS_HOST", "localhost"),
			RedisPort:     getEnv("REDIS_PORT", "6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       redisDB,
		},
		Places: PlacesConfig{
			APIKey:        getEnv("GOOGLE_PLACES_API_KEY", ""),
			BaseURL:       getEnv("GOOGLE_PLACES_BASE_URL", "https://maps.googleapis.com/maps/api/place"),
			RadiusMeters:  getEnvInt("PLACES_RADIUS", 100),
			TimeoutSec:    getEnvInt("PLACES_TIMEOUT", 10),
			Retries:       getEnvInt("PLACES_RETRIES", 3),
			MinConfidence: minConfidence,
		},
		OpenAI: OpenAIConfig{
			APIKey:     getEnv("OPENAI_API_KEY", ""),
			BaseURL:    getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			Model:      getEnv("OPENAI_MODEL", "gpt-4"),
			TimeoutSec: getEnvInt("OPENAI_TIMEOUT", 15),
		},
		Rewards: RewardsConfig{
			RulesPath: getEnv("REWARDS_RULES_PATH", "rewards.json"),
			Version:   getEnv("REWARDS_VERSION", "1.0"),
		},
	}

	if cfg.JWT.SecretKey == "" {
		return nil, errors.New("missing jwt secret")
	}

	if cfg.Database.Password == "" {
		return nil, errors.New("missing database password")
	}

	if cfg.Places.APIKey == "" {
		return nil, errors.New("missing google places api key")
	}

	if cfg.OpenAI.APIKey == "" {
		return nil, errors.New("missing openai api key")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}

	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return n
}
