package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App            AppConfig
	Server         ServerConfig
	Database       DatabaseConfig
	JWT            JWTConfig
	Redis          RedisConfig
	Recommendation RecommendationConfig
}

type AppConfig struct {
	Name        string
	Version     string
	Environment string
}

type ServerConfig struct {
	Port           string
	AllowedOrigins []string
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
	Audience  string
	TTL       time.Duration
}

type RedisConfig struct {
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
}

// RecommendationConfig tunes the recommendation engine.
type RecommendationConfig struct {
	// number of nearest users considered by collaborative filtering
	SimilarUsers int
	// maximum number of products returned
	TopN int
	// a term must occur in at least this many product documents
	MinDocumentFrequency int
}

const (
	defaultSimilarUsers         = 3
	defaultTopN                 = 5
	defaultMinDocumentFrequency = 2
	defaultTokenTTL             = 24 * time.Hour
	defaultTokenAudience        = "ecommerce-app"
)

func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := getEnvInt("REDIS_DB", 0)
	if err != nil {
		return nil, errors.New("invalid redis database")
	}

	similarUsers, err := getEnvInt("RECO_SIMILAR_USERS", defaultSimilarUsers)
	if err != nil {
		return nil, fmt.Errorf("invalid RECO_SIMILAR_USERS: %w", err)
	}

	topN, err := getEnvInt("RECO_TOP_N", defaultTopN)
	if err != nil {
		return nil, fmt.Errorf("invalid RECO_TOP_N: %w", err)
	}

	minDF, err := getEnvInt("RECO_MIN_DF", defaultMinDocumentFrequency)
	if err != nil {
		return nil, fmt.Errorf("invalid RECO_MIN_DF: %w", err)
	}

	tokenTTL := defaultTokenTTL
	if raw := os.Getenv("JWT_TTL"); raw != "" {
		tokenTTL, err = time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid JWT_TTL: %w", err)
		}
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "E-commerce Recommender API"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
		},
		Server: ServerConfig{
			Port:           getEnv("PORT", "5000"),
			AllowedOrigins: []string{getEnv("CORS_ORIGIN", "http://localhost:3000")},
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "ecommerce_recommender"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		JWT: JWTConfig{
			SecretKey: getEnv("JWT_SECRET", ""),
			Audience:  getEnv("JWT_AUDIENCE", defaultTokenAudience),
			TTL:       tokenTTL,
		},
		Redis: RedisConfig{
			RedisHost:     getEnv("REDIS_HOST", "localhost"),
			RedisPort:     getEnv("REDIS_PORT", "6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       redisDB,
		},
		Recommendation: RecommendationConfig{
			SimilarUsers:         similarUsers,
			TopN:                 topN,
			MinDocumentFrequency: minDF,
		},
	}

	if cfg.JWT.SecretKey == "" {
		return nil, errors.New("missing jwt secret")
	}

	if cfg.Database.Password == "" {
		return nil, errors.New("missing database password")
	}

	if cfg.Recommendation.SimilarUsers <= 0 || cfg.Recommendation.TopN <= 0 || cfg.Recommendation.MinDocumentFrequency <= 0 {
		return nil, errors.New("recommendation settings must be positive")
	}

	return cfg, nil
}

// DSN builds the postgres connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultVal
}

func getEnvInt(key string, defaultVal int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}

	return strconv.Atoi(val)
}
