package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"building-control/internal/planner/geometry"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ============================================================
// Configuration
// ============================================================

type Config struct {
	Port         string
	Environment  string
	ReadTimeout  int
	WriteTimeout int
	BodyLimitMB  int

	DBDriver    string
	DBPath      string
	DatabaseURL string

	CORSOrigins []string
	TuningFile  string
}

// Load загружает конфигурацию из переменных окружения. Файл .env, если
// он есть, читается раньше и не перекрывает уже заданные переменные.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:         getEnv("PORT", "3000"),
		Environment:  getEnv("ENV", "development"),
		ReadTimeout:  getEnvAsInt("READ_TIMEOUT", 10),
		WriteTimeout: getEnvAsInt("WRITE_TIMEOUT", 10),
		BodyLimitMB:  getEnvAsInt("BODY_LIMIT_MB", 20),
		DBDriver:     getEnv("DB_DRIVER", "sqlite"),
		DBPath:       getEnv("DB_PATH", "data/db/planner.db"),
		DatabaseURL:  getEnv("DATABASE_URL", ""),
		CORSOrigins:  getEnvAsList("CORS_ORIGINS", []string{"*"}),
		TuningFile:   getEnv("TUNING_FILE", ""),
	}
}

// ============================================================
// Geometry tuning
// ============================================================

type tuningFile struct {
	Import geometry.Options `yaml:"import"`
}

// LoadTuning читает допуски импорта из YAML. Пустой путь: значения по
// умолчанию; незаданные в файле поля тоже берутся по умолчанию.
func LoadTuning(path string) (geometry.Options, error) {
	if path == "" {
		return geometry.DefaultOptions(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return geometry.Options{}, fmt.Errorf("read tuning file: %w", err)
	}

	var tf tuningFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return geometry.Options{}, fmt.Errorf("parse tuning file: %w", err)
	}

	opts := tf.Import
	if opts.TargetSize < 0 || opts.MinLength < 0 || opts.MinArea < 0 || opts.ClosureEpsilon < 0 {
		return geometry.Options{}, fmt.Errorf("tuning file %s: values must not be negative", path)
	}
	return opts.WithDefaults(), nil
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsList(key string, defaultVal []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultVal
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultVal
	}
	return out
}
