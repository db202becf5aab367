package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Port          string
	JWTSecret     string
	PublicBaseURL string
	Database      DatabaseConfig
	Gemini        GeminiConfig
	Storage       StorageConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	Database string
}

// GeminiConfig holds the text-generation provider configuration.
// APIKey may be empty: the server still starts, drafting endpoints
// report a configuration error instead.
type GeminiConfig struct {
	APIKey string
	Model  string
}

// StorageConfig holds the file areas for uploads, generated reports
// and the Word template.
type StorageConfig struct {
	UploadDir   string
	ReportsDir  string
	TemplateDir string
}

// TemplatePath returns the fixed maintenance report template location.
func (s StorageConfig) TemplatePath() string {
	return filepath.Join(s.TemplateDir, "plantilla_mantenimiento.docx")
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	cfg := &Config{
		Port:          getEnv("PORT", "3310"),
		JWTSecret:     jwtSecret,
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", "http://localhost:3310"),
		Database: DatabaseConfig{
			Host:     getEnv("PG_HOST", "localhost"),
			Port:     getEnv("PG_PORT", "5432"),
			Username: getEnv("PG_USERNAME", "postgres"),
			Password: os.Getenv("PG_PASSWORD"),
			Database: getEnv("PG_DATABASE", "mantgo"),
		},
		Gemini: GeminiConfig{
			APIKey: os.Getenv("GEMINI_API_KEY"),
			Model:  getEnv("GEMINI_MODEL", "gemini-2.5-flash-lite"),
		},
		Storage: StorageConfig{
			UploadDir:   getEnv("UPLOAD_FOLDER", "uploads"),
			ReportsDir:  getEnv("GENERATED_REPORTS_FOLDER", "generated_reports"),
			TemplateDir: getEnv("WORD_TEMPLATE_FOLDER", "word_templates"),
		},
	}

	return cfg, nil
}

// EnsureDirs creates the upload and report areas if they do not exist.
func (c *Config) EnsureDirs() error {
	for _, dir := range []string{c.Storage.UploadDir, c.Storage.ReportsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
