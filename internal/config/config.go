package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/edulearn/edulearn-backend/internal/logger"
	"github.com/edulearn/edulearn-backend/internal/utils"
)

// CatalogConfig locates the lesson and course documents on disk.
type CatalogConfig struct {
	DataDir      string   `yaml:"data_dir"`
	DatasetFiles []string `yaml:"dataset_files"`
	CourseFile   string   `yaml:"course_file"`
}

// CoursePath is the course/quiz document location under DataDir.
func (c CatalogConfig) CoursePath() string {
	return filepath.Join(c.DataDir, c.CourseFile)
}

// EmbedConfig configures the OpenAI-compatible sentence embedding endpoint.
type EmbedConfig struct {
	BaseURL     string `yaml:"base_url"`
	APIKeyEnv   string `yaml:"api_key_env"`
	Model       string `yaml:"model"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// ChatConfig configures the Groq (OpenAI-compatible) tutor chat endpoint
// and the Gemini model used for smart-search explanations.
type ChatConfig struct {
	BaseURL     string `yaml:"base_url"`
	Model       string `yaml:"model"`
	GeminiModel string `yaml:"gemini_model"`
}

// AuthConfig configures Firebase ID token verification.
type AuthConfig struct {
	ProjectID        string `yaml:"project_id"`
	RequireForSearch bool   `yaml:"require_for_search"`
}

type Config struct {
	Port        string        `yaml:"port"`
	LogMode     string        `yaml:"log_mode"`
	CORSOrigins []string      `yaml:"cors_origins"`
	Catalog     CatalogConfig `yaml:"catalog"`
	Embed       EmbedConfig   `yaml:"embed"`
	Chat        ChatConfig    `yaml:"chat"`
	Auth        AuthConfig    `yaml:"auth"`

	// Secrets are env-only, never written to the yaml file.
	GoogleAPIKey string `yaml:"-"`
	GroqAPIKey   string `yaml:"-"`
	EmbedAPIKey  string `yaml:"-"`
}

// Load reads config.yaml from path (a missing file falls back to defaults),
// then lets environment variables override. A .env file next to the binary
// is loaded first so local runs behave like the deployed service.
func Load(path string, log *logger.Logger) (*Config, error) {
	_ = godotenv.Load()

	cfg := defaultConfig()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
		applyDefaults(cfg)
		log.Info("Loaded config file", "path", path)
	case errors.Is(err, os.ErrNotExist):
		log.Debug("Config file not found, using defaults", "path", path)
	default:
		return nil, err
	}

	cfg.Port = utils.GetEnv("PORT", cfg.Port, log)
	cfg.LogMode = utils.GetEnv("LOG_MODE", cfg.LogMode, log)
	cfg.Catalog.DataDir = utils.GetEnv("DATA_DIR", cfg.Catalog.DataDir, log)
	cfg.Chat.Model = utils.GetEnv("GROQ_MODEL", cfg.Chat.Model, log)
	cfg.Chat.GeminiModel = utils.GetEnv("GEMINI_MODEL", cfg.Chat.GeminiModel, log)
	cfg.Embed.BaseURL = utils.GetEnv("EMBED_BASE_URL", cfg.Embed.BaseURL, log)
	cfg.Embed.Model = utils.GetEnv("EMBED_MODEL", cfg.Embed.Model, log)
	cfg.Auth.ProjectID = utils.GetEnv("FIREBASE_PROJECT_ID", cfg.Auth.ProjectID, log)

	cfg.GoogleAPIKey = strings.TrimSpace(os.Getenv("GOOGLE_API_KEY"))
	cfg.GroqAPIKey = strings.TrimSpace(os.Getenv("GROQ_API_KEY"))
	cfg.EmbedAPIKey = strings.TrimSpace(os.Getenv(cfg.Embed.APIKeyEnv))

	return cfg, nil
}

func defaultConfig() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Port == "" {
		cfg.Port = "8000"
	}
	if cfg.LogMode == "" {
		cfg.LogMode = "development"
	}
	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = []string{"*"}
	}
	if cfg.Catalog.DataDir == "" {
		cfg.Catalog.DataDir = "data"
	}
	if len(cfg.Catalog.DatasetFiles) == 0 {
		cfg.Catalog.DatasetFiles = []string{"class7_dataset.json", "class8_dataset.json", "dataset.json"}
	}
	if cfg.Catalog.CourseFile == "" {
		cfg.Catalog.CourseFile = "courses.json"
	}
	if cfg.Embed.BaseURL == "" {
		cfg.Embed.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.Embed.APIKeyEnv == "" {
		cfg.Embed.APIKeyEnv = "OPENAI_API_KEY"
	}
	if cfg.Embed.Model == "" {
		cfg.Embed.Model = "text-embedding-3-small"
	}
	if cfg.Embed.TimeoutSecs == 0 {
		cfg.Embed.TimeoutSecs = 30
	}
	if cfg.Chat.BaseURL == "" {
		cfg.Chat.BaseURL = "https://api.groq.com/openai/v1"
	}
	if cfg.Chat.Model == "" {
		cfg.Chat.Model = "llama-3.3-70b-versatile"
	}
	if cfg.Chat.GeminiModel == "" {
		cfg.Chat.GeminiModel = "gemini-1.5-flash"
	}
}
