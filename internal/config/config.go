package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Supported LLM provider selector values.
const (
	ProviderAzure   = "azure"
	ProviderBedrock = "bedrock"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	Log    LogConfig
	CORS   CORSConfig
	Upload UploadConfig
	LLM    LLMConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// UploadConfig holds upload limits.
type UploadConfig struct {
	MaxFileSizeMB int64 `mapstructure:"max_file_size_mb"`
}

// AzureConfig holds Azure OpenAI settings.
type AzureConfig struct {
	APIKey     string `mapstructure:"api_key"`
	Endpoint   string `mapstructure:"endpoint"`
	APIVersion string `mapstructure:"api_version"`
	Deployment string `mapstructure:"deployment"`
}

// BedrockConfig holds AWS Bedrock settings.
type BedrockConfig struct {
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	ModelID         string `mapstructure:"model_id"`
}

// LLMConfig holds LLM provider selection and per-provider credentials.
type LLMConfig struct {
	Provider   string        `mapstructure:"provider"`
	MaxRetries int           `mapstructure:"max_retries"`
	Azure      AzureConfig   `mapstructure:"azure"`
	Bedrock    BedrockConfig `mapstructure:"bedrock"`
}

// Validate checks that every credential required by the selected provider is
// present. It reports the missing env var names so misconfiguration is
// actionable from the error alone.
func (l *LLMConfig) Validate() error {
	switch l.Provider {
	case ProviderAzure:
		var missing []string
		if l.Azure.APIKey == "" {
			missing = append(missing, "SHEETDOC_LLM_AZURE_API_KEY")
		}
		if l.Azure.Endpoint == "" {
			missing = append(missing, "SHEETDOC_LLM_AZURE_ENDPOINT")
		}
		if l.Azure.APIVersion == "" {
			missing = append(missing, "SHEETDOC_LLM_AZURE_API_VERSION")
		}
		if l.Azure.Deployment == "" {
			missing = append(missing, "SHEETDOC_LLM_AZURE_DEPLOYMENT")
		}
		if len(missing) > 0 {
			return fmt.Errorf("missing required Azure OpenAI settings: %s", strings.Join(missing, ", "))
		}
		return nil
	case ProviderBedrock:
		var missing []string
		if l.Bedrock.Region == "" {
			missing = append(missing, "SHEETDOC_LLM_BEDROCK_REGION")
		}
		if l.Bedrock.AccessKeyID == "" {
			missing = append(missing, "SHEETDOC_LLM_BEDROCK_ACCESS_KEY_ID")
		}
		if l.Bedrock.SecretAccessKey == "" {
			missing = append(missing, "SHEETDOC_LLM_BEDROCK_SECRET_ACCESS_KEY")
		}
		if l.Bedrock.ModelID == "" {
			missing = append(missing, "SHEETDOC_LLM_BEDROCK_MODEL_ID")
		}
		if len(missing) > 0 {
			return fmt.Errorf("missing required AWS Bedrock settings: %s", strings.Join(missing, ", "))
		}
		return nil
	default:
		return fmt.Errorf("unknown llm provider: %q (expected %q or %q)", l.Provider, ProviderAzure, ProviderBedrock)
	}
}

// Load reads configuration from environment variables with the SHEETDOC_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("SHEETDOC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15m")
	v.SetDefault("server.environment", "development")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Upload defaults
	v.SetDefault("upload.max_file_size_mb", 50)

	// LLM defaults
	v.SetDefault("llm.provider", ProviderAzure)
	v.SetDefault("llm.max_retries", 5)
	v.SetDefault("llm.azure.api_key", "")
	v.SetDefault("llm.azure.endpoint", "")
	v.SetDefault("llm.azure.api_version", "")
	v.SetDefault("llm.azure.deployment", "")
	v.SetDefault("llm.bedrock.region", "")
	v.SetDefault("llm.bedrock.access_key_id", "")
	v.SetDefault("llm.bedrock.secret_access_key", "")
	v.SetDefault("llm.bedrock.model_id", "")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                   "SHEETDOC_SERVER_PORT",
		"server.read_timeout":           "SHEETDOC_SERVER_READ_TIMEOUT",
		"server.write_timeout":          "SHEETDOC_SERVER_WRITE_TIMEOUT",
		"server.environment":            "SHEETDOC_SERVER_ENVIRONMENT",
		"log.level":                     "SHEETDOC_LOG_LEVEL",
		"log.format":                    "SHEETDOC_LOG_FORMAT",
		"cors.allowed_origins":          "SHEETDOC_CORS_ALLOWED_ORIGINS",
		"upload.max_file_size_mb":       "SHEETDOC_UPLOAD_MAX_FILE_SIZE_MB",
		"llm.provider":                  "SHEETDOC_LLM_PROVIDER",
		"llm.max_retries":               "SHEETDOC_LLM_MAX_RETRIES",
		"llm.azure.api_key":             "SHEETDOC_LLM_AZURE_API_KEY",
		"llm.azure.endpoint":            "SHEETDOC_LLM_AZURE_ENDPOINT",
		"llm.azure.api_version":         "SHEETDOC_LLM_AZURE_API_VERSION",
		"llm.azure.deployment":          "SHEETDOC_LLM_AZURE_DEPLOYMENT",
		"llm.bedrock.region":            "SHEETDOC_LLM_BEDROCK_REGION",
		"llm.bedrock.access_key_id":     "SHEETDOC_LLM_BEDROCK_ACCESS_KEY_ID",
		"llm.bedrock.secret_access_key": "SHEETDOC_LLM_BEDROCK_SECRET_ACCESS_KEY",
		"llm.bedrock.model_id":          "SHEETDOC_LLM_BEDROCK_MODEL_ID",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if SHEETDOC_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("SHEETDOC_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{AllowedOrigins: corsOrigins}

	cfg.Upload = UploadConfig{
		MaxFileSizeMB: v.GetInt64("upload.max_file_size_mb"),
	}

	cfg.LLM = LLMConfig{
		Provider:   v.GetString("llm.provider"),
		MaxRetries: v.GetInt("llm.max_retries"),
		Azure: AzureConfig{
			APIKey:     v.GetString("llm.azure.api_key"),
			Endpoint:   v.GetString("llm.azure.endpoint"),
			APIVersion: v.GetString("llm.azure.api_version"),
			Deployment: v.GetString("llm.azure.deployment"),
		},
		Bedrock: BedrockConfig{
			Region:          v.GetString("llm.bedrock.region"),
			AccessKeyID:     v.GetString("llm.bedrock.access_key_id"),
			SecretAccessKey: v.GetString("llm.bedrock.secret_access_key"),
			ModelID:         v.GetString("llm.bedrock.model_id"),
		},
	}

	return cfg, nil
}
