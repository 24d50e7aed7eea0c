// Package config arma la configuración del servicio: defaults, archivo YAML
// opcional (CONFIG_FILE) y por último variables de entorno.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid config")

const (
	AuthModeDev        = "dev"
	AuthModeJWT        = "jwt"
	AuthModeIntrospect = "introspect"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Log       LogConfig       `yaml:"log"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Inference InferenceConfig `yaml:"inference"`
	TipsCache TipsCacheConfig `yaml:"tips_cache"`
	Photos    PhotosConfig    `yaml:"photos"`
	Secrets   SecretsConfig   `yaml:"secrets"`
}

type ServerConfig struct {
	Port            string        `yaml:"port"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	CORSOrigins     []string      `yaml:"cors_allowed_origins"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	App    string `yaml:"app"`
}

type DatabaseConfig struct {
	// DSN vacío => storage en memoria.
	DSN string `yaml:"dsn"`
}

type AuthConfig struct {
	Mode             string `yaml:"mode"`
	JWTSecret        string `yaml:"jwt_secret"`
	IntrospectURL    string `yaml:"introspect_url"`
	IntrospectAPIKey string `yaml:"introspect_api_key"`
}

type InferenceConfig struct {
	TogetherAPIKey    string        `yaml:"together_api_key"`
	TogetherBaseURL   string        `yaml:"together_base_url"`
	ChatModel         string        `yaml:"chat_model"`
	TipsModel         string        `yaml:"tips_model"`
	FAQsModel         string        `yaml:"faqs_model"`
	TipsMaxTokens     int           `yaml:"tips_max_tokens"`
	HuggingFaceAPIKey string        `yaml:"huggingface_api_key"`
	ClassifierURL     string        `yaml:"classifier_url"`
	Timeout           time.Duration `yaml:"timeout"`
}

type TipsCacheConfig struct {
	Enabled bool `yaml:"enabled"`
	// Table: si está seteada el cache va a DynamoDB.
	Table string        `yaml:"table"`
	TTL   time.Duration `yaml:"ttl"`
}

type PhotosConfig struct {
	Bucket        string `yaml:"bucket"`
	Region        string `yaml:"region"`
	Endpoint      string `yaml:"endpoint"`
	PublicBaseURL string `yaml:"public_base_url"`
}

type SecretsConfig struct {
	// ParamPrefix: prefijo en SSM Parameter Store, ej. "/pawcare/prod".
	ParamPrefix string `yaml:"param_prefix"`
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "8080",
			ShutdownTimeout: 10 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
			App:    "pawcare-api",
		},
		Auth: AuthConfig{
			Mode: AuthModeDev,
		},
		Inference: InferenceConfig{
			TipsMaxTokens: 150,
			Timeout:       30 * time.Second,
		},
	}
}

// Load: defaults => YAML (si path != "") => env. No valida: el caller
// resuelve secretos primero y después llama Validate.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path = strings.TrimSpace(path); path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("%w: parse %s: %v", ErrInvalidConfig, path, err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Server.Port = getEnvOrDefault("PORT", c.Server.Port)
	c.Server.ShutdownTimeout = getDurationOrDefault("SHUTDOWN_TIMEOUT", c.Server.ShutdownTimeout)
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		c.Server.CORSOrigins = splitList(v)
	}

	c.Log.Level = getEnvOrDefault("LOG_LEVEL", c.Log.Level)
	c.Log.Format = getEnvOrDefault("LOG_FORMAT", c.Log.Format)
	c.Log.App = getEnvOrDefault("APP_NAME", c.Log.App)

	c.Database.DSN = getEnvOrDefault("DB_DSN", c.Database.DSN)

	c.Auth.Mode = strings.ToLower(getEnvOrDefault("AUTH_MODE", c.Auth.Mode))
	c.Auth.JWTSecret = getEnvOrDefault("AUTH_JWT_SECRET", c.Auth.JWTSecret)
	c.Auth.IntrospectURL = getEnvOrDefault("AUTH_INTROSPECT_URL", c.Auth.IntrospectURL)
	c.Auth.IntrospectAPIKey = getEnvOrDefault("AUTH_INTROSPECT_API_KEY", c.Auth.IntrospectAPIKey)

	c.Inference.TogetherAPIKey = getEnvOrDefault("TOGETHER_API_KEY", c.Inference.TogetherAPIKey)
	c.Inference.TogetherBaseURL = getEnvOrDefault("TOGETHER_BASE_URL", c.Inference.TogetherBaseURL)
	c.Inference.ChatModel = getEnvOrDefault("CHAT_MODEL", c.Inference.ChatModel)
	c.Inference.TipsModel = getEnvOrDefault("TIPS_MODEL", c.Inference.TipsModel)
	c.Inference.FAQsModel = getEnvOrDefault("FAQS_MODEL", c.Inference.FAQsModel)
	c.Inference.TipsMaxTokens = getIntOrDefault("TIPS_MAX_TOKENS", c.Inference.TipsMaxTokens)
	c.Inference.HuggingFaceAPIKey = getEnvOrDefault("HUGGINGFACE_API_KEY", c.Inference.HuggingFaceAPIKey)
	c.Inference.ClassifierURL = getEnvOrDefault("CLASSIFIER_URL", c.Inference.ClassifierURL)
	c.Inference.Timeout = getDurationOrDefault("INFERENCE_TIMEOUT", c.Inference.Timeout)

	c.TipsCache.Enabled = getBoolOrDefault("TIPS_CACHE_ENABLED", c.TipsCache.Enabled)
	c.TipsCache.Table = getEnvOrDefault("BREED_TIPS_TABLE", c.TipsCache.Table)
	c.TipsCache.TTL = getDurationOrDefault("TIPS_CACHE_TTL", c.TipsCache.TTL)

	c.Photos.Bucket = getEnvOrDefault("PHOTOS_S3_BUCKET", c.Photos.Bucket)
	c.Photos.Region = getEnvOrDefault("PHOTOS_S3_REGION", c.Photos.Region)
	c.Photos.Endpoint = getEnvOrDefault("PHOTOS_S3_ENDPOINT", c.Photos.Endpoint)
	c.Photos.PublicBaseURL = getEnvOrDefault("PHOTOS_PUBLIC_BASE_URL", c.Photos.PublicBaseURL)

	c.Secrets.ParamPrefix = getEnvOrDefault("SECRETS_PARAM_PREFIX", c.Secrets.ParamPrefix)
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.Server.Port) == "" {
		return fmt.Errorf("%w: PORT is required", ErrInvalidConfig)
	}
	if _, err := strconv.Atoi(c.Server.Port); err != nil {
		return fmt.Errorf("%w: PORT must be numeric", ErrInvalidConfig)
	}

	switch c.Auth.Mode {
	case AuthModeDev:
	case AuthModeJWT:
		if strings.TrimSpace(c.Auth.JWTSecret) == "" {
			return fmt.Errorf("%w: AUTH_JWT_SECRET is required when AUTH_MODE=jwt", ErrInvalidConfig)
		}
	case AuthModeIntrospect:
		if strings.TrimSpace(c.Auth.IntrospectURL) == "" {
			return fmt.Errorf("%w: AUTH_INTROSPECT_URL is required when AUTH_MODE=introspect", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: AUTH_MODE must be one of dev, jwt, introspect (got %q)", ErrInvalidConfig, c.Auth.Mode)
	}

	if c.Inference.TipsMaxTokens <= 0 {
		return fmt.Errorf("%w: TIPS_MAX_TOKENS must be positive", ErrInvalidConfig)
	}
	if c.Inference.Timeout < time.Second {
		return fmt.Errorf("%w: INFERENCE_TIMEOUT must be at least 1 second", ErrInvalidConfig)
	}
	if c.TipsCache.TTL < 0 {
		return fmt.Errorf("%w: TIPS_CACHE_TTL must not be negative", ErrInvalidConfig)
	}

	return nil
}

// NeedsAWS indica si algún componente usa el SDK de AWS.
func (c *Config) NeedsAWS() bool {
	return c.Photos.Bucket != "" ||
		c.Secrets.ParamPrefix != "" ||
		(c.TipsCache.Enabled && c.TipsCache.Table != "")
}

// SecretGetter lee un parámetro por nombre (paramstore.Client lo implementa).
type SecretGetter interface {
	GetParameter(ctx context.Context, name string) (string, error)
}

// ResolveSecrets completa desde Parameter Store los secretos que no vinieron
// por env/YAML. El nombre es <prefix>/<ENV_VAR>. Devuelve los errores juntos;
// los secretos que sí se resolvieron quedan aplicados igual.
func (c *Config) ResolveSecrets(ctx context.Context, getter SecretGetter) error {
	prefix := strings.TrimRight(strings.TrimSpace(c.Secrets.ParamPrefix), "/")
	if prefix == "" || getter == nil {
		return nil
	}

	targets := []struct {
		env string
		dst *string
	}{
		{"TOGETHER_API_KEY", &c.Inference.TogetherAPIKey},
		{"HUGGINGFACE_API_KEY", &c.Inference.HuggingFaceAPIKey},
		{"AUTH_JWT_SECRET", &c.Auth.JWTSecret},
		{"AUTH_INTROSPECT_API_KEY", &c.Auth.IntrospectAPIKey},
		{"DB_DSN", &c.Database.DSN},
	}

	var errs []error
	for _, t := range targets {
		if strings.TrimSpace(*t.dst) != "" {
			continue
		}
		v, err := getter.GetParameter(ctx, prefix+"/"+t.env)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		*t.dst = strings.TrimSpace(v)
	}
	return errors.Join(errs...)
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return defaultVal
}

func getIntOrDefault(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func getBoolOrDefault(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}

// Acepta segundos ("15") o duración de Go ("15s", "1m").
func getDurationOrDefault(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if secs, err := strconv.Atoi(val); err == nil {
			return time.Duration(secs) * time.Second
		}
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}

func splitList(s string) []string {
	out := make([]string, 0)
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
