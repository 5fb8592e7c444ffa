package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// AppConfig holds environment driven configuration values.
// Secrets have no defaults inside code and must come from the config file or the environment.
type AppConfig struct {
	AppPort         string   `json:"AppPort" yaml:"app_port"`
	SessionSecret   string   `json:"SessionSecret" yaml:"session_secret"`
	SessionTTLHours int      `json:"SessionTTLHours" yaml:"session_ttl_hours"`
	CookieSecure    bool     `json:"CookieSecure" yaml:"cookie_secure"`
	AllowedOrigins  []string `json:"AllowedOrigins" yaml:"allowed_origins"`
	// Feed and posting rules
	PageSize       int    `json:"PageSize" yaml:"page_size"`
	MaxPostLength  int    `json:"MaxPostLength" yaml:"max_post_length"`
	PasswordScheme string `json:"PasswordScheme" yaml:"password_scheme"`
	// Database
	DBDriver    string `json:"DBDriver" yaml:"db_driver"`
	DatabaseURI string `json:"DatabaseURI" yaml:"database_uri"`
	DBHost      string `json:"DBHost" yaml:"db_host"`
	DBPort      string `json:"DBPort" yaml:"db_port"`
	DBUser      string `json:"DBUser" yaml:"db_user"`
	DBPassword  string `json:"DBPassword" yaml:"db_password"`
	DBName      string `json:"DBName" yaml:"db_name"`
	SQLitePath  string `json:"SQLitePath" yaml:"sqlite_path"`
	// Redis backs session revocation; an empty host disables it
	RedisHost     string `json:"RedisHost" yaml:"redis_host"`
	RedisPort     int    `json:"RedisPort" yaml:"redis_port"`
	RedisDB       int    `json:"RedisDB" yaml:"redis_db"`
	RedisPassword string `json:"RedisPassword" yaml:"redis_password"`
	// Gin framework configuration
	GinMode string `json:"GinMode" yaml:"gin_mode"`
	GinPath string `json:"GinPath" yaml:"gin_path"`
	// Logging configuration
	LogLevel      string `json:"LogLevel" yaml:"log_level"`
	LogPath       string `json:"LogPath" yaml:"log_path"`
	LogMaxSizeMB  int    `json:"LogMaxSizeMB" yaml:"log_max_size_mb"`
	LogMaxBackups int    `json:"LogMaxBackups" yaml:"log_max_backups"`
	LogMaxAgeDays int    `json:"LogMaxAgeDays" yaml:"log_max_age_days"`
	LogCompress   bool   `json:"LogCompress" yaml:"log_compress"`
}

var cfg AppConfig
var loaded bool

// configCandidates are probed in order; the first existing file wins.
var configCandidates = []string{
	filepath.Join("config", "config.json"),
	filepath.Join("config", "config.yaml"),
	filepath.Join("config", "config.yml"),
}

// Load loads the application configuration. It should be called once during boot.
func Load() AppConfig {
	if loaded {
		return cfg
	}

	// Precedence: config file -> defaults -> environment variable overrides
	for _, path := range configCandidates {
		found, err := loadFile(path, &cfg)
		if err != nil {
			log.Fatalf("invalid config file %s: %v", path, err)
		}
		if found {
			break
		}
	}

	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)

	if cfg.SessionSecret == "" {
		log.Fatal("SESSION_SECRET must be set in environment variables")
	}

	loaded = true
	return cfg
}

// Get returns the cached configuration, loading it if necessary.
func Get() AppConfig {
	if !loaded {
		return Load()
	}
	return cfg
}

// Set replaces the cached configuration. Defaults are applied to zero values.
func Set(c AppConfig) {
	applyDefaults(&c)
	cfg = c
	loaded = true
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// loadFile decodes a JSON or YAML file into out based on its extension.
// A missing file is not an error; found reports whether it existed.
func loadFile(path string, out *AppConfig) (found bool, err error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(raw, out)
	case ".json":
		err = json.Unmarshal(raw, out)
	default:
		err = fmt.Errorf("unsupported config format %q", filepath.Ext(path))
	}
	if err != nil {
		return true, err
	}
	return true, nil
}

// applyDefaults sets sane defaults for zero-value fields.
func applyDefaults(c *AppConfig) {
	if c.AppPort == "" {
		c.AppPort = "8080"
	}
	if c.SessionTTLHours == 0 {
		c.SessionTTLHours = 72
	}
	if len(c.AllowedOrigins) == 0 {
		c.AllowedOrigins = []string{"*"}
	}
	if c.PageSize == 0 {
		c.PageSize = 5
	}
	if c.MaxPostLength == 0 {
		c.MaxPostLength = 140
	}
	if c.PasswordScheme == "" {
		c.PasswordScheme = "bcrypt"
	}
	if c.DBDriver == "" {
		c.DBDriver = "sqlite"
	}
	if c.SQLitePath == "" {
		c.SQLitePath = filepath.Join("data", "chirp.db")
	}
	if c.DBHost == "" {
		c.DBHost = "127.0.0.1"
	}
	if c.DBPort == "" {
		switch c.DBDriver {
		case "postgres":
			c.DBPort = "5432"
		default:
			c.DBPort = "3306"
		}
	}
	if c.DBUser == "" {
		c.DBUser = "root"
	}
	if c.DBName == "" {
		c.DBName = "chirp"
	}
	if c.RedisPort == 0 {
		c.RedisPort = 6379
	}
	if c.GinMode == "" {
		c.GinMode = "release"
	}
	if c.GinPath == "" {
		c.GinPath = "logs/gin.log"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogMaxSizeMB == 0 {
		c.LogMaxSizeMB = 100
	}
	if c.LogMaxBackups == 0 {
		c.LogMaxBackups = 3
	}
	if c.LogMaxAgeDays == 0 {
		c.LogMaxAgeDays = 7
	}
}

// applyEnvOverrides maps known environment variables onto config values when present.
func applyEnvOverrides(c *AppConfig) {
	if v := getEnv("APP_PORT", ""); v != "" {
		c.AppPort = v
	}
	if v := getEnv("SESSION_SECRET", ""); v != "" {
		c.SessionSecret = v
	}
	if v := getEnv("SESSION_TTL_HOURS", ""); v != "" {
		c.SessionTTLHours = mustParseInt(v)
	}
	if v := getEnv("COOKIE_SECURE", ""); v != "" {
		c.CookieSecure = v == "true"
	}
	if v := getEnv("CORS_ALLOWED_ORIGINS", ""); v != "" {
		c.AllowedOrigins = readListEnv("CORS_ALLOWED_ORIGINS", c.AllowedOrigins)
	}
	if v := getEnv("PAGE_SIZE", ""); v != "" {
		c.PageSize = mustParseInt(v)
	}
	if v := getEnv("MAX_POST_LENGTH", ""); v != "" {
		c.MaxPostLength = mustParseInt(v)
	}
	if v := getEnv("PASSWORD_SCHEME", ""); v != "" {
		c.PasswordScheme = strings.ToLower(v)
	}
	if v := getEnv("DB_DRIVER", ""); v != "" {
		c.DBDriver = strings.ToLower(v)
	}
	if v := getEnv("DATABASE_URI", ""); v != "" {
		c.DatabaseURI = v
	}
	if v := getEnv("DB_HOST", ""); v != "" {
		c.DBHost = v
	}
	if v := getEnv("DB_PORT", ""); v != "" {
		c.DBPort = v
	}
	if v := getEnv("DB_USER", ""); v != "" {
		c.DBUser = v
	}
	if v := getEnv("DB_PASSWORD", ""); v != "" {
		c.DBPassword = v
	}
	if v := getEnv("DB_NAME", ""); v != "" {
		c.DBName = v
	}
	if v := getEnv("SQLITE_PATH", ""); v != "" {
		c.SQLitePath = v
	}
	if v := getEnv("REDIS_HOST", ""); v != "" {
		c.RedisHost = v
	}
	if v := getEnv("REDIS_PORT", ""); v != "" {
		c.RedisPort = mustParseInt(v)
	}
	if v := getEnv("REDIS_DB", ""); v != "" {
		c.RedisDB = mustParseInt(v)
	}
	if v := getEnv("REDIS_PASSWORD", ""); v != "" {
		c.RedisPassword = v
	}
	if v := getEnv("GIN_MODE", ""); v != "" {
		c.GinMode = v
	}
	if v := getEnv("GIN_PATH", ""); v != "" {
		c.GinPath = v
	}
	if v := getEnv("LOG_LEVEL", ""); v != "" {
		c.LogLevel = v
	}
	if v := getEnv("LOG_PATH", ""); v != "" {
		c.LogPath = v
	}
	if v := getEnv("LOG_MAX_SIZE_MB", ""); v != "" {
		c.LogMaxSizeMB = mustParseInt(v)
	}
	if v := getEnv("LOG_MAX_BACKUPS", ""); v != "" {
		c.LogMaxBackups = mustParseInt(v)
	}
	if v := getEnv("LOG_MAX_AGE_DAYS", ""); v != "" {
		c.LogMaxAgeDays = mustParseInt(v)
	}
	if v := getEnv("LOG_COMPRESS", ""); v != "" {
		c.LogCompress = v == "true"
	}
}

func mustParseInt(val string) int {
	i, err := strconv.Atoi(val)
	if err != nil {
		log.Fatalf("invalid integer value %s: %v", val, err)
	}
	return i
}

func readListEnv(key string, defaults []string) []string {
	if raw := os.Getenv(key); raw != "" {
		return splitAndTrim(raw)
	}
	return defaults
}

func splitAndTrim(raw string) []string {
	items := []string{}
	for _, item := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}
