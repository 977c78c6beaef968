package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	App      AppConfig
	DB       DBConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Auth     AuthConfig
	Storage  StorageConfig
	LogLevel string
}

type AppConfig struct {
	Port          string
	Env           string
	AllowedOrigin string
}

type DBConfig struct {
	Driver   string
	Path     string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret       string
	AccessExpiry time.Duration
}

// AuthConfig holds the static staff accounts allowed to use the dashboard.
type AuthConfig struct {
	Users []UserCredential
}

type UserCredential struct {
	Username string
	Password string
	Role     string
}

// StorageConfig points at the directories used for spreadsheet ingestion and file output.
type StorageConfig struct {
	ProtocolsDir string
	ExportDir    string
	BackupDir    string
}

func (c *Config) IsDevelopment() bool {
	return c.App.Env == "" || c.App.Env == "development"
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("CORS_ALLOWED_ORIGIN", "*")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DB_DRIVER", DriverSQLite)
	v.SetDefault("DB_PATH", "SAGRA.db")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("JWT_ACCESS_EXPIRY", "12h")
	v.SetDefault("AUTH_USERS", "admin:admin123:admin,user:user123:staff")
	v.SetDefault("PROTOCOLS_DIR", "planilhas_originais")
	v.SetDefault("EXPORT_DIR", "exportacoes")
	v.SetDefault("BACKUP_DIR", "backups")
}

// LoadConfig reads .env (when present) and the process environment.
func LoadConfig() (*Config, error) {
	return LoadConfigFrom(".env")
}

func LoadConfigFrom(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var pathErr *fs.PathError
		if !errors.As(err, &pathErr) {
			return nil, err
		}
	}

	accessExpiry, err := time.ParseDuration(v.GetString("JWT_ACCESS_EXPIRY"))
	if err != nil {
		accessExpiry = 12 * time.Hour
	}

	users, err := ParseUsers(v.GetString("AUTH_USERS"))
	if err != nil {
		return nil, err
	}

	driver := strings.ToLower(v.GetString("DB_DRIVER"))
	if driver != DriverSQLite && driver != DriverPostgres {
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}

	config := &Config{
		App: AppConfig{
			Port:          v.GetString("APP_PORT"),
			Env:           v.GetString("APP_ENV"),
			AllowedOrigin: v.GetString("CORS_ALLOWED_ORIGIN"),
		},
		DB: DBConfig{
			Driver:   driver,
			Path:     v.GetString("DB_PATH"),
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			Name:     v.GetString("DB_NAME"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:       v.GetString("JWT_SECRET"),
			AccessExpiry: accessExpiry,
		},
		Auth: AuthConfig{
			Users: users,
		},
		Storage: StorageConfig{
			ProtocolsDir: v.GetString("PROTOCOLS_DIR"),
			ExportDir:    v.GetString("EXPORT_DIR"),
			BackupDir:    v.GetString("BACKUP_DIR"),
		},
		LogLevel: v.GetString("LOG_LEVEL"),
	}

	return config, nil
}

// ParseUsers parses a comma separated list of username:password[:role] entries.
// The role defaults to "admin" for the admin account and "staff" for everyone else.
func ParseUsers(raw string) ([]UserCredential, error) {
	var users []UserCredential
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		parts := strings.Split(entry, ":")
		if len(parts) < 2 || len(parts) > 3 || parts[0] == "" || parts[1] == "" {
			return nil, fmt.Errorf("invalid AUTH_USERS entry %q, use username:password[:role]", entry)
		}

		user := UserCredential{
			Username: strings.TrimSpace(parts[0]),
			Password: parts[1],
			Role:     "staff",
		}
		if user.Username == "admin" {
			user.Role = "admin"
		}
		if len(parts) == 3 && strings.TrimSpace(parts[2]) != "" {
			user.Role = strings.TrimSpace(parts[2])
		}
		users = append(users, user)
	}
	return users, nil
}
