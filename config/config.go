package config

import (
	"log/slog"
	"os"
	"time"

	"homefood-api/models"

	"github.com/glebarez/sqlite"
	"github.com/spf13/viper"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var DB *gorm.DB

// JWTSecret used to sign tokens — populated by Load
var JWTSecret []byte

// Config holds everything the server reads from the environment or an
// optional config file. Env vars use the HOMEFOOD_ prefix.
type Config struct {
	Port         string
	GinMode      string
	DBPath       string
	StoreTimeout time.Duration
	LogLevel     string

	JWTSecret string

	// Bootstrap admin, created on first run when the users table is empty
	AdminName     string
	AdminEmail    string
	AdminPassword string
}

// Load reads configuration with viper: defaults, then an optional
// config.yaml in the working directory, then environment overrides.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("port", "8080")
	v.SetDefault("gin_mode", "debug")
	v.SetDefault("db_path", "homefood.db")
	v.SetDefault("store_timeout", "5s")
	v.SetDefault("log_level", "info")
	v.SetDefault("jwt_secret", "homefood_dev_secret_change_me")
	v.SetDefault("admin_name", "Vendor")
	v.SetDefault("admin_email", "vendor@homefood.local")
	v.SetDefault("admin_password", "")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		// Missing file is fine; anything else is a real problem
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	v.SetEnvPrefix("HOMEFOOD")
	v.AutomaticEnv()

	cfg := &Config{
		Port:          v.GetString("port"),
		GinMode:       v.GetString("gin_mode"),
		DBPath:        v.GetString("db_path"),
		StoreTimeout:  v.GetDuration("store_timeout"),
		LogLevel:      v.GetString("log_level"),
		JWTSecret:     v.GetString("jwt_secret"),
		AdminName:     v.GetString("admin_name"),
		AdminEmail:    v.GetString("admin_email"),
		AdminPassword: v.GetString("admin_password"),
	}
	JWTSecret = []byte(cfg.JWTSecret)
	return cfg, nil
}

// NewLogger builds the process-wide slog logger (JSON to stdout)
func NewLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}

// InitDB opens the SQLite database at path and migrates all models.
// The returned handle is also stored in the package-level DB.
func InitDB(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.MenuItem{},
		&models.Order{},
		&models.SaleRecord{},
	); err != nil {
		return nil, err
	}

	DB = db
	return db, nil
}
