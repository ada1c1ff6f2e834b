package config

import (
	"fmt"
	"os"
	"reflect"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yigit/hostelsphere/internal/domain"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port           string   `yaml:"port" env:"SERVER_PORT"`
		Mode           string   `yaml:"mode" env:"SERVER_MODE"`
		BaseURL        string   `yaml:"base_url" env:"SERVER_BASE_URL"`
		ReadTimeout    string   `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT"`
		WriteTimeout   string   `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT"`
		AllowedOrigins []string `yaml:"allowed_origins" env:"SERVER_ALLOWED_ORIGINS"`
	} `yaml:"server"`

	// Storage selects where the hostel snapshot lives: memory, sqlite or postgres
	Storage struct {
		Driver        string `yaml:"driver" env:"STORAGE_DRIVER"`
		SQLitePath    string `yaml:"sqlite_path" env:"STORAGE_SQLITE_PATH"`
		MigrationsDir string `yaml:"migrations_dir" env:"STORAGE_MIGRATIONS_DIR"`
	} `yaml:"storage"`

	Database struct {
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
	} `yaml:"database"`

	Photos struct {
		Driver     string `yaml:"driver" env:"PHOTOS_DRIVER"`
		LocalDir   string `yaml:"local_dir" env:"PHOTOS_LOCAL_DIR"`
		BaseURL    string `yaml:"base_url" env:"PHOTOS_BASE_URL"`
		MaxSizeMB  int    `yaml:"max_size_mb" env:"PHOTOS_MAX_SIZE_MB"`
		S3Bucket   string `yaml:"s3_bucket" env:"PHOTOS_S3_BUCKET"`
		S3Region   string `yaml:"s3_region" env:"PHOTOS_S3_REGION"`
		S3Endpoint string `yaml:"s3_endpoint" env:"PHOTOS_S3_ENDPOINT"`
		S3Prefix   string `yaml:"s3_prefix" env:"PHOTOS_S3_PREFIX"`
		PathStyle  bool   `yaml:"s3_path_style" env:"PHOTOS_S3_PATH_STYLE"`
	} `yaml:"photos"`

	JWT struct {
		Secret                string `yaml:"secret" env:"JWT_SECRET"`
		AccessTokenExpiration string `yaml:"access_token_expiration" env:"JWT_ACCESS_TOKEN_EXPIRATION"`
		Issuer                string `yaml:"issuer" env:"JWT_ISSUER"`
	} `yaml:"jwt"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`

	// Admin is the single warden account; the password is stored as a bcrypt hash
	Admin struct {
		Username     string `yaml:"username" env:"ADMIN_USERNAME"`
		PasswordHash string `yaml:"password_hash" env:"ADMIN_PASSWORD_HASH"`
	} `yaml:"admin"`

	Engine struct {
		MaintenancePolicy string `yaml:"maintenance_policy" env:"ENGINE_MAINTENANCE_POLICY"`
	} `yaml:"engine"`

	Fees struct {
		AnnualAmount int64  `yaml:"annual_amount" env:"FEES_ANNUAL_AMOUNT"`
		Currency     string `yaml:"currency" env:"FEES_CURRENCY"`
	} `yaml:"fees"`

	Seed struct {
		Enabled       bool `yaml:"enabled" env:"SEED_ENABLED"`
		Rooms         int  `yaml:"rooms" env:"SEED_ROOMS"`
		RoomsPerFloor int  `yaml:"rooms_per_floor" env:"SEED_ROOMS_PER_FLOOR"`
		Students      int  `yaml:"students" env:"SEED_STUDENTS"`
	} `yaml:"seed"`
}

// LoadConfig loads configuration from a file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	// Load default config with sane defaults
	config := &Config{}
	setDefaults(config)

	// Try to read config file if it exists
	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// Override with environment variables
	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	// Server defaults
	config.Server.Port = "8080"
	config.Server.Mode = "development"
	config.Server.ReadTimeout = "15s"
	config.Server.WriteTimeout = "15s"
	config.Server.AllowedOrigins = []string{"*"}

	// Storage defaults
	config.Storage.Driver = "sqlite"
	config.Storage.SQLitePath = "data/hostelsphere.db"

	// Database defaults
	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "hostelsphere"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 5
	config.Database.MaxOpenConns = 20
	config.Database.ConnMaxLifetime = "1h"

	// Photo defaults
	config.Photos.Driver = "local"
	config.Photos.LocalDir = "uploads"
	config.Photos.MaxSizeMB = 5
	config.Photos.S3Prefix = "photos"

	// JWT defaults
	config.JWT.AccessTokenExpiration = "12h"
	config.JWT.Issuer = "hostelsphere.app"

	// Logging defaults
	config.Logging.Level = "info"
	config.Logging.Format = "json"

	config.Admin.Username = "admin"

	config.Engine.MaintenancePolicy = string(domain.MaintenanceSticky)

	config.Fees.AnnualAmount = 50000
	config.Fees.Currency = "INR"

	config.Seed.Enabled = true
	config.Seed.Rooms = 200
	config.Seed.RoomsPerFloor = 20
	config.Seed.Students = 30
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) error {
	return applyEnv(reflect.ValueOf(config))
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	switch config.Storage.Driver {
	case "memory", "sqlite":
	case "postgres":
		if config.Database.Host == "" {
			return fmt.Errorf("database host is required")
		}
		if _, err := time.ParseDuration(config.Database.ConnMaxLifetime); err != nil {
			return fmt.Errorf("invalid database connection max lifetime: %w", err)
		}
	default:
		return fmt.Errorf("unknown storage driver %q", config.Storage.Driver)
	}

	switch config.Photos.Driver {
	case "local":
		if config.Photos.LocalDir == "" {
			return fmt.Errorf("photos local_dir is required")
		}
	case "s3":
		if config.Photos.S3Bucket == "" {
			return fmt.Errorf("photos s3_bucket is required")
		}
	default:
		return fmt.Errorf("unknown photos driver %q", config.Photos.Driver)
	}

	if config.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if _, err := time.ParseDuration(config.JWT.AccessTokenExpiration); err != nil {
		return fmt.Errorf("invalid JWT access token expiration format: %w", err)
	}

	for name, v := range map[string]string{"read_timeout": config.Server.ReadTimeout, "write_timeout": config.Server.WriteTimeout} {
		if _, err := time.ParseDuration(v); err != nil {
			return fmt.Errorf("invalid server %s: %w", name, err)
		}
	}

	if config.Admin.Username == "" || config.Admin.PasswordHash == "" {
		return fmt.Errorf("admin username and password_hash are required")
	}

	if _, err := domain.ParseMaintenancePolicy(config.Engine.MaintenancePolicy); err != nil {
		return fmt.Errorf("engine: %w", err)
	}

	if config.Fees.AnnualAmount < 0 {
		return fmt.Errorf("fees annual_amount must not be negative")
	}

	if config.Seed.Enabled && (config.Seed.Rooms < 0 || config.Seed.RoomsPerFloor < 1 || config.Seed.Students < 0) {
		return fmt.Errorf("seed sizes must be positive")
	}

	return nil
}

// MaintenancePolicy returns the parsed engine policy
func (c *Config) MaintenancePolicy() domain.MaintenancePolicy {
	p, err := domain.ParseMaintenancePolicy(c.Engine.MaintenancePolicy)
	if err != nil {
		return domain.MaintenanceSticky
	}
	return p
}

// AccessTokenTTL returns the parsed JWT lifetime
func (c *Config) AccessTokenTTL() time.Duration {
	d, err := time.ParseDuration(c.JWT.AccessTokenExpiration)
	if err != nil {
		return 12 * time.Hour
	}
	return d
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}
