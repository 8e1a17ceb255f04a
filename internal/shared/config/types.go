package config

import (
	"fmt"
	"net/url"
	"time"
)

type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	Mode           string   `mapstructure:"mode"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	// ActorHeader names the request header carrying the authenticated username.
	ActorHeader string `mapstructure:"actor_header"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// TimeConfig controls the business timezone used for wall-clock input and
// local display.
type TimeConfig struct {
	Timezone   string `mapstructure:"timezone"`
	Conversion string `mapstructure:"conversion"`
}

type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"`
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	Path            string `mapstructure:"path"`
	SSLMode         string `mapstructure:"ssl_mode"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
	ConnectRetries  uint   `mapstructure:"connect_retries"`
}

// GetDSN builds the driver-specific connection string.
func (d *DatabaseConfig) GetDSN() string {
	switch d.Driver {
	case "postgres":
		sslMode := d.SSLMode
		if sslMode == "" {
			sslMode = "disable"
		}
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
			d.Host, d.Port, d.Username, d.Password, d.Database, sslMode)
	case "sqlite":
		return d.Path
	default:
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			d.Username, url.QueryEscape(d.Password), d.Host, d.Port, d.Database)
	}
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// StorageConfig selects the blob backend for uploaded images.
type StorageConfig struct {
	Driver   string `mapstructure:"driver"`
	BaseDir  string `mapstructure:"base_dir"`
	Bucket   string `mapstructure:"bucket"`
	Region   string `mapstructure:"region"`
	Endpoint string `mapstructure:"endpoint"`
	// MaxUploadBytes caps a single image upload.
	MaxUploadBytes int64 `mapstructure:"max_upload_bytes"`
}

// BucketURL returns the gocloud.dev URL for the mem and s3 backends. The
// file backend is opened from BaseDir directly.
func (s *StorageConfig) BucketURL() string {
	switch s.Driver {
	case "mem":
		return "mem://"
	case "s3":
		q := url.Values{}
		if s.Region != "" {
			q.Set("region", s.Region)
		}
		if s.Endpoint != "" {
			q.Set("endpoint", s.Endpoint)
			q.Set("use_path_style", "true")
		}
		u := url.URL{Scheme: "s3", Host: s.Bucket, RawQuery: q.Encode()}
		return u.String()
	default:
		return ""
	}
}

// ArchiveConfig drives the archival sweeper.
type ArchiveConfig struct {
	Enabled    bool          `mapstructure:"enabled"`
	Interval   time.Duration `mapstructure:"interval"`
	MaxAge     time.Duration `mapstructure:"max_age"`
	RunOnStart bool          `mapstructure:"run_on_start"`
	Timeout    time.Duration `mapstructure:"timeout"`
}
