// Package app provides the application container holding configuration,
// repositories and services
package app

import (
	"os"
	"path/filepath"
	"time"

	"github.com/webmarks/webmarks-service/pkg/util"

	"github.com/creasty/defaults"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// AppConfig is the full application configuration
type AppConfig struct {
	File     string         `yaml:"-"` // config file path, never serialized
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Database DatabaseConfig `yaml:"database"`
	App      AppSettings    `yaml:"app"`
	User     UserConfig     `yaml:"user"`
	Security SecurityConfig `yaml:"security"`
	Task     TaskConfig     `yaml:"task"`
}

// LogConfig log configuration
type LogConfig struct {
	// Level log level, see zapcore.ParseLevel
	Level string `yaml:"level" default:"warn"`
	// File log file path, empty for stderr only
	File string `yaml:"file" default:"storage/logs/log.log"`
	// Production switches console output to JSON
	Production bool `yaml:"production" default:"true"`
}

// ServerConfig HTTP server configuration
type ServerConfig struct {
	// RunMode gin run mode
	RunMode string `yaml:"run-mode" default:"release"`
	// HttpPort listen address
	HttpPort string `yaml:"http-port" default:":9000"`
	// PrivateHttpListen metrics/pprof listen address, empty disables it
	PrivateHttpListen string `yaml:"private-http-listen" default:":9001"`
	// ReadTimeout read timeout in seconds
	ReadTimeout int `yaml:"read-timeout" default:"60"`
	// WriteTimeout write timeout in seconds
	WriteTimeout int `yaml:"write-timeout" default:"60"`
}

// SecurityConfig auth configuration
type SecurityConfig struct {
	AuthTokenKey string `yaml:"auth-token-key" default:"webmarks-Auth-Token"`
	// TokenExpiry supports 7d, 24h, 30m formats
	TokenExpiry string `yaml:"token-expiry" default:"365d"`
}

// DatabaseConfig database configuration
type DatabaseConfig struct {
	// Type one of sqlite, mysql, postgres
	Type string `yaml:"type" default:"sqlite"`
	// Path sqlite database file path
	Path string `yaml:"path" default:"storage/database/db.sqlite3"`
	// UserName database user
	UserName string `yaml:"username"`
	// Password database password
	Password string `yaml:"password"`
	// Host database host
	Host string `yaml:"host"`
	// Name database name
	Name string `yaml:"name"`
	// TablePrefix table name prefix
	TablePrefix string `yaml:"table-prefix"`
	// AutoMigrate migrate the schema on startup
	AutoMigrate bool `yaml:"auto-migrate" default:"true"`
	// Charset mysql charset
	Charset string `yaml:"charset"`
	// ParseTime mysql parseTime flag
	ParseTime bool `yaml:"parse-time"`
	// MaxIdleConns max idle connections, default 10
	MaxIdleConns int `yaml:"max-idle-conns" default:"10"`
	// MaxOpenConns max open connections, default 100
	MaxOpenConns int `yaml:"max-open-conns" default:"100"`
	// ConnMaxLifetime supports 30m, 1h formats, default 30m
	ConnMaxLifetime string `yaml:"conn-max-lifetime" default:"30m"`
	// ConnMaxIdleTime supports 10m, 1h formats, default 10m
	ConnMaxIdleTime string `yaml:"conn-max-idle-time" default:"10m"`
	// Replicas read replica hosts (or sqlite paths)
	Replicas []string `yaml:"replicas"`
}

// UserConfig user related configuration
type UserConfig struct {
	// AdminUID uid allowed to search across every user, 0 disables it
	AdminUID int64 `yaml:"admin-uid" default:"0"`
}

// AppSettings general application settings
type AppSettings struct {
	// DefaultPageSize default page size
	DefaultPageSize int `yaml:"default-page-size" default:"10"`
	// MaxPageSize max page size
	MaxPageSize int `yaml:"max-page-size" default:"100"`
	// DefaultContextTimeout per request timeout in seconds
	DefaultContextTimeout int `yaml:"default-context-timeout" default:"60"`
}

// TaskConfig background task configuration
type TaskConfig struct {
	// LinkAuditEnable run the periodic link integrity audit
	LinkAuditEnable bool `yaml:"link-audit-enable" default:"true"`
	// LinkAuditSpec cron spec of the audit run
	LinkAuditSpec string `yaml:"link-audit-spec" default:"0 30 4 * * *"`
}

// LoadConfig loads the configuration from a file, applying struct defaults
// before and after parsing. Returns the config and the resolved path.
func LoadConfig(f string) (*AppConfig, string, error) {
	realpath, err := filepath.Abs(f)
	if err != nil {
		return nil, "", err
	}
	realpath = filepath.Clean(realpath)

	c := new(AppConfig)
	c.File = realpath

	if err := defaults.Set(c); err != nil {
		return nil, realpath, errors.Wrap(err, "set default config failed")
	}

	file, err := os.ReadFile(realpath)
	if err != nil {
		return nil, realpath, errors.Wrap(err, "read config file failed")
	}

	if err := yaml.Unmarshal(file, c); err != nil {
		return nil, realpath, errors.Wrap(err, "parse config file failed")
	}

	// fill fields the YAML left at their zero value
	if err := defaults.Set(c); err != nil {
		return nil, realpath, errors.Wrap(err, "re-set default config failed")
	}

	return c, realpath, nil
}

// Save writes the configuration back to its file
func (c *AppConfig) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "marshal config failed")
	}
	if err := os.WriteFile(c.File, data, 0644); err != nil {
		return errors.Wrap(err, "write config file failed")
	}
	return nil
}

// GetTokenExpiry parses the configured token lifetime
func (c *AppConfig) GetTokenExpiry() time.Duration {
	if expiry, err := util.ParseDuration(c.Security.TokenExpiry); err == nil {
		return expiry
	}
	return 365 * 24 * time.Hour
}
