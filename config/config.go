package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gopkg.in/yaml.v3"
)

const (
	CONFIG_PATH = "./res/config.yaml"

	DefaultBcryptCost     = 10 // matches bcrypt.DefaultCost
	DefaultCookieName     = "session_token"
	DefaultSessionTTL     = 15 * time.Minute
	DefaultRevocationType = "memory"
	DefaultMaxFileBytes   = 5 << 20
)

// DefaultSkills is the skill vocabulary used when the config file does not list one.
var DefaultSkills = []string{
	"python", "java", "sql", "html", "css", "javascript",
	"machine learning", "data analysis", "nlp",
	"tensorflow", "pytorch", "flask", "streamlit",
	"numpy", "pandas", "git",
}

// ServiceConfig holds the configuration for the service.
type ServiceConfig struct {
	ServiceName    string         `yaml:"service_name" validate:"required"`
	LogLevel       string         `yaml:"loglevel" validate:"required"`
	Host           string         `yaml:"host" validate:"required"`
	Port           string         `yaml:"port" validate:"required"`
	PrivateKeyPath string         `yaml:"private_key_path" validate:"required"`
	Security       SecurityConfig `yaml:"security"`
	Session        SessionConfig  `yaml:"session"`
	Database       Database       `yaml:"database"`
	Analysis       AnalysisConfig `yaml:"analysis"`
	Upload         UploadConfig   `yaml:"upload"`
}

type SecurityConfig struct {
	BcryptCost int `yaml:"bcrypt_cost" validate:"min=4,max=31"`
}

type SessionConfig struct {
	CookieName string           `yaml:"cookie_name" validate:"required"`
	TTL        time.Duration    `yaml:"ttl" validate:"required,gt=0"`
	Secure     bool             `yaml:"secure"`
	Revocation RevocationConfig `yaml:"revocation"`
}

// RevocationConfig selects where logged out session ids are remembered until they expire.
type RevocationConfig struct {
	Type  string       `yaml:"type" validate:"required,oneof=memory redis"`
	Redis *RedisConfig `yaml:"redis_config" validate:"required_if=Type redis"`
}

type RedisConfig struct {
	Addr      string        `yaml:"addr" validate:"required"`
	Password  string        `yaml:"password"`
	DB        int           `yaml:"db" validate:"min=0"`
	Timeout   time.Duration `yaml:"timeout"`
	KeyPrefix string        `yaml:"key_prefix"`
}

type Database struct {
	Type string `yaml:"type" validate:"required,oneof=sqlite postgres mongo memory"`
	// For SQLite
	SQLite *SQLiteConfig `yaml:"sqlite_config" validate:"required_if=Type sqlite"`
	// For PostgreSQL
	Postgres *PostgresConfig `yaml:"postgres_config" validate:"required_if=Type postgres"`
	// For MongoDB
	MongoDB *MongoDBConfig `yaml:"mongodb_config" validate:"required_if=Type mongo"`
}

type SQLiteConfig struct {
	Path        string   `yaml:"path" validate:"required"`
	ValidTables []string `yaml:"valid_tables" validate:"required"`
	ValidFields []string `yaml:"valid_fields" validate:"required"`
}

type PostgresConfig struct {
	DSN         string                `yaml:"dsn" validate:"required"`
	Options     PostgresServerOptions `yaml:"postgres_server_options"`
	ValidTables []string              `yaml:"valid_tables" validate:"required"`
	ValidFields []string              `yaml:"valid_fields" validate:"required"`
}

// MongoDBConfig holds the MongoDB configuration. The database name is taken from the DSN path.
type MongoDBConfig struct {
	DSN              string             `yaml:"dsn" validate:"required"`
	Timeout          time.Duration      `yaml:"timeout"`
	Options          MongoServerOptions `yaml:"mongo_server_options"`
	ValidCollections []string           `yaml:"valid_collections" validate:"required"`
	ValidFields      []string           `yaml:"valid_fields" validate:"required"`
}

type MongoServerOptions struct {
	APIVersion           string `yaml:"api_version"`
	SetStrict            bool   `yaml:"set_strict"`
	SetDeprecationErrors bool   `yaml:"set_deprecation_errors"`
}

type PostgresServerOptions struct {
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

// AnalysisConfig holds the skill vocabulary and the stopword list.
// An empty stopword list means the built-in English list is used.
type AnalysisConfig struct {
	Skills    []string `yaml:"skills" validate:"required,min=1,dive,required"`
	Stopwords []string `yaml:"stopwords" validate:"omitempty,dive,required"`
}

type UploadConfig struct {
	MaxFileBytes int64 `yaml:"max_file_bytes" validate:"gt=0"`
}

// ReadLocalConfig reads the service configuration from a YAML file at the specified path.
// The YAML is first read into a generic map and then decoded with mapstructure so that
// duration strings ("15m") are understood and unknown keys are rejected.
// Defaults are applied to every field left empty.
func ReadLocalConfig(configPath string) (*ServiceConfig, error) {
	config := &ServiceConfig{}

	yamlFile, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	raw := map[string]interface{}{}
	err = yaml.Unmarshal(yamlFile, &raw)
	if err != nil {
		return nil, err
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		TagName:          "yaml",
		Result:           config,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build config decoder: %w", err)
	}

	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", configPath, err)
	}

	config.ApplyDefaults()
	return config, nil
}

// ApplyDefaults fills the optional settings left empty in the file.
func (c *ServiceConfig) ApplyDefaults() {
	if c.Security.BcryptCost == 0 {
		c.Security.BcryptCost = DefaultBcryptCost
	}
	if c.Session.CookieName == "" {
		c.Session.CookieName = DefaultCookieName
	}
	if c.Session.TTL == 0 {
		c.Session.TTL = DefaultSessionTTL
	}
	if c.Session.Revocation.Type == "" {
		c.Session.Revocation.Type = DefaultRevocationType
	}
	if len(c.Analysis.Skills) == 0 {
		c.Analysis.Skills = append([]string(nil), DefaultSkills...)
	}
	if c.Upload.MaxFileBytes == 0 {
		c.Upload.MaxFileBytes = DefaultMaxFileBytes
	}
}

func BuildServerAPIOptions(cfg MongoServerOptions) *options.ServerAPIOptions {
	opts := options.ServerAPI(options.ServerAPIVersion(cfg.APIVersion))
	opts.SetStrict(cfg.SetStrict)
	opts.SetDeprecationErrors(cfg.SetDeprecationErrors)

	return opts
}

func ListToMap(list []string) map[string]bool {
	result := make(map[string]bool)
	for _, item := range list {
		result[item] = true
	}
	return result
}
