package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/Alp4ka/pagewindow"
)

const envPrefix = "CATALOG"

// Config is the catalog service configuration.
type Config struct {
	Server   *Server
	Database *Database
	Search   *Search
	Logger   *Logger
	Paging   *Paging
	Viper    *viper.Viper
}

type Server struct {
	Host string
	Port int
	// Mode is the gin mode: debug, release or test.
	Mode string
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type Database struct {
	// Driver is one of sqlite, postgres, mysql.
	Driver string
	DSN    string
}

// Search is optional: an empty Host disables the search endpoint.
type Search struct {
	Host   string
	APIKey string
	Index  string
}

func (s *Search) Enabled() bool {
	return s != nil && s.Host != ""
}

type Logger struct {
	Level string
}

type Paging struct {
	MaxPerPage int
	Edges      pagewindow.PageEdges
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "catalog.db")

	v.SetDefault("search.index", "products")

	v.SetDefault("logger.level", "info")

	v.SetDefault("paging.max_per_page", pagewindow.MaxPerPage)
	v.SetDefault("paging.left_edge", pagewindow.DefaultPageEdges.LeftEdge)
	v.SetDefault("paging.left_current", pagewindow.DefaultPageEdges.LeftCurrent)
	v.SetDefault("paging.right_current", pagewindow.DefaultPageEdges.RightCurrent)
	v.SetDefault("paging.right_edge", pagewindow.DefaultPageEdges.RightEdge)
}

// LoadConfig reads configPath, or catalog.yaml from the working directory when configPath
// is empty. A missing default file is not an error. CATALOG_* environment variables
// override file values, e.g. CATALOG_DATABASE_DSN.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("catalog")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{
		Server:   getServerConfig(v),
		Database: getDatabaseConfig(v),
		Search:   getSearchConfig(v),
		Logger:   getLoggerConfig(v),
		Paging:   getPagingConfig(v),
		Viper:    v,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func getServerConfig(v *viper.Viper) *Server {
	return &Server{
		Host: v.GetString("server.host"),
		Port: v.GetInt("server.port"),
		Mode: v.GetString("server.mode"),
	}
}

func getDatabaseConfig(v *viper.Viper) *Database {
	return &Database{
		Driver: strings.ToLower(v.GetString("database.driver")),
		DSN:    v.GetString("database.dsn"),
	}
}

func getSearchConfig(v *viper.Viper) *Search {
	return &Search{
		Host:   v.GetString("search.host"),
		APIKey: v.GetString("search.api_key"),
		Index:  v.GetString("search.index"),
	}
}

func getLoggerConfig(v *viper.Viper) *Logger {
	return &Logger{
		Level: v.GetString("logger.level"),
	}
}

func getPagingConfig(v *viper.Viper) *Paging {
	return &Paging{
		MaxPerPage: v.GetInt("paging.max_per_page"),
		Edges: pagewindow.PageEdges{
			LeftEdge:     v.GetInt("paging.left_edge"),
			LeftCurrent:  v.GetInt("paging.left_current"),
			RightCurrent: v.GetInt("paging.right_current"),
			RightEdge:    v.GetInt("paging.right_edge"),
		},
	}
}

// Validate checks the values LoadConfig cannot default.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "sqlite", "postgres", "mysql":
	default:
		return fmt.Errorf("unsupported database driver '%s'", c.Database.Driver)
	}

	if c.Database.DSN == "" {
		return errors.New("database dsn is required")
	}

	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("unsupported server mode '%s'", c.Server.Mode)
	}

	if c.Server.Port <= 0 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}

	if c.Paging.MaxPerPage <= 0 {
		return fmt.Errorf("invalid paging max per page %d", c.Paging.MaxPerPage)
	}

	return nil
}
