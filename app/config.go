package app

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	coreconfig "studybot/core/config"
	coredatabase "studybot/core/database"
	"studybot/handlers"
)

// CatalogConfig tunes the catalog presentation layer.
type CatalogConfig struct {
	// AdminPageSize is entries per page in admin delete lists.
	AdminPageSize int `yaml:"admin_page_size" envconfig:"ADMIN_DELETE_PAGE_SIZE"`
	// BrowsePageSize is entries per page in public lists.
	BrowsePageSize int `yaml:"browse_page_size" envconfig:"BROWSE_PAGE_SIZE"`
}

// Config is the full bot configuration: the reusable core section plus
// the database and catalog sections owned by this bot.
type Config struct {
	coreconfig.Config `yaml:",inline"`

	Database coredatabase.Config `yaml:"database"`
	Catalog  CatalogConfig       `yaml:"catalog"`
}

// CoreConfig exposes the embedded core section for the runner.
func (c *Config) CoreConfig() *coreconfig.Config {
	return &c.Config
}

// LoadConfig reads the YAML file at path, overlays environment variables,
// and validates the result.
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}

	if err := coreconfig.Normalize(&cfg.Config); err != nil {
		return nil, err
	}

	if cfg.Catalog.AdminPageSize < 1 {
		cfg.Catalog.AdminPageSize = handlers.DefaultAdminPageSize
	}
	if cfg.Catalog.BrowsePageSize < 1 {
		cfg.Catalog.BrowsePageSize = handlers.DefaultBrowsePageSize
	}
	return &cfg, nil
}
