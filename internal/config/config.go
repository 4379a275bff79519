// Package config loads server settings and the seed catalog.
//
// Settings come from an optional TOML file, then environment variables:
//
//	grpc_addr = ":8080"
//	api_token = "dev-token"
//
//	[[items]]
//	id    = "101"
//	title = "iPhone 15"
//	price = "0.00"   # decimal string, at most two fractional digits
//
//	[[storages]]
//	id          = "MSK-01"
//	owner       = "Ivan Ivanov"
//	items_count = 0
//
// A missing file is not an error. Items or storages given in the file
// replace the default catalog rather than extending it.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/simaogato/inventory-ledger/internal/domain"
)

const (
	DefaultGRPCAddr = ":8080"
	DefaultAPIToken = "dev-token"
)

// Environment variables that override file settings
const (
	EnvConfigPath = "LEDGER_CONFIG"
	EnvGRPCAddr   = "GRPC_ADDR"
	EnvAPIToken   = "API_TOKEN"
)

// ItemConfig describes an item to seed
type ItemConfig struct {
	ID    string       `toml:"id"`
	Title string       `toml:"title"`
	Price domain.Money `toml:"price"`
}

// StorageConfig describes a storage to seed
type StorageConfig struct {
	ID         string `toml:"id"`
	Owner      string `toml:"owner"`
	ItemsCount int    `toml:"items_count"`
}

// Config holds everything cmd/server needs
type Config struct {
	GRPCAddr string          `toml:"grpc_addr"`
	APIToken string          `toml:"api_token"`
	Items    []ItemConfig    `toml:"items"`
	Storages []StorageConfig `toml:"storages"`
}

// Default returns the built-in configuration with the sample catalog
func Default() *Config {
	return &Config{
		GRPCAddr: DefaultGRPCAddr,
		APIToken: DefaultAPIToken,
		Items: []ItemConfig{
			{ID: "101", Title: "iPhone 15", Price: domain.ZeroMoney()},
		},
		Storages: []StorageConfig{
			{ID: "MSK-01", Owner: "Ivan Ivanov"},
			{ID: "SPB-02", Owner: "Petr Petrov"},
		},
	}
}

// Load reads path (if non-empty and present) over the defaults, then applies environment overrides
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			// Missing file: keep defaults
		case err != nil:
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		default:
			if err := cfg.merge(data); err != nil {
				return nil, fmt.Errorf("parsing config file %s: %w", path, err)
			}
		}
	}

	cfg.ApplyEnv(os.Getenv)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes TOML data over the defaults without consulting the environment
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := cfg.merge(data); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) merge(data []byte) error {
	var file Config
	if err := toml.Unmarshal(data, &file); err != nil {
		return err
	}

	if file.GRPCAddr != "" {
		c.GRPCAddr = file.GRPCAddr
	}
	if file.APIToken != "" {
		c.APIToken = file.APIToken
	}
	if file.Items != nil {
		c.Items = file.Items
	}
	if file.Storages != nil {
		c.Storages = file.Storages
	}
	return nil
}

// ApplyEnv overrides settings with non-empty environment variables
func (c *Config) ApplyEnv(getenv func(string) string) {
	if addr := getenv(EnvGRPCAddr); addr != "" {
		c.GRPCAddr = addr
	}
	if token := getenv(EnvAPIToken); token != "" {
		c.APIToken = token
	}
}

// Validate checks that the seed catalog is usable
func (c *Config) Validate() error {
	seen := make(map[string]bool)
	for _, item := range c.Items {
		if item.ID == "" {
			return errors.New("config: item id cannot be empty")
		}
		if seen["item:"+item.ID] {
			return fmt.Errorf("config: duplicate item id %q", item.ID)
		}
		seen["item:"+item.ID] = true
	}
	for _, storage := range c.Storages {
		if storage.ID == "" {
			return errors.New("config: storage id cannot be empty")
		}
		if seen["storage:"+storage.ID] {
			return fmt.Errorf("config: duplicate storage id %q", storage.ID)
		}
		seen["storage:"+storage.ID] = true
	}
	return nil
}

// Catalog builds fresh domain objects for the seeder
func (c *Config) Catalog() ([]*domain.Item, []*domain.Storage) {
	items := make([]*domain.Item, 0, len(c.Items))
	for _, ic := range c.Items {
		item := domain.NewItem(ic.ID, ic.Title)
		item.Price = ic.Price
		items = append(items, item)
	}

	storages := make([]*domain.Storage, 0, len(c.Storages))
	for _, sc := range c.Storages {
		storage := domain.NewStorage(sc.ID, sc.Owner)
		storage.ItemsCount = sc.ItemsCount
		storages = append(storages, storage)
	}
	return items, storages
}
