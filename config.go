// Copyright 2025 Naren Yellavula
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cybrota/garage/workshop"
	"gopkg.in/yaml.v3"
)

const configFileName = ".garage.yaml"

type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

type CatalogConfig struct {
	BloomSize   uint `yaml:"bloom_size"`
	BloomHashes uint `yaml:"bloom_hashes"`
}

type LedgerConfig struct {
	SortedRebuild bool          `yaml:"sorted_rebuild"`
	QuoteCacheTTL time.Duration `yaml:"quote_cache_ttl"`
}

type Config struct {
	Log     LogConfig     `yaml:"log"`
	Catalog CatalogConfig `yaml:"catalog"`
	Ledger  LedgerConfig  `yaml:"ledger"`
}

var defaultConfig = Config{
	Log: LogConfig{
		Level: "info",
	},
	Catalog: CatalogConfig{
		BloomSize:   workshop.DefaultCatalogConfig.BloomFilterSize,
		BloomHashes: workshop.DefaultCatalogConfig.BloomFilterHashes,
	},
	Ledger: LedgerConfig{
		SortedRebuild: false,
		QuoteCacheTTL: 30 * time.Minute,
	},
}

// WorkshopConfig maps the file settings onto the workshop collaborators.
func (c *Config) WorkshopConfig() workshop.Config {
	return workshop.Config{
		Catalog: workshop.CatalogConfig{
			BloomFilterSize:   c.Catalog.BloomSize,
			BloomFilterHashes: c.Catalog.BloomHashes,
		},
		Ledger: workshop.LedgerConfig{
			SortedRebuild: c.Ledger.SortedRebuild,
		},
		QuoteCacheTTL: c.Ledger.QuoteCacheTTL,
	}
}

func getConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, configFileName), nil
}

// LoadConfig reads ~/.garage.yaml, falling back to defaults when the file
// is missing or unreadable.
func LoadConfig() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		config := defaultConfig
		return &config, nil
	}
	return loadConfigFrom(configPath)
}

func loadConfigFrom(configPath string) (*Config, error) {
	config := defaultConfig

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return &config, nil
		}
		return &config, fmt.Errorf("failed to read config file: %w", err)
	}

	// Unset keys keep their defaults.
	if err := yaml.Unmarshal(data, &config); err != nil {
		config = defaultConfig
		return &config, fmt.Errorf("failed to parse config file: %w", err)
	}
	return &config, nil
}

func createDefaultConfigFile(configPath string) error {
	data, err := yaml.Marshal(&defaultConfig)
	if err != nil {
		return fmt.Errorf("failed to marshal default config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func displaySettings(out *os.File, styles Styles) error {
	configPath, err := getConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	configExists := true
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		configExists = false
		if err := createDefaultConfigFile(configPath); err != nil {
			return err
		}
	}

	config, err := loadConfigFrom(configPath)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, styles.Title.Render("Garage Configuration Settings"))
	if configExists {
		fmt.Fprintf(out, "Config file: %s\n\n", configPath)
	} else {
		fmt.Fprintf(out, "Config file: %s (newly created)\n\n", configPath)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	fmt.Fprintln(out, styles.Info.Render(string(data)))

	if !config.Ledger.SortedRebuild {
		fmt.Fprintln(out, styles.Muted.Render("Voiding an invoice rebuilds the ledger in map order; set ledger.sorted_rebuild: true for a reproducible tree shape."))
	}
	return nil
}
