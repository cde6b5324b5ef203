// Package config loads the server configuration from a YAML file.
package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config is the server configuration
type Config struct {
	Server struct {
		Port int `yaml:"port" validate:"gte=0,lte=65535"`
	} `yaml:"server"`
	MTA struct {
		APIKey        string `yaml:"api_key"`
		ComplexesFile string `yaml:"complexes_file"`
		StationsFile  string `yaml:"stations_file"`
	} `yaml:"mta"`
}

// Load reads and validates a YAML config file, filling defaults afterwards
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, err
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.MTA.ComplexesFile == "" {
		cfg.MTA.ComplexesFile = "data/complexes.json"
	}
	if cfg.MTA.StationsFile == "" {
		cfg.MTA.StationsFile = "data/stations.json"
	}
	return &cfg, nil
}
