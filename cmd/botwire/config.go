package main

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// config is the optional ~/.botwire.yaml file. Flags and the BOTWIRE_TOKEN
// environment variable take precedence over it.
type config struct {
	Token string `yaml:"token"`
	Host  string `yaml:"host"`
	Chat  string `yaml:"chat"`
}

func loadConfig(path string) (*config, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return &config{}, nil
		}
		path = filepath.Join(home, ".botwire.yaml")
		if _, err := os.Stat(path); err != nil {
			return &config{}, nil
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	var cfg config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
