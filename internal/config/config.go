package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		Port    int    `yaml:"port"`
		DataDir string `yaml:"data_dir"`
	} `yaml:"app"`

	Polling struct {
		EmailSeconds  int `yaml:"email_seconds"`
		EnrichSeconds int `yaml:"enrich_seconds"`
		CleanupHours  int `yaml:"cleanup_hours"`
	} `yaml:"polling"`

	Email struct {
		Enabled     bool   `yaml:"enabled"`
		IMAPHost    string `yaml:"imap_host"`
		IMAPPort    int    `yaml:"imap_port"`
		Username    string `yaml:"username"`
		Mailbox     string `yaml:"mailbox"`
		MaxMessages int    `yaml:"max_messages"`
	} `yaml:"email"`

	Enrich struct {
		Enabled        bool     `yaml:"enabled"`
		BlockedDomains []string `yaml:"blocked_domains"`
	} `yaml:"enrich"`

	Import struct {
		AutoCommit bool `yaml:"auto_commit"`
	} `yaml:"import"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}
