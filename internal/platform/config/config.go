// Copyright (c) 2026 Cereal. All rights reserved.
// Author: jordan.sekky@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, Redis, S3) via constructors.
  - Zero Hidden State: No global variables are used to store config.

This ensures the application is Twelve-Factor compliant by storing config in the env.
*/
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for the Cereal service.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Cache (Redis)
	RedisURL string `env:"REDIS_URL,required"`

	// Object Storage (DigitalOcean Spaces / S3-compatible) for converted ebooks
	SpacesKey      string `env:"CEREAL_SPACES_KEY,required"`
	SpacesSecret   string `env:"CEREAL_SPACES_SECRET,required"`
	SpacesEndpoint string `env:"CEREAL_SPACES_ENDPOINT,required"`
	SpacesBucket   string `env:"CEREAL_SPACES_NAME,required"`
	SpacesRegion   string `env:"CEREAL_SPACES_REGION" envDefault:"us-east-1"`

	// Inbound email bucket (AWS S3, fed by SES) for Patreon providers
	AWSAccessKey   string `env:"AWS_ACCESS_KEY,required"`
	AWSSecretKey   string `env:"AWS_SECRET_ACCESS_KEY,required"`
	AWSEmailBucket string `env:"AWS_EMAIL_BUCKET,required"`
	AWSRegion      string `env:"AWS_REGION" envDefault:"us-east-1"`

	// Notification channels
	PushoverToken    string `env:"CEREAL_PUSHOVER_TOKEN,required"`
	MailgunAPIKey    string `env:"CEREAL_MAILGUN_API_KEY,required"`
	MailgunDomain    string `env:"CEREAL_MAILGUN_DOMAIN,required"`
	MailgunAPIBase   string `env:"CEREAL_MAILGUN_API_ENDPOINT" envDefault:"https://api.mailgun.net/v3"`
	FromEmailAddress string `env:"CEREAL_FROM_EMAIL_ADDRESS,required"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	return cfg, nil
}

// IsDevelopment reports whether the service is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the service is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
