/*
SPDX-License-Identifier: Apache-2.0
*/

package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the chaincode process configuration.
type Config struct {
	// ChaincodeID is the package id the peer assigned; required when running as a service.
	ChaincodeID string
	// ServerAddress switches to chaincode-as-a-service mode when set, e.g. "0.0.0.0:9999".
	ServerAddress string
	TLSDisabled   bool
	// TLS material for service mode, as file paths.
	TLSKeyFile          string
	TLSCertFile         string
	TLSClientCACertFile string

	LogLevel string
	// RichQueries enables CouchDB selector queries for list functions.
	RichQueries bool
	// MetricsAddress serves Prometheus metrics when set.
	MetricsAddress string
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// A .env file is optional; peers usually inject real env vars.
	_ = godotenv.Load()

	cfg := &Config{
		ChaincodeID:    getEnv("CHAINCODE_ID", ""),
		ServerAddress:  getEnv("CHAINCODE_SERVER_ADDRESS", ""),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		MetricsAddress: getEnv("METRICS_ADDRESS", ""),

		TLSKeyFile:          getEnv("CHAINCODE_TLS_KEY", ""),
		TLSCertFile:         getEnv("CHAINCODE_TLS_CERT", ""),
		TLSClientCACertFile: getEnv("CHAINCODE_CLIENT_CA_CERT", ""),
	}

	var err error
	if cfg.TLSDisabled, err = getBool("CHAINCODE_TLS_DISABLED", true); err != nil {
		return nil, err
	}
	if cfg.RichQueries, err = getBool("LEDGER_RICH_QUERIES", false); err != nil {
		return nil, err
	}

	if cfg.ServerAddress != "" && cfg.ChaincodeID == "" {
		return nil, fmt.Errorf("CHAINCODE_ID must be set when CHAINCODE_SERVER_ADDRESS is set")
	}
	if cfg.ServerAddress != "" && !cfg.TLSDisabled && (cfg.TLSKeyFile == "" || cfg.TLSCertFile == "") {
		return nil, fmt.Errorf("CHAINCODE_TLS_KEY and CHAINCODE_TLS_CERT must be set when TLS is enabled")
	}
	return cfg, nil
}

// AsService reports whether the chaincode runs as an external service.
func (c *Config) AsService() bool {
	return c.ServerAddress != ""
}

// getEnv retrieves an environment variable or returns a default value. A variable
// set to the empty string counts as unset.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) (bool, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}
