package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
)

var v *viper.Viper

func init() {
	v = viper.New()

	// Set default values
	v.SetDefault("api.endpoint", "https://api.escuelajs.co/api/v1")
	v.SetDefault("api.timeout", 10*time.Second)
	v.SetDefault("page.size", 12)
	v.SetDefault("cache.products_ttl", 10*time.Second)
	v.SetDefault("cache.categories_ttl", time.Duration(0)) // 0 = never stale
	v.SetDefault("debounce.delay", 500*time.Millisecond)
	v.SetDefault("log.level", "warn")

	// Environment variables
	v.SetEnvPrefix("STOREADM")
	v.AutomaticEnv()
	v.BindEnv("api.endpoint", "STOREADM_API_ENDPOINT", "API_ENDPOINT")
	v.BindEnv("log.level", "STOREADM_LOG_LEVEL")

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// Look for config in the following paths
	configPaths := []string{
		".",
		"$HOME/.storeadm",
		"/etc/storeadm",
	}

	for _, path := range configPaths {
		expandedPath := os.ExpandEnv(path)
		v.AddConfigPath(expandedPath)
	}

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error was produced
			panic(fmt.Sprintf("Fatal error reading config file: %s", err))
		}
		// Config file not found; ignore error and use defaults
	}
}

// GetAPIURL returns the catalog API base URL
func GetAPIURL() string {
	return v.GetString("api.endpoint")
}

// GetAPITimeout returns the per-request HTTP timeout
func GetAPITimeout() time.Duration {
	return v.GetDuration("api.timeout")
}

// GetPageSize returns the number of products per page
func GetPageSize() int {
	return v.GetInt("page.size")
}

// GetProductsTTL returns the staleness window for product list and detail entries
func GetProductsTTL() time.Duration {
	return v.GetDuration("cache.products_ttl")
}

// GetCategoriesTTL returns the staleness window for the category list (0 = never stale)
func GetCategoriesTTL() time.Duration {
	return v.GetDuration("cache.categories_ttl")
}

// GetDebounceDelay returns the quiet window for debounced inputs
func GetDebounceDelay() time.Duration {
	return v.GetDuration("debounce.delay")
}

// GetLogLevel returns the logrus level name
func GetLogLevel() string {
	return v.GetString("log.level")
}

// GetStateDir returns the directory holding credentials, saved filters and the cache file
func GetStateDir() string {
	if dir := os.Getenv("STOREADM_STATE_DIR"); dir != "" {
		return dir
	}
	return filepath.Join(xdg.Home, ".storeadm")
}
