// config.go
package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-json-experiment/json"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

var validate = validator.New()

// AppConfig holds defaults read from the environment. Command-line flags
// override every field.
type AppConfig struct {
	TemplateFile  string
	DataSource    string
	FetchTimeout  time.Duration
	FetchRetries  int
	RenderTimeout time.Duration
}

// loadConfig reads configuration from environment with sensible defaults.
// A .env file in the working directory is loaded first when present.
func loadConfig() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("INFO: could not load .env file: %v", err)
	}
	cfg := &AppConfig{
		TemplateFile: os.Getenv("PROPMAP_TEMPLATE"),
		DataSource:   os.Getenv("PROPMAP_DATA"),
		FetchRetries: getenvInt("PROPMAP_FETCH_RETRIES", 3),
	}

	fetchTimeout, err := time.ParseDuration(getenvDefault("PROPMAP_FETCH_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid PROPMAP_FETCH_TIMEOUT: %w", err)
	}
	cfg.FetchTimeout = fetchTimeout

	renderTimeout, err := time.ParseDuration(getenvDefault("PROPMAP_RENDER_TIMEOUT", "60s"))
	if err != nil {
		return nil, fmt.Errorf("invalid PROPMAP_RENDER_TIMEOUT: %w", err)
	}
	cfg.RenderTimeout = renderTimeout

	if cfg.FetchRetries < 0 {
		return nil, fmt.Errorf("invalid PROPMAP_FETCH_RETRIES: must not be negative")
	}
	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
		log.Printf("Warning: ignoring non-numeric %s=%q", key, v)
	}
	return def
}

// loadTemplate reads a JSON or YAML template over the defaults, so a file
// only needs the fields it changes. An empty path returns the defaults.
func loadTemplate(path string) (MapTemplate, error) {
	template := defaultTemplate()
	if path == "" {
		return template, nil
	}

	log.Printf("Reading template file: %s", path)
	data, err := os.ReadFile(path)
	if err != nil {
		return template, fmt.Errorf("reading template %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &template)
	default:
		err = json.Unmarshal(data, &template)
	}
	if err != nil {
		return template, fmt.Errorf("%w: parsing %s: %v", ErrInvalidTemplate, path, err)
	}

	if err := validateTemplate(template); err != nil {
		return template, err
	}
	return template, nil
}

// validateTemplate checks ranges and colors.
func validateTemplate(template MapTemplate) error {
	if err := validate.Struct(template); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTemplate, err)
	}
	return nil
}
