// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config validates iconraster YAML configuration files against the
// embedded JSON Schema before viper reads them.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"go.yaml.in/yaml/v3"
)

const schemaURL = "iconraster.schema.json"

//go:embed schema.json
var schemaJSON string

// Validate reads the YAML file at path and checks it against the schema.
func Validate(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: failed to read %s: %w", path, err)
	}
	return ValidateBytes(data)
}

// ValidateBytes checks YAML config data against the schema. An empty
// document is valid.
func ValidateBytes(data []byte) error {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("config: invalid YAML: %w", err)
	}
	if raw == nil {
		return nil
	}

	schema, err := compile()
	if err != nil {
		return err
	}
	if err := schema.Validate(raw); err != nil {
		return fmt.Errorf("config: validation failed: %w", err)
	}
	return nil
}

func compile() (*jsonschema.Schema, error) {
	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, strings.NewReader(schemaJSON)); err != nil {
		return nil, fmt.Errorf("config: failed to load schema: %w", err)
	}
	schema, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("config: failed to compile schema: %w", err)
	}
	return schema, nil
}

// DefaultDir returns the per-user directory searched for config.yaml.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "iconraster")
	}

	switch runtime.GOOS {
	case "windows":
		return filepath.Join(home, "AppData", "Roaming", "iconraster")
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "iconraster")
	default: // Linux, BSD, etc.
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "iconraster")
		}
		return filepath.Join(home, ".config", "iconraster")
	}
}
