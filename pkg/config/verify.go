package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/invopop/jsonschema"
)

//go:embed schema.json
var embeddedSchema string

// VerifyAgainstEmbeddedSchema validates the config against the embedded JSON schema
func VerifyAgainstEmbeddedSchema(cfg *Config) error {
	// parse schema
	var schema map[string]any
	if err := json.Unmarshal([]byte(embeddedSchema), &schema); err != nil {
		return fmt.Errorf("parse embedded schema: %w", err)
	}

	// convert config to JSON for validation
	configData, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	var configMap map[string]any
	if err := json.Unmarshal(configData, &configMap); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}

	// every top-level section of the config must be known to the schema
	props := schemaProperties(schema)
	for key := range configMap {
		if _, ok := props[key]; !ok {
			return fmt.Errorf("config section %q is not in schema", key)
		}
	}

	// basic validation - check required fields and enums
	if err := validateRequiredFields(cfg); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	return nil
}

// schemaProperties returns properties of the root definition. Reflected schemas keep
// them under $defs/Config, hand-written ones may keep them at the root.
func schemaProperties(schema map[string]any) map[string]any {
	if props, ok := schema["properties"].(map[string]any); ok {
		return props
	}
	defs, _ := schema["$defs"].(map[string]any)
	root, _ := defs["Config"].(map[string]any)
	props, _ := root["properties"].(map[string]any)
	return props
}

// validateRequiredFields performs basic validation of required fields
func validateRequiredFields(cfg *Config) error {
	if !slices.Contains([]string{SourceTianAPI, SourceRSS}, cfg.Source.Type) {
		return fmt.Errorf("source.type must be one of tianapi, rss")
	}
	if !slices.Contains([]string{ProviderHeuristic, ProviderOpenAI, ProviderZhipu, ProviderGemini}, cfg.LLM.Provider) {
		return fmt.Errorf("llm.provider must be one of heuristic, openai, zhipu, gemini")
	}
	if cfg.Report.Dir == "" {
		return fmt.Errorf("report.dir is required")
	}
	if cfg.Server.Listen == "" {
		return fmt.Errorf("server.listen is required")
	}

	// check extraction config if enabled
	if cfg.Extraction.Enabled && cfg.Extraction.Timeout == 0 {
		return fmt.Errorf("extraction.timeout is required when extraction is enabled")
	}

	return nil
}

// GenerateSchema generates a JSON schema for the Config struct
func GenerateSchema() (*jsonschema.Schema, error) {
	return jsonschema.Reflect(&Config{}), nil
}
