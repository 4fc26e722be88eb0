package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration. It is loaded once per
// deployment; scoring and validation values are handed to the pipeline
// as immutable snapshots.
type Config struct {
	Server     ServerConfig
	Log        LogConfig
	CORS       CORSConfig
	Catalog    CatalogConfig
	Extract    ExtractConfig
	Scoring    ScoringConfig
	Validation ValidationConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// CatalogConfig holds product catalog settings.
type CatalogConfig struct {
	Path string `mapstructure:"path"`
	// DefaultMaxQuantity bounds item quantities when the catalog entry
	// carries no per-product maximum.
	DefaultMaxQuantity int `mapstructure:"default_max_quantity"`
}

// ExtractConfig holds field extraction policy values.
type ExtractConfig struct {
	// SimilarityFloor is the minimum levenshtein similarity for a fuzzy
	// description match to resolve an item.
	SimilarityFloor float64 `mapstructure:"similarity_floor"`
	// SuggestionFloor is the looser floor used when collecting suggested
	// replacements for unresolved items.
	SuggestionFloor float64 `mapstructure:"suggestion_floor"`
}

// ScoringConfig is the evidence weight table. Weights are declared here
// so they are inspectable and stable within a deployment.
type ScoringConfig struct {
	HeaderEmail      float64 `mapstructure:"header_email"`
	BodyPatternEmail float64 `mapstructure:"body_pattern_email"`
	ExactSKU         float64 `mapstructure:"exact_sku"`
	FuzzyMin         float64 `mapstructure:"fuzzy_min"`
	FuzzyMax         float64 `mapstructure:"fuzzy_max"`
	Unresolved       float64 `mapstructure:"unresolved"`
	ExplicitDate     float64 `mapstructure:"explicit_date"`
	RelativeDate     float64 `mapstructure:"relative_date"`
	LabeledAddress   float64 `mapstructure:"labeled_address"`
	HeuristicAddress float64 `mapstructure:"heuristic_address"`
	// FieldThreshold and FieldPenalty implement the order-level penalty:
	// if any of email/address/date scores below FieldThreshold, the
	// aggregate is multiplied by FieldPenalty.
	FieldThreshold float64 `mapstructure:"field_threshold"`
	FieldPenalty   float64 `mapstructure:"field_penalty"`
}

// ValidationConfig holds validation rule bounds.
type ValidationConfig struct {
	LowConfidenceFloor float64 `mapstructure:"low_confidence_floor"`
}

// Load reads configuration from environment variables with the ORDERINTAKE_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("ORDERINTAKE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "text")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:8000,http://127.0.0.1:8000")

	// Catalog defaults
	v.SetDefault("catalog.path", "content/product_catalog.csv")
	v.SetDefault("catalog.default_max_quantity", 10000)

	// Extraction defaults
	v.SetDefault("extract.similarity_floor", 0.60)
	v.SetDefault("extract.suggestion_floor", 0.50)

	// Scoring defaults (the deployed evidence weight table)
	v.SetDefault("scoring.header_email", 0.95)
	v.SetDefault("scoring.body_pattern_email", 0.60)
	v.SetDefault("scoring.exact_sku", 0.95)
	v.SetDefault("scoring.fuzzy_min", 0.40)
	v.SetDefault("scoring.fuzzy_max", 0.85)
	v.SetDefault("scoring.unresolved", 0.10)
	v.SetDefault("scoring.explicit_date", 0.90)
	v.SetDefault("scoring.relative_date", 0.50)
	v.SetDefault("scoring.labeled_address", 0.85)
	v.SetDefault("scoring.heuristic_address", 0.45)
	v.SetDefault("scoring.field_threshold", 0.70)
	v.SetDefault("scoring.field_penalty", 0.90)

	// Validation defaults
	v.SetDefault("validation.low_confidence_floor", 0.30)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                   "ORDERINTAKE_SERVER_PORT",
		"server.read_timeout":           "ORDERINTAKE_SERVER_READ_TIMEOUT",
		"server.write_timeout":          "ORDERINTAKE_SERVER_WRITE_TIMEOUT",
		"server.environment":            "ORDERINTAKE_SERVER_ENVIRONMENT",
		"log.level":                     "ORDERINTAKE_LOG_LEVEL",
		"log.format":                    "ORDERINTAKE_LOG_FORMAT",
		"cors.allowed_origins":          "ORDERINTAKE_CORS_ALLOWED_ORIGINS",
		"catalog.path":                  "ORDERINTAKE_CATALOG_PATH",
		"catalog.default_max_quantity":  "ORDERINTAKE_CATALOG_DEFAULT_MAX_QUANTITY",
		"extract.similarity_floor":      "ORDERINTAKE_EXTRACT_SIMILARITY_FLOOR",
		"extract.suggestion_floor":      "ORDERINTAKE_EXTRACT_SUGGESTION_FLOOR",
		"scoring.header_email":          "ORDERINTAKE_SCORING_HEADER_EMAIL",
		"scoring.body_pattern_email":    "ORDERINTAKE_SCORING_BODY_PATTERN_EMAIL",
		"scoring.exact_sku":             "ORDERINTAKE_SCORING_EXACT_SKU",
		"scoring.fuzzy_min":             "ORDERINTAKE_SCORING_FUZZY_MIN",
		"scoring.fuzzy_max":             "ORDERINTAKE_SCORING_FUZZY_MAX",
		"scoring.unresolved":            "ORDERINTAKE_SCORING_UNRESOLVED",
		"scoring.explicit_date":         "ORDERINTAKE_SCORING_EXPLICIT_DATE",
		"scoring.relative_date":         "ORDERINTAKE_SCORING_RELATIVE_DATE",
		"scoring.labeled_address":       "ORDERINTAKE_SCORING_LABELED_ADDRESS",
		"scoring.heuristic_address":     "ORDERINTAKE_SCORING_HEURISTIC_ADDRESS",
		"scoring.field_threshold":       "ORDERINTAKE_SCORING_FIELD_THRESHOLD",
		"scoring.field_penalty":         "ORDERINTAKE_SCORING_FIELD_PENALTY",
		"validation.low_confidence_floor": "ORDERINTAKE_VALIDATION_LOW_CONFIDENCE_FLOOR",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}
	cfg.Server = ServerConfig{
		Port:         v.GetString("server.port"),
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{AllowedOrigins: corsOrigins}

	cfg.Catalog = CatalogConfig{
		Path:               v.GetString("catalog.path"),
		DefaultMaxQuantity: v.GetInt("catalog.default_max_quantity"),
	}
	cfg.Extract = ExtractConfig{
		SimilarityFloor: v.GetFloat64("extract.similarity_floor"),
		SuggestionFloor: v.GetFloat64("extract.suggestion_floor"),
	}
	cfg.Scoring = ScoringConfig{
		HeaderEmail:      v.GetFloat64("scoring.header_email"),
		BodyPatternEmail: v.GetFloat64("scoring.body_pattern_email"),
		ExactSKU:         v.GetFloat64("scoring.exact_sku"),
		FuzzyMin:         v.GetFloat64("scoring.fuzzy_min"),
		FuzzyMax:         v.GetFloat64("scoring.fuzzy_max"),
		Unresolved:       v.GetFloat64("scoring.unresolved"),
		ExplicitDate:     v.GetFloat64("scoring.explicit_date"),
		RelativeDate:     v.GetFloat64("scoring.relative_date"),
		LabeledAddress:   v.GetFloat64("scoring.labeled_address"),
		HeuristicAddress: v.GetFloat64("scoring.heuristic_address"),
		FieldThreshold:   v.GetFloat64("scoring.field_threshold"),
		FieldPenalty:     v.GetFloat64("scoring.field_penalty"),
	}
	cfg.Validation = ValidationConfig{
		LowConfidenceFloor: v.GetFloat64("validation.low_confidence_floor"),
	}

	return cfg, nil
}
