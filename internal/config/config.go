package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/adrg/xdg"
)

const appName = "finmo"

type Config struct {
	// Local store
	Store  string
	DBPath string

	// Presentation
	Currency     string
	ForecastDays int

	// Advisory service
	GeminiAPIKey             string
	GeminiModel              string
	AdviceTimeout            time.Duration
	AdviceRecentTransactions int
	AdviceCacheTTL           time.Duration

	// AMQP change feed
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Google Sheets mirror
	GoogleSpreadsheetID      string
	GoogleSheetName          string
	GoogleServiceAccountJSON string
	GoogleServiceAccountFile string

	// Session
	GoogleIDToken string

	// Logging
	LogLevel string
	LogFile  string
}

func Load() *Config {
	cfg := &Config{
		Store:  getEnv("FINMO_STORE", "sqlite"),
		DBPath: getEnv("FINMO_DB_PATH", filepath.Join(xdg.DataHome, appName, "finmo.db")),

		Currency:     getEnv("FINMO_CURRENCY", "MT"),
		ForecastDays: getEnvInt("FINMO_FORECAST_DAYS", 30),

		GeminiAPIKey:             getEnv("GEMINI_API_KEY", ""),
		GeminiModel:              getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		AdviceTimeout:            getEnvDuration("ADVICE_TIMEOUT", 20*time.Second),
		AdviceRecentTransactions: getEnvInt("ADVICE_RECENT_TRANSACTIONS", 15),
		AdviceCacheTTL:           getEnvDuration("ADVICE_CACHE_TTL", 10*time.Minute),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", appName),
		AMQPQueue:    getEnv("AMQP_QUEUE", "finmo_sheet_mirror"),

		GoogleSpreadsheetID:      getEnv("GOOGLE_SPREADSHEET_ID", ""),
		GoogleSheetName:          getEnv("GOOGLE_SHEET_NAME", "Transacções"),
		GoogleServiceAccountJSON: getEnv("GOOGLE_SERVICE_ACCOUNT_JSON", ""),
		GoogleServiceAccountFile: getEnv("GOOGLE_SERVICE_ACCOUNT_FILE", ""),

		GoogleIDToken: getEnv("GOOGLE_ID_TOKEN", ""),

		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogFile:  getEnv("LOG_FILE", filepath.Join(xdg.StateHome, appName, "finmo.log")),
	}

	return cfg
}

// AdviceEnabled reports whether a Gemini key was configured. Without one the
// advisory panel always shows the fallback advice.
func (c *Config) AdviceEnabled() bool {
	return c.GeminiAPIKey != ""
}

// FeedEnabled reports whether ledger changes should be published over AMQP.
func (c *Config) FeedEnabled() bool {
	return c.AMQPURL != ""
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	errors := c.validate()
	return combine(errors)
}

// ValidateMirror validates the configuration for the sheet mirror worker,
// which needs the AMQP feed and Google Sheets credentials on top of the
// regular settings.
func (c *Config) ValidateMirror() error {
	errors := c.validate()

	if c.AMQPURL == "" {
		errors = append(errors, "AMQP_URL is required for the sheet mirror")
	}
	if c.GoogleSpreadsheetID == "" {
		errors = append(errors, "Google Spreadsheet ID is required for the sheet mirror")
	}
	if c.GoogleSheetName == "" {
		errors = append(errors, "Google Sheet name is required for the sheet mirror")
	}

	hasFile := c.GoogleServiceAccountFile != ""
	hasJSON := c.GoogleServiceAccountJSON != ""
	if !hasFile && !hasJSON {
		errors = append(errors, "either GOOGLE_SERVICE_ACCOUNT_FILE or GOOGLE_SERVICE_ACCOUNT_JSON must be provided for the sheet mirror")
	}
	if hasFile {
		if _, err := os.Stat(c.GoogleServiceAccountFile); os.IsNotExist(err) {
			errors = append(errors, fmt.Sprintf("Google service account file does not exist: %s", c.GoogleServiceAccountFile))
		}
	}

	return combine(errors)
}

func (c *Config) validate() []string {
	var errors []string

	// Validate store
	validStores := []string{"memory", "sqlite"}
	isValidStore := false
	for _, s := range validStores {
		if c.Store == s {
			isValidStore = true
			break
		}
	}
	if !isValidStore {
		errors = append(errors, fmt.Sprintf("invalid store '%s': must be one of %v", c.Store, validStores))
	}

	if c.Store == "sqlite" {
		if c.DBPath == "" {
			errors = append(errors, "database path cannot be empty when using sqlite store")
		} else {
			dir := filepath.Dir(c.DBPath)
			if dir != "." && dir != "" {
				if _, err := os.Stat(dir); os.IsNotExist(err) {
					if err := os.MkdirAll(dir, 0755); err != nil {
						errors = append(errors, fmt.Sprintf("cannot create database directory '%s': %v", dir, err))
					}
				}
			}
		}
	}

	if strings.TrimSpace(c.Currency) == "" {
		errors = append(errors, "currency label cannot be empty")
	}

	if c.ForecastDays < 1 {
		errors = append(errors, fmt.Sprintf("invalid forecast days %d: must be at least 1", c.ForecastDays))
	} else if c.ForecastDays > 366 {
		errors = append(errors, fmt.Sprintf("invalid forecast days %d: must be at most 366", c.ForecastDays))
	}

	if c.AdviceTimeout < time.Second {
		errors = append(errors, fmt.Sprintf("invalid advice timeout %v: must be at least 1 second", c.AdviceTimeout))
	} else if c.AdviceTimeout > 5*time.Minute {
		errors = append(errors, fmt.Sprintf("invalid advice timeout %v: must be at most 5 minutes", c.AdviceTimeout))
	}

	if c.AdviceRecentTransactions < 1 {
		errors = append(errors, fmt.Sprintf("invalid advice recent transactions %d: must be at least 1", c.AdviceRecentTransactions))
	}

	if c.AdviceCacheTTL < 0 {
		errors = append(errors, fmt.Sprintf("invalid advice cache ttl %v: must not be negative", c.AdviceCacheTTL))
	}

	if c.GeminiAPIKey != "" && c.GeminiModel == "" {
		errors = append(errors, "Gemini model cannot be empty when GEMINI_API_KEY is provided")
	}

	// Validate AMQP URL if provided
	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errors = append(errors, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		errors = append(errors, fmt.Sprintf("invalid log level '%s'", c.LogLevel))
	}

	return errors
}

func combine(errors []string) error {
	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
