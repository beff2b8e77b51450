package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ErrMissing is wrapped by Validate and Credentials when a required value is
// not set.
var ErrMissing = errors.New("missing required setting")

// Defaults.
const (
	DefaultPort       = "8443"
	DefaultWebhookURL = "https://nuscanoeingbot.herokuapp.com"
	DefaultTimezone   = "Asia/Singapore"
	DefaultLogLevel   = "info"
	DefaultEnvFile    = ".env"
)

// Need selects which groups of settings Validate checks.
type Need int

const (
	NeedTelegram Need = 1 << iota
	NeedSheets
	NeedDrive
)

// Config holds every setting of the bot.
type Config struct {
	BotToken              string `yaml:"bot_token"`
	Port                  string `yaml:"port"`
	WebhookURL            string `yaml:"webhook_url"`
	GoogleCredentials     string `yaml:"google_credentials"`
	GoogleCredentialsFile string `yaml:"google_credentials_file"`
	SheetID               string `yaml:"sheet_id"`
	FolderID              string `yaml:"folder_id"`
	HCTIUserID            string `yaml:"hcti_user_id"`
	HCTIAPIKey            string `yaml:"hcti_api_key"`
	Timezone              string `yaml:"timezone"`
	LogLevel              string `yaml:"log_level"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Port:       DefaultPort,
		WebhookURL: DefaultWebhookURL,
		Timezone:   DefaultTimezone,
		LogLevel:   DefaultLogLevel,
	}
}

// Load builds the configuration. path names an optional YAML file and must exist
// when given. envFile names a dotenv file, DefaultEnvFile when empty; a missing
// dotenv file is not an error.
func Load(path, envFile string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	if envFile == "" {
		envFile = DefaultEnvFile
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading %s: %w", envFile, err)
	}

	cfg.ApplyEnv(os.Getenv)
	return cfg, nil
}

// ApplyEnv overrides settings with the non-empty environment variables
// returned by getenv.
func (c *Config) ApplyEnv(getenv func(string) string) {
	set := func(dst *string, key string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}
	set(&c.BotToken, "BOT_TOKEN")
	set(&c.Port, "PORT")
	set(&c.WebhookURL, "WEBHOOK_URL")
	set(&c.GoogleCredentials, "GOOGLE_CREDENTIALS")
	set(&c.GoogleCredentialsFile, "GOOGLE_APPLICATION_CREDENTIALS")
	set(&c.SheetID, "SHEET_ID")
	set(&c.FolderID, "FOLDER_ID")
	set(&c.HCTIUserID, "HCTI_USER_ID")
	set(&c.HCTIAPIKey, "HCTI_API_KEY")
	set(&c.Timezone, "TIMEZONE")
	set(&c.LogLevel, "LOG_LEVEL")
}

// Validate checks that the settings selected by need are present.
func (c *Config) Validate(need Need) error {
	var missing []string
	if need&NeedTelegram != 0 {
		if c.BotToken == "" {
			missing = append(missing, "BOT_TOKEN")
		}
		if c.Port == "" {
			missing = append(missing, "PORT")
		}
	}
	if need&(NeedSheets|NeedDrive) != 0 {
		if c.SheetID == "" {
			missing = append(missing, "SHEET_ID")
		}
		if c.GoogleCredentials == "" && c.GoogleCredentialsFile == "" {
			missing = append(missing, "GOOGLE_CREDENTIALS")
		}
	}
	if need&NeedDrive != 0 && c.FolderID == "" {
		missing = append(missing, "FOLDER_ID")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissing, strings.Join(missing, ", "))
	}

	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Credentials returns the service-account key, inline JSON taking precedence
// over the key file.
func (c *Config) Credentials() ([]byte, error) {
	if c.GoogleCredentials != "" {
		return []byte(c.GoogleCredentials), nil
	}
	if c.GoogleCredentialsFile == "" {
		return nil, fmt.Errorf("%w: GOOGLE_CREDENTIALS", ErrMissing)
	}
	data, err := os.ReadFile(c.GoogleCredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("reading credentials: %w", err)
	}
	return data, nil
}

// Location resolves Timezone, UTC when unset.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// ImagesEnabled reports whether HTML-to-image credentials are set.
func (c *Config) ImagesEnabled() bool {
	return c.HCTIUserID != "" && c.HCTIAPIKey != ""
}

// Addr is the webhook listen address.
func (c *Config) Addr() string {
	return ":" + c.Port
}
