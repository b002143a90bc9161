package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	APIBaseURL        string `mapstructure:"API_BASE_URL"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// OAuth2 password-grant application credentials.
	OAuthClientID     string `mapstructure:"OAUTH_CLIENT_ID"`
	OAuthClientSecret string `mapstructure:"OAUTH_CLIENT_SECRET"`

	// Where the bearer credential is persisted between launches.
	// Empty means the default location under the user home directory.
	TokenPath string `mapstructure:"TOKEN_PATH"`

	// Firebase configuration for the chat backend.
	FirebaseProjectID       string `mapstructure:"FIREBASE_PROJECT_ID"`
	FirebaseCredentialsFile string `mapstructure:"FIREBASE_CREDENTIALS_FILE"`

	// Quiet period before a settled search filter hits the network.
	SearchDebounceMs int `mapstructure:"SEARCH_DEBOUNCE_MS"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	load()
}

// LoadConfigFile reads configuration from an explicit file instead of
// the default search paths.
func LoadConfigFile(path string) {
	viper.SetConfigFile(path)
	load()
}

func load() {
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("API_BASE_URL", "http://localhost:8000")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("OAUTH_CLIENT_ID", "JNoevMkuRxFPDPxaknWv9BIZ7FiUyikZGnLty3nV")
	viper.SetDefault("OAUTH_CLIENT_SECRET", "")
	viper.SetDefault("TOKEN_PATH", "")
	viper.SetDefault("FIREBASE_PROJECT_ID", "travelapp")
	viper.SetDefault("FIREBASE_CREDENTIALS_FILE", "")
	viper.SetDefault("SEARCH_DEBOUNCE_MS", 500)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
