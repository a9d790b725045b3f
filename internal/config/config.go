package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Account  Account  `mapstructure:"account"`
	Import   Import   `mapstructure:"import"`
	Backup   Backup   `mapstructure:"backup"`
	Logger   Logger   `mapstructure:"logger"`
	Server   Server   `mapstructure:"server"`
	Database Database `mapstructure:"database"`
}

// Account describes the journal owner's trading account. Real accounts pay
// commission; paper accounts do not.
type Account struct {
	Name string `mapstructure:"name"`
	Real bool   `mapstructure:"real"`
}

// Import holds the configuration for execution imports.
type Import struct {
	StrictOvershoot bool   `mapstructure:"strict_overshoot"`
	Timezone        string `mapstructure:"timezone"`
}

// Backup holds the configuration for the cloud backup service.
type Backup struct {
	Enabled        bool    `mapstructure:"enabled"`
	URL            string  `mapstructure:"url"`
	ApiKey         string  `mapstructure:"apiKey"`
	SecretKey      string  `mapstructure:"secretKey"`
	RateLimit      float64 `mapstructure:"rate_limit"`
	RateLimitBurst int     `mapstructure:"rate_limit_burst"`
}

// Server holds the configuration for the web server.
type Server struct {
	Port int `mapstructure:"port"`
}

// Database holds the configuration for the database.
type Database struct {
	DSN string `mapstructure:"dsn"`
}

// Logger holds the configuration for the logger.
type Logger struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config") // name of config file (without extension)
	viper.SetConfigType("yml")    // or yaml, json

	// Allow environment variables to override config file
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Set default values
	viper.SetDefault("account.name", "default")
	viper.SetDefault("account.real", false)
	viper.SetDefault("import.strict_overshoot", false)
	viper.SetDefault("import.timezone", "America/New_York")
	viper.SetDefault("database.dsn", "journal.db")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.format", "console")
	viper.SetDefault("backup.rate_limit", 5)       // requests per second
	viper.SetDefault("backup.rate_limit_burst", 2) // burst size

	err = viper.ReadInConfig()
	if err != nil {
		return
	}

	err = viper.Unmarshal(&config)
	return
}
