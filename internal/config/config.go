package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	ServerPort   int
	DatabasePath string

	// JWTSecret signs access tokens. The default is for local development
	// only and must be overridden via SWEETSHOP_JWT_SECRET in any real
	// deployment.
	JWTSecret string
	TokenTTL  time.Duration

	// AdminUsername/AdminPassword seed the default admin account on first
	// startup. The well-known defaults must be rotated or disabled outside
	// of demos.
	AdminUsername string
	AdminPassword string
}

// Load reads configuration from SWEETSHOP_-prefixed environment variables,
// falling back to defaults.
func Load() *Config {
	viper.SetEnvPrefix("SWEETSHOP")
	viper.AutomaticEnv()

	viper.SetDefault("port", 8080)
	viper.SetDefault("database_path", "./sweetshop.db")
	viper.SetDefault("jwt_secret", "your-secret-key")
	viper.SetDefault("token_ttl_minutes", 30)
	viper.SetDefault("admin_username", "admin")
	viper.SetDefault("admin_password", "admin123")

	return &Config{
		ServerPort:    viper.GetInt("port"),
		DatabasePath:  viper.GetString("database_path"),
		JWTSecret:     viper.GetString("jwt_secret"),
		TokenTTL:      time.Duration(viper.GetInt("token_ttl_minutes")) * time.Minute,
		AdminUsername: viper.GetString("admin_username"),
		AdminPassword: viper.GetString("admin_password"),
	}
}
