package config

import (
	"github.com/spf13/viper"
)

// Features holds config-driven behavior switches. They are injected into the
// services that honor them rather than read from globals.
type Features struct {
	// SharedBoardsEnabled controls whether public boards are visible to
	// organization members other than the creator. When off, every board
	// behaves as private.
	SharedBoardsEnabled bool
}

type Config struct {
	DBDriver      string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	RedisHost     string
	RedisPort     string
	SessionSecret string
	GinMode       string
	ListenAddr    string
	Features      Features
}

func Load() *Config {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("DB_DRIVER", "mysql")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "3306")
	v.SetDefault("DB_USER", "boarduser")
	v.SetDefault("DB_PASSWORD", "boardpassword")
	v.SetDefault("DB_NAME", "kanban_boards")
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("SESSION_SECRET", "default-secret-key-change-me")
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("LISTEN_ADDR", ":8080")
	v.SetDefault("SHARED_BOARDS_ENABLED", true)

	return &Config{
		DBDriver:      v.GetString("DB_DRIVER"),
		DBHost:        v.GetString("DB_HOST"),
		DBPort:        v.GetString("DB_PORT"),
		DBUser:        v.GetString("DB_USER"),
		DBPassword:    v.GetString("DB_PASSWORD"),
		DBName:        v.GetString("DB_NAME"),
		RedisHost:     v.GetString("REDIS_HOST"),
		RedisPort:     v.GetString("REDIS_PORT"),
		SessionSecret: v.GetString("SESSION_SECRET"),
		GinMode:       v.GetString("GIN_MODE"),
		ListenAddr:    v.GetString("LISTEN_ADDR"),
		Features: Features{
			SharedBoardsEnabled: v.GetBool("SHARED_BOARDS_ENABLED"),
		},
	}
}
