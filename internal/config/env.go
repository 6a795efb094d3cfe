package config

import (
	"os"
	"strconv"
)

// FromEnv loads configuration from environment variables.
// Falls back to defaults if variables are not set.
func FromEnv() Config {
	cfg := Default()

	if p := os.Getenv("PORT"); p != "" {
		cfg.Addr = ":" + p
	}
	if addr := os.Getenv("LOTERIA_ADDR"); addr != "" {
		cfg.Addr = addr
	}
	if p := os.Getenv("DB_PATH"); p != "" {
		cfg.DBPath = p
	}
	if p := os.Getenv("LOTERIA_DB_PATH"); p != "" {
		cfg.DBPath = p
	}
	if val := getEnvInt("LOTERIA_MAX_PLAYERS"); val > 0 {
		cfg.MaxPlayers = val
	}
	if val := getEnvInt("LOTERIA_BOARD_SIZE"); val > 0 {
		cfg.BoardSize = val
	}
	if dev, err := strconv.ParseBool(os.Getenv("LOTERIA_DEV")); err == nil {
		cfg.Dev = dev
	}

	return cfg
}

func getEnvInt(key string) int {
	val := os.Getenv(key)
	if val == "" {
		return 0
	}
	num, err := strconv.Atoi(val)
	if err != nil {
		return 0
	}
	return num
}
