package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{"PORT", "LOTERIA_ADDR", "DB_PATH", "LOTERIA_DB_PATH",
		"LOTERIA_MAX_PLAYERS", "LOTERIA_BOARD_SIZE", "LOTERIA_DEV"} {
		t.Setenv(key, "")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 4, cfg.MaxPlayers)
	assert.Equal(t, 4, cfg.BoardSize)
	assert.Empty(t, cfg.DBPath)
	assert.False(t, cfg.Dev)
	require.NoError(t, cfg.Validate())
}

func TestFromEnvDefaults(t *testing.T) {
	clearEnv(t)
	assert.Equal(t, Default(), FromEnv())
}

func TestFromEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("DB_PATH", "/tmp/games.db")
	t.Setenv("LOTERIA_MAX_PLAYERS", "6")
	t.Setenv("LOTERIA_BOARD_SIZE", "5")
	t.Setenv("LOTERIA_DEV", "true")

	cfg := FromEnv()
	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, "/tmp/games.db", cfg.DBPath)
	assert.Equal(t, 6, cfg.MaxPlayers)
	assert.Equal(t, 5, cfg.BoardSize)
	assert.True(t, cfg.Dev)
}

func TestFromEnvPrefixedWins(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("LOTERIA_ADDR", "127.0.0.1:7000")
	t.Setenv("DB_PATH", "a.db")
	t.Setenv("LOTERIA_DB_PATH", "b.db")

	cfg := FromEnv()
	assert.Equal(t, "127.0.0.1:7000", cfg.Addr)
	assert.Equal(t, "b.db", cfg.DBPath)
}

func TestFromEnvIgnoresGarbage(t *testing.T) {
	clearEnv(t)
	t.Setenv("LOTERIA_MAX_PLAYERS", "lots")
	t.Setenv("LOTERIA_BOARD_SIZE", "-3")
	t.Setenv("LOTERIA_DEV", "maybe")

	assert.Equal(t, Default(), FromEnv())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want error
	}{
		{"no players", Config{MaxPlayers: 0, BoardSize: 4}, ErrInvalidMaxPlayers},
		{"zero size", Config{MaxPlayers: 2, BoardSize: 0}, ErrInvalidBoardSize},
		{"too large", Config{MaxPlayers: 2, BoardSize: 8}, ErrBoardTooLarge},
		{"largest", Config{MaxPlayers: 2, BoardSize: 7}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
