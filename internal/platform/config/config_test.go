// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dublab/studio/internal/platform/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/studio")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("JWT_PUBLIC_KEY_PATH", "/keys/public.pem")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, 5*time.Minute, cfg.FormOptionsTTL)
	assert.Equal(t, int64(10<<20), cfg.MaxUploadBytes)
	assert.Equal(t, []string{"*"}, cfg.Origins())
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("REDIS_URL", "")
	t.Setenv("JWT_PUBLIC_KEY_PATH", "")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestConfig_Origins(t *testing.T) {
	cfg := &config.Config{Environment: "production", AllowedOrigins: " https://admin.dublab.app , ,https://dublab.app"}
	assert.Equal(t, []string{"https://admin.dublab.app", "https://dublab.app"}, cfg.Origins())

	cfg = &config.Config{Environment: "production"}
	assert.Empty(t, cfg.Origins())
}

func TestLoadDatabase(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/studio")
	t.Setenv("REDIS_URL", "")

	cfg, err := config.LoadDatabase()
	require.NoError(t, err)
	assert.Equal(t, "./data/migrations", cfg.MigrationPath)
}

func TestLoadSigning_RequiresPrivateKey(t *testing.T) {
	t.Setenv("JWT_PUBLIC_KEY_PATH", "/keys/public.pem")
	t.Setenv("JWT_PRIVATE_KEY_PATH", "")

	_, err := config.LoadSigning()
	assert.Error(t, err)
}

func TestLoadClient(t *testing.T) {
	t.Setenv("STUDIO_API_URL", "")
	t.Setenv("STUDIO_API_TOKEN", "token")

	cfg, err := config.LoadClient()
	require.NoError(t, err)
	assert.Equal(t, "token", cfg.APIToken)
}
