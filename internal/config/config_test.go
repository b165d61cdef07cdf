package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"QUIZCRAFT_CATALOG", "QUIZCRAFT_REDIS_KEY", "QUIZCRAFT_DB",
		"QUIZCRAFT_SERVE_ADDR", "QUIZCRAFT_CORS_ORIGINS",
		"QUIZCRAFT_LLM_PROVIDER", "QUIZCRAFT_GEMINI_API_KEY", "QUIZCRAFT_LLM_TIMEOUT",
	} {
		t.Setenv(k, "")
	}
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), false)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadMissingRequiredFile(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), true)
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)
	p := writeFile(t, `
catalog: https://example.com/quiz.json
serve:
  addr: ":9000"
  cors_origins: [https://quiz.example.com]
llm:
  provider: openai
  openai:
    api_key: sk-test
  timeout: 45s
`)

	cfg, err := Load(p, true)
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/quiz.json", cfg.Catalog)
	assert.Equal(t, ":9000", cfg.Serve.Addr)
	assert.Equal(t, []string{"https://quiz.example.com"}, cfg.Serve.CORSOrigins)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "sk-test", cfg.LLM.OpenAI.APIKey)
	assert.Equal(t, 45*time.Second, cfg.LLM.Timeout)

	// Unset keys keep their defaults.
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.OpenAI.Model)
	assert.Equal(t, 3, cfg.LLM.Retry.MaxAttempts)
	assert.Equal(t, Default().RedisKey, cfg.RedisKey)
}

func TestLoadEmptyFile(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(writeFile(t, ""), true)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	clearEnv(t)

	_, err := Load(writeFile(t, "catalgo: typo.json\n"), true)
	assert.Error(t, err)
}

func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	p := writeFile(t, "catalog: file.json\ndb: /tmp/a.db\n")

	t.Setenv("QUIZCRAFT_CATALOG", "redis://localhost:6379/0")
	t.Setenv("QUIZCRAFT_REDIS_KEY", "quizzes")
	t.Setenv("QUIZCRAFT_CORS_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("QUIZCRAFT_LLM_PROVIDER", "mock")

	cfg, err := Load(p, true)
	require.NoError(t, err)

	assert.Equal(t, "redis://localhost:6379/0", cfg.Catalog)
	assert.Equal(t, "/tmp/a.db", cfg.DB)
	assert.Equal(t, "quizzes", cfg.SourceOptions().RedisKey)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Serve.CORSOrigins)
	assert.Equal(t, "mock", cfg.LLM.Provider)
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("QUIZCRAFT_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	assert.Equal(t, filepath.Join("/xdg", "quizcraft", "config.yaml"), DefaultPath())

	t.Setenv("QUIZCRAFT_CONFIG", "/etc/quizcraft.yaml")
	assert.Equal(t, "/etc/quizcraft.yaml", DefaultPath())
}
