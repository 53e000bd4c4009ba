package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeConfig materializes a yaml config plus a dummy credentials file and
// returns the config path.
func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()

	credsPath := filepath.Join(dir, "firebase_key.json")
	require.NoError(t, os.WriteFile(credsPath, []byte(`{"type":"service_account"}`), 0o600))

	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("store:\n  project_id: test-project\n  credentials_file: "+credsPath+"\n"+body), 0o600))
	return cfgPath
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
collection: arabian_news_articles
archive_collection: processed_arabian_news_articles
keywords: ["Mubadala", "custom fund"]
summarizer:
  api_key: test_api_key
  model: gpt-4o
output:
  dir: /tmp/digests
  markdown: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "arabian_news_articles", cfg.Collection)
	assert.Equal(t, "processed_arabian_news_articles", cfg.ArchiveCollection)
	assert.Equal(t, []string{"Mubadala", "custom fund"}, cfg.Keywords)
	assert.Equal(t, "gpt-4o", cfg.Summarizer.Model)
	assert.Equal(t, "/tmp/digests", cfg.Output.Dir)
	assert.True(t, cfg.Output.Markdown)
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, `
summarizer:
  api_key: test_api_key
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "articles", cfg.Collection)
	assert.Equal(t, DefaultKeywords, cfg.Keywords)
	assert.Equal(t, "Asia/Dubai", cfg.Timezone)
	assert.Equal(t, "0 6 * * *", cfg.Schedule)
	assert.Equal(t, "gpt-4o-mini", cfg.Summarizer.Model)
	assert.Equal(t, 1024, cfg.Summarizer.MaxTokens)
	assert.Equal(t, ".", cfg.Output.Dir)
	assert.Equal(t, 587, cfg.Output.Email.SMTPPort)
}

func TestLoadConfigExpandsEnvVars(t *testing.T) {
	t.Setenv("TEST_OPENAI_KEY", "sk-from-env")

	path := writeConfig(t, `
summarizer:
  api_key: ${TEST_OPENAI_KEY}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "sk-from-env", cfg.Summarizer.APIKey)
}

func TestLoadConfigMissingAPIKey(t *testing.T) {
	path := writeConfig(t, "")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api_key")
}

func TestLoadConfigUnexpandedAPIKey(t *testing.T) {
	// An unset env var leaves the placeholder behind; treat it as missing.
	path := writeConfig(t, `
summarizer:
  api_key: ${DEFINITELY_NOT_SET_ANYWHERE}
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api_key")
}

func TestLoadConfigMissingCredentialsFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	body := `
store:
  project_id: test-project
  credentials_file: ` + filepath.Join(dir, "nope.json") + `
summarizer:
  api_key: test_api_key
`
	require.NoError(t, os.WriteFile(cfgPath, []byte(body), 0o600))

	_, err := Load(cfgPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "credentials_file")
}

func TestLoadConfigMissingProjectID(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("summarizer:\n  api_key: k\n"), 0o600))

	_, err := Load(cfgPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "project_id")
}

func TestLoadConfigEmailValidation(t *testing.T) {
	path := writeConfig(t, `
summarizer:
  api_key: test_api_key
output:
  email:
    enabled: true
    smtp_host: smtp.example.com
    from: digest@example.com
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output.email.to")
}

func TestLoadConfigFileMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(":\n  - ["), 0o600))

	_, err := Load(cfgPath)
	assert.Error(t, err)
}
