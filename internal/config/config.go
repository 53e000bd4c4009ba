package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultKeywords are the Gulf sovereign wealth and pension fund names the
// digest tracks when the config does not override them.
var DefaultKeywords = []string{"Mubadala", "ADIA", "ADIC", "PIF", "QIA", "OIA", "pension fund"}

type Config struct {
	Collection        string           `yaml:"collection"`
	ArchiveCollection string           `yaml:"archive_collection"`
	Keywords          []string         `yaml:"keywords"`
	Timezone          string           `yaml:"timezone"`
	Schedule          string           `yaml:"schedule"`
	RunOnStart        bool             `yaml:"run_on_start"`
	Store             StoreConfig      `yaml:"store"`
	Summarizer        SummarizerConfig `yaml:"summarizer"`
	Output            OutputConfig     `yaml:"output"`
}

type StoreConfig struct {
	ProjectID       string `yaml:"project_id"`
	CredentialsFile string `yaml:"credentials_file"`
}

type SummarizerConfig struct {
	Model     string `yaml:"model"`
	APIKey    string `yaml:"api_key"`
	MaxTokens int    `yaml:"max_tokens"`
}

type OutputConfig struct {
	Dir      string      `yaml:"dir"`
	Markdown bool        `yaml:"markdown"`
	Email    EmailConfig `yaml:"email"`
}

type EmailConfig struct {
	Enabled  bool     `yaml:"enabled"`
	SMTPHost string   `yaml:"smtp_host"`
	SMTPPort int      `yaml:"smtp_port"`
	Username string   `yaml:"username"`
	Password string   `yaml:"password"`
	From     string   `yaml:"from"`
	To       []string `yaml:"to"`
}

var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars replaces ${VAR_NAME} patterns with environment variable values.
func expandEnvVars(s string) string {
	return envVarRegex.ReplaceAllStringFunc(s, func(match string) string {
		varName := strings.TrimSuffix(strings.TrimPrefix(match, "${"), "}")
		if val, ok := os.LookupEnv(varName); ok {
			return val
		}
		return match
	})
}

func setDefaults(cfg *Config) {
	if cfg.Collection == "" {
		cfg.Collection = "articles"
	}
	if len(cfg.Keywords) == 0 {
		cfg.Keywords = append(cfg.Keywords, DefaultKeywords...)
	}
	if cfg.Timezone == "" {
		cfg.Timezone = "Asia/Dubai"
	}
	if cfg.Schedule == "" {
		cfg.Schedule = "0 6 * * *"
	}
	if cfg.Summarizer.Model == "" {
		cfg.Summarizer.Model = "gpt-4o-mini"
	}
	if cfg.Summarizer.MaxTokens == 0 {
		cfg.Summarizer.MaxTokens = 1024
	}
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = "."
	}
	if cfg.Output.Email.SMTPPort == 0 {
		cfg.Output.Email.SMTPPort = 587
	}
}

func validate(cfg *Config) error {
	if cfg.Store.ProjectID == "" {
		return fmt.Errorf("config: store.project_id is required")
	}
	if cfg.Store.CredentialsFile == "" {
		return fmt.Errorf("config: store.credentials_file is required")
	}
	if _, err := os.Stat(cfg.Store.CredentialsFile); err != nil {
		return fmt.Errorf("config: store.credentials_file %s is not readable: %w", cfg.Store.CredentialsFile, err)
	}
	if cfg.Summarizer.APIKey == "" || strings.HasPrefix(cfg.Summarizer.APIKey, "${") {
		return fmt.Errorf("config: summarizer.api_key is required (set OPENAI_API_KEY env var)")
	}
	if cfg.Output.Email.Enabled {
		if cfg.Output.Email.SMTPHost == "" {
			return fmt.Errorf("config: output.email.smtp_host is required when email is enabled")
		}
		if cfg.Output.Email.From == "" {
			return fmt.Errorf("config: output.email.from is required when email is enabled")
		}
		if len(cfg.Output.Email.To) == 0 {
			return fmt.Errorf("config: output.email.to is required when email is enabled")
		}
	}
	return nil
}

// Load reads the config file, expands environment variables, applies defaults,
// and validates the configuration.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
	}

	expanded := expandEnvVars(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}

	setDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
