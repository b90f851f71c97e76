package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type SMTP struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
	Secure   string
	Timeout  time.Duration
	Debug    bool
}

// Missing lists the environment keys that need a value before mail can be sent.
func (s SMTP) Missing() []string {
	missing := []string{}
	for _, kv := range []struct {
		key, val string
	}{
		{"EMAIL_FROM", s.From},
		{"SMTP_HOST", s.Host},
		{"SMTP_USERNAME", s.Username},
		{"SMTP_PASSWORD", s.Password},
	} {
		if kv.val == "" {
			missing = append(missing, kv.key)
		}
	}
	return missing
}

// Env returns the settings under their environment keys.
func (s SMTP) Env() map[string]string {
	return map[string]string{
		"SMTP_HOST":       s.Host,
		"SMTP_PORT":       strconv.Itoa(s.Port),
		"SMTP_USERNAME":   s.Username,
		"SMTP_PASSWORD":   s.Password,
		"SMTP_SECURE":     s.Secure,
		"SMTP_TIMEOUT":    strconv.Itoa(int(s.Timeout / time.Second)),
		"EMAIL_FROM":      s.From,
		"EMAIL_FROM_NAME": s.FromName,
	}
}

// SaveSMTP merges the SMTP settings into the env file at path. Other keys in
// the file are kept.
func SaveSMTP(path string, s SMTP) error {
	env, err := godotenv.Read(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("unable to read env file: %w", err)
		}
		env = map[string]string{}
	}
	for k, v := range s.Env() {
		env[k] = v
	}
	if err := godotenv.Write(env, path); err != nil {
		return fmt.Errorf("unable to write env file: %w", err)
	}

	return nil
}

type Postgres struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
}

func (p Postgres) Enabled() bool {
	return p.Host != ""
}

type Config struct {
	YoutubeAPIKey       string
	SearchRate          float64
	OpenAIAPIKey        string
	OpenAIModel         string
	SMTP                SMTP
	Postgres            Postgres
	OutputDir           string
	PlaylistSize        int
	DefaultVideoMinutes int
	APIPort             int
}

// Load reads the given .env files (or ./.env) into the environment, without
// overriding variables that are already set, and builds the config from it.
func Load(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("unable to load env file: %w", err)
	}

	cfg := Config{
		YoutubeAPIKey: getParam("YOUTUBE_API_KEY", ""),
		OpenAIAPIKey:  getParam("OPENAI_API_KEY", ""),
		OpenAIModel:   getParam("OPENAI_MODEL", "gpt-4"),
		SMTP: SMTP{
			Host:     getParam("SMTP_HOST", ""),
			Username: getParam("SMTP_USERNAME", ""),
			Password: getParam("SMTP_PASSWORD", ""),
			From:     getParam("EMAIL_FROM", ""),
			FromName: getParam("EMAIL_FROM_NAME", "Learning Path Bot"),
			Secure:   getParam("SMTP_SECURE", "starttls"),
		},
		Postgres: Postgres{
			Host:     getParam("POSTGRES_HOST", ""),
			Port:     getParam("POSTGRES_PORT", "5432"),
			User:     getParam("POSTGRES_USER", "learnpath"),
			Password: getParam("POSTGRES_PASSWORD", "learnpath"),
			Database: getParam("POSTGRES_DB", "learnpath"),
		},
		OutputDir: getParam("OUTPUT_DIR", "output"),
	}

	var err error
	if cfg.SMTP.Port, err = getInt("SMTP_PORT", 587); err != nil {
		return Config{}, err
	}
	if cfg.PlaylistSize, err = getInt("PLAYLIST_SIZE", 12); err != nil {
		return Config{}, err
	}
	if cfg.DefaultVideoMinutes, err = getInt("DEFAULT_VIDEO_MINUTES", 30); err != nil {
		return Config{}, err
	}
	if cfg.APIPort, err = getInt("API_PORT", 8080); err != nil {
		return Config{}, err
	}
	timeout, err := getInt("SMTP_TIMEOUT", 30)
	if err != nil {
		return Config{}, err
	}
	cfg.SMTP.Timeout = time.Duration(timeout) * time.Second
	if cfg.SMTP.Debug, err = strconv.ParseBool(getParam("SMTP_DEBUG", "0")); err != nil {
		return Config{}, fmt.Errorf("invalid SMTP_DEBUG: %w", err)
	}
	if cfg.SearchRate, err = strconv.ParseFloat(getParam("SEARCH_RATE", "5"), 64); err != nil {
		return Config{}, fmt.Errorf("invalid SEARCH_RATE: %w", err)
	}

	switch cfg.SMTP.Secure {
	case "starttls", "ssl", "none":
	default:
		return Config{}, fmt.Errorf("invalid SMTP_SECURE %q, use starttls, ssl or none", cfg.SMTP.Secure)
	}
	if cfg.SMTP.Timeout <= 0 {
		return Config{}, fmt.Errorf("SMTP_TIMEOUT must be positive, got %d", timeout)
	}
	if cfg.PlaylistSize <= 0 {
		return Config{}, fmt.Errorf("PLAYLIST_SIZE must be positive, got %d", cfg.PlaylistSize)
	}
	if cfg.DefaultVideoMinutes <= 0 {
		return Config{}, fmt.Errorf("DEFAULT_VIDEO_MINUTES must be positive, got %d", cfg.DefaultVideoMinutes)
	}

	return cfg, nil
}

func getParam(param, def string) string {
	if val, ok := os.LookupEnv(param); ok {
		return val
	}
	return def
}

func getInt(param string, def int) (int, error) {
	val, err := strconv.Atoi(getParam(param, strconv.Itoa(def)))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", param, err)
	}
	return val, nil
}
