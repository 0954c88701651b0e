package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	KeyOwner            = "update.owner"
	KeyRepo             = "update.repo"
	KeyChecksEnabled    = "update.checks-enabled"
	KeyAPIBaseURL       = "update.api-base-url"
	KeyPackageExtension = "update.package-extension"
	KeyPackageMediaType = "update.package-media-type"
	KeyLogLevel         = "log-level"

	envPrefix      = "CREATORS_GUIDE"
	configFileName = "config.yaml"
	dotEnvFileName = ".env"
)

const (
	DefaultRepo             = "Creators-Guide"
	DefaultAPIBaseURL       = "https://api.github.com"
	DefaultPackageExtension = ".apk"
	DefaultPackageMediaType = "application/vnd.android.package-archive"
	DefaultLogLevel         = "warn"
)

var allKeys = []string{
	KeyOwner, KeyRepo, KeyChecksEnabled, KeyAPIBaseURL,
	KeyPackageExtension, KeyPackageMediaType, KeyLogLevel,
}

// Update is the read-only configuration consumed by the update checker.
// It is built once at startup and passed by value.
type Update struct {
	Owner            string `json:"owner" yaml:"owner"`
	Repo             string `json:"repo" yaml:"repo"`
	ChecksEnabled    bool   `json:"checks_enabled" yaml:"checks-enabled"`
	APIBaseURL       string `json:"api_base_url" yaml:"api-base-url"`
	PackageExtension string `json:"package_extension" yaml:"package-extension"`
	PackageMediaType string `json:"package_media_type" yaml:"package-media-type"`
}

// Config holds user/system configuration for the CLI.
type Config struct {
	Update   Update `json:"update" yaml:"update"`
	HomeDir  string `json:"home_dir" yaml:"home-dir"`
	LogLevel string `json:"log_level" yaml:"log-level"`
}

// Defaults returns the built-in configuration. Update checks stay off
// until an owner is configured.
func Defaults() Config {
	home, _ := os.UserHomeDir()
	return Config{
		Update: Update{
			Owner:            "",
			Repo:             DefaultRepo,
			ChecksEnabled:    false,
			APIBaseURL:       DefaultAPIBaseURL,
			PackageExtension: DefaultPackageExtension,
			PackageMediaType: DefaultPackageMediaType,
		},
		HomeDir:  filepath.Join(home, ".creators-guide"),
		LogLevel: DefaultLogLevel,
	}
}

type loadSettings struct {
	homeDir    string
	configPath string
	dotEnvPath string
	overrides  map[string]any
}

// Option configures Load. Useful for tests and CLI flags.
type Option func(*loadSettings)

// WithHomeDir overrides the directory searched for config.yaml and .env.
func WithHomeDir(dir string) Option {
	return func(s *loadSettings) { s.homeDir = dir }
}

// WithConfigFile merges an explicit config file on top of the home config.
// Unlike the home config it must exist.
func WithConfigFile(path string) Option {
	return func(s *loadSettings) { s.configPath = path }
}

// WithDotEnv reads KEY=value pairs from path instead of <home>/.env.
func WithDotEnv(path string) Option {
	return func(s *loadSettings) { s.dotEnvPath = path }
}

// WithOverrides injects values typically coming from CLI flags.
func WithOverrides(overrides map[string]any) Option {
	return func(s *loadSettings) { s.overrides = overrides }
}

// Load resolves configuration using the precedence:
// defaults < <home>/config.yaml < explicit config file < .env < environment < overrides.
func Load(opts ...Option) (Config, error) {
	def := Defaults()
	settings := loadSettings{}
	for _, opt := range opts {
		opt(&settings)
	}

	home := strings.TrimSpace(settings.homeDir)
	if home == "" {
		// HOME_DIR mirrors the XDG-style override used elsewhere.
		if v := os.Getenv("HOME_DIR"); v != "" {
			home = v
		} else {
			home = def.HomeDir
		}
	}

	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v, def)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := mergeConfigFile(v, filepath.Join(home, configFileName), false); err != nil {
		return Config{}, fmt.Errorf("load home config: %w", err)
	}
	if err := mergeConfigFile(v, settings.configPath, true); err != nil {
		return Config{}, fmt.Errorf("load config file: %w", err)
	}

	dotEnv := settings.dotEnvPath
	if dotEnv == "" {
		dotEnv = filepath.Join(home, dotEnvFileName)
	}
	if err := applyDotEnv(v, dotEnv); err != nil {
		return Config{}, fmt.Errorf("load %s: %w", dotEnv, err)
	}

	for k, val := range settings.overrides {
		v.Set(k, val)
	}

	return Config{
		Update: Update{
			Owner:            strings.TrimSpace(v.GetString(KeyOwner)),
			Repo:             strings.TrimSpace(v.GetString(KeyRepo)),
			ChecksEnabled:    v.GetBool(KeyChecksEnabled),
			APIBaseURL:       strings.TrimRight(strings.TrimSpace(v.GetString(KeyAPIBaseURL)), "/"),
			PackageExtension: v.GetString(KeyPackageExtension),
			PackageMediaType: v.GetString(KeyPackageMediaType),
		},
		HomeDir:  home,
		LogLevel: v.GetString(KeyLogLevel),
	}, nil
}

// Validate reports configuration that would make an enabled check
// meaningless. A disabled configuration is always valid.
func (u Update) Validate() error {
	if !u.ChecksEnabled {
		return nil
	}
	if err := validateIdentifier("owner", u.Owner); err != nil {
		return err
	}
	if err := validateIdentifier("repo", u.Repo); err != nil {
		return err
	}
	parsed, err := url.Parse(u.APIBaseURL)
	if err != nil {
		return fmt.Errorf("invalid api base url %q: %w", u.APIBaseURL, err)
	}
	if (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return fmt.Errorf("invalid api base url %q: must be an absolute http(s) url", u.APIBaseURL)
	}
	return nil
}

func validateIdentifier(name, value string) error {
	if value == "" {
		return fmt.Errorf("%s is required when update checks are enabled", name)
	}
	if strings.ContainsAny(value, "/ \t\r\n") {
		return fmt.Errorf("invalid %s %q", name, value)
	}
	return nil
}

// EnvName returns the environment variable that overrides key.
func EnvName(key string) string {
	r := strings.NewReplacer(".", "_", "-", "_")
	return envPrefix + "_" + strings.ToUpper(r.Replace(key))
}

func setDefaults(v *viper.Viper, def Config) {
	v.SetDefault(KeyOwner, def.Update.Owner)
	v.SetDefault(KeyRepo, def.Update.Repo)
	v.SetDefault(KeyChecksEnabled, def.Update.ChecksEnabled)
	v.SetDefault(KeyAPIBaseURL, def.Update.APIBaseURL)
	v.SetDefault(KeyPackageExtension, def.Update.PackageExtension)
	v.SetDefault(KeyPackageMediaType, def.Update.PackageMediaType)
	v.SetDefault(KeyLogLevel, def.LogLevel)
}

func mergeConfigFile(v *viper.Viper, path string, required bool) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) && !required {
		return nil
	}
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("config path %s is a directory", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := v.MergeConfig(bytes.NewReader(data)); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// applyDotEnv reads the .env file without touching the process environment.
// Real environment variables still win over .env entries.
func applyDotEnv(v *viper.Viper, path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	values, err := godotenv.Read(path)
	if err != nil {
		return err
	}
	for _, key := range allKeys {
		name := EnvName(key)
		val, ok := values[name]
		if !ok {
			continue
		}
		if _, set := os.LookupEnv(name); set {
			continue
		}
		v.Set(key, val)
	}
	return nil
}
