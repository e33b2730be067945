package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"
)

// ConfigFileName is the file FindConfig looks for.
const ConfigFileName = "basic.yml"

// ConfigEnv names the environment variable that points at a config file.
const ConfigEnv = "BASIC_CONFIG"

// HomeEnv overrides the directory holding per-user state such as history.
const HomeEnv = "BASIC_HOME"

// ErrConfigNotFound is returned by FindConfig when no basic.yml exists in the
// start directory or any of its parents.
var ErrConfigNotFound = errors.New("basic.yml not found")

// Config holds the settings shared by the file runner and the REPL.
type Config struct {
	// Path is the absolute path of the file the config was read from, empty
	// for defaults.
	Path               string   `yaml:"-"`
	Prompt             string   `yaml:"prompt"`
	ContinuationPrompt string   `yaml:"continuation_prompt"`
	HistoryFile        string   `yaml:"history_file"`
	NoEcho             bool     `yaml:"no_echo"`
	NoColor            bool     `yaml:"no_color"`
	MaxCallDepth       int      `yaml:"max_call_depth"`
	ParseCacheSize     int      `yaml:"parse_cache_size"`
	Preload            []string `yaml:"preload"`
}

// ValidationError aggregates config validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "config: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("config validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// DefaultConfig returns the settings used when no file is present.
func DefaultConfig() Config {
	cfg := Config{
		Prompt:             "basic> ",
		ContinuationPrompt: "  ...> ",
	}
	if home, err := ResolveHome(); err == nil {
		cfg.HistoryFile = filepath.Join(home, "history")
	}
	return cfg
}

// ResolveHome returns $BASIC_HOME, or ~/.basic when unset.
func ResolveHome() (string, error) {
	if home := strings.TrimSpace(os.Getenv(HomeEnv)); home != "" {
		abs, err := filepath.Abs(home)
		if err != nil {
			return "", fmt.Errorf("resolve %s %q: %w", HomeEnv, home, err)
		}
		return abs, nil
	}
	userHome, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve user home: %w", err)
	}
	return filepath.Join(userHome, ".basic"), nil
}

// LoadConfig parses a config file, fills unset fields from DefaultConfig and
// validates the result. Relative preload paths are resolved against the
// config file's directory. An empty file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", absPath, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var cfg Config
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: parse %s: %w", absPath, err)
	}
	cfg.Path = absPath
	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	base := filepath.Dir(absPath)
	for i, entry := range cfg.Preload {
		if !filepath.IsAbs(entry) {
			cfg.Preload[i] = filepath.Join(base, entry)
		}
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() error {
	if err := mergo.Merge(c, DefaultConfig()); err != nil {
		return fmt.Errorf("config: apply defaults: %w", err)
	}
	return nil
}

func (c *Config) validate() error {
	var errs ValidationError
	if c.MaxCallDepth < 0 {
		errs.Issues = append(errs.Issues, fmt.Sprintf("max_call_depth must not be negative (got %d)", c.MaxCallDepth))
	}
	for name, prompt := range map[string]string{"prompt": c.Prompt, "continuation_prompt": c.ContinuationPrompt} {
		if strings.ContainsAny(prompt, "\r\n") {
			errs.Issues = append(errs.Issues, fmt.Sprintf("%s must be a single line", name))
		}
	}
	for i, entry := range c.Preload {
		if strings.TrimSpace(entry) == "" {
			errs.Issues = append(errs.Issues, fmt.Sprintf("preload[%d] must be a non-empty path", i))
		}
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

// FindConfig walks from start up to the filesystem root looking for
// basic.yml.
func FindConfig(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolve start directory %q: %w", start, err)
	}
	if info, statErr := os.Stat(dir); statErr == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	origin := dir
	for {
		candidate := filepath.Join(dir, ConfigFileName)
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no %s found from %s upwards: %w", ConfigFileName, origin, ErrConfigNotFound)
		}
		dir = parent
	}
}

// ResolveConfig picks the config for a session: an explicit path wins, then
// $BASIC_CONFIG, then the nearest basic.yml above start. With none of those
// the defaults are returned.
func ResolveConfig(explicit, start string) (*Config, error) {
	if explicit = strings.TrimSpace(explicit); explicit != "" {
		return LoadConfig(explicit)
	}
	if env := strings.TrimSpace(os.Getenv(ConfigEnv)); env != "" {
		return LoadConfig(env)
	}
	path, err := FindConfig(start)
	if err == nil {
		return LoadConfig(path)
	}
	if !errors.Is(err, ErrConfigNotFound) {
		return nil, err
	}
	cfg := DefaultConfig()
	return &cfg, nil
}
