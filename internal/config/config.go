package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/yosuke-furukawa/json5/encoding/json5"
)

const (
	DirName         = "jobrater"
	ConfigFileName  = "config.json"
	ProxiesFileName = "proxies.txt"
)

// Config holds runtime settings: server address and CORS allowlist,
// pipeline worker counts, pacing delays, the outbound request timeout,
// and WooCommerce credentials for the customer lookup. Values come
// from the config file with JOBRATER_* env overrides.
type Config struct {
	ListenAddr     string   `json:"listen_addr"`
	AllowedOrigins []string `json:"allowed_origins"`

	ListWorkers  int `json:"list_workers"`
	EntryWorkers int `json:"entry_workers"`

	ListingDelayMS   int `json:"listing_delay_ms"`
	DetailDelayMinMS int `json:"detail_delay_min_ms"`
	DetailDelayMaxMS int `json:"detail_delay_max_ms"`
	TimeoutSeconds   int `json:"timeout_seconds"`

	WooURL    string `json:"woo_url"`
	WooKey    string `json:"woo_key"`
	WooSecret string `json:"woo_secret"`
}

func DefaultConfig() Config {
	return Config{
		ListenAddr:       envString("JOBRATER_LISTEN_ADDR", ":8000"),
		AllowedOrigins:   envList("JOBRATER_ALLOWED_ORIGINS", []string{"http://localhost:8080"}),
		ListWorkers:      envInt("JOBRATER_LIST_WORKERS", 10),
		EntryWorkers:     envInt("JOBRATER_ENTRY_WORKERS", 32),
		ListingDelayMS:   envInt("JOBRATER_LISTING_DELAY_MS", 1000),
		DetailDelayMinMS: envInt("JOBRATER_DETAIL_DELAY_MIN_MS", 500),
		DetailDelayMaxMS: envInt("JOBRATER_DETAIL_DELAY_MAX_MS", 3000),
		TimeoutSeconds:   envInt("JOBRATER_TIMEOUT_SECONDS", 30),
		WooURL:           envString("JOBRATER_WOO_URL", ""),
		WooKey:           envString("JOBRATER_WOO_KEY", ""),
		WooSecret:        envString("JOBRATER_WOO_SECRET", ""),
	}
}

func (c Config) ListingDelay() time.Duration   { return time.Duration(c.ListingDelayMS) * time.Millisecond }
func (c Config) DetailDelayMin() time.Duration { return time.Duration(c.DetailDelayMinMS) * time.Millisecond }
func (c Config) DetailDelayMax() time.Duration { return time.Duration(c.DetailDelayMaxMS) * time.Millisecond }
func (c Config) Timeout() time.Duration        { return time.Duration(c.TimeoutSeconds) * time.Second }

func ConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, DirName), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName), nil
}

func ProxiesPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ProxiesFileName), nil
}

func Load() (Config, error) {
	cfg := DefaultConfig()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return cfg, nil
	}

	if err := json5.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Init writes default config.json and proxies.txt if they don't
// already exist, returning the paths it created.
func Init() ([]string, error) {
	var created []string

	dir, err := ConfigDir()
	if err != nil {
		return created, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return created, err
	}

	configPath := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		data, err := json.MarshalIndent(DefaultConfig(), "", "  ")
		if err != nil {
			return created, err
		}
		if err := os.WriteFile(configPath, append(data, '\n'), 0o644); err != nil {
			return created, err
		}
		created = append(created, configPath)
	}

	proxiesPath := filepath.Join(dir, ProxiesFileName)
	if _, err := os.Stat(proxiesPath); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(proxiesPath, []byte(""), 0o644); err != nil {
			return created, err
		}
		created = append(created, proxiesPath)
	}

	return created, nil
}

// LoadProxies resolves the proxy list: the flag value wins, then the
// JOBRATER_PROXIES env var, then proxies.txt in the config directory.
func LoadProxies(flagValue string) ([]string, error) {
	if strings.TrimSpace(flagValue) != "" {
		return splitCSV(flagValue), nil
	}
	if env := strings.TrimSpace(os.Getenv("JOBRATER_PROXIES")); env != "" {
		return splitCSV(env), nil
	}

	path, err := ProxiesPath()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var proxies []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		proxies = append(proxies, line)
	}
	return proxies, nil
}

func envString(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func envInt(key string, fallback int) int {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func envList(key string, fallback []string) []string {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback
	}
	return splitCSV(val)
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}
