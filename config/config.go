package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

type Config struct {
	DBDriver         string `yaml:"db_driver"`
	DBDSN            string `yaml:"db_dsn"`
	ListenAddr       string `yaml:"listen_addr"`
	FetchChunkSize   int    `yaml:"fetch_chunk_size"`
	FetchParallelism int    `yaml:"fetch_parallelism"`
	SummarySchedule  string `yaml:"summary_schedule"`
	LogLevel         string `yaml:"log_level"`
}

const (
	defaultConfigPath       = "./repairwip.yaml"
	defaultDBDriver         = "sqlite3"
	defaultDBDSN            = "./repairwip.db?_journal_mode=WAL&_busy_timeout=5000"
	defaultListenAddr       = ":8080"
	defaultFetchChunkSize   = 1000
	defaultFetchParallelism = 4
	defaultLogLevel         = "info"
)

var (
	cfg Config
	mu  sync.RWMutex
)

// Path returns the config file location, honouring REPAIRWIP_CONFIG.
func Path() string {
	if p := os.Getenv("REPAIRWIP_CONFIG"); p != "" {
		return p
	}
	return defaultConfigPath
}

// LoadConfig reads the YAML file at path, applies environment overrides and
// defaults, and makes the result available through GetConfig. A missing
// file is not an error.
func LoadConfig(path string) (Config, error) {
	var loaded Config
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("read %s: %w", path, err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, &loaded); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	if err := applyEnvOverrides(&loaded); err != nil {
		return Config{}, err
	}
	applyDefaults(&loaded)

	mu.Lock()
	cfg = loaded
	mu.Unlock()
	return loaded, nil
}

func GetConfig() Config {
	mu.RLock()
	defer mu.RUnlock()
	return cfg
}

func applyEnvOverrides(c *Config) error {
	envOverride(&c.DBDriver, "REPAIRWIP_DB_DRIVER")
	envOverride(&c.DBDSN, "REPAIRWIP_DB_DSN")
	envOverride(&c.ListenAddr, "REPAIRWIP_LISTEN_ADDR")
	envOverride(&c.SummarySchedule, "REPAIRWIP_SUMMARY_SCHEDULE")
	envOverride(&c.LogLevel, "REPAIRWIP_LOG_LEVEL")
	if err := envOverrideInt(&c.FetchChunkSize, "REPAIRWIP_FETCH_CHUNK_SIZE"); err != nil {
		return err
	}
	return envOverrideInt(&c.FetchParallelism, "REPAIRWIP_FETCH_PARALLELISM")
}

func applyDefaults(c *Config) {
	if c.DBDriver == "" {
		c.DBDriver = defaultDBDriver
	}
	if c.DBDSN == "" {
		c.DBDSN = defaultDBDSN
	}
	if c.ListenAddr == "" {
		c.ListenAddr = defaultListenAddr
	}
	// The production database rejects more than 1000 bind parameters.
	if c.FetchChunkSize <= 0 || c.FetchChunkSize > defaultFetchChunkSize {
		c.FetchChunkSize = defaultFetchChunkSize
	}
	if c.FetchParallelism <= 0 {
		c.FetchParallelism = defaultFetchParallelism
	}
	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}
	c.SummarySchedule = strings.TrimSpace(c.SummarySchedule)
}

func envOverride(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func envOverrideInt(dst *int, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return fmt.Errorf("%s must be an integer: %w", key, err)
	}
	*dst = n
	return nil
}
