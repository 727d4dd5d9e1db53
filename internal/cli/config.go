package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/catalog/internal/catalog"
	"github.com/mesh-intelligence/catalog/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"
	envPrefix      = "CATALOG"

	cfgKeyBackend      = "backend"
	cfgKeyDataDir      = "data_dir"
	cfgKeyBaseURL      = "base_url"
	cfgKeyLimitMax     = "pagination.limit_max"
	cfgKeyLimitDefault = "pagination.limit_default"
	cfgKeyLogLevel     = "log_level"

	defaultBaseURL  = "http://localhost:8080"
	defaultLogLevel = "info"
)

// configFile is the structure written to a new config.yaml.
type configFile struct {
	Backend    string           `yaml:"backend"`
	DataDir    string           `yaml:"data_dir,omitempty"`
	BaseURL    string           `yaml:"base_url"`
	Pagination paginationConfig `yaml:"pagination"`
	LogLevel   string           `yaml:"log_level"`
}

type paginationConfig struct {
	LimitMax     int `yaml:"limit_max"`
	LimitDefault int `yaml:"limit_default"`
}

func defaultConfig() configFile {
	return configFile{
		Backend: types.BackendSQLite,
		BaseURL: defaultBaseURL,
		Pagination: paginationConfig{
			LimitMax:     catalog.DefaultLimitMax,
			LimitDefault: catalog.DefaultLimit,
		},
		LogLevel: defaultLogLevel,
	}
}

// loadConfig reads config.yaml from configDir, creating the directory and a
// default file on first run. CATALOG_* environment variables override file
// values, e.g. CATALOG_PAGINATION_LIMIT_MAX.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, fmt.Errorf("create config dir: %w", err)
	}
	if _, err := writeConfigIfMissing(filepath.Join(configDir, configFileExt), defaultConfig()); err != nil {
		return nil, fmt.Errorf("write default config: %w", err)
	}

	def := defaultConfig()
	v := viper.New()
	v.SetDefault(cfgKeyBackend, def.Backend)
	v.SetDefault(cfgKeyBaseURL, def.BaseURL)
	v.SetDefault(cfgKeyLimitMax, def.Pagination.LimitMax)
	v.SetDefault(cfgKeyLimitDefault, def.Pagination.LimitDefault)
	v.SetDefault(cfgKeyLogLevel, def.LogLevel)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, usageError{fmt.Errorf("read config: %w", err)}
	}
	return v, nil
}

// writeConfigIfMissing writes cfg to path unless the file exists. It
// reports whether the file was written.
func writeConfigIfMissing(path string, cfg configFile) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat config file: %w", err)
	}

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return false, err
	}
	return true, nil
}
