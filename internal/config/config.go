package config

import (
	"github.com/spf13/viper"
)

// Config is the top-level engine configuration.
type Config struct {
	LogLevel string       `mapstructure:"log_level"`
	Module   ModuleConfig `mapstructure:"module"`
	Wasm     WasmConfig   `mapstructure:"wasm"`
	Server   ServerConfig `mapstructure:"server"`
}

// ModuleConfig locates the computation module on disk.
type ModuleConfig struct {
	// Directory containing module.yaml and the wasm binary.
	Dir string `mapstructure:"dir"`
}

// WasmConfig holds wasm runtime configuration.
type WasmConfig struct {
	// Memory limit for the module (in pages, 64KB each).
	MemoryPages uint32 `mapstructure:"memory_pages"`
	// Enable debug logging.
	Debug bool `mapstructure:"debug"`
	// Compilation cache directory.
	CacheDir string `mapstructure:"cache_dir"`
}

// ServerConfig holds the connection settings for the resume server the
// request client talks to.
type ServerConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// Load reads configuration from an optional file over the defaults.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("log_level", "info")
	v.SetDefault("module.dir", "./module")

	v.SetDefault("wasm.memory_pages", 256) // 16MB
	v.SetDefault("wasm.debug", false)
	v.SetDefault("wasm.cache_dir", "")

	v.SetDefault("server.base_url", "http://localhost:3100/api")
	v.SetDefault("server.timeout_seconds", 30)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
