package config

import (
	"fmt"
	"sync"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Address string `mapstructure:"address"`
	Port    int    `mapstructure:"port"`
	Mode    string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Path    string `mapstructure:"path"`
	LogMode bool   `mapstructure:"log_mode"`
}

type JWTConfig struct {
	Secret             string `mapstructure:"secret"`
	Issuer             string `mapstructure:"issuer"`
	AccessExpireMins   int    `mapstructure:"access_expire_mins"`
	RefreshExpireHours int    `mapstructure:"refresh_expire_hours"`
}

type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

type StorageConfig struct {
	Dir     string `mapstructure:"dir"`      // root of the local object store
	BaseURL string `mapstructure:"base_url"` // public URL prefix for stored objects
	TmpDir  string `mapstructure:"tmp_dir"`  // scratch dir for files being built
}

type OCRConfig struct {
	Endpoint       string `mapstructure:"endpoint"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"` // empty disables redis features
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	RateRPS  int    `mapstructure:"rate_rps"` // allowed requests per second per IP
}

type KeepaliveConfig struct {
	URL          string `mapstructure:"url"` // empty disables the ping
	IntervalMins int    `mapstructure:"interval_mins"`
}

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Log       LogConfig       `mapstructure:"log"`
	Storage   StorageConfig   `mapstructure:"storage"`
	OCR       OCRConfig       `mapstructure:"ocr"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Keepalive KeepaliveConfig `mapstructure:"keepalive"`
}

var (
	appConfig *Config
	once      sync.Once
)

// Load loads configuration from given file path (e.g. "config.yaml").
// If path is empty, it defaults to "config.yaml" in current working directory.
func Load(path string) (*Config, error) {
	var err error
	once.Do(func() {
		v := viper.New()

		if path == "" {
			v.SetConfigName("config")
			v.SetConfigType("yaml")
			v.AddConfigPath(".")
		} else {
			v.SetConfigFile(path)
		}

		// environment overrides, e.g. FINMAN_SERVER_PORT=9000
		v.SetEnvPrefix("FINMAN")
		v.AutomaticEnv()

		if err = v.ReadInConfig(); err != nil {
			err = fmt.Errorf("read config: %w", err)
			return
		}

		var c Config
		if err = v.Unmarshal(&c); err != nil {
			err = fmt.Errorf("unmarshal config: %w", err)
			return
		}

		appConfig = &c
	})

	if err != nil {
		return nil, err
	}
	return appConfig, nil
}

// Get returns the loaded global configuration.
// Call Load() once at application startup.
func Get() *Config {
	return appConfig
}
