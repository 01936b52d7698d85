package config

import (
	"errors"

	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig
	Redis   RedisConfig
	Sora    SoraConfig
	Storage StorageConfig
	Poller  PollerConfig
	Logger  Logger
}

type ServerConfig struct {
	AppVersion   string
	Port         string
	Mode         string
	ReadTimeout  int
	WriteTimeout int
	IdleTimeout  int
}

type RedisConfig struct {
	RedisAddr     string
	RedisPassword string
	DB            int
	MinIdleConns  int
	PoolSize      int
	PoolTimeout   int
	VideoCacheTTL int
}

type SoraConfig struct {
	APIKey         string
	BaseURL        string
	DefaultModel   string
	DefaultSize    string
	DefaultSeconds int
	MaxFileSize    int64
}

type StorageConfig struct {
	VideoPath    string
	MaxDiskUsage float64
}

type PollerConfig struct {
	InitialInterval int
	MaxInterval     int
	DefaultTimeout  int
	MaxTimeout      int
}

type Logger struct {
	Development       bool
	DisableCaller     bool
	DisableStacktrace bool
	Encoding          string
	Level             string
}

func LoadConfig(filename string) (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigFile(filename)
	v.AddConfigPath(".")
	v.AutomaticEnv()
	if err := v.ReadInConfig(); err != nil {
		var configFileNotFound viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFound) {
			return nil, errors.New("config file not found")
		}
		return nil, err
	}
	return v, nil
}

func ParseConfig(v *viper.Viper) (*Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, err
	}
	// The API key is never kept in config.yml, only in the environment.
	if key := v.GetString("SORA_API_KEY"); key != "" {
		c.Sora.APIKey = key
	}
	return &c, nil
}
