package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App struct {
		Name string `mapstructure:"name"`
		Port string `mapstructure:"port"`
	} `mapstructure:"app"`

	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`

	PrivatBank struct {
		BaseURL            string        `mapstructure:"base_url"`
		Timeout            time.Duration `mapstructure:"timeout"`
		InsecureSkipVerify bool          `mapstructure:"insecure_skip_verify"`
	} `mapstructure:"privatbank"`

	Fetch struct {
		MaxDays int `mapstructure:"max_days"`
		Workers int `mapstructure:"workers"`
	} `mapstructure:"fetch"`

	Watch struct {
		Schedule string `mapstructure:"schedule"`
	} `mapstructure:"watch"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "privat-rates")
	v.SetDefault("app.port", "8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("privatbank.base_url", "https://api.privatbank.ua")
	v.SetDefault("privatbank.timeout", 30*time.Second)
	v.SetDefault("privatbank.insecure_skip_verify", false)
	v.SetDefault("fetch.max_days", 10)
	v.SetDefault("fetch.workers", 1)
	v.SetDefault("watch.schedule", "0 13 * * *")
}

func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("../config")
	v.AddConfigPath("../../config")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	// the tool is usable without a config file, defaults cover everything
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
