package config

import (
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Service         ServiceConfig        `mapstructure:"service"`
	Databases       DatabasesConfig      `mapstructure:"databases"`
	ExternalClients ExternalClientConfig `mapstructure:"externalClients"`
	Auth            AuthConfig           `mapstructure:"auth"`
	Prices          PricesConfig         `mapstructure:"prices"`
}

type ServiceType string

const (
	API    ServiceType = "API"
	WORKER ServiceType = "WORKER"
)

type ServiceConfig struct {
	Type ServiceType `mapstructure:"type"`
	Port string      `mapstructure:"port"`
}

type DatabasesConfig struct {
	SQL   SQLConfig   `mapstructure:"sql"`
	Redis RedisConfig `mapstructure:"redis"`
}

type SQLConfig struct {
	Host             string `mapstructure:"host"`
	Port             string `mapstructure:"port"`
	Username         string `mapstructure:"username"`
	Password         string `mapstructure:"password"`
	Database         string `mapstructure:"database"`
	ConnectionString string `mapstructure:"connection_string"`
	// When SecretARN is set the password is fetched from AWS Secrets Manager
	// instead of the config file.
	SecretARN string `mapstructure:"secretArn"`
	AWSRegion string `mapstructure:"awsRegion"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Database int    `mapstructure:"database"`
}

type ExternalClientConfig struct {
	Frankfurter FrankfurterConfig `mapstructure:"frankfurter"`
	Truncgil    TruncgilConfig    `mapstructure:"truncgil"`
}

type FrankfurterConfig struct {
	BaseURL string `mapstructure:"baseUrl"`
}

type TruncgilConfig struct {
	BaseURL string `mapstructure:"baseUrl"`
}

type AuthConfig struct {
	// HS256 secret shared with the identity provider that issues the tokens.
	Secret string `mapstructure:"secret"`
}

type PricesConfig struct {
	RefreshIntervalMinutes int `mapstructure:"refreshIntervalMinutes"`
}

func LoadConfig(path string) (*Config, error) {
	var cfg Config

	viper.AddConfigPath(path)
	viper.SetConfigName("appsettings")
	viper.SetConfigType("yaml")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}
	err = viper.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}
	if cfg.Prices.RefreshIntervalMinutes <= 0 {
		cfg.Prices.RefreshIntervalMinutes = 5
	}
	return &cfg, nil
}
