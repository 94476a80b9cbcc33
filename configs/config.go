package configs

import (
	"errors"

	"github.com/Nehal2048/book-hive/internal/logger"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type Config struct {
	Server struct {
		Addr string `mapstructure:"addr"`
	} `mapstructure:"server"`
	DB struct {
		DSN string `mapstructure:"dsn"`
	} `mapstructure:"db"`
	JWT struct {
		SECRET string `mapstructure:"secret"`
	} `mapstructure:"jwt"`
	Seed struct {
		Enabled bool `mapstructure:"enabled"`
	} `mapstructure:"seed"`
}

var AppConfig Config

func LoadConfig() {
	viper.AddConfigPath("./configs")
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetDefault("server.addr", ":8080")
	viper.AutomaticEnv()

	var fileLookupError viper.ConfigFileNotFoundError
	if err := viper.ReadInConfig(); err != nil {
		if errors.As(err, &fileLookupError) {
			logger.Log.Fatal("config file not found", zap.Error(err))
		}
		logger.Log.Fatal("failed to read config", zap.Error(err))
	}

	viper.Unmarshal(&AppConfig)
}
