/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/josephgoksu/Taskify/internal/config"
	"github.com/josephgoksu/Taskify/types"
)

const (
	configName = ".taskify"
	envPrefix  = "TASKIFY"
)

// GlobalAppConfig holds the global application configuration instance.
var GlobalAppConfig types.AppConfig

// InitConfig reads in config file and ENV variables if set.
func InitConfig() {
	// A missing .env is fine.
	_ = godotenv.Load()

	viper.SetEnvPrefix(envPrefix)                          // e.g., TASKIFY_VERBOSE
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // data.dir -> TASKIFY_DATA_DIR
	viper.AutomaticEnv()

	setDefaults()

	cfgFileFlag := viper.GetString("config")
	if cfgFileFlag != "" {
		viper.SetConfigFile(cfgFileFlag)
	} else {
		// ./.taskify/.taskify.yaml wins over $HOME/.taskify.yaml and ./.taskify.yaml
		if info, err := os.Stat(configName); err == nil && info.IsDir() {
			viper.AddConfigPath(configName)
		}
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(configName)
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	} else if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "No config file found. Using defaults and environment variables.")
		}
	} else if cfgFileFlag != "" && errors.Is(err, os.ErrNotExist) {
		fmt.Fprintln(os.Stderr, "Error: Specified config file not found:", cfgFileFlag)
	} else {
		fmt.Fprintln(os.Stderr, "Error reading config file:", viper.ConfigFileUsed(), "-", err)
	}
}

func setDefaults() {
	viper.SetDefault("data.backend", config.DefaultBackend)
	viper.SetDefault("submit.delay", config.DefaultSubmitDelay)
	viper.SetDefault("quotes.idle", config.DefaultQuoteIdle)
	viper.SetDefault("export.dir", config.DefaultExportDir)
}

// loadAppConfig unmarshals and validates the configuration. The data
// directory falls back to the resolved default location.
func loadAppConfig() (types.AppConfig, error) {
	var cfg types.AppConfig
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("unmarshal config: %w", err)
	}
	if cfg.Data.Dir == "" {
		cfg.Data.Dir = config.GetDataDir()
	}
	if cfg.Data.Backend == "" {
		cfg.Data.Backend = config.DefaultBackend
	}
	if cfg.Export.Dir == "" {
		cfg.Export.Dir = config.DefaultExportDir
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// GetConfig returns a pointer to the global types.AppConfig instance.
func GetConfig() *types.AppConfig {
	return &GlobalAppConfig
}
