/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package types

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// AppConfig represents the complete application configuration
type AppConfig struct {
	Verbose bool         `mapstructure:"verbose"`
	JSON    bool         `mapstructure:"json"`
	Quiet   bool         `mapstructure:"quiet"`
	Config  string       `mapstructure:"config"`
	Data    DataConfig   `mapstructure:"data" validate:"required"`
	Submit  SubmitConfig `mapstructure:"submit"`
	Quotes  QuotesConfig `mapstructure:"quotes"`
	Export  ExportConfig `mapstructure:"export"`
}

// DataConfig holds data storage configuration
type DataConfig struct {
	Dir     string `mapstructure:"dir" validate:"required"`
	Backend string `mapstructure:"backend" validate:"required,oneof=file sqlite"`
}

// SubmitConfig controls the add front door.
type SubmitConfig struct {
	Delay time.Duration `mapstructure:"delay" validate:"min=0"`
}

// QuotesConfig controls the inactivity quote popup.
type QuotesConfig struct {
	Idle time.Duration `mapstructure:"idle" validate:"min=0"`
}

// ExportConfig holds export defaults
type ExportConfig struct {
	Dir string `mapstructure:"dir" validate:"required"`
}

var validate = validator.New()

// Validate checks the configuration and reports every failing field.
func (c AppConfig) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed rule '%s'", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}
