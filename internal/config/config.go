// Package config reúne a configuração do serviço de conciliação: servidor
// HTTP, logging, limites de upload e parâmetros de exportação.
package config

import (
	"errors"
	"strings"
	"time"

	"go.uber.org/zap/zapcore"
)

// Config holds the complete application configuration.
type Config struct {
	Application ApplicationConfig
	Logging     LoggingConfig
	Server      ServerConfig
	Upload      UploadConfig
	Export      ExportConfig
}

// ApplicationConfig contains general application configuration
type ApplicationConfig struct {
	Env  string
	Name string
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level string
}

// ServerConfig contains HTTP server configuration settings
type ServerConfig struct {
	Port            int           // porta de escuta
	ShutdownTimeout time.Duration // tempo de espera no desligamento
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
}

// UploadConfig limita o tamanho do formulário multipart.
type UploadConfig struct {
	MaxSizeMB int64
}

// MaxBytes devolve o limite em bytes.
func (u UploadConfig) MaxBytes() int64 {
	return u.MaxSizeMB << 20
}

// ExportConfig controla a geração dos arquivos de importação.
type ExportConfig struct {
	ControlCode string // vazio: usa o código do estabelecimento
	OutputDir   string // pasta padrão da CLI
}

func (c *Config) validate() error {
	var validationErrors []string

	if c.Application.Name == "" {
		validationErrors = append(validationErrors, "APP_NAME é obrigatório")
	}
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(c.Logging.Level)); err != nil {
		validationErrors = append(validationErrors, "LOG_LEVEL inválido: "+c.Logging.Level)
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		validationErrors = append(validationErrors, "SERVER_PORT deve estar entre 1 e 65535")
	}
	if c.Server.ShutdownTimeout <= 0 {
		validationErrors = append(validationErrors, "SERVER_SHUTDOWN_TIMEOUT deve ser maior que 0")
	}
	if c.Server.ReadTimeout <= 0 {
		validationErrors = append(validationErrors, "SERVER_READ_TIMEOUT deve ser maior que 0")
	}
	if c.Server.WriteTimeout <= 0 {
		validationErrors = append(validationErrors, "SERVER_WRITE_TIMEOUT deve ser maior que 0")
	}
	if c.Server.IdleTimeout <= 0 {
		validationErrors = append(validationErrors, "SERVER_IDLE_TIMEOUT deve ser maior que 0")
	}

	if c.Upload.MaxSizeMB <= 0 {
		validationErrors = append(validationErrors, "UPLOAD_MAX_SIZE_MB deve ser maior que 0")
	}

	if c.Export.ControlCode != "" && strings.TrimFunc(c.Export.ControlCode, isDigit) != "" {
		validationErrors = append(validationErrors, "EXPORT_CONTROL_CODE deve conter apenas dígitos")
	}
	if c.Export.OutputDir == "" {
		validationErrors = append(validationErrors, "EXPORT_OUTPUT_DIR é obrigatório")
	}

	if len(validationErrors) > 0 {
		return errors.New(strings.Join(validationErrors, ", "))
	}
	return nil
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
