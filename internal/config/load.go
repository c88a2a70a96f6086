package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// LoadConfig carrega a configuração de <configName>.env (em ./configs ou .),
// com as variáveis de ambiente sobrepondo o arquivo e os valores padrão.
func LoadConfig(configName string) (*Config, error) {
	return loadConfig(fmt.Sprintf("%s.env", configName), "env")
}

// loadConfig aplica as camadas: padrões, arquivo (se houver), ambiente e validação.
func loadConfig(configName, configType string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName(configName)
	if configType != "" {
		v.SetConfigType(configType)
	}
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			fmt.Printf("INFO: arquivo de configuração '%s' não encontrado, usando ambiente e padrões.\n", configName)
		} else {
			fmt.Printf("WARNING: erro ao ler o arquivo de configuração (%s): %v\n", v.ConfigFileUsed(), err)
		}
	} else {
		fmt.Printf("INFO: configuração carregada de %s\n", v.ConfigFileUsed())
	}

	v.AutomaticEnv()

	config := &Config{
		Application: ApplicationConfig{
			Env:  v.GetString("APP_ENV"),
			Name: v.GetString("APP_NAME"),
		},
		Logging: LoggingConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		Server: ServerConfig{
			Port:            v.GetInt("SERVER_PORT"),
			ShutdownTimeout: v.GetDuration("SERVER_SHUTDOWN_TIMEOUT"),
			ReadTimeout:     v.GetDuration("SERVER_READ_TIMEOUT"),
			WriteTimeout:    v.GetDuration("SERVER_WRITE_TIMEOUT"),
			IdleTimeout:     v.GetDuration("SERVER_IDLE_TIMEOUT"),
		},
		Upload: UploadConfig{
			MaxSizeMB: v.GetInt64("UPLOAD_MAX_SIZE_MB"),
		},
		Export: ExportConfig{
			ControlCode: v.GetString("EXPORT_CONTROL_CODE"),
			OutputDir:   v.GetString("EXPORT_OUTPUT_DIR"),
		},
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("configuração inválida: %w", err)
	}
	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "production")
	v.SetDefault("APP_NAME", "conciliacao-service")
	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("SERVER_PORT", 8084)
	v.SetDefault("SERVER_SHUTDOWN_TIMEOUT", 15*time.Second)
	v.SetDefault("SERVER_READ_TIMEOUT", 60*time.Second)
	v.SetDefault("SERVER_WRITE_TIMEOUT", 120*time.Second)
	v.SetDefault("SERVER_IDLE_TIMEOUT", 120*time.Second)

	v.SetDefault("UPLOAD_MAX_SIZE_MB", 32)

	v.SetDefault("EXPORT_CONTROL_CODE", "")
	v.SetDefault("EXPORT_OUTPUT_DIR", "uploads")
}
