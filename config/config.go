package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

type Config struct {
	Server  ServerConfig
	Data    DataConfig
	Export  ExportConfig
	Logging LoggingConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type DataConfig struct {
	// .csv or .xlsx with Timestamp and Values columns
	Path string
}

type ExportConfig struct {
	Enabled bool
	Dir     string
}

type LoggingConfig struct {
	Level string
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if strings.TrimSpace(c.Data.Path) == "" {
		return fmt.Errorf("data.path is required")
	}
	if c.Export.Enabled && strings.TrimSpace(c.Export.Dir) == "" {
		return fmt.Errorf("export.dir is required when export is enabled")
	}
	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	return nil
}

// Load reads the config file at configPath, or looks for config.yaml in the
// usual places when configPath is empty. A missing file falls back to defaults.
// VOLTAGE_* environment variables override both.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/voltage-analytics")
	}

	setDefaults(v)

	v.SetEnvPrefix("VOLTAGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: v.GetString("server.host"),
			Port: v.GetInt("server.port"),
		},
		Data: DataConfig{
			Path: v.GetString("data.path"),
		},
		Export: ExportConfig{
			Enabled: v.GetBool("export.enabled"),
			Dir:     v.GetString("export.dir"),
		},
		Logging: LoggingConfig{
			Level: v.GetString("logging.level"),
		},
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 5000)

	v.SetDefault("data.path", "Sample_Data.csv")

	v.SetDefault("export.enabled", false)
	v.SetDefault("export.dir", ".")

	v.SetDefault("logging.level", "info")
}
