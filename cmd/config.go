package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"monteuros/internal/backend"
	"monteuros/internal/logger"
	"monteuros/internal/server"
	"monteuros/internal/service"

	"github.com/spf13/viper"
)

const envPrefix = "MONTEUROS"

// appConfig is the resolved configuration of one process.
type appConfig struct {
	Port    string
	DBPath  string
	Log     logger.Options
	Backend backend.Config
	Scan    service.ScanOptions
	Server  server.Timeouts
}

// envAliases are the variable names used by the web frontend's env files.
var envAliases = map[string][]string{
	"backend.url": {"SUPABASE_URL", "VITE_SUPABASE_URL"},
	"backend.key": {"SUPABASE_ANON_KEY", "VITE_SUPABASE_ANON_KEY"},
}

// loadConfig reads path (or configs/config.yml when empty) and the environment.
// A missing default config file is not an error.
func loadConfig(path string) (*viper.Viper, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, aliases := range envAliases {
		names := append([]string{key, envPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))}, aliases...)
		if err := v.BindEnv(names...); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath("configs") // configs/config.yml
		v.SetConfigName("config")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	return v, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("db.path", "monteuros.db")
	v.SetDefault("log.level", logger.InfoLevel)
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age_days", 30)
	v.SetDefault("backend.timeout", 15*time.Second)
	v.SetDefault("scan.mock_latency", 500*time.Millisecond)
	v.SetDefault("scan.navigate_delay", 2*time.Second)
}

func newAppConfig(v *viper.Viper) appConfig {
	return appConfig{
		Port:   v.GetString("port"),
		DBPath: v.GetString("db.path"),
		Log: logger.Options{
			Level:      v.GetString("log.level"),
			File:       v.GetString("log.file"),
			MaxSizeMB:  v.GetInt("log.max_size_mb"),
			MaxBackups: v.GetInt("log.max_backups"),
			MaxAgeDays: v.GetInt("log.max_age_days"),
		},
		Backend: backend.Config{
			URL:       v.GetString("backend.url"),
			Key:       v.GetString("backend.key"),
			JWTSecret: v.GetString("backend.jwt_secret"),
			Timeout:   v.GetDuration("backend.timeout"),
		},
		Scan: service.ScanOptions{
			MockLatency:   v.GetDuration("scan.mock_latency"),
			NavigateDelay: v.GetDuration("scan.navigate_delay"),
		},
		Server: server.Timeouts{
			ReadHeader: v.GetDuration("server.read_header_timeout"),
			Write:      v.GetDuration("server.write_timeout"),
			Idle:       v.GetDuration("server.idle_timeout"),
		},
	}
}
