package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Tests     TestsConfig
	Runner    RunnerConfig
	Provider  ProviderConfig
	Artifacts ArtifactsConfig
	Static    StaticConfig
	Log       LogConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// TestsConfig holds the rendered-test directory configuration.
type TestsConfig struct {
	Dir        string
	AppBaseURL string
}

// RunnerConfig holds the external test-runner configuration.
type RunnerConfig struct {
	Bin  string
	Args []string
}

// ProviderConfig holds the process-wide AI provider defaults.
type ProviderConfig struct {
	Kind    string
	APIKey  string
	Model   string
	BaseURL string
	Region  string
}

// ArtifactsConfig holds run-artifact storage configuration.
type ArtifactsConfig struct {
	Kind     string // "local" or "s3"
	BaseDir  string
	S3Bucket string
	S3Region string
}

// StaticConfig holds the bundled UI directory configuration.
type StaticConfig struct {
	Dir string
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string
}

// LoadConfig loads configuration from file and environment variables.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")

	v.SetDefault("tests.dir", "./tests")
	v.SetDefault("tests.app_base_url", "http://localhost:3000")

	v.SetDefault("runner.bin", "testrunner")
	v.SetDefault("runner.args", []string{"run"})

	v.SetDefault("provider.kind", "ollama")
	v.SetDefault("provider.api_key", "")
	v.SetDefault("provider.model", "")
	v.SetDefault("provider.base_url", "")
	v.SetDefault("provider.region", "")

	v.SetDefault("artifacts.kind", "local")
	v.SetDefault("artifacts.base_dir", "./artifacts")
	v.SetDefault("artifacts.s3_bucket", "")
	v.SetDefault("artifacts.s3_region", "us-east-1")

	v.SetDefault("static.dir", "./ui")

	v.SetDefault("log.level", "info")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found; using defaults
	}

	var config Config

	config.Server.Host = v.GetString("server.host")
	config.Server.Port = v.GetInt("server.port")
	config.Server.ReadTimeout = v.GetDuration("server.read_timeout")
	config.Server.WriteTimeout = v.GetDuration("server.write_timeout")

	config.Tests.Dir = v.GetString("tests.dir")
	config.Tests.AppBaseURL = v.GetString("tests.app_base_url")

	config.Runner.Bin = v.GetString("runner.bin")
	config.Runner.Args = v.GetStringSlice("runner.args")

	config.Provider.Kind = v.GetString("provider.kind")
	config.Provider.APIKey = v.GetString("provider.api_key")
	config.Provider.Model = v.GetString("provider.model")
	config.Provider.BaseURL = v.GetString("provider.base_url")
	config.Provider.Region = v.GetString("provider.region")

	config.Artifacts.Kind = v.GetString("artifacts.kind")
	config.Artifacts.BaseDir = v.GetString("artifacts.base_dir")
	config.Artifacts.S3Bucket = v.GetString("artifacts.s3_bucket")
	config.Artifacts.S3Region = v.GetString("artifacts.s3_region")

	config.Static.Dir = v.GetString("static.dir")

	config.Log.Level = v.GetString("log.level")

	return &config, nil
}
