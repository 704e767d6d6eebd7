package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
)

type SystemConfig struct {
	DataDirectory string `toml:"data_directory"`
}

type BackendConfig struct {
	URL         string  `toml:"url"`
	Temperature float64 `toml:"temperature"`
	MaxTokens   int     `toml:"max_tokens"`
}

type UserConfig struct {
	Backend         BackendConfig `toml:"backend"`
	SystemPrompt    string        `toml:"system_prompt,omitempty"`
	RecorderCommand string        `toml:"recorder_command,omitempty"`
	DarkTheme       bool          `toml:"dark_theme"`
}

type Config struct {
	DataDirectory   string
	BackendURL      string
	SystemPrompt    string
	Temperature     float64
	MaxTokens       int
	RecorderCommand string
	DarkTheme       bool
}

var Debug = false
var DebugLog *log.Logger

func (c *Config) DataDir() string {
	return ExpandPath(c.DataDirectory)
}

func (c *Config) applyEnvOverrides() {
	if url := os.Getenv("AULA_BACKEND_URL"); url != "" {
		c.BackendURL = url
	}
	if dataDir := os.Getenv("AULA_DATA_DIR"); dataDir != "" {
		c.DataDirectory = dataDir
	}
}

func CheckDebug() bool {
	debug := os.Getenv("AULA_DEBUG")
	return debug == "true" || debug == "1"
}

func InitDebugLog(dataDir string) {
	if !CheckDebug() {
		return
	}

	Debug = true
	logPath := filepath.Join(dataDir, "debug.log")

	// 0600 - the debug log may contain message content
	f, err := os.OpenFile(logPath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not open debug log at %s: %v\n", logPath, err)
		return
	}

	DebugLog = log.New(f, "", log.Ldate|log.Ltime|log.Lmicroseconds|log.Lshortfile)
	DebugLog.Printf("=== Debug logging started (AULA_DEBUG=%s) ===", os.Getenv("AULA_DEBUG"))
}

func Load() (*Config, error) {
	systemCfg, err := LoadSystemConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load system config: %w", err)
	}

	cfg := &Config{DataDirectory: systemCfg.DataDirectory}

	// AULA_DATA_DIR must win before the data dir is created
	cfg.applyEnvOverrides()

	dataDir := cfg.DataDir()
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	userCfg, err := LoadUserConfig(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load user config: %w", err)
	}

	cfg.BackendURL = userCfg.Backend.URL
	cfg.Temperature = userCfg.Backend.Temperature
	cfg.MaxTokens = userCfg.Backend.MaxTokens
	cfg.SystemPrompt = userCfg.SystemPrompt
	cfg.RecorderCommand = userCfg.RecorderCommand
	cfg.DarkTheme = userCfg.DarkTheme
	cfg.applyEnvOverrides()

	if cfg.BackendURL == "" {
		cfg.BackendURL = DefaultBackendURL
	}
	if cfg.SystemPrompt == "" {
		cfg.SystemPrompt = DefaultSystemPrompt
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = DefaultTemperature
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}
	if cfg.RecorderCommand == "" {
		cfg.RecorderCommand = DefaultRecorderCommand
	}

	return cfg, nil
}
