package config

const (
	DefaultBackendURL      = "http://localhost:8080"
	DefaultSystemPrompt    = "Eres el Asistente Académico UCACUE."
	DefaultTemperature     = 0.5
	DefaultMaxTokens       = 512
	DefaultRecorderCommand = "arecord -q -f cd"
)

func DefaultSystemConfig() *SystemConfig {
	return &SystemConfig{
		DataDirectory: "~/.local/share/aula",
	}
}

func DefaultUserConfig() *UserConfig {
	return &UserConfig{
		Backend: BackendConfig{
			URL:         DefaultBackendURL,
			Temperature: DefaultTemperature,
			MaxTokens:   DefaultMaxTokens,
		},
		DarkTheme: false,
	}
}

func GenerateSystemConfigTemplate() string {
	return `# AULA System Configuration
# Location: ~/.config/aula/settings.toml
# This file uses TOML format: https://toml.io

# Directory where conversations and user config are stored
data_directory = "~/.local/share/aula"
`
}

func GenerateUserConfigTemplate() string {
	return `# AULA User Configuration
# Location: <data_directory>/config.toml
# This file uses TOML format: https://toml.io

# System instruction prepended to every chat completion (optional)
system_prompt = ""

# Command used to capture audio while recording. The path of the capture
# file is appended as its last argument.
recorder_command = "arecord -q -f cd"

# Start with the dark palette
dark_theme = false

[backend]
# Base URL of the assistant backend
url = "http://localhost:8080"

# Sampling temperature for chat completions
temperature = 0.5

# Token limit per chat completion
max_tokens = 512
`
}
