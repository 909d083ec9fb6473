package config

import (
	"github.com/knadh/koanf/providers/confmap"
)

func DefaultConfig() map[string]interface{} {
	return map[string]interface{}{
		"storage": map[string]interface{}{
			"data_file": "reminders_data.json", // relative to the working directory
			"backend":   "auto",
		},
		"ui": map[string]interface{}{
			"colored_output": true,
			"show_created":   false,
			"render_details": true,
		},
		"mcp": map[string]interface{}{
			"autosave": true,
		},
	}
}

func NewDefaultProvider() *confmap.Confmap {
	return confmap.Provider(DefaultConfig(), ".")
}

func GetDefaultConfigPath() string {
	return "~/.reminders/config.yaml"
}
