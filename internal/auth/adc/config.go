package adc

import (
	"os"
	"path/filepath"
	"strings"
)

// GCloudProject returns core.project from the active gcloud configuration,
// or "" when unset.
func GCloudProject() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	root := filepath.Join(home, ".config", "gcloud")

	active := "default"
	if data, err := os.ReadFile(filepath.Join(root, "active_config")); err == nil { // #nosec G304 -- gcloud config
		if name := strings.TrimSpace(string(data)); name != "" {
			active = name
		}
	}

	data, err := os.ReadFile(filepath.Join(root, "configurations", "config_"+active)) // #nosec G304 -- gcloud config
	if err != nil {
		return ""
	}
	return iniValue(string(data), "core", "project")
}

// iniValue returns key from section in gcloud's INI format.
func iniValue(content, section, key string) string {
	current := ""
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			current = strings.Trim(line, "[]")
			continue
		}
		if current != section {
			continue
		}
		name, value, ok := strings.Cut(line, "=")
		if ok && strings.TrimSpace(name) == key {
			return strings.TrimSpace(value)
		}
	}
	return ""
}
