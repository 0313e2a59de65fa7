// Package adc inspects Google credential files locally, without network
// calls: application default credentials written by gcloud and
// service account keys.
package adc

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Credential file types.
const (
	TypeAuthorizedUser = "authorized_user"
	TypeServiceAccount = "service_account"
)

// EnvCredentials names the standard credentials file variable.
const EnvCredentials = "GOOGLE_APPLICATION_CREDENTIALS"

// File is the subset of a credentials JSON file hxebclass reports on.
type File struct {
	Type           string `json:"type"`
	QuotaProjectID string `json:"quota_project_id"`
	ProjectID      string `json:"project_id"`
	Account        string `json:"account"`
	ClientEmail    string `json:"client_email"`
	ClientID       string `json:"client_id"`
}

// FindFile returns the credentials file that will be used, or "".
//
// Search order:
//  1. explicit (classroom.credentials_file)
//  2. GOOGLE_APPLICATION_CREDENTIALS
//  3. ~/.config/gcloud/application_default_credentials.json
func FindFile(explicit string) string {
	for _, path := range []string{explicit, os.Getenv(EnvCredentials)} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	path := filepath.Join(home, ".config", "gcloud", "application_default_credentials.json")
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return ""
}

// ParseFile reads and validates a credentials file.
func ParseFile(path string) (*File, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user configured credentials file
	if err != nil {
		return nil, fmt.Errorf("cannot read file: %w", err)
	}

	var file File
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	switch file.Type {
	case "":
		return nil, fmt.Errorf("missing 'type' field")
	case TypeAuthorizedUser, TypeServiceAccount:
		return &file, nil
	default:
		return nil, fmt.Errorf("unknown type: %s", file.Type)
	}
}
