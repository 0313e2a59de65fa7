package adc

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// State is the local state of the credentials file.
type State int

// Credential file states.
const (
	StateConfigured State = iota
	StateMissing
	StateInvalid
)

// Details describes the credentials the Classroom client will use.
type Details struct {
	State         State
	Type          string // "User Credentials" | "Service Account"
	Account       string
	Project       string
	ProjectSource string
	Path          string
	LastAuth      time.Time
	ErrorMessage  string
}

// BuildDetails inspects the credentials file that FindFile selects.
func BuildDetails(explicit string) *Details {
	path := FindFile(explicit)
	if path == "" {
		return &Details{
			State:        StateMissing,
			ErrorMessage: "No credentials found. Run: hxebclass auth login",
		}
	}

	file, err := ParseFile(path)
	if err != nil {
		return &Details{
			State:        StateInvalid,
			Path:         path,
			ErrorMessage: fmt.Sprintf("credentials file invalid: %v", err),
		}
	}

	d := &Details{
		State:   StateConfigured,
		Type:    "User Credentials",
		Account: file.Account,
		Path:    path,
	}
	if file.Type == TypeServiceAccount {
		d.Type = "Service Account"
		d.Account = file.ClientEmail
	}
	if d.Account == "" && file.ClientID != "" {
		d.Account = "(client ID: " + file.ClientID + ")"
	}
	if stat, err := os.Stat(path); err == nil {
		d.LastAuth = stat.ModTime()
	}
	d.Project, d.ProjectSource = resolveProject(file)
	return d
}

func resolveProject(file *File) (project, source string) {
	switch {
	case file.QuotaProjectID != "":
		return file.QuotaProjectID, "credentials (quota_project_id)"
	case file.ProjectID != "":
		return file.ProjectID, "credentials (project_id)"
	case os.Getenv("GOOGLE_CLOUD_PROJECT") != "":
		return os.Getenv("GOOGLE_CLOUD_PROJECT"), "env (GOOGLE_CLOUD_PROJECT)"
	}
	if p := GCloudProject(); p != "" {
		return p, "gcloud config"
	}
	return "", "not set"
}

// FormatBrief returns a one-line summary, for example
// "User Credentials, admin@example.org, Project: hxeb-classroom".
func FormatBrief(d *Details) string {
	if d.State != StateConfigured {
		return d.ErrorMessage
	}
	parts := []string{d.Type}
	if d.Account != "" {
		parts = append(parts, d.Account)
	}
	if d.Project != "" {
		parts = append(parts, "Project: "+d.Project)
	} else {
		parts = append(parts, "No project set")
	}
	return strings.Join(parts, ", ")
}
