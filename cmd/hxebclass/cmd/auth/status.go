package auth

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hxeb/hxebclass/cmd/application"
	"github.com/hxeb/hxebclass/internal/auth"
	"github.com/hxeb/hxebclass/internal/cmd/emoji"
	"github.com/hxeb/hxebclass/internal/cmd/output"
	"github.com/hxeb/hxebclass/internal/cmd/table"
	"github.com/hxeb/hxebclass/pkg/constants"
	"github.com/hxeb/hxebclass/pkg/errors"
)

// statusRow is the JSON/YAML shape of auth status.
type statusRow struct {
	State         string    `json:"state" yaml:"state"`
	Type          string    `json:"type,omitempty" yaml:"type,omitempty"`
	Account       string    `json:"account,omitempty" yaml:"account,omitempty"`
	Project       string    `json:"project,omitempty" yaml:"project,omitempty"`
	ProjectSource string    `json:"project_source,omitempty" yaml:"project_source,omitempty"`
	Path          string    `json:"path,omitempty" yaml:"path,omitempty"`
	LastAuth      time.Time `json:"last_auth,omitzero" yaml:"last_auth,omitempty"`
	Error         string    `json:"error,omitempty" yaml:"error,omitempty"`
}

// NewStatusCommand creates the auth status subcommand.
func NewStatusCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show which credentials the Classroom client uses",
		Long: `Display the credentials file the Classroom client will use and verify
that an access token with the Classroom scopes can be obtained.

Use --local to inspect the credentials file without network calls.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			local, _ := cmd.Flags().GetBool("local")
			return runStatus(cmd, app, auth.NewChecker(app.CredentialsFile()), local)
		},
	}
	cmd.Flags().Bool("local", false, "Only inspect the credentials file")
	return cmd
}

func runStatus(cmd *cobra.Command, app application.Application, checker *auth.Checker, local bool) error {
	var status *auth.Status
	if local {
		status = checker.Check()
	} else {
		status = checker.Verify(cmd.Context())
	}

	row := toStatusRow(status)
	if err := output.Render(cmd.OutOrStdout(), output.DetectFormat(app.OutputFormat()), row,
		func(bool) table.Data { return statusTable(row, status.State) }); err != nil {
		return err
	}

	switch status.State {
	case auth.StateVerified, auth.StateConfigured:
		return nil
	default:
		return &errors.AuthenticationError{
			Service: constants.ClassroomService,
			Method:  "oauth",
			Message: "credentials " + status.State.String(),
		}
	}
}

func toStatusRow(status *auth.Status) statusRow {
	row := statusRow{State: status.State.String(), Error: status.Error}
	if d := status.Details; d != nil {
		row.Type = d.Type
		row.Account = d.Account
		row.Project = d.Project
		row.ProjectSource = d.ProjectSource
		row.Path = d.Path
		row.LastAuth = d.LastAuth
		if row.Error == "" {
			row.Error = d.ErrorMessage
		}
	}
	return row
}

func statusTable(row statusRow, state auth.State) table.Data {
	symbol := emoji.Error
	if state == auth.StateVerified || state == auth.StateConfigured {
		symbol = emoji.Success
	}

	rows := [][]string{
		{"State", fmt.Sprintf("%s %s", symbol, row.State)},
	}
	add := func(name, value string) {
		if value != "" {
			rows = append(rows, []string{name, value})
		}
	}
	add("Type", row.Type)
	add("Account", row.Account)
	if row.Project != "" {
		add("Project", fmt.Sprintf("%s (%s)", row.Project, row.ProjectSource))
	}
	add("File", row.Path)
	if !row.LastAuth.IsZero() {
		add("Last Auth", row.LastAuth.Local().Format("2006-01-02 15:04"))
	}
	add("Error", row.Error)
	return table.Data{Headers: []string{"Property", "Value"}, Rows: rows}
}
