package auth

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hxeb/hxebclass/cmd/application"
	"github.com/hxeb/hxebclass/internal/auth"
	"github.com/hxeb/hxebclass/internal/cmd/emoji"
	"github.com/hxeb/hxebclass/pkg/constants"
)

// Replaced in tests.
var (
	lookPath    = exec.LookPath
	execCommand = exec.CommandContext
)

// NewLoginCommand creates the auth login subcommand.
func NewLoginCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate with gcloud for the Classroom API",
		Long: `Run 'gcloud auth application-default login' with the Classroom scopes
and verify the resulting credentials.

Skipped when working credentials are already present, unless --force.`,
		Example: `  hxebclass auth login
  hxebclass auth login --force
  hxebclass auth login --project hxeb-classroom`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			force, _ := cmd.Flags().GetBool("force")
			project, _ := cmd.Flags().GetString("project")
			return runLogin(cmd, app, force, project)
		},
	}
	cmd.Flags().Bool("force", false, "Force re-authentication")
	cmd.Flags().String("project", "", "Quota project to set after login")
	return cmd
}

func runLogin(cmd *cobra.Command, app application.Application, force bool, project string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	checker := auth.NewChecker(app.CredentialsFile())

	if !force {
		if status := checker.Verify(ctx); status.State == auth.StateVerified {
			fmt.Fprintf(out, "%s Already authenticated: %s\n", emoji.Success, status.Summary)
			return nil
		}
	}

	if _, err := lookPath("gcloud"); err != nil {
		return fmt.Errorf("gcloud CLI not found, install the Google Cloud SDK: https://cloud.google.com/sdk/docs/install")
	}

	fmt.Fprintln(out, "Authenticating with Google Cloud, this opens your browser...")
	login := execCommand(ctx, "gcloud", "auth", "application-default", "login",
		"--scopes="+strings.Join(loginScopes(), ","))
	login.Stdout = out
	login.Stderr = cmd.ErrOrStderr()
	login.Stdin = os.Stdin
	if err := login.Run(); err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}

	if project != "" {
		quota := execCommand(ctx, "gcloud", "auth", "application-default", "set-quota-project", project)
		if combined, err := quota.CombinedOutput(); err != nil {
			fmt.Fprintf(out, "%s Could not set quota project: %s\n", emoji.Warning, combined)
		}
	}

	status := checker.Verify(ctx)
	if status.State != auth.StateVerified {
		return fmt.Errorf("credentials not usable after login: %s", status.Error)
	}
	fmt.Fprintf(out, "%s Authenticated: %s\n", emoji.Success, status.Summary)
	return nil
}

// loginScopes adds the cloud-platform scope gcloud requires for
// application default credentials.
func loginScopes() []string {
	const cloudPlatform = "https://www.googleapis.com/auth/cloud-platform"
	return append([]string{cloudPlatform}, constants.ClassroomScopes...)
}
