package remote

import (
	"github.com/spf13/cobra"

	"github.com/hxeb/hxebclass/cmd/application"
	"github.com/hxeb/hxebclass/internal/cmd/output"
	"github.com/hxeb/hxebclass/internal/cmd/table"
	"github.com/hxeb/hxebclass/pkg/alias"
	"github.com/hxeb/hxebclass/pkg/classroom"
)

// NewDescribeCommand creates the remote describe subcommand.
func NewDescribeCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "describe <id|alias>",
		Aliases: []string{"show"},
		Short:   "Show a course with its teachers and students",
		Example: `  hxebclass remote describe 123456
  hxebclass remote describe p:12-301`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			gw, err := app.Gateway(ctx)
			if err != nil {
				return err
			}

			details, err := classroom.Describe(ctx, gw, args[0])
			if err != nil {
				return err
			}

			row := describeRow{
				Course:   details.Course,
				Teachers: details.Teachers,
				Students: details.Students,
			}
			origin := args[0]
			if !alias.IsAlias(origin) {
				origin = courseAlias(ctx, app, gw, details.Course.ID)
			}
			if seasonID, classID, ok := alias.Parse(origin); ok {
				row.Alias = origin
				row.SeasonID = seasonID
				row.ClassID = classID
			}

			return output.Render(cmd.OutOrStdout(), output.DetectFormat(app.OutputFormat()), row,
				func(bool) table.Data { return table.DetailsToTableData(details, row.SeasonID, row.ClassID) })
		},
	}
}

// describeRow is the JSON/YAML shape of remote describe.
type describeRow struct {
	Course   classroom.Course   `json:"course" yaml:"course"`
	Teachers []classroom.Member `json:"teachers" yaml:"teachers"`
	Students []classroom.Member `json:"students" yaml:"students"`
	Alias    string             `json:"alias,omitempty" yaml:"alias,omitempty"`
	SeasonID int                `json:"season_id,omitempty" yaml:"season_id,omitempty"`
	ClassID  int                `json:"class_id,omitempty" yaml:"class_id,omitempty"`
}
