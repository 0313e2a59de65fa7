// Package org provides commands that list records from the org database.
package org

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hxeb/hxebclass/cmd/application"
	"github.com/hxeb/hxebclass/internal/cmd/output"
	"github.com/hxeb/hxebclass/internal/cmd/table"
	"github.com/hxeb/hxebclass/pkg/roster"
)

// NewCommand creates the org command with app dependencies.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "org",
		GroupID: "core",
		Short:   "List class arrangements and registrations from the org database",
		Long: `Org reads the active class arrangements and student registrations
of the configured season. It never writes to the org database.`,
		Example: `  hxebclass org courses
  hxebclass org courses --class 301 -o json
  hxebclass org registrations`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return fmt.Errorf("unknown subcommand: %s", args[0])
		},
	}

	cmd.AddCommand(NewCoursesCommand(app))
	cmd.AddCommand(NewRegistrationsCommand(app))

	return cmd
}

// NewCoursesCommand creates the org courses subcommand.
func NewCoursesCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "courses",
		Aliases: []string{"classes", "arrangements"},
		Short:   "List active class arrangements",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			classID, _ := cmd.Flags().GetInt("class")

			ctx := cmd.Context()
			seasonID, err := app.SeasonID()
			if err != nil {
				return err
			}
			src, err := app.Roster(ctx)
			if err != nil {
				return err
			}
			arrs, err := src.Arrangements(ctx, roster.Query{SeasonID: seasonID, ClassID: classID})
			if err != nil {
				return err
			}

			return output.Render(cmd.OutOrStdout(), output.DetectFormat(app.OutputFormat()), arrs,
				func(wide bool) table.Data { return table.ArrangementsToTableData(arrs, wide) })
		},
	}
	cmd.Flags().Int("class", 0, "Only list the arrangement of this class ID")
	return cmd
}

// NewRegistrationsCommand creates the org registrations subcommand.
func NewRegistrationsCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "registrations",
		Aliases: []string{"students"},
		Short:   "List student registrations for active arrangements",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			seasonID, err := app.SeasonID()
			if err != nil {
				return err
			}
			src, err := app.Roster(ctx)
			if err != nil {
				return err
			}
			regs, err := src.Registrations(ctx, seasonID)
			if err != nil {
				return err
			}

			return output.Render(cmd.OutOrStdout(), output.DetectFormat(app.OutputFormat()), regs,
				func(bool) table.Data { return table.RegistrationsToTableData(regs) })
		},
	}
}
