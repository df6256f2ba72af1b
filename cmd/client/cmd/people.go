package cmd

import (
	"github.com/spf13/cobra"

	"liquidtrack/cmd/client/cmd/types"
	"liquidtrack/internal/domain/issue"
)

var peopleCmd = &cobra.Command{
	Use:   "people",
	Short: "Справочник ответственных",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}
		types.Renderer(cmd).People(app.Lang(), issue.People())
		return nil
	},
}
