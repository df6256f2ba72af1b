package auth

import (
	"github.com/spf13/cobra"

	"liquidtrack/cmd/client/cmd/types"
	"liquidtrack/internal/app/client/i18n"
)

var LogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Завершить сессию",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}
		if err := app.SignOut(cmd.Context()); err != nil {
			types.Warn(cmd, err.Error())
		}
		types.Success(cmd, i18n.T(app.Lang(), i18n.AuthSignedOut))
		return nil
	},
}
