package auth

import (
	"fmt"

	"github.com/spf13/cobra"

	"liquidtrack/cmd/client/cmd/types"
	"liquidtrack/internal/app/client"
	"liquidtrack/internal/app/client/i18n"
)

var StatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Состояние сессии",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}
		lang := app.Lang()
		switch app.Screen() {
		case client.ScreenConfigMissing:
			types.Renderer(cmd).ConfigMissing(lang)
		case client.ScreenTracker:
			types.Success(cmd, i18n.Tf(lang, i18n.AuthSignedIn, app.Login()))
		default:
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T(lang, i18n.AuthNotSignedIn))
		}
		return nil
	},
}
