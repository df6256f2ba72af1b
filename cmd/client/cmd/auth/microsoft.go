package auth

import (
	"fmt"

	"github.com/spf13/cobra"

	"liquidtrack/cmd/client/cmd/types"
	"liquidtrack/internal/app/client/i18n"
)

var oauthToken string

var MicrosoftCmd = &cobra.Command{
	Use:   "microsoft",
	Short: "Вход через Microsoft",
	Long: `Федеративный вход через Microsoft (Azure AD).

Без флагов печатает адрес входа. Токен со страницы завершения входа
передается флагом --token.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}
		lang := app.Lang()

		if oauthToken != "" {
			if err := app.CompleteSignIn(cmd.Context(), oauthToken); err != nil {
				return err
			}
			types.Success(cmd, i18n.Tf(lang, i18n.AuthSignedIn, app.Login()))
			return nil
		}

		u, err := app.MicrosoftURL()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, i18n.T(lang, i18n.AuthOpenBrowser))
		fmt.Fprintln(out, "  "+u)
		fmt.Fprintln(out, i18n.T(lang, i18n.AuthMicrosoftHelp))
		return nil
	},
}

func init() {
	MicrosoftCmd.Flags().StringVar(&oauthToken, "token", "", "токен сессии со страницы завершения входа")
}
