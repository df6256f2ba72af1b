package issues

import (
	"github.com/spf13/cobra"

	"liquidtrack/cmd/client/cmd/types"
	"liquidtrack/internal/app/client"
	"liquidtrack/internal/app/client/i18n"
	"liquidtrack/internal/app/client/ui"
)

var yes bool

var DeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Удалить проблему",
	Long:  `Удаление после подтверждения. --yes пропускает подтверждение.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.Tracker(cmd)
		if err != nil {
			return err
		}
		lang := app.Lang()

		var confirm client.Confirmer = types.Prompter(ui.NewState(lang))
		if yes {
			confirm = client.ConfirmFunc(func(string) (bool, error) { return true, nil })
		}

		// ошибка удаления только пишется в журнал
		if removed, _ := app.Sync().Remove(cmd.Context(), args[0], confirm); removed {
			types.Success(cmd, i18n.T(lang, i18n.IssueDeleted))
		}
		return nil
	},
}

func init() {
	DeleteCmd.Flags().BoolVarP(&yes, "yes", "y", false, "не спрашивать подтверждение")
}
