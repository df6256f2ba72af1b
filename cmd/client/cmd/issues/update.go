package issues

import (
	"github.com/spf13/cobra"

	"liquidtrack/cmd/client/cmd/types"
	"liquidtrack/internal/app/client/i18n"
	"liquidtrack/internal/domain/issue"
)

var StatusCmd = &cobra.Command{
	Use:   "status <id> <status>",
	Short: "Сменить статус",
	Long: `Смена статуса: New, "In Progress", "At Customs", Delivery, Done, Stuck.
Допускаются короткие формы: progress, customs.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.Tracker(cmd)
		if err != nil {
			return err
		}
		s, err := issue.ParseStatus(args[1])
		if err != nil {
			return err
		}
		return update(cmd, func() error {
			return app.Sync().SetStatus(cmd.Context(), args[0], s)
		}, app.Lang())
	},
}

var AssignCmd = &cobra.Command{
	Use:   "assign <id> <person-id>",
	Short: "Сменить ответственного",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.Tracker(cmd)
		if err != nil {
			return err
		}
		return update(cmd, func() error {
			return app.Sync().SetResponsible(cmd.Context(), args[0], args[1])
		}, app.Lang())
	},
}

func update(cmd *cobra.Command, fn func() error, lang i18n.Lang) error {
	if err := fn(); err != nil {
		return err
	}
	types.Success(cmd, i18n.T(lang, i18n.IssueUpdated))
	return nil
}
