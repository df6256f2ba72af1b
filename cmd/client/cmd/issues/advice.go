package issues

import (
	"fmt"

	"github.com/spf13/cobra"

	"liquidtrack/cmd/client/cmd/types"
	"liquidtrack/internal/app/client/i18n"
	"liquidtrack/internal/app/client/ui"
)

var AdviceCmd = &cobra.Command{
	Use:   "advice <id>",
	Short: "Совет AI по проблеме",
	Long:  `Запрашивает у LLM краткий план действий и сохраняет его в проблеме.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.Tracker(cmd)
		if err != nil {
			return err
		}
		if err := app.Reload(cmd.Context()); err != nil {
			return err
		}

		is, ok := app.Sync().Find(args[0])
		if !ok {
			return fmt.Errorf("проблема %s не найдена", args[0])
		}

		var (
			text      string
			adviceErr error
		)
		if err := types.Prompter(ui.NewState(app.Lang())).Busy(i18n.T(app.Lang(), i18n.AnalysisActive), func() {
			text, adviceErr = app.Sync().RequestAdvice(cmd.Context(), is, app.Lang())
		}); err != nil {
			return err
		}
		if adviceErr != nil {
			return adviceErr
		}
		types.Renderer(cmd).Advice(app.Lang(), text)
		return nil
	},
}
