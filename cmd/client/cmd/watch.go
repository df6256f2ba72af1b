package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"liquidtrack/cmd/client/cmd/issues"
	"liquidtrack/cmd/client/cmd/types"
	"liquidtrack/internal/app/client"
	"liquidtrack/internal/app/client/i18n"
	"liquidtrack/internal/app/client/ui"
)

const clearScreen = "\033[H\033[2J"

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Следить за проблемами в реальном времени",
	Long:  `Перерисовывает список при каждом изменении в хранилище. Ctrl+C для выхода.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.Tracker(cmd)
		if err != nil {
			return err
		}
		st, err := issues.StateFromFlags(app.Lang())
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		s := app.Sync()
		interactive := types.Interactive()
		draw := func() {
			if interactive {
				fmt.Fprint(cmd.OutOrStdout(), clearScreen)
			}
			types.Renderer(cmd).Board(st, ui.Board{
				Issues:    s.Filtered(st.Filter()),
				Loading:   s.Loading(),
				Failed:    s.Failed(),
				Login:     app.Login(),
				Analyzing: s.Analyzing,
			})
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T(st.Lang, i18n.WatchHint))
		}

		expired := make(chan struct{}, 1)
		app.OnSessionChange(func(state client.GateState) {
			if state != client.StateAuthenticated {
				select {
				case expired <- struct{}{}:
				default:
				}
			}
		})

		draw()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-expired:
				types.Warn(cmd, i18n.T(st.Lang, i18n.AuthNotSignedIn))
				return nil
			case <-s.Changes():
				if !s.Active() {
					return nil
				}
				draw()
			}
		}
	},
}

func init() {
	issues.AddFilterFlags(watchCmd)
}
