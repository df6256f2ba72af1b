package issues

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"liquidtrack/cmd/client/cmd/types"
	"liquidtrack/internal/app/client/i18n"
	"liquidtrack/internal/app/client/ui"
	"liquidtrack/internal/domain/issue"
)

var (
	search     string
	statusFlag string
	since      string
	jsonOutput bool
)

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "Список проблем",
	Long: `Список проблем, новые сверху.

--since понимает даты ("2026-01-31", "31.01.2026") и выражения
вроде "вчера" или "last week".`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.Tracker(cmd)
		if err != nil {
			return err
		}

		st, err := StateFromFlags(app.Lang())
		if err != nil {
			return err
		}

		if err := app.Reload(cmd.Context()); err != nil {
			types.Warn(cmd, i18n.T(st.Lang, i18n.ErrorLoad))
		}
		list := app.Sync().Filtered(st.Filter())

		if jsonOutput {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(list)
		}

		types.Renderer(cmd).Board(st, ui.Board{
			Issues: list,
			Failed: app.Sync().Failed(),
			Login:  app.Login(),
		})
		return nil
	},
}

// StateFromFlags собирает ui.State из флагов фильтрации.
func StateFromFlags(lang i18n.Lang) (*ui.State, error) {
	st := ui.NewState(lang)
	st.Search = search
	if statusFlag != "" {
		s, err := issue.ParseStatus(statusFlag)
		if err != nil {
			return nil, err
		}
		st.Status = s
	}
	t, err := ui.ParseSince(since, time.Now())
	if err != nil {
		return nil, fmt.Errorf("--since: %w", err)
	}
	st.Since = t
	return st, nil
}

// AddFilterFlags регистрирует флаги фильтрации.
func AddFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&search, "search", "q", "", "поиск по заголовку и описанию")
	cmd.Flags().StringVarP(&statusFlag, "status", "s", "", "фильтр по статусу")
	cmd.Flags().StringVar(&since, "since", "", "только созданные не раньше")
}

func init() {
	AddFilterFlags(ListCmd)
	ListCmd.Flags().BoolVar(&jsonOutput, "json", false, "вывод в формате JSON")
}
