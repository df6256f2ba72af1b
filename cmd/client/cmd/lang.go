package cmd

import (
	"github.com/spf13/cobra"

	"liquidtrack/cmd/client/cmd/types"
	"liquidtrack/internal/app/client/i18n"
)

var langCmd = &cobra.Command{
	Use:       "lang [ru|en]",
	Short:     "Язык интерфейса",
	Long:      `Без аргумента переключает ru <-> en. Выбор сохраняется.`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"ru", "en"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}
		next := app.Lang().Toggle()
		if len(args) == 1 {
			if next, err = i18n.ParseLang(args[0]); err != nil {
				return err
			}
		}
		if err := app.SetLang(next); err != nil {
			return err
		}
		types.Success(cmd, i18n.T(next, i18n.LanguageSet))
		return nil
	},
}
