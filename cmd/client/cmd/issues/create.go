package issues

import (
	"fmt"

	"github.com/spf13/cobra"

	"liquidtrack/cmd/client/cmd/types"
	"liquidtrack/internal/app/client/i18n"
	"liquidtrack/internal/app/client/ui"
	"liquidtrack/internal/domain/issue"
)

var (
	title       string
	description string
	responsible string
)

var CreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Новая проблема",
	Long: `Создание записи о проблеме. Статус всегда "New".

Без --title и --description открывается форма.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.Tracker(cmd)
		if err != nil {
			return err
		}
		lang := app.Lang()

		in := ui.NewIssueInput{Title: title, Description: description, ResponsibleID: responsible}
		if in.Title == "" || in.Description == "" {
			in, err = types.Prompter(ui.NewState(lang)).NewIssue()
			if err != nil {
				return err
			}
		}
		if in.ResponsibleID == "" {
			in.ResponsibleID = issue.DefaultResponsibleID()
		}

		if err := app.Sync().Create(cmd.Context(), in.Title, in.Description, in.ResponsibleID); err != nil {
			return fmt.Errorf("%s", i18n.Tf(lang, i18n.ErrorCreate, err))
		}
		types.Success(cmd, i18n.T(lang, i18n.IssueCreated))
		return nil
	},
}

func init() {
	CreateCmd.Flags().StringVarP(&title, "title", "t", "", "заголовок проблемы")
	CreateCmd.Flags().StringVarP(&description, "description", "d", "", "описание")
	CreateCmd.Flags().StringVarP(&responsible, "responsible", "r", "", "id ответственного сотрудника")
}
