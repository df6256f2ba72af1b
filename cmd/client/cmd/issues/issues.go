package issues

import (
	"github.com/spf13/cobra"
)

// IssuesCmd - родительская команда для операций с проблемами
var IssuesCmd = &cobra.Command{
	Use:     "issues",
	Aliases: []string{"issue", "i"},
	Short:   "Работа с проблемами",
	Long:    `Список, создание, удаление, смена статуса и ответственного, совет AI.`,
}

func init() {
	IssuesCmd.AddCommand(ListCmd, CreateCmd, DeleteCmd, StatusCmd, AssignCmd, AdviceCmd)
}
