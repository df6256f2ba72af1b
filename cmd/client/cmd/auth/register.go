package auth

import (
	"github.com/spf13/cobra"
)

var RegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Регистрация нового пользователя",
	Long: `Создание учетной записи по email и паролю.

После регистрации вход выполняется автоматически.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return signIn(cmd, true)
	},
}

func init() {
	RegisterCmd.Flags().StringVarP(&email, "email", "e", "", "email пользователя")
	RegisterCmd.Flags().StringVarP(&password, "password", "p", "", "пароль (иначе будет запрошен)")
}
