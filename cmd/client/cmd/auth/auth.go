package auth

import (
	"github.com/spf13/cobra"
)

// AuthCmd - родительская команда для всех операций с авторизацией пользователя
var AuthCmd = &cobra.Command{
	Use:   "auth",
	Short: "Управление сессией",
	Long:  `Вход, регистрация, вход через Microsoft и выход.`,
}

func init() {
	AuthCmd.AddCommand(LoginCmd, RegisterCmd, LogoutCmd, MicrosoftCmd, StatusCmd)
}
