package auth

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"liquidtrack/cmd/client/cmd/types"
	"liquidtrack/internal/app/client"
	"liquidtrack/internal/app/client/i18n"
	"liquidtrack/internal/app/client/ui"
)

var (
	email    string
	password string
)

var LoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Войти в LiquidTrack",
	Long: `Аутентификация по email и паролю.

После входа токен сохраняется локально для последующих команд.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return signIn(cmd, false)
	},
}

func signIn(cmd *cobra.Command, signUp bool) error {
	app, err := types.App(cmd)
	if err != nil {
		return err
	}
	if !app.Configured() {
		types.Renderer(cmd).ConfigMissing(app.Lang())
		return client.ErrConfiguration
	}

	creds, err := readCredentials(cmd, app.Lang(), signUp)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	lang := app.Lang()
	if creds.SignUp {
		if err := app.SignUp(ctx, creds.Email, creds.Password); err != nil {
			return fmt.Errorf("%s: %w", i18n.T(lang, i18n.AuthErrorParams), err)
		}
		types.Success(cmd, i18n.Tf(lang, i18n.AuthSignedUp, creds.Email))
	} else if err := app.SignIn(ctx, creds.Email, creds.Password); err != nil {
		return fmt.Errorf("%s: %w", i18n.T(lang, i18n.AuthErrorParams), err)
	}

	types.Success(cmd, i18n.Tf(lang, i18n.AuthSignedIn, app.Login()))
	if app.Sync().Failed() {
		types.Warn(cmd, i18n.T(lang, i18n.ErrorLoad))
	}
	return nil
}

// readCredentials берет данные из флагов, иначе спрашивает: в терминале
// через форму, вне терминала построчно из stdin.
func readCredentials(cmd *cobra.Command, lang i18n.Lang, signUp bool) (ui.Credentials, error) {
	if email != "" && password != "" {
		return ui.Credentials{Email: email, Password: password, SignUp: signUp}, nil
	}

	if types.Interactive() && email == "" {
		types.Renderer(cmd).Auth(lang)
		c, err := types.Prompter(ui.NewState(lang)).Credentials()
		if err != nil {
			return ui.Credentials{}, err
		}
		c.SignUp = c.SignUp || signUp
		return c, nil
	}

	c := ui.Credentials{Email: email, Password: password, SignUp: signUp}
	reader := bufio.NewReader(cmd.InOrStdin())
	if c.Email == "" {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ", i18n.T(lang, i18n.AuthEmailLabel))
		line, _ := reader.ReadString('\n')
		c.Email = strings.TrimSpace(line)
	}
	if c.Password == "" {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ", i18n.T(lang, i18n.AuthPasswordLabel))
		if term.IsTerminal(int(os.Stdin.Fd())) {
			pw, err := term.ReadPassword(int(os.Stdin.Fd()))
			if err != nil {
				return ui.Credentials{}, fmt.Errorf("ошибка чтения пароля: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout())
			c.Password = string(pw)
		} else {
			line, _ := reader.ReadString('\n')
			c.Password = strings.TrimRight(line, "\r\n")
		}
	}
	return c, nil
}

func init() {
	LoginCmd.Flags().StringVarP(&email, "email", "e", "", "email пользователя")
	LoginCmd.Flags().StringVarP(&password, "password", "p", "", "пароль (иначе будет запрошен)")
}
