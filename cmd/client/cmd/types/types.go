// Package types - общие для команд клиента ключи контекста и вывод.
package types

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"liquidtrack/internal/app/client"
	"liquidtrack/internal/app/client/i18n"
	"liquidtrack/internal/app/client/ui"
)

type contextKey string

const ClientAppKey contextKey = "app"

var (
	success = color.New(color.FgGreen).SprintFunc()
	warning = color.New(color.FgYellow).SprintFunc()
	failure = color.New(color.FgRed).SprintFunc()
)

// App достает клиента из контекста команды.
func App(cmd *cobra.Command) (*client.App, error) {
	app, ok := cmd.Context().Value(ClientAppKey).(*client.App)
	if !ok || app == nil {
		return nil, fmt.Errorf("приложение не инициализировано")
	}
	return app, nil
}

// Tracker возвращает клиента, готового к работе с данными. Для ненастроенного
// клиента печатается экран настройки.
func Tracker(cmd *cobra.Command) (*client.App, error) {
	app, err := App(cmd)
	if err != nil {
		return nil, err
	}
	switch app.Screen() {
	case client.ScreenConfigMissing:
		Renderer(cmd).ConfigMissing(app.Lang())
		return nil, client.ErrConfiguration
	case client.ScreenTracker:
		return app, nil
	default:
		return nil, fmt.Errorf("%s: liquidtrack auth login", i18n.T(app.Lang(), i18n.AuthNotSignedIn))
	}
}

func Success(cmd *cobra.Command, msg string) {
	fmt.Fprintln(cmd.OutOrStdout(), success("✓ ")+msg)
}

func Warn(cmd *cobra.Command, msg string) {
	fmt.Fprintln(cmd.ErrOrStderr(), warning("⚠️  ")+msg)
}

func Fail(msg string) string {
	return failure(msg)
}

// Interactive сообщает, подключены ли stdin и stdout к терминалу.
func Interactive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// Width - ширина терминала или 0, если вывод не в терминал.
func Width() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 0
	}
	w, _, err := term.GetSize(fd)
	if err != nil {
		return 0
	}
	return w
}

func Renderer(cmd *cobra.Command) *ui.Renderer {
	return ui.NewRenderer(cmd.OutOrStdout(), Width())
}

// Prompter создает формы; вне терминала формы переходят в построчный режим.
func Prompter(st *ui.State) *ui.Prompter {
	return &ui.Prompter{State: st, Accessible: !Interactive()}
}
