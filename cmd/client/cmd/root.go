package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/exp/slog"

	"liquidtrack/cmd/client/cmd/auth"
	"liquidtrack/cmd/client/cmd/issues"
	"liquidtrack/cmd/client/cmd/types"
	"liquidtrack/internal/app/client"
	"liquidtrack/internal/app/client/config"
	"liquidtrack/internal/app/client/i18n"
	"liquidtrack/internal/utils/logger"
)

var (
	cfg      *config.Config
	log      *slog.Logger
	app      *client.App
	debug    bool
	storeURL string
	langFlag string
)

var rootCmd = &cobra.Command{
	Use:   "liquidtrack",
	Short: "LiquidTrack - трекер логистических проблем",
	Long: `LiquidTrack - терминальный клиент трекера логистических проблем.

Проблемы хранятся в службе хранения и обновляются в реальном времени.
Без аргументов открывается интерактивная доска.`,
	PersistentPreRunE:  setupApp,
	PersistentPostRunE: shutdownApp,
	RunE:               runBoard,
	SilenceUsage:       true,
	SilenceErrors:      true,
}

func Execute() {
	ctx, cancel := signalContext()
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if app != nil {
			app.Shutdown()
		}
		if !errors.Is(err, client.ErrConfiguration) {
			fmt.Fprintf(os.Stderr, "%s %v\n", types.Fail("Ошибка:"), err)
		}
		os.Exit(1)
	}
}

func setupApp(cmd *cobra.Command, _ []string) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("ошибка загрузки конфигурации: %w", err)
	}

	if storeURL != "" {
		cfg.Store.URL = storeURL
	}
	if langFlag != "" {
		cfg.Language = langFlag
	}
	level := cfg.LogLevel
	if debug {
		level = "debug"
	}

	log = logger.NewFile(cfg.Env, cfg.LogFile, level)

	app, err = client.New(cfg, log)
	if err != nil {
		return fmt.Errorf("ошибка инициализации приложения: %w", err)
	}
	if langFlag != "" {
		if l, err := i18n.ParseLang(langFlag); err == nil {
			_ = app.SetLang(l)
		}
	}

	if app.Configured() {
		if err := app.Start(cmd.Context()); err != nil {
			types.Warn(cmd, fmt.Sprintf("не удалось проверить сессию: %v", err))
		}
	}

	cmd.SetContext(context.WithValue(cmd.Context(), types.ClientAppKey, app))
	return nil
}

func shutdownApp(_ *cobra.Command, _ []string) error {
	if app != nil {
		app.Shutdown()
		app = nil
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "включить отладочный режим")
	rootCmd.PersistentFlags().StringVar(&storeURL, "store", "", "URL службы хранения")
	rootCmd.PersistentFlags().StringVar(&langFlag, "lang", "", "язык интерфейса (ru|en)")

	rootCmd.AddCommand(
		auth.AuthCmd,
		issues.IssuesCmd,
		watchCmd,
		langCmd,
		peopleCmd,
	)
}
