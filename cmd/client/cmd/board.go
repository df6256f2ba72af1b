package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"liquidtrack/cmd/client/cmd/types"
	"liquidtrack/internal/app/client"
	"liquidtrack/internal/app/client/i18n"
	"liquidtrack/internal/app/client/ui"
)

// runBoard - интерактивная доска: экран выбирается по состоянию клиента.
func runBoard(cmd *cobra.Command, _ []string) error {
	app, err := types.App(cmd)
	if err != nil {
		return err
	}
	if !types.Interactive() {
		return cmd.Help()
	}

	st := ui.NewState(app.Lang())
	prompt := types.Prompter(st)
	r := types.Renderer(cmd)
	ctx := cmd.Context()

	for {
		switch app.Screen() {
		case client.ScreenConfigMissing:
			r.ConfigMissing(st.Lang)
			return client.ErrConfiguration
		case client.ScreenLoading:
			r.Loading(st.Lang)
			if err := app.Start(ctx); err != nil {
				return err
			}
			continue
		case client.ScreenAuth:
			r.Auth(st.Lang)
			c, err := prompt.Credentials()
			if err != nil {
				return ignoreAbort(err)
			}
			if c.SignUp {
				err = app.SignUp(ctx, c.Email, c.Password)
			} else {
				err = app.SignIn(ctx, c.Email, c.Password)
			}
			if err != nil {
				types.Warn(cmd, err.Error())
			}
			continue
		}

		fmt.Fprint(cmd.OutOrStdout(), clearScreen)
		s := app.Sync()
		r.Board(st, ui.Board{
			Issues:    s.Filtered(st.Filter()),
			Loading:   s.Loading(),
			Failed:    s.Failed(),
			Login:     app.Login(),
			Analyzing: s.Analyzing,
		})

		action, err := prompt.Menu(len(s.Issues()) > 0)
		if err != nil {
			return ignoreAbort(err)
		}
		if action == ui.ActionQuit {
			return nil
		}
		if err := handleAction(cmd, app, st, prompt, action); err != nil {
			if errors.Is(err, ui.ErrAborted) {
				continue
			}
			types.Warn(cmd, err.Error())
		}
	}
}

func handleAction(cmd *cobra.Command, app *client.App, st *ui.State, prompt *ui.Prompter, action ui.Action) error {
	ctx := cmd.Context()
	s := app.Sync()

	pick := func() (string, error) {
		is, err := prompt.PickIssue(s.Filtered(st.Filter()))
		return is.ID, err
	}

	switch action {
	case ui.ActionNew:
		in, err := prompt.NewIssue()
		if err != nil {
			return err
		}
		if err := s.Create(ctx, in.Title, in.Description, in.ResponsibleID); err != nil {
			return fmt.Errorf("%s", i18n.Tf(st.Lang, i18n.ErrorCreate, err))
		}
	case ui.ActionDelete:
		id, err := pick()
		if err != nil {
			return err
		}
		// ошибка удаления только пишется в журнал
		_, _ = s.Remove(ctx, id, prompt)
	case ui.ActionStatus:
		id, err := pick()
		if err != nil {
			return err
		}
		is, _ := s.Find(id)
		next, err := prompt.PickStatus(is.Status)
		if err != nil {
			return err
		}
		return s.SetStatus(ctx, id, next)
	case ui.ActionAssign:
		id, err := pick()
		if err != nil {
			return err
		}
		is, _ := s.Find(id)
		next, err := prompt.PickResponsible(is.ResponsibleID)
		if err != nil {
			return err
		}
		return s.SetResponsible(ctx, id, next)
	case ui.ActionAdvice:
		id, err := pick()
		if err != nil {
			return err
		}
		is, _ := s.Find(id)
		var adviceErr error
		if err := prompt.Busy(i18n.T(st.Lang, i18n.AnalysisActive), func() {
			_, adviceErr = s.RequestAdvice(ctx, is, st.Lang)
		}); err != nil {
			return err
		}
		if errors.Is(adviceErr, client.ErrAnalysisInProgress) {
			return errors.New(i18n.T(st.Lang, i18n.AnalysisBusy))
		}
		return adviceErr
	case ui.ActionSearch:
		term, err := prompt.Search()
		if err != nil {
			return err
		}
		st.Search = term
	case ui.ActionFilter:
		status, err := prompt.PickFilter()
		if err != nil {
			return err
		}
		st.Status = status
	case ui.ActionLanguage:
		return app.SetLang(st.ToggleLang())
	case ui.ActionRefresh:
		return app.Reload(ctx)
	case ui.ActionSignOut:
		st.Reset()
		return app.SignOut(ctx)
	}
	return nil
}

func ignoreAbort(err error) error {
	if errors.Is(err, ui.ErrAborted) {
		return nil
	}
	return err
}
