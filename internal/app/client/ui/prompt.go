package ui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"

	"liquidtrack/internal/app/client/i18n"
	"liquidtrack/internal/domain/issue"
)

// Action - пункт главного меню.
type Action string

const (
	ActionNew      Action = "new"
	ActionDelete   Action = "delete"
	ActionStatus   Action = "status"
	ActionAssign   Action = "assign"
	ActionAdvice   Action = "advice"
	ActionSearch   Action = "search"
	ActionFilter   Action = "filter"
	ActionLanguage Action = "language"
	ActionRefresh  Action = "refresh"
	ActionSignOut  Action = "signout"
	ActionQuit     Action = "quit"
)

// ErrAborted - пользователь закрыл форму.
var ErrAborted = huh.ErrUserAborted

// NewIssueInput - данные формы новой проблемы.
type NewIssueInput struct {
	Title         string
	Description   string
	ResponsibleID string
}

// Credentials - данные формы входа.
type Credentials struct {
	Email    string
	Password string
	SignUp   bool
}

// Prompter задает вопросы через формы huh. Accessible включает построчный
// режим без перерисовки для неинтерактивных терминалов.
type Prompter struct {
	State      *State
	Accessible bool
}

func (p *Prompter) t(k i18n.Key) string {
	return i18n.T(p.State.Lang, k)
}

func (p *Prompter) run(fields ...huh.Field) error {
	return huh.NewForm(huh.NewGroup(fields...)).
		WithAccessible(p.Accessible).
		WithShowHelp(false).
		Run()
}

// Menu - главное меню трекера.
func (p *Prompter) Menu(hasIssues bool) (Action, error) {
	opts := []huh.Option[Action]{huh.NewOption(p.t(i18n.NewIssue), ActionNew)}
	if hasIssues {
		opts = append(opts,
			huh.NewOption(p.t(i18n.MenuStatus), ActionStatus),
			huh.NewOption(p.t(i18n.MenuAssign), ActionAssign),
			huh.NewOption(p.t(i18n.ButtonAISuggest), ActionAdvice),
			huh.NewOption(p.t(i18n.ButtonDelete), ActionDelete),
		)
	}
	opts = append(opts,
		huh.NewOption(p.t(i18n.MenuSearch), ActionSearch),
		huh.NewOption(p.t(i18n.MenuFilter), ActionFilter),
		huh.NewOption(p.t(i18n.MenuRefresh), ActionRefresh),
		huh.NewOption(p.t(i18n.MenuLanguage), ActionLanguage),
		huh.NewOption(p.t(i18n.AuthSignOut), ActionSignOut),
		huh.NewOption(p.t(i18n.MenuQuit), ActionQuit),
	)

	var a Action
	err := p.run(huh.NewSelect[Action]().Title(p.t(i18n.MenuPrompt)).Options(opts...).Value(&a))
	return a, err
}

// NewIssue - форма новой проблемы. Ответственный по умолчанию - первый сотрудник.
func (p *Prompter) NewIssue() (NewIssueInput, error) {
	p.State.FormOpen = true
	defer func() { p.State.FormOpen = false }()

	in := NewIssueInput{ResponsibleID: issue.DefaultResponsibleID()}
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().Title(p.t(i18n.ModalTitle)),
			huh.NewInput().
				Title(p.t(i18n.ModalLabelTitle)).
				Placeholder(p.t(i18n.ModalPlaceholderTitle)).
				Value(&in.Title).
				Validate(required),
			huh.NewText().
				Title(p.t(i18n.ModalLabelDesc)).
				Placeholder(p.t(i18n.ModalPlaceholderDesc)).
				Value(&in.Description).
				Validate(required),
			huh.NewSelect[string]().
				Title(p.t(i18n.ModalLabelResponsible)).
				Options(PeopleOptions()...).
				Value(&in.ResponsibleID),
		),
	).WithAccessible(p.Accessible).WithShowHelp(false).Run()
	return in, err
}

// PickIssue выбирает проблему из списка.
func (p *Prompter) PickIssue(issues []issue.Issue) (issue.Issue, error) {
	if len(issues) == 0 {
		return issue.Issue{}, errors.New("no issues")
	}
	opts := make([]huh.Option[string], 0, len(issues))
	for _, is := range issues {
		opts = append(opts, huh.NewOption(is.ID+"  "+is.Title, is.ID))
	}
	var id string
	if err := p.run(huh.NewSelect[string]().Title(p.t(i18n.MenuPickIssue)).Options(opts...).Value(&id)); err != nil {
		return issue.Issue{}, err
	}
	for _, is := range issues {
		if is.ID == id {
			return is, nil
		}
	}
	return issue.Issue{}, errors.New("issue not found")
}

func (p *Prompter) PickStatus(current issue.Status) (issue.Status, error) {
	s := current
	err := p.run(huh.NewSelect[issue.Status]().
		Title(p.t(i18n.HeaderStatus)).
		Options(StatusOptions(p.State.Lang)...).
		Value(&s))
	return s, err
}

func (p *Prompter) PickResponsible(current string) (string, error) {
	id := current
	err := p.run(huh.NewSelect[string]().
		Title(p.t(i18n.ModalLabelResponsible)).
		Options(PeopleOptions()...).
		Value(&id))
	return id, err
}

// PickFilter выбирает фильтр статуса, пустой статус означает все.
func (p *Prompter) PickFilter() (issue.Status, error) {
	s := p.State.Status
	opts := append([]huh.Option[issue.Status]{huh.NewOption(p.t(i18n.FilterAll), issue.Status(""))},
		StatusOptions(p.State.Lang)...)
	err := p.run(huh.NewSelect[issue.Status]().Title(p.t(i18n.MenuFilter)).Options(opts...).Value(&s))
	return s, err
}

func (p *Prompter) Search() (string, error) {
	term := p.State.Search
	err := p.run(huh.NewInput().
		Title(p.t(i18n.MenuSearch)).
		Placeholder(p.t(i18n.SearchPlaceholder)).
		Value(&term))
	return strings.TrimSpace(term), err
}

// Confirm реализует client.Confirmer.
func (p *Prompter) Confirm(prompt string) (bool, error) {
	var ok bool
	err := p.run(huh.NewConfirm().
		Title(prompt).
		Affirmative(p.t(i18n.ButtonDelete)).
		Negative(p.t(i18n.ButtonCancel)).
		Value(&ok))
	return ok, err
}

// Busy выполняет fn под индикатором ожидания. Вне терминала fn выполняется без индикатора.
func (p *Prompter) Busy(title string, fn func()) error {
	if p.Accessible {
		fn()
		return nil
	}
	return spinner.New().Title(title).Action(fn).Run()
}

// Credentials - форма входа или регистрации.
func (p *Prompter) Credentials() (Credentials, error) {
	var c Credentials
	mode := "signin"
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(p.t(i18n.AuthWelcome)).
				Description(p.t(i18n.AuthSubtitle)).
				Options(
					huh.NewOption(p.t(i18n.AuthSignIn), "signin"),
					huh.NewOption(p.t(i18n.AuthSignUp), "signup"),
				).
				Value(&mode),
			huh.NewInput().Title(p.t(i18n.AuthEmailLabel)).Value(&c.Email).Validate(required),
			huh.NewInput().Title(p.t(i18n.AuthPasswordLabel)).EchoMode(huh.EchoModePassword).Value(&c.Password).Validate(required),
		),
	).WithAccessible(p.Accessible).WithShowHelp(false).Run()
	c.SignUp = mode == "signup"
	c.Email = strings.TrimSpace(c.Email)
	return c, err
}

// StatusOptions - статусы в порядке отображения с локализованными подписями.
func StatusOptions(lang i18n.Lang) []huh.Option[issue.Status] {
	opts := make([]huh.Option[issue.Status], 0, len(issue.Statuses()))
	for _, s := range issue.Statuses() {
		opts = append(opts, huh.NewOption(i18n.Status(lang, s), s))
	}
	return opts
}

// PeopleOptions - справочник ответственных.
func PeopleOptions() []huh.Option[string] {
	people := issue.People()
	opts := make([]huh.Option[string], 0, len(people))
	for _, person := range people {
		opts = append(opts, huh.NewOption(person.Name, person.ID))
	}
	return opts
}

func required(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("required")
	}
	return nil
}
