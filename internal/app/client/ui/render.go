package ui

import (
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"liquidtrack/internal/app/client/i18n"
	"liquidtrack/internal/domain/issue"
)

const maxDescription = 60

// Board - данные для отрисовки списка.
type Board struct {
	Issues    []issue.Issue
	Loading   bool
	Failed    bool
	Login     string
	Analyzing func(id string) bool
}

// Renderer рисует экраны в указанный writer.
type Renderer struct {
	out   io.Writer
	style styles
	width int
}

// NewRenderer определяет цветовой профиль по writer: в файл и буфер пишется без цвета.
func NewRenderer(out io.Writer, width int) *Renderer {
	return &Renderer{
		out:   out,
		style: newStyles(lipgloss.NewRenderer(out)),
		width: width,
	}
}

// Board рисует трекер: заголовок, счетчик, таблицу или пустое состояние.
func (r *Renderer) Board(st *State, b Board) {
	t := func(k i18n.Key) string { return i18n.T(st.Lang, k) }

	header := r.style.title.Render(t(i18n.AppTitle))
	if b.Login != "" {
		header += "  " + r.style.muted.Render(b.Login)
	}
	fmt.Fprintln(r.out, header)

	marker := r.style.live.Render("●")
	if b.Loading {
		marker = r.style.muted.Render("…")
	}
	fmt.Fprintf(r.out, "%s %d %s%s\n", marker, len(b.Issues), t(i18n.ActiveRecords), r.filterLine(st))

	if b.Failed {
		fmt.Fprintln(r.out, r.style.errLine.Render(t(i18n.ErrorLoad)))
	}

	switch {
	case b.Loading && len(b.Issues) == 0:
		fmt.Fprintln(r.out, r.style.muted.Render(t(i18n.Loading)))
		return
	case len(b.Issues) == 0:
		fmt.Fprintln(r.out, r.style.muted.Render(t(i18n.EmptyState)))
		return
	}

	fmt.Fprintln(r.out, r.table(st.Lang, b))
}

func (r *Renderer) filterLine(st *State) string {
	var parts []string
	if st.Search != "" {
		parts = append(parts, fmt.Sprintf("%q", st.Search))
	}
	if st.Status != "" {
		parts = append(parts, i18n.Status(st.Lang, st.Status))
	}
	if st.Since != nil {
		parts = append(parts, "≥ "+FormatDate(st.Lang, *st.Since))
	}
	if len(parts) == 0 {
		return ""
	}
	return r.style.muted.Render("  [" + strings.Join(parts, ", ") + "]")
}

func (r *Renderer) table(lang i18n.Lang, b Board) string {
	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(r.style.border).
		Headers(
			"#",
			strings.ToUpper(i18n.T(lang, i18n.HeaderIssue)),
			strings.ToUpper(i18n.T(lang, i18n.HeaderStatus)),
			strings.ToUpper(i18n.T(lang, i18n.HeaderDate)),
			strings.ToUpper(i18n.T(lang, i18n.HeaderResponsible)),
		).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return r.style.header
			}
			if col == 2 && row >= 0 && row < len(b.Issues) {
				return r.style.badge(b.Issues[row].Status).Padding(0, 1)
			}
			return r.style.cell
		})
	if r.width > 0 {
		tbl = tbl.Width(r.width)
	}

	for _, is := range b.Issues {
		tbl.Row(
			is.ID,
			r.issueCell(lang, is, b.Analyzing),
			i18n.Status(lang, is.Status),
			FormatDate(lang, is.CreatedAt),
			ResponsibleName(lang, is.ResponsibleID),
		)
	}
	return tbl.Render()
}

func (r *Renderer) issueCell(lang i18n.Lang, is issue.Issue, analyzing func(string) bool) string {
	lines := []string{r.style.bold.Render(is.Title)}
	if is.Description != "" {
		lines = append(lines, r.style.muted.Render(truncate(is.Description, maxDescription)))
	}
	switch {
	case analyzing != nil && analyzing(is.ID):
		lines = append(lines, r.style.advice.Render("✨ "+i18n.T(lang, i18n.Loading)))
	case is.HasAnalysis():
		lines = append(lines, r.style.advice.Render("✨ "+is.Analysis()))
	}
	return strings.Join(lines, "\n")
}

// People печатает справочник ответственных.
func (r *Renderer) People(lang i18n.Lang, people []issue.ResponsiblePerson) {
	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(r.style.border).
		Headers(
			strings.ToUpper(i18n.T(lang, i18n.HeaderID)),
			strings.ToUpper(i18n.T(lang, i18n.HeaderName)),
		).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return r.style.header
			}
			return r.style.cell
		})
	for _, p := range people {
		tbl.Row(p.ID, p.Name)
	}
	fmt.Fprintln(r.out, tbl.Render())
}

// ConfigMissing - экран с инструкцией по настройке.
func (r *Renderer) ConfigMissing(lang i18n.Lang) {
	fmt.Fprintln(r.out, r.style.title.Render(i18n.T(lang, i18n.ConfigMissingTitle)))
	fmt.Fprintln(r.out, i18n.T(lang, i18n.ConfigMissingBody))
	fmt.Fprintln(r.out)
	for _, env := range []string{"STORE_URL", "STORE_API_KEY", "LLM_PROVIDER", "LLM_API_KEY"} {
		fmt.Fprintln(r.out, "  "+r.style.muted.Render(env+"=..."))
	}
}

// Auth - заголовок экрана входа.
func (r *Renderer) Auth(lang i18n.Lang) {
	fmt.Fprintln(r.out, r.style.title.Render(i18n.T(lang, i18n.AuthWelcome)))
	fmt.Fprintln(r.out, r.style.muted.Render(i18n.T(lang, i18n.AuthSubtitle)))
}

// Loading - экран до определения сессии.
func (r *Renderer) Loading(lang i18n.Lang) {
	fmt.Fprintln(r.out, r.style.muted.Render(i18n.T(lang, i18n.Loading)))
}

// Advice печатает совет по проблеме.
func (r *Renderer) Advice(lang i18n.Lang, text string) {
	fmt.Fprintln(r.out, r.style.advice.Render(i18n.Tf(lang, i18n.AnalysisResult, text)))
}

// FormatDate - дата в местном для языка формате.
func FormatDate(lang i18n.Lang, t time.Time) string {
	if lang == i18n.EN {
		return t.Format("Jan 2, 2006")
	}
	return t.Format("02.01.2006")
}

// ResponsibleName возвращает имя сотрудника или заглушку для неизвестного id.
func ResponsibleName(lang i18n.Lang, id string) string {
	if p, ok := issue.FindPerson(id); ok {
		return p.Name
	}
	return i18n.T(lang, i18n.Unassigned)
}

func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-1]) + "…"
}
