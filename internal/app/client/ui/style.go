package ui

import (
	"github.com/charmbracelet/lipgloss"

	"liquidtrack/internal/domain/issue"
)

var badgeColors = map[issue.Status]lipgloss.Color{
	issue.StatusNew:        lipgloss.Color("33"),
	issue.StatusInProgress: lipgloss.Color("178"),
	issue.StatusCustoms:    lipgloss.Color("135"),
	issue.StatusDelivery:   lipgloss.Color("62"),
	issue.StatusDone:       lipgloss.Color("35"),
	issue.StatusStuck:      lipgloss.Color("160"),
}

const defaultBadgeColor = lipgloss.Color("245")

type styles struct {
	title   lipgloss.Style
	muted   lipgloss.Style
	header  lipgloss.Style
	advice  lipgloss.Style
	errLine lipgloss.Style
	live    lipgloss.Style
	border  lipgloss.Style
	cell    lipgloss.Style
	bold    lipgloss.Style
	badge   func(issue.Status) lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		title:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		muted:   r.NewStyle().Foreground(lipgloss.Color("245")),
		header:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("244")).Padding(0, 1),
		advice:  r.NewStyle().Italic(true).Foreground(lipgloss.Color("99")),
		errLine: r.NewStyle().Foreground(lipgloss.Color("160")),
		live:    r.NewStyle().Foreground(lipgloss.Color("35")),
		border:  r.NewStyle().Foreground(lipgloss.Color("238")),
		cell:    r.NewStyle().Padding(0, 1),
		bold:    r.NewStyle().Bold(true),
		badge: func(s issue.Status) lipgloss.Style {
			c, ok := badgeColors[s]
			if !ok {
				c = defaultBadgeColor
			}
			return r.NewStyle().Foreground(c).Bold(true)
		},
	}
}
