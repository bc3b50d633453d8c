// Package detail renders the overlay shown for the selected user: the email
// dialog of the directory page, plus the rest of the profile.
package detail

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/userdeck/userdeck/internal/theme"
	"github.com/userdeck/userdeck/internal/user"
)

const panelWidth = 64

var (
	stylePanel = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.ColorBorder).
			Padding(0, 1)

	styleFooter = lipgloss.NewStyle().
			Foreground(theme.ColorDimmed)
)

// Model holds the rendered overlay for one user.
type Model struct {
	Profile user.Profile
	body    string
}

// Option adjusts how the markdown body is rendered.
type Option func(*[]glamour.TermRendererOption)

// WithStyle selects a named glamour style such as "dark" or "notty" instead
// of detecting one from the terminal.
func WithStyle(name string) Option {
	return func(opts *[]glamour.TermRendererOption) {
		*opts = append(*opts, glamour.WithStandardStyle(name))
	}
}

// New renders the overlay for p.
func New(p user.Profile, opts ...Option) Model {
	ropts := []glamour.TermRendererOption{glamour.WithWordWrap(panelWidth - 4)}
	if len(opts) == 0 {
		ropts = append(ropts, glamour.WithAutoStyle())
	}
	for _, opt := range opts {
		opt(&ropts)
	}

	md := Markdown(p)
	body := md
	if r, err := glamour.NewTermRenderer(ropts...); err == nil {
		if out, err := r.Render(md); err == nil {
			body = strings.TrimRight(out, "\n")
		}
	}
	return Model{Profile: p, body: body}
}

// View renders the detail panel.
func (m Model) View() string {
	footer := styleFooter.Render("esc:close")
	return stylePanel.Width(panelWidth).Render(lipgloss.JoinVertical(lipgloss.Left, m.body, "", footer))
}

// Markdown formats p as the markdown the overlay renders.
func Markdown(p user.Profile) string {
	var b strings.Builder

	title := strings.TrimSpace(p.Name.Title + " " + p.FullName())
	fmt.Fprintf(&b, "# %s\n\n", title)

	b.WriteString("## Email address\n\n")
	if p.Email != "" {
		fmt.Fprintf(&b, "`%s`\n\n", p.Email)
	} else {
		b.WriteString("_none on record_\n\n")
	}

	b.WriteString("## Profile\n\n")
	row(&b, "Gender", p.GenderLabel())
	if p.DOB.Age > 0 {
		row(&b, "Age", fmt.Sprint(p.DOB.Age))
	}
	row(&b, "Username", p.Login.Username)
	row(&b, "Phone", p.Phone)
	row(&b, "Cell", p.Cell)
	row(&b, "Location", joinNonEmpty(", ", p.Location.City, p.Location.State, p.Location.Country))
	row(&b, "Nationality", p.Nat)
	row(&b, "Picture", p.Picture.Thumbnail)
	return b.String()
}

func row(b *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(b, "- **%s:** %s\n", label, value)
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
