// Package userlist renders the loaded users as a column of cards, one per
// record, keyed by the record's email.
package userlist

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/userdeck/userdeck/internal/theme"
	"github.com/userdeck/userdeck/internal/user"
)

// cardHeight is the rendered height of one card, borders included.
const cardHeight = 4

// Item is one rendered user.
type Item struct {
	Key     string
	Profile user.Profile
}

// Model holds the list as last taken from the store.
type Model struct {
	Items    []Item
	Loaded   bool
	Selected int
	Width    int
	Height   int

	top int // index of the first visible card
}

// New creates an empty, unloaded list.
func New() Model {
	return Model{}
}

// SetState replaces the items with the users in st. Records that are not
// objects still get a card, keyed by position. The selection is kept when
// its key survives the reload.
func (m *Model) SetState(st *user.State) {
	var selectedKey string
	prev := m.Selected
	if cur, ok := m.Current(); ok {
		selectedKey = cur.Key
	}

	m.Loaded = st.Loaded()
	m.Items = m.Items[:0:0]
	for i, rec := range st.Users() {
		p, _ := rec.Profile()
		m.Items = append(m.Items, Item{Key: p.Key(i), Profile: p})
	}

	// Keys repeat when records share an email, so the old position wins
	// over the first match.
	m.Selected = 0
	if prev >= 0 && prev < len(m.Items) && m.Items[prev].Key == selectedKey {
		m.Selected = prev
	} else {
		for i, it := range m.Items {
			if it.Key == selectedKey {
				m.Selected = i
				break
			}
		}
	}
	m.scrollToSelected()
}

// Current returns the selected item.
func (m Model) Current() (Item, bool) {
	if m.Selected < 0 || m.Selected >= len(m.Items) {
		return Item{}, false
	}
	return m.Items[m.Selected], true
}

// Next selects the following card, wrapping at the end.
func (m *Model) Next() {
	if len(m.Items) > 0 {
		m.Selected = (m.Selected + 1) % len(m.Items)
		m.scrollToSelected()
	}
}

// Prev selects the preceding card, wrapping at the start.
func (m *Model) Prev() {
	if len(m.Items) > 0 {
		m.Selected = (m.Selected - 1 + len(m.Items)) % len(m.Items)
		m.scrollToSelected()
	}
}

func (m *Model) visibleCards() int {
	if m.Height <= 0 {
		return len(m.Items)
	}
	return max(m.Height/cardHeight, 1)
}

func (m *Model) scrollToSelected() {
	n := m.visibleCards()
	switch {
	case m.Selected < m.top:
		m.top = m.Selected
	case m.Selected >= m.top+n:
		m.top = m.Selected - n + 1
	}
	m.top = max(min(m.top, len(m.Items)-n), 0)
}

// View renders the visible cards. An unloaded list renders nothing.
func (m Model) View() string {
	if !m.Loaded {
		return ""
	}
	if len(m.Items) == 0 {
		return theme.StyleDimmed.Render("  No users")
	}

	width := max(m.Width-2, 30)
	end := min(m.top+m.visibleCards(), len(m.Items))

	cards := make([]string, 0, end-m.top)
	for i := m.top; i < end; i++ {
		cards = append(cards, renderCard(m.Items[i], i == m.Selected, width))
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}

func renderCard(it Item, selected bool, width int) string {
	p := it.Profile
	gender := p.GenderLabel()

	name := p.FullName()
	if name == "" {
		name = it.Key
	}
	nameStr := lipgloss.NewStyle().Bold(true).Foreground(theme.GenderColor(gender)).
		Render(theme.GenderGlyph(gender) + " " + name)
	genderStr := lipgloss.NewStyle().Foreground(theme.ColorCardText).Render("gender: " + gender)

	email := p.Email
	if email == "" {
		email = "-"
	}
	emailStr := lipgloss.NewStyle().Foreground(theme.ColorAccent).Render("✉ " + email)

	border := theme.ColorBorder
	if selected {
		border = theme.ColorBright
	}
	body := strings.Join([]string{nameStr + "  " + genderStr, emailStr}, "\n")
	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 1).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Render(body)
}
