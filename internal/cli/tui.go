package cli

import (
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rubisco-sfa/rubiplot/pkg/alias"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	listGroupStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorGray)
)

// =============================================================================
// AliasReviewModel - Interactive alias checklist
// =============================================================================

// reviewItem is one candidate spelling of a roster last name.
type reviewItem struct {
	Last     string
	Spelling alias.Spelling
	Checked  bool
}

// AliasReviewModel is the bubbletea model for accepting or rejecting
// candidate spellings.
type AliasReviewModel struct {
	Items  []reviewItem
	Cursor int
	Height int
	Offset int
	Saved  bool

	// keys with no candidates are kept so the saved file lists every member
	keys []string
}

// NewAliasReviewModel lists every candidate spelling, checked when current
// already accepts it. Curated spellings that the bibliography no longer
// produces are listed too, checked and with no records, so saving never
// drops them silently.
func NewAliasReviewModel(c alias.Candidates, current alias.Aliases) AliasReviewModel {
	keys := c.Keys()
	for _, k := range current.Keys() {
		if _, ok := c[k]; !ok {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)

	m := AliasReviewModel{Height: 15, keys: keys}
	for _, last := range keys {
		seen := make(map[string]bool, len(c[last]))
		for _, s := range c[last] {
			seen[s.Name] = true
			m.Items = append(m.Items, reviewItem{
				Last:     last,
				Spelling: s,
				Checked:  current.Contains(last, s.Name),
			})
		}
		extra := slices.Clone(current[last])
		slices.Sort(extra)
		for _, name := range slices.Compact(extra) {
			if seen[name] {
				continue
			}
			m.Items = append(m.Items, reviewItem{
				Last:     last,
				Spelling: alias.Spelling{Name: name},
				Checked:  true,
			})
		}
	}
	return m
}

func (m AliasReviewModel) Init() tea.Cmd {
	return nil
}

func (m AliasReviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Items)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case " ", "x":
			if len(m.Items) > 0 {
				m.Items[m.Cursor].Checked = !m.Items[m.Cursor].Checked
			}
		case "a":
			// Toggle every spelling of the current last name together.
			if len(m.Items) > 0 {
				last := m.Items[m.Cursor].Last
				state := !m.Items[m.Cursor].Checked
				for i := range m.Items {
					if m.Items[i].Last == last {
						m.Items[i].Checked = state
					}
				}
			}
		case "enter", "s":
			m.Saved = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m AliasReviewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Review Author Aliases"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  space toggle  a toggle name  ⏎ save  q quit"))
	b.WriteString("\n\n")

	if len(m.Items) == 0 {
		b.WriteString(listDimStyle.Render("  no candidate spellings found"))
		b.WriteString("\n")
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.Items))
	prev := ""
	for i := m.Offset; i < end; i++ {
		it := m.Items[i]
		if it.Last != prev {
			b.WriteString(listGroupStyle.Render(it.Last))
			b.WriteString("\n")
			prev = it.Last
		}

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		box := "[ ]"
		if it.Checked {
			box = StyleSuccess.Render("[x]")
		}
		line := fmt.Sprintf("%s%s %-30s %s", cursor, box, it.Spelling.Name,
			listDimStyle.Render(recordsLabel(it.Spelling.Records)))

		switch {
		case i == m.Cursor:
			b.WriteString(listSelectedStyle.Render(line))
		case it.Checked:
			b.WriteString(listNormalStyle.Render(line))
		default:
			b.WriteString(listDimStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d] %d accepted", m.Cursor+1, len(m.Items), m.checked())))

	return b.String()
}

// Aliases returns the checked spellings. Every reviewed last name is
// present, with an empty list when nothing was accepted.
func (m AliasReviewModel) Aliases() alias.Aliases {
	out := make(alias.Aliases, len(m.keys))
	for _, k := range m.keys {
		out[k] = []string{}
	}
	for _, it := range m.Items {
		if it.Checked {
			out.Add(it.Last, it.Spelling.Name)
		}
	}
	return out
}

func (m AliasReviewModel) checked() int {
	n := 0
	for _, it := range m.Items {
		if it.Checked {
			n++
		}
	}
	return n
}

func recordsLabel(n int) string {
	if n == 1 {
		return "1 record"
	}
	return fmt.Sprintf("%d records", n)
}
