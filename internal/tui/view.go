package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/aishort/showcase-server/internal/domain"
	"github.com/aishort/showcase-server/internal/showcase"
)

const helpLine = "←/→ tag · space toggle · o AND/OR · / search · ↑/↓ move · c copy · m more · e English · [ ] history · q quit"

// View implements tea.Model.
func (m Model) View() string {
	v := m.page.View()

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Prompt Showcase"))
	b.WriteString("  ")
	b.WriteString(m.styles.Location.Render(m.history.Location().String()))
	b.WriteString("\n\n")

	b.WriteString(m.renderTags(v))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	if v.Mode == "tags" && v.InputValue != "" {
		b.WriteString(m.styles.Muted.Render("  (ignored while tags are selected)"))
	}
	b.WriteString("\n")

	offset := 0
	if len(v.Favorites) > 0 {
		b.WriteString(m.styles.Section.Render(fmt.Sprintf("Favorites (%d)", len(v.Favorites))))
		b.WriteString("\n")
		b.WriteString(m.renderCards(v.Favorites, offset))
		offset += len(v.Favorites)
	}

	b.WriteString(m.styles.Section.Render(fmt.Sprintf("Prompts (%d)", v.TotalOthers)))
	b.WriteString("\n")
	switch {
	case v.NoResults:
		b.WriteString(m.styles.Placeholder.Render("  No prompts match."))
		b.WriteString("\n")
	default:
		b.WriteString(m.renderCards(v.Others, offset))
	}
	if v.ShowLoadMore {
		hidden := v.TotalOthers - len(v.Others)
		b.WriteString(m.styles.Muted.Render(fmt.Sprintf("  … %d more, press m to load", hidden)))
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Status.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render(helpLine))
	return b.String()
}

func (m Model) renderTags(v showcase.View) string {
	chips := make([]string, 0, len(v.Tags)+1)
	for i, chip := range v.Tags {
		label := chip.Label
		if label == "" {
			label = string(chip.ID)
		}
		style := m.styles.Chip
		if chip.Selected {
			style = m.styles.ChipOn
		}
		if i == m.tagCursor {
			style = style.Underline(true).Bold(true)
		}
		chips = append(chips, style.Render(label))
	}

	op := domain.OperatorOR
	if v.State.Operator == domain.OperatorAND {
		op = domain.OperatorAND
	}
	chips = append(chips, m.styles.Operator.Render(string(op)))
	return lipgloss.JoinHorizontal(lipgloss.Top, interleave(chips, " ")...)
}

func (m Model) renderCards(cards []showcase.Card, offset int) string {
	var b strings.Builder
	for i, card := range cards {
		line := fmt.Sprintf("#%-4d %s", card.ID, card.Title)
		if card.Favorite {
			line += m.styles.Favorite.Render(" ♥")
		}
		line += m.styles.Count.Render(fmt.Sprintf("  %d copies", card.CopyCount))

		if offset+i == m.cursor {
			b.WriteString(m.styles.CardCursor.Render("> " + line))
		} else {
			b.WriteString(m.styles.Card.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func interleave(items []string, sep string) []string {
	out := make([]string, 0, len(items)*2)
	for i, it := range items {
		if i > 0 {
			out = append(out, sep)
		}
		out = append(out, it)
	}
	return out
}
