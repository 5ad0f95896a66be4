package viz

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/deckmenu/internal/deck"
	"github.com/san-kum/deckmenu/internal/sequencer"
)

// exitFade is the length of the fade-out played by leaving elements.
const exitFade = 500 * time.Millisecond

func (m Model) View() string {
	snap := m.seq.Snapshot()

	body := lipgloss.JoinVertical(lipgloss.Left,
		m.viewTitleBar(snap),
		m.viewBody(snap),
		"",
		m.viewFooter(snap),
	)
	if m.showHelp {
		body = m.viewHelp()
	}
	if m.width == 0 || m.height == 0 {
		return body
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
}

// inPhase is the time spent in the current phase.
func (m Model) inPhase() time.Duration { return m.clock.now.Sub(m.clock.entered) }

func progress(elapsed, total time.Duration) float64 {
	if total <= 0 {
		return 1
	}
	return easeInOut(float64(elapsed) / float64(total))
}

// fade dims c toward the stage background; alpha 1 is fully visible.
func (m Model) fade(c lipgloss.Color, alpha float64) lipgloss.Color {
	return Fade(m.theme.Background, c, alpha)
}

// titleAlpha follows the title bar through reveal and dismissal.
func (m Model) titleAlpha(snap sequencer.Snapshot) float64 {
	switch snap.Phase {
	case sequencer.TitleBarRevealing:
		return progress(m.inPhase(), exitFade)
	case sequencer.MenuDismissing:
		return 1 - progress(m.inPhase(), exitFade)
	case sequencer.Terminal:
		return 0
	}
	if snap.TitleBarVisible() {
		return 1
	}
	return 0
}

func (m Model) viewTitleBar(snap sequencer.Snapshot) string {
	alpha := m.titleAlpha(snap)
	if alpha <= 0 {
		return lipgloss.NewStyle().Width(stageW).Height(3).Render("")
	}

	text := snap.Entry
	if snap.Phase == sequencer.MenuChoiceConfirming {
		runes := []rune(text)
		n := int(float64(len(runes)) * progress(m.inPhase(), exitFade))
		text = string(runes[:n])
	}
	if !snap.Flags.Has(sequencer.FlagEntryChosen) {
		text = ""
	}
	c := m.fade(m.theme.Title, alpha)
	return titleBarStyle(c, c).Render(text)
}

func (m Model) viewBody(snap sequencer.Snapshot) string {
	bodyH := stageH - 3
	var content string
	switch {
	case snap.Phase < sequencer.Centering:
		content = m.viewGrid(snap)
	case snap.Phase == sequencer.Centering:
		id, _ := snap.Selected()
		alpha := 1 - progress(m.inPhase(), time.Second)
		content = m.viewCard(id, snap, alpha)
	case snap.Flags.Has(sequencer.FlagMenu) && snap.Phase <= sequencer.MenuDismissing:
		content = m.viewMenu(snap)
	}
	return lipgloss.Place(stageW, bodyH, lipgloss.Center, lipgloss.Top, content)
}

func (m Model) viewGrid(snap sequencer.Snapshot) string {
	cells := make([]string, deck.NumCards())
	sinceStart := m.clock.now.Sub(m.clock.start)
	for _, c := range deck.Cards() {
		alpha := progress(sinceStart-time.Duration(c.Delay*float64(time.Second)), fadeIn)
		switch {
		case snap.CardFading(c.ID):
			alpha *= 1 - progress(m.inPhase(), exitFade)
		case !snap.CardPresent(c.ID):
			alpha = 0
		}
		cells[c.ID] = m.viewCard(c.ID, snap, alpha)
	}
	gap := "  "
	top := lipgloss.JoinHorizontal(lipgloss.Top, cells[0], gap, cells[1])
	bottom := lipgloss.JoinHorizontal(lipgloss.Top, cells[2], gap, cells[3])
	return lipgloss.JoinVertical(lipgloss.Left, top, bottom)
}

func (m Model) viewCard(id int, snap sequencer.Snapshot, alpha float64) string {
	if alpha <= 0 {
		return lipgloss.NewStyle().Width(cardCols + 4).Height(cardRows + 2).Render("")
	}

	stroke := m.theme.Stroke
	switch {
	case snap.CardRecolored(id):
		stroke = m.theme.Recolor
	case snap.IsSelected(id):
		stroke = Fade(m.theme.Highlight, m.theme.Recolor, progress(m.inPhase(), 1500*time.Millisecond))
	}
	border := m.theme.Frame
	if snap.Phase == sequencer.Idle && id == m.cursor {
		border = m.theme.Title
	}

	art := lipgloss.NewStyle().Foreground(m.fade(stroke, alpha)).Render(strings.Join(m.art[id], "\n"))
	return cardStyle(m.fade(border, alpha)).Render(art)
}

func (m Model) viewMenu(snap sequencer.Snapshot) string {
	alpha := 1.0
	switch snap.Phase {
	case sequencer.MenuRevealing:
		if !snap.Flags.Has(sequencer.FlagEntryPending) {
			alpha = progress(m.inPhase(), exitFade)
		}
	case sequencer.MenuDismissing:
		alpha = 1 - progress(m.inPhase(), exitFade)
	}
	if alpha <= 0 {
		return ""
	}

	title := m.fade(m.theme.Title, alpha)
	text := m.fade(m.theme.Text, alpha)
	var b strings.Builder
	for i, e := range deck.MenuEntries() {
		marker := "  "
		style := lipgloss.NewStyle().Foreground(title)
		switch {
		case snap.EntryChosen(e):
			style = style.Foreground(text).Background(title).Bold(true)
		case snap.Pending == e:
			marker = "▸ "
			style = style.Bold(true)
		case snap.Phase == sequencer.MenuRevealing && !snap.Flags.Has(sequencer.FlagEntryPending) && i == m.menuCursor:
			marker = "▸ "
			style = style.Foreground(text).Bold(true)
		}
		b.WriteString(marker + style.Render(" "+e+" "))
		if i < len(deck.MenuEntries())-1 {
			b.WriteString("\n\n")
		}
	}
	return menuStyle(title).Render(b.String())
}

func (m Model) viewFooter(snap sequencer.Snapshot) string {
	hint := func(key, what string) string {
		return keyStyle.Render(key) + hintStyle.Render(" "+what+"  ")
	}
	var b strings.Builder
	switch snap.Phase {
	case sequencer.Idle:
		b.WriteString(hint("1-4", "pick") + hint("hjkl", "move") + hint("enter", "select"))
	case sequencer.MenuRevealing:
		if !snap.Flags.Has(sequencer.FlagEntryPending) {
			b.WriteString(hint("j/k", "navigate") + hint("enter", "select"))
		}
	}
	b.WriteString(hint("t", m.theme.Name) + hint("?", "help") + hint("q", "quit"))
	return b.String() + "\n" + hintStyle.Render(snap.Phase.String())
}

func (m Model) viewHelp() string {
	rows := [][2]string{
		{"1-4", "pick a card"},
		{"arrows/hjkl", "move the card cursor"},
		{"j/k", "move the menu cursor"},
		{"enter/space", "select"},
		{"t", "cycle theme"},
		{"?", "close help"},
		{"q", "quit"},
	}
	var b strings.Builder
	for _, r := range rows {
		b.WriteString(keyStyle.Render(padRight(r[0], 12)) + hintStyle.Render(r[1]) + "\n")
	}
	return helpStyle.Render(strings.TrimSuffix(b.String(), "\n"))
}

func padRight(s string, n int) string {
	if w := lipgloss.Width(s); w < n {
		return s + strings.Repeat(" ", n-w)
	}
	return s
}
