// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/loopvote/coercion"
	"github.com/danielhkuo/loopvote/guestbook"
	"github.com/danielhkuo/loopvote/models"
)

const maxBarWidth = 30

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.theme.header.Render("🎄 Best Lights on the Block"))
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	if m.banner != "" {
		b.WriteString(m.theme.banner.Render(m.banner))
		b.WriteString("\n\n")
	}

	switch m.activeTab {
	case tabVote:
		b.WriteString(m.renderVote())
	case tabStandings:
		b.WriteString(m.renderStandings())
	case tabComments:
		b.WriteString(m.renderComments())
	}

	if overlay := m.renderBallot(); overlay != "" {
		b.WriteString("\n")
		b.WriteString(overlay)
	}

	b.WriteString("\n")
	if m.status != "" {
		style := m.theme.status
		if m.statusErr {
			style = m.theme.errorStatus
		}
		b.WriteString(style.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.theme.muted.Render(m.help()))
	b.WriteString("\n")

	return b.String()
}

func (m Model) renderTabs() string {
	tabs := make([]string, 0, len(tabNames))
	for i, name := range tabNames {
		if tab(i) == m.activeTab {
			tabs = append(tabs, m.theme.tabActive.Render(name))
		} else {
			tabs = append(tabs, m.theme.tabInactive.Render(name))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderVote() string {
	var b strings.Builder
	tally := m.svc.Tally()

	for i, h := range m.houses {
		pointer := "  "
		line := fmt.Sprintf("#%-3d %-22s %s votes", h.ID, h.Address, humanize.Comma(int64(tally.Get(h.ID))))
		if i == m.cursor {
			pointer = m.theme.cursor.Render("▸ ")
			line = m.theme.cursor.Render(line)
		}
		b.WriteString(pointer + line + "\n")
	}

	if len(m.houses) > 0 {
		h := m.houses[m.cursor]
		b.WriteString("\n")
		b.WriteString(m.theme.muted.Render(h.Description))
		b.WriteString("\n")
	}

	return m.theme.panel.Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) renderStandings() string {
	tally := m.svc.Tally()
	houses := append([]models.House(nil), m.houses...)
	sort.SliceStable(houses, func(i, j int) bool {
		return tally.Get(houses[i].ID) > tally.Get(houses[j].ID)
	})

	top := 1
	total := 0
	for _, h := range houses {
		v := tally.Get(h.ID)
		total += v
		if v > top {
			top = v
		}
	}

	var b strings.Builder
	for i, h := range houses {
		v := tally.Get(h.ID)
		bar := strings.Repeat("█", v*maxBarWidth/top)
		label := fmt.Sprintf("%-5s #%-3d", humanize.Ordinal(i+1), h.ID)
		if h.ID == m.target && i == 0 {
			label = m.theme.target.Render(label)
		}
		b.WriteString(fmt.Sprintf("%s %s %s\n", label, m.theme.bar.Render(bar), humanize.Comma(int64(v))))
	}
	b.WriteString("\n")
	b.WriteString(m.theme.muted.Render(fmt.Sprintf("%s votes cast", humanize.Comma(int64(total)))))

	return m.theme.panel.Render(b.String())
}

func (m Model) renderComments() string {
	var b strings.Builder
	now := m.now()

	msgs := m.board.Messages()
	if len(msgs) == 0 {
		b.WriteString(m.theme.muted.Render("No fan mail yet."))
		b.WriteString("\n")
	}
	for i, msg := range msgs {
		if i == 10 {
			b.WriteString(m.theme.muted.Render(fmt.Sprintf("… %d older", len(msgs)-i)))
			b.WriteString("\n")
			break
		}
		meta := fmt.Sprintf("%s on #%d · %s", msg.Name, msg.HouseID, guestbook.Ago(msg, now))
		text := msg.Text
		if msg.IsSystem {
			text = m.theme.system.Render(text)
		}
		b.WriteString(m.theme.muted.Render(meta))
		b.WriteString("\n  ")
		b.WriteString(text)
		b.WriteString("\n")
	}

	if len(m.houses) > 0 {
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("Posting as %s about House #%d\n", m.name, m.houses[m.cursor].ID))
	}
	b.WriteString(m.input.View())

	return m.theme.panel.Render(b.String())
}

// renderBallot draws the open prompt or the pending-commit spinner.
func (m Model) renderBallot() string {
	v := m.view

	if v.Phase == coercion.PhaseIdle {
		return ""
	}

	var b strings.Builder
	if v.Title != "" {
		b.WriteString(m.theme.modalTitle.Render(v.Title))
		b.WriteString("\n\n")
	}
	if v.Message != "" {
		b.WriteString(v.Message)
		b.WriteString("\n")
	}
	if v.Loading != "" {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(m.spinner.View() + " " + v.Loading)
		b.WriteString("\n")
	}

	if len(v.Actions) > 0 {
		b.WriteString("\n")
		hints := make([]string, 0, len(v.Actions))
		for _, a := range v.Actions {
			hints = append(hints, m.theme.actionKey.Render("["+actionKeys[a]+"]")+" "+actionLabel(a, v))
		}
		b.WriteString(strings.Join(hints, "   "))
		b.WriteString("\n")
	}
	if v.Cancellable {
		b.WriteString("\n")
		b.WriteString(m.theme.muted.Render("[esc] close"))
		b.WriteString("\n")
	}

	return m.theme.modal.Render(strings.TrimRight(b.String(), "\n"))
}

func actionLabel(a coercion.Action, v coercion.View) string {
	switch a {
	case coercion.ActionPay:
		return "Pay " + coercion.PaywallPrice
	case coercion.ActionSwitch:
		return fmt.Sprintf("Vote #%d for free", v.TargetID)
	case coercion.ActionAccept:
		return fmt.Sprintf("Yes, vote #%d", v.TargetID)
	case coercion.ActionDecline:
		return fmt.Sprintf("No, keep #%d", v.RawChoiceID)
	case coercion.ActionAcknowledge:
		return fmt.Sprintf("OK, vote #%d", v.TargetID)
	}
	return string(a)
}

func (m Model) help() string {
	if m.view.Phase == coercion.PhaseSession {
		return "answer the prompt • ctrl+c quit"
	}
	switch m.activeTab {
	case tabComments:
		return "enter post • tab switch view • esc back • ctrl+c quit"
	case tabStandings:
		return "tab switch view • q quit"
	}
	return "↑/↓ choose • enter vote • tab switch view • q quit"
}
