package main

import (
	"strings"

	"github.com/pterm/pterm"

	"rogueace/internal/app"
	"rogueace/internal/domain"
)

const historyLines = 6

func colorCard(c domain.Card) string {
	if c.Color() == domain.Red {
		return pterm.LightRed(c.Pretty())
	}
	return c.Pretty()
}

func colorCards(cards []domain.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = colorCard(c)
	}
	return strings.Join(parts, " ")
}

// printState draws both seats, the table and the recent history.
func printState(snap app.Snapshot, names []string) {
	var seats []pterm.Panel
	for _, p := range snap.Players {
		seats = append(seats, pterm.Panel{Data: playerInfo(snap, p, names[p.Seat])})
	}
	board := pterm.Panel{Data: boardInfo(snap)}
	history := pterm.Panel{Data: historyInfo(snap.History)}

	_ = pterm.DefaultPanel.WithPanels([][]pterm.Panel{
		seats,
		{board, history},
	}).Render()
}

func playerInfo(snap app.Snapshot, p app.PlayerView, name string) string {
	pbox := pterm.DefaultBox.WithHorizontalPadding(4).WithTopPadding(1).WithBottomPadding(1)
	title := name
	if !snap.GameOver && snap.Turn == p.Seat && snap.Phase != domain.PhaseSetup {
		title = pterm.LightCyan(name + " *")
	}

	var b strings.Builder
	if p.Ruler != nil {
		b.WriteString(pterm.Sprintf("Ruler: %s %s\n", colorCard(*p.Ruler), p.RulerName))
	} else {
		b.WriteString("Ruler: choosing\n")
	}
	b.WriteString(pterm.Sprintf("Cards: %d\n", p.HandCount))
	if p.Lock != "" {
		b.WriteString(pterm.LightRed("Locked: "+p.Lock) + "\n")
	}
	if p.FreeStep {
		b.WriteString(pterm.LightGreen("Free step") + "\n")
	}
	if p.Fort {
		b.WriteString(pterm.LightYellow("Fort primed") + "\n")
	}
	if !p.Hidden {
		b.WriteString(pterm.BgGreen.Sprint(" "+colorCards(p.Hand)+" ") + "\n")
	}
	return pbox.WithTitle(title).WithTitleTopLeft().Sprint(b.String())
}

func boardInfo(snap app.Snapshot) string {
	pbox := pterm.DefaultBox.WithHorizontalPadding(4).WithTopPadding(1).WithBottomPadding(1)
	top := "-"
	if snap.DiscardTop != nil {
		top = colorCard(*snap.DiscardTop)
	}
	info := pterm.Sprintf("Top: %s\nDeck: %d  Discard: %d\nPhase: %s\nWins: %v\n", top, snap.DeckCount, snap.DiscardCount, snap.Phase, snap.Wins)
	if pend := snap.Pending; pend != nil {
		info += pterm.LightYellow(pterm.Sprintf("Seat %d resolves %s (%d/%d)", pend.Player, pend.Expects, pend.Step+1, pend.Steps)) + "\n"
		if len(pend.Candidates) > 0 {
			info += "Offered: " + colorCards(pend.Candidates) + "\n"
		}
	}
	return pbox.WithTitle(pterm.LightYellow("|TABLE|")).WithTitleTopCenter().Sprint(info)
}

func historyInfo(events []app.Event) string {
	pbox := pterm.DefaultBox.WithHorizontalPadding(2).WithTopPadding(1).WithBottomPadding(1)
	if len(events) > historyLines {
		events = events[len(events)-historyLines:]
	}
	var b strings.Builder
	for _, e := range events {
		b.WriteString(e.Detail)
		b.WriteString("\n")
	}
	return pbox.WithTitle("|LAST MOVES|").WithTitleTopCenter().Sprint(b.String())
}
