package main

import (
	"fmt"

	"rogueace/internal/app"
	"rogueace/internal/bot"
	"rogueace/internal/domain"
)

// option is one entry of the action menu.
type option struct {
	Label  string
	Action app.Action
}

// actingSeat returns the seat that owes the next action, or -1 when nobody does.
func actingSeat(g *domain.Game) int {
	for seat := range g.Players {
		if bot.NeedsMove(g, seat) {
			return seat
		}
	}
	return -1
}

// menu lists every action seat can legally take right now.
func menu(g *domain.Game, seat int) []option {
	p := g.Player(seat)
	if p == nil {
		return nil
	}
	var out []option
	switch g.Phase {
	case domain.PhaseSetup:
		for _, c := range p.Hand {
			out = append(out, option{
				Label:  fmt.Sprintf("Ruler %s  %s", c.Pretty(), domain.RulerAbilityFor(c).Name),
				Action: app.PickRuler(seat, c),
			})
		}
	case domain.PhasePlaying:
		for _, play := range g.LegalPlays(seat) {
			label := "Play " + domain.PrettyCards(play)
			if ability, ok := domain.AbilityFor(domain.ClassifyPlay(play), play[0].Rank); ok {
				label += "  (" + ability.Name + ")"
			}
			out = append(out, option{Label: label, Action: app.Play(seat, play...)})
		}
		switch {
		case g.CanDraw(seat):
			out = append(out, option{Label: fmt.Sprintf("Draw %d", g.DrawCount(seat)), Action: app.Draw(seat)})
		case len(out) == 0:
			out = append(out, option{Label: "Pass", Action: app.Pass(seat)})
		}
	case domain.PhaseResolving:
		for _, choice := range g.ChoiceOptions() {
			out = append(out, option{Label: describeChoice(g, choice), Action: app.Resolve(seat, choice)})
		}
	}
	return out
}

func describeChoice(g *domain.Game, c domain.Choice) string {
	switch c.Kind {
	case domain.ChoiceSalvageTake:
		return "Salvage " + c.Card.Pretty()
	case domain.ChoiceSalvageDiscard:
		return "Discard " + c.Card.Pretty()
	case domain.ChoiceDeckPick:
		return fmt.Sprintf("Take deck card %d: %s", *c.Index+1, g.Pending.Candidates[*c.Index].Pretty())
	case domain.ChoiceDeckSwap:
		return "Put back " + c.Card.Pretty()
	case domain.ChoiceTarget:
		return fmt.Sprintf("Target seat %d (%d cards)", *c.Index, len(g.Player(*c.Index).Hand))
	case domain.ChoiceFort:
		if c.Option == domain.FortNow {
			return fmt.Sprintf("Fort now: opponent draws %d", domain.FortNowDraw)
		}
		return fmt.Sprintf("Fort later: opponent draws %d at your next turn", domain.FortDeferDraw)
	}
	return string(c.Kind)
}
