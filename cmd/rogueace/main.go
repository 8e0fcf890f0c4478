// Command rogueace plays Rogue Ace in the terminal, hot-seat or against a bot.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"

	"rogueace/internal/app"
	"rogueace/internal/bot"
	"rogueace/internal/config"
	"rogueace/internal/domain"
)

const (
	botSeat   = 1
	botPause  = 700 * time.Millisecond
	quitLabel = "Quit"
)

func main() {
	botLevel := flag.String("bot", "", "play against a bot of this difficulty (easy, medium, hard)")
	seed := flag.Int64("seed", 0, "shuffle seed, 0 for a random table")
	handSize := flag.Int("hand", 0, "starting hand size")
	drawCount := flag.Int("draw", 0, "cards taken by a draw")
	flag.Parse()

	cfg := config.Default()
	cfg.Seed = *seed
	if *handSize > 0 {
		cfg.HandSize = *handSize
	}
	if *drawCount > 0 {
		cfg.DrawCount = *drawCount
	}
	if err := cfg.Validate(); err != nil {
		pterm.Error.Println(err)
		os.Exit(2)
	}

	var agent *bot.Agent
	names := []string{"Player 0", "Player 1"}
	if *botLevel != "" {
		level, err := bot.ParseLevel(*botLevel)
		if err != nil {
			pterm.Error.Println(err)
			os.Exit(2)
		}
		brain, err := bot.NewBrain(level)
		if err != nil {
			pterm.Error.Println(err)
			os.Exit(2)
		}
		agent = &bot.Agent{ID: "bot", Name: "Bot (" + *botLevel + ")", Strategy: brain}
		names[botSeat] = agent.Name
	}

	store, err := app.NewStore(cfg, nil)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
	session, err := store.Session("local")
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	title, _ := pterm.DefaultBigText.WithLetters(
		putils.LettersFromStringWithStyle("R", pterm.FgRed.ToStyle()),
		putils.LettersFromStringWithStyle("ogue ", pterm.FgDarkGray.ToStyle()),
		putils.LettersFromStringWithStyle("A", pterm.FgRed.ToStyle()),
		putils.LettersFromStringWithStyle("ce", pterm.FgDarkGray.ToStyle()),
	).Srender()
	pterm.Print(title)

	play(session, agent, names)
	pterm.Println("Thank you for playing...")
}

func play(session *app.Session, agent *bot.Agent, names []string) {
	for {
		g := session.Game()
		if g.Phase == domain.PhaseFinished {
			printState(session.Snapshot(), names)
			pterm.Success.Printfln("%s wins the hand!", names[g.Winner])
			again, _ := pterm.DefaultInteractiveConfirm.WithDefaultText("Deal another hand?").WithDefaultValue(true).Show()
			if !again {
				return
			}
			if _, err := session.Apply(app.Reset()); err != nil {
				pterm.Error.Println(err)
				return
			}
			continue
		}

		seat := actingSeat(g)
		if seat < 0 {
			pterm.Error.Println("No seat can move.")
			return
		}

		if agent != nil && seat == botSeat {
			spinner, _ := pterm.DefaultSpinner.Start(fmt.Sprintf("%s is thinking ...", agent.Name))
			time.Sleep(botPause)
			snap, err := agent.TakeTurn(session, seat)
			if err != nil {
				spinner.Fail(err.Error())
				return
			}
			spinner.Success(snap.Status)
			continue
		}

		viewer := seat
		if agent != nil {
			viewer = 1 - botSeat
		}
		printState(session.Snapshot().ForSeat(viewer), names)

		opts := menu(g, seat)
		labels := make([]string, 0, len(opts)+1)
		for _, o := range opts {
			labels = append(labels, o.Label)
		}
		labels = append(labels, quitLabel)

		selected, _ := pterm.DefaultInteractiveSelect.
			WithDefaultText(fmt.Sprintf("%s, your move", names[seat])).
			WithOptions(labels).
			WithMaxHeight(12).
			Show()
		if selected == quitLabel {
			return
		}
		for _, o := range opts {
			if o.Label != selected {
				continue
			}
			if _, err := session.Apply(o.Action); err != nil {
				pterm.Error.Printfln("%s: %s", domain.KindOf(err), err)
			}
			break
		}
	}
}
