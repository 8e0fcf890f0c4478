package app

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"rogueace/internal/domain"
)

// Service contains the Rogue Ace turn engine operating on domain state.
type Service struct {
	rng    *rand.Rand
	logger *zap.Logger
}

// NewService constructs a Service with provided rng or a time-seeded default.
// A nil logger discards output.
func NewService(rng *rand.Rand, logger *zap.Logger) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{rng: rng, logger: logger}
}

// NewGame deals a fresh hand in the setup phase.
func (s *Service) NewGame(rules domain.Rules) (*domain.Game, []Event, error) {
	g, err := domain.NewGame(uuid.NewString(), rules, s.rng)
	if err != nil {
		return nil, nil, err
	}
	return g, []Event{{
		Kind:   EventGameStarted,
		Seat:   -1,
		Detail: fmt.Sprintf("Dealt %d cards to each player. Choose your rulers.", rules.HandSize),
	}}, nil
}

// Apply runs one action against game and mutates it in place. On error game may be
// partially modified; callers wanting all-or-nothing semantics apply to a Clone.
func (s *Service) Apply(game *domain.Game, act Action) ([]Event, error) {
	m := &move{svc: s, g: game}

	var err error
	switch act.Kind {
	case ActionPickRuler:
		err = m.pickRuler(act.Seat, act.Cards)
	case ActionDraw:
		err = m.draw(act.Seat)
	case ActionPlay:
		err = m.play(act.Seat, act.Cards)
	case ActionResolveChoice:
		err = m.resolveChoice(act.Seat, act.Choice)
	case ActionPass:
		err = m.pass(act.Seat)
	case ActionReset:
		err = m.reset()
	default:
		err = domain.Errorf(domain.KindInvalidAction, "unknown action %q", act.Kind)
	}
	if err != nil {
		return nil, err
	}

	if game.Phase != domain.PhaseFinished && game.Phase != domain.PhaseSetup {
		m.checkWin()
	}
	s.logger.Debug("action applied",
		zap.String("game_id", game.ID),
		zap.String("action", string(act.Kind)),
		zap.Int("seat", act.Seat),
		zap.String("phase", string(game.Phase)),
	)
	return m.events, nil
}

// move accumulates the events of one action.
type move struct {
	svc    *Service
	g      *domain.Game
	events []Event
}

func (m *move) emit(kind EventKind, seat int, cards []domain.Card, format string, args ...any) {
	m.events = append(m.events, Event{
		Kind:   kind,
		Seat:   seat,
		Cards:  append([]domain.Card(nil), cards...),
		Detail: fmt.Sprintf(format, args...),
	})
}

func (m *move) emitPrivate(kind EventKind, seat int, cards []domain.Card, format string, args ...any) {
	m.emit(kind, seat, cards, format, args...)
	m.events[len(m.events)-1].Private = true
}

func (m *move) player(seat int) (*domain.Player, error) {
	p := m.g.Player(seat)
	if p == nil {
		return nil, domain.Errorf(domain.KindInvalidAction, "no player at seat %d", seat)
	}
	return p, nil
}

// turnPlayer validates a normal turn action (draw, play or pass) by seat.
func (m *move) turnPlayer(seat int) (*domain.Player, error) {
	p, err := m.player(seat)
	if err != nil {
		return nil, err
	}
	switch {
	case m.g.Phase == domain.PhaseFinished:
		return nil, domain.ErrGameOver
	case m.g.Phase == domain.PhaseSetup:
		return nil, domain.Errorf(domain.KindUnexpectedAction, "both rulers must be chosen first")
	case m.g.Pending != nil:
		return nil, domain.Errorf(domain.KindChoicePending, "seat %d must resolve %s first", m.g.Pending.Player, m.g.Pending.Kind)
	case m.g.Turn != seat:
		return nil, domain.Errorf(domain.KindNotYourTurn, "it is seat %d's turn", m.g.Turn)
	}
	return p, nil
}

func (m *move) pickRuler(seat int, cards []domain.Card) error {
	p, err := m.player(seat)
	if err != nil {
		return err
	}
	if m.g.Phase == domain.PhaseFinished {
		return domain.ErrGameOver
	}
	if m.g.Phase != domain.PhaseSetup {
		return domain.Errorf(domain.KindInvalidRulerSelection, "rulers are chosen only during setup")
	}
	if len(cards) != 1 {
		return domain.Errorf(domain.KindInvalidRulerSelection, "choose exactly one ruler, got %d cards", len(cards))
	}
	if p.Ruler != nil {
		return domain.Errorf(domain.KindInvalidRulerSelection, "seat %d already chose %s", seat, p.Ruler)
	}
	ruler := cards[0]
	if !domain.ContainsCard(p.Hand, ruler) {
		return domain.Errorf(domain.KindInvalidRulerSelection, "%s is not in seat %d's hand", ruler, seat)
	}

	p.Hand = domain.RemoveCards(p.Hand, cards)
	p.Ruler = &ruler
	m.emit(EventRulerPicked, seat, cards, "Seat %d crowned %s (%s).", seat, ruler.Pretty(), domain.RulerAbilityFor(ruler).Name)

	if !m.g.RulersChosen() {
		return nil
	}
	top, err := m.g.Deck.Draw(1)
	if err != nil {
		return err
	}
	m.g.Discard = top
	m.g.Phase = domain.PhasePlaying
	m.g.Turn = 0
	m.emit(EventPlayStarted, -1, top, "Play begins on %s.", top[0].Pretty())
	return nil
}

func (m *move) draw(seat int) error {
	p, err := m.turnPlayer(seat)
	if err != nil {
		return err
	}
	n := m.g.DrawCount(seat)
	if m.g.Deck.Len() < n {
		m.recycle()
	}
	if m.g.Deck.Len() < n {
		return domain.Errorf(domain.KindEmptyDeck, "deck has %d cards, drawing needs %d", m.g.Deck.Len(), n)
	}
	cards, err := m.g.Deck.Draw(n)
	if err != nil {
		return err
	}
	p.Hand = append(p.Hand, cards...)
	consumeModifiers(p)
	m.emitPrivate(EventCardsDrawn, seat, cards, "Seat %d drew %d.", seat, n)
	m.advanceTurn()
	return nil
}

func (m *move) play(seat int, cards []domain.Card) error {
	p, err := m.turnPlayer(seat)
	if err != nil {
		return err
	}
	kind, err := m.g.EvaluatePlay(seat, cards)
	if err != nil {
		return err
	}

	p.Hand = domain.RemoveCards(p.Hand, cards)
	consumeModifiers(p)
	m.g.Discard = append(append([]domain.Card(nil), cards...), m.g.Discard...)
	m.emit(EventCardsPlayed, seat, cards, "Seat %d played %s.", seat, domain.PrettyCards(cards))

	if m.checkWin() {
		return nil
	}
	ability, ok := domain.AbilityFor(kind, cards[0].Rank)
	if !ok {
		m.advanceTurn()
		return nil
	}
	m.emit(EventAbility, seat, nil, "%s!", ability.Name)
	m.applyAbility(seat, ability, len(cards))
	return nil
}

func (m *move) pass(seat int) error {
	p, err := m.turnPlayer(seat)
	if err != nil {
		return err
	}
	if m.g.CanDraw(seat) {
		return domain.Errorf(domain.KindUnexpectedAction, "the deck can still supply %d cards, draw instead", m.g.DrawCount(seat))
	}
	if m.g.HasLegalPlay(seat) {
		return domain.Errorf(domain.KindUnexpectedAction, "a legal play is available")
	}
	consumeModifiers(p)
	m.emit(EventTurnPassed, seat, nil, "Seat %d passed.", seat)
	m.advanceTurn()
	return nil
}

func (m *move) reset() error {
	fresh, events, err := m.svc.NewGame(m.g.Rules)
	if err != nil {
		return err
	}
	*m.g = *fresh
	m.events = append(m.events, events...)
	return nil
}

// checkWin finishes the hand as soon as any hand is empty; the other player takes the win.
func (m *move) checkWin() bool {
	for _, p := range m.g.Players {
		if len(p.Hand) > 0 {
			continue
		}
		winner := m.g.NextSeat(p.Seat)
		m.g.Phase = domain.PhaseFinished
		m.g.Pending = nil
		m.g.Winner = winner
		m.emit(EventGameEnded, winner, nil, "Seat %d emptied their hand. Seat %d takes the win.", p.Seat, winner)
		return true
	}
	return false
}

func consumeModifiers(p *domain.Player) {
	p.Lock = domain.LockNone
	p.FreeStep = false
}
