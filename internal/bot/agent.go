package bot

import (
	"rogueace/internal/app"
	"rogueace/internal/domain"
)

// Agent represents an autonomous bot player.
type Agent struct {
	ID       string
	Name     string
	Strategy Brain
}

// NewAgent builds an agent for identity at the identity's difficulty.
func NewAgent(identity BotIdentity) (*Agent, error) {
	level, err := ParseLevel(identity.Difficulty)
	if err != nil {
		return nil, err
	}
	brain, err := NewBrain(level)
	if err != nil {
		return nil, err
	}
	return &Agent{ID: identity.UserID, Name: identity.Name(), Strategy: brain}, nil
}

// Play asks the agent to calculate its move for seat based on the current game state.
func (a *Agent) Play(game *domain.Game, seat int) (app.Action, error) {
	move, err := a.Strategy.CalculateMove(game, seat)
	if err != nil {
		return app.Action{}, err
	}
	return move.Action(seat), nil
}

// TakeTurn plays every decision seat owes in session, stopping once the other seat is up or
// the hand is over. It returns the last snapshot.
func (a *Agent) TakeTurn(session *app.Session, seat int) (app.Snapshot, error) {
	snap := session.Snapshot()
	for i := 0; i < maxStepsPerTurn; i++ {
		game := session.Game()
		if !NeedsMove(game, seat) {
			return snap, nil
		}
		act, err := a.Play(game, seat)
		if err != nil {
			return snap, err
		}
		snap, err = session.Apply(act)
		if err != nil {
			return snap, err
		}
	}
	return snap, nil
}

// maxStepsPerTurn bounds one turn: a ruler pick or a play, then at most two choice steps.
const maxStepsPerTurn = 4
