package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"math/rand"
	"sort"
	"time"

	"github.com/heroiclabs/nakama-common/runtime"

	"rogueace/internal/app"
	"rogueace/internal/bot"
	"rogueace/internal/domain"
)

// MatchState holds the authoritative runtime state for the Nakama match handler. One match
// plays one session; seats map user IDs to table seats.
type MatchState struct {
	Seats                []string                    `json:"seats"` // empty string means seat is empty
	Tick                 int64                       `json:"tick"`
	Presences            map[string]runtime.Presence `json:"-"` // UserId -> Presence for targeted messaging
	Session              *app.Session                `json:"-"`
	BotsEnabled          bool                        `json:"bots_enabled"`
	BotMinDelay          int                         `json:"bot_min_delay"`
	BotMaxDelay          int                         `json:"bot_max_delay"`
	BotAutoFillDelay     int                         `json:"bot_auto_fill_delay"`
	BotWaitUntil         int64                       `json:"bot_wait_until"`          // Tick when the bot should act
	LastSinglePlayerTick int64                       `json:"last_single_player_tick"` // Tick when a single player started waiting
	Bots                 map[string]*bot.Agent       `json:"-"`
	Rand                 *rand.Rand                  `json:"-"`
}

func (ms *MatchState) GetOpenSeatsCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat == "" {
			count++
		}
	}
	return count
}

func (ms *MatchState) GetHumanPlayerCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat != "" && !isBotUserId(seat) {
			count++
		}
	}
	return count
}

// isBotUserId reports whether the given user id represents a bot seat.
func isBotUserId(userId string) bool {
	return bot.IsBot(userId)
}

// seatOf returns the seat held by userId, or -1.
func seatOf(seats []string, userId string) int {
	if userId == "" {
		return -1
	}
	for i, s := range seats {
		if s == userId {
			return i
		}
	}
	return -1
}

// findFirstHumanSeat returns the first seat index with a human occupant or -1 if none exist.
func findFirstHumanSeat(seats []string) int {
	for i, userId := range seats {
		if userId != "" && !isBotUserId(userId) {
			return i
		}
	}
	return -1
}

// shouldTerminateNoHumans returns true when there are no humans in the match.
func shouldTerminateNoHumans(seats []string) bool {
	return findFirstHumanSeat(seats) == -1
}

// replaceableBotSeat returns a bot seat a joining human may take over: only during setup and
// only before the bot picked its ruler.
func replaceableBotSeat(state *MatchState) int {
	game := state.Session.Game()
	if game.Phase != domain.PhaseSetup {
		return -1
	}
	for i, userId := range state.Seats {
		if isBotUserId(userId) && game.Players[i].Ruler == nil {
			return i
		}
	}
	return -1
}

type matchHandler struct {
	settings Settings
}

func newMatchHandler(settings Settings) *matchHandler {
	return &matchHandler{settings: settings}
}

// newState deals the first hand of a match.
func (mh *matchHandler) newState(matchID string) (*MatchState, error) {
	cfg := mh.settings.Game
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	svc := app.NewService(rand.New(rand.NewSource(rng.Int63())), nil)
	session, err := app.NewSession(matchID, cfg.Rules(), svc)
	if err != nil {
		return nil, err
	}
	return &MatchState{
		Seats:            make([]string, cfg.Players),
		Presences:        make(map[string]runtime.Presence),
		Session:          session,
		BotsEnabled:      cfg.BotsEnabled,
		BotMinDelay:      cfg.BotMinDelaySeconds,
		BotMaxDelay:      cfg.BotMaxDelaySeconds,
		BotAutoFillDelay: mh.settings.BotAutoFillDelay,
		Bots:             make(map[string]*bot.Agent),
		Rand:             rng,
	}, nil
}

// MatchInit is called when the match is created.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	logger.Debug("MatchInit: Initializing match handler.")

	matchID, _ := ctx.Value(runtime.RUNTIME_CTX_MATCH_ID).(string)
	if matchID == "" {
		matchID = "match"
	}
	state, err := mh.newState(matchID)
	if err != nil {
		logger.Error("MatchInit: Failed to deal: %v", err)
		return nil, 0, ""
	}
	// MatchLoop counts ticks from zero; bot delays compare against that counter.
	state.Tick = 0

	label, err := encodeLabel(state.Session.Game(), state.Seats)
	if err != nil {
		logger.Error("MatchInit: Failed to marshal label: %v", err)
		return nil, 0, ""
	}

	tickRate := 1 // 1 tick per second
	return state, tickRate, label
}

func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}

	// Reconnects keep their seat.
	if seatOf(matchState.Seats, presence.GetUserId()) >= 0 {
		return state, true, ""
	}
	if matchState.GetOpenSeatsCount() > 0 || replaceableBotSeat(matchState) >= 0 {
		return state, true, ""
	}
	return state, false, "Match full"
}

func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		userId := p.GetUserId()
		matchState.Presences[userId] = p
		if seatOf(matchState.Seats, userId) >= 0 {
			logger.Debug("MatchJoin: User %s rejoined.", userId)
			continue
		}

		if i := domain.LowestAvailableSeat(matchState.Seats); i >= 0 {
			matchState.Seats[i] = userId
			logger.Info("MatchJoin: User %s took seat %d.", userId, i)
			continue
		}
		if i := replaceableBotSeat(matchState); i >= 0 {
			logger.Info("MatchJoin: Replacing bot %s with human %s in seat %d", matchState.Seats[i], userId, i)
			delete(matchState.Bots, matchState.Seats[i])
			matchState.Seats[i] = userId
			continue
		}
		logger.Warn("MatchJoin: User %s joined but no seat (empty or bot) was available.", userId)
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastMatchState(matchState, dispatcher, logger)
	mh.broadcastGame(matchState, dispatcher, logger)
	return matchState
}

// MatchLeave is called when one or more players leave the match.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	for _, p := range presences {
		delete(matchState.Presences, p.GetUserId())
		if i := seatOf(matchState.Seats, p.GetUserId()); i >= 0 {
			matchState.Seats[i] = ""
			logger.Debug("MatchLeave: User %s left, seat %d freed.", p.GetUserId(), i)
		}
	}

	if shouldTerminateNoHumans(matchState.Seats) {
		logger.Info("MatchLeave: Terminating match with no humans.")
		return nil
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastMatchState(matchState, dispatcher, logger)
	return matchState
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}

	matchState.Tick = tick
	for _, msg := range messages {
		mh.handleMessage(matchState, dispatcher, logger, msg)
	}

	if matchState.BotsEnabled {
		mh.processBots(matchState, dispatcher, logger)
	}
	return matchState
}

func (mh *matchHandler) handleMessage(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	switch msg.GetOpCode() {
	case OpAction:
		mh.handleAction(state, dispatcher, logger, msg)
	case OpRequestState:
		mh.sendGameState(state, dispatcher, logger, msg.GetUserId())
	default:
		logger.Warn("MatchLoop: Unknown opcode received: %d", msg.GetOpCode())
	}
}

func (mh *matchHandler) handleAction(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	senderSeat := seatOf(state.Seats, senderID)
	if senderSeat < 0 {
		logger.Warn("handleAction: User %s has no seat.", senderID)
		mh.sendError(state, dispatcher, logger, senderID, domain.ErrInvalidAction)
		return
	}

	var act app.Action
	if err := json.Unmarshal(msg.GetData(), &act); err != nil {
		logger.Warn("handleAction: Invalid action from %s: %v", senderID, err)
		mh.sendError(state, dispatcher, logger, senderID, domain.Errorf(domain.KindInvalidAction, "malformed action: %v", err))
		return
	}
	act.Seat = senderSeat

	// Matches deal a new hand only once the current one is over.
	if act.Kind == app.ActionReset && state.Session.Game().Phase != domain.PhaseFinished {
		mh.sendError(state, dispatcher, logger, senderID, domain.Errorf(domain.KindUnexpectedAction, "a new hand starts only after this one ends"))
		return
	}

	if _, err := state.Session.Apply(act); err != nil {
		logger.Warn("handleAction: User %s (seat %d) failed to %s: %v", senderID, senderSeat, act.Kind, err)
		mh.sendError(state, dispatcher, logger, senderID, err)
		return
	}
	mh.updateLabel(state, dispatcher, logger)
	mh.broadcastGame(state, dispatcher, logger)
}

func (mh *matchHandler) processBots(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	// 1. Auto-fill empty seats when a single human has been waiting long enough.
	if state.GetHumanPlayerCount() == 1 && state.GetOpenSeatsCount() > 0 {
		if state.LastSinglePlayerTick == 0 {
			state.LastSinglePlayerTick = state.Tick
			logger.Debug("processBots: Single player detected, starting auto-fill timer.")
		}

		if state.Tick-state.LastSinglePlayerTick >= int64(state.BotAutoFillDelay) {
			for i, seat := range state.Seats {
				if seat != "" {
					continue
				}
				identity := bot.GetBotIdentity(i)
				agent, err := bot.NewAgent(identity)
				if err != nil {
					logger.Error("Failed to create bot agent for %s: %v", identity.UserID, err)
					continue
				}
				state.Seats[i] = identity.UserID
				state.Bots[identity.UserID] = agent
				logger.Info("processBots: Added bot %s (%s) to seat %d", identity.Name(), identity.UserID, i)
			}
			state.LastSinglePlayerTick = 0
			mh.updateLabel(state, dispatcher, logger)
			mh.broadcastMatchState(state, dispatcher, logger)
		}
	} else {
		state.LastSinglePlayerTick = 0
	}

	// 2. Let the first bot that owes a decision act after its delay.
	game := state.Session.Game()
	seat := -1
	for i, userId := range state.Seats {
		if isBotUserId(userId) && bot.NeedsMove(game, i) {
			seat = i
			break
		}
	}
	if seat < 0 {
		state.BotWaitUntil = 0
		return
	}

	botID := state.Seats[seat]
	if state.BotWaitUntil == 0 {
		delay := state.BotMinDelay
		if span := state.BotMaxDelay - state.BotMinDelay; span > 0 {
			delay += state.Rand.Intn(span + 1)
		}
		state.BotWaitUntil = state.Tick + int64(delay)
		logger.Debug("processBots: Bot %s (seat %d) will act at tick %d (current %d)", botID, seat, state.BotWaitUntil, state.Tick)
	}
	if state.Tick < state.BotWaitUntil {
		return
	}
	state.BotWaitUntil = 0

	agent, exists := state.Bots[botID]
	if !exists {
		identity, _ := bot.GetBotConfig(botID)
		identity.UserID = botID
		var err error
		agent, err = bot.NewAgent(identity)
		if err != nil {
			logger.Error("processBots: Failed to create fallback agent: %v", err)
			return
		}
		state.Bots[botID] = agent
	}

	if _, err := agent.TakeTurn(state.Session, seat); err != nil {
		logger.Error("processBots: Bot %s failed to move: %v", botID, err)
		return
	}
	mh.updateLabel(state, dispatcher, logger)
	mh.broadcastGame(state, dispatcher, logger)
}

// SeatInfo describes one seat in OpMatchState.
type SeatInfo struct {
	Seat        int    `json:"seat"`
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	IsBot       bool   `json:"is_bot"`
	Connected   bool   `json:"connected"`
}

// MatchStateSnapshot is the OpMatchState payload.
type MatchStateSnapshot struct {
	Seats []SeatInfo `json:"seats"`
	Tick  int64      `json:"tick"`
}

func (mh *matchHandler) broadcastMatchState(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	snapshot := MatchStateSnapshot{Tick: state.Tick}
	for i, userId := range state.Seats {
		info := SeatInfo{Seat: i, UserID: userId}
		if p, exists := state.Presences[userId]; exists {
			info.DisplayName = p.GetUsername()
			info.Connected = true
		} else if isBotUserId(userId) {
			info.DisplayName = bot.GetBotDisplayName(userId)
			info.IsBot = true
		}
		snapshot.Seats = append(snapshot.Seats, info)
	}
	bytes, err := json.Marshal(snapshot)
	if err != nil {
		logger.Error("broadcastMatchState: Failed to marshal: %v", err)
		return
	}
	if err := dispatcher.BroadcastMessage(OpMatchState, bytes, nil, nil, true); err != nil {
		logger.Error("broadcastMatchState: Failed to broadcast: %v", err)
	}
}

// broadcastGame sends every connected presence the snapshot for its own seat.
func (mh *matchHandler) broadcastGame(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	snap := state.Session.Snapshot()
	userIds := make([]string, 0, len(state.Presences))
	for userId := range state.Presences {
		userIds = append(userIds, userId)
	}
	sort.Strings(userIds)
	for _, userId := range userIds {
		mh.sendView(snap, state, dispatcher, logger, userId)
	}
}

func (mh *matchHandler) sendGameState(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userId string) {
	mh.sendView(state.Session.Snapshot(), state, dispatcher, logger, userId)
}

func (mh *matchHandler) sendView(snap app.Snapshot, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userId string) {
	presence, ok := state.Presences[userId]
	if !ok {
		logger.Warn("Cannot send state to %s: Presence not found", userId)
		return
	}
	bytes, err := json.Marshal(snap.ForSeat(seatOf(state.Seats, userId)))
	if err != nil {
		logger.Error("Failed to marshal snapshot: %v", err)
		return
	}
	if err := dispatcher.BroadcastMessage(OpGameState, bytes, []runtime.Presence{presence}, nil, true); err != nil {
		logger.Error("Failed to send snapshot to %s: %v", userId, err)
	}
}

// sendError sends a GameError to a specific user.
func (mh *matchHandler) sendError(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, cause error) {
	bytes, err := json.Marshal(GameError{Kind: domain.KindOf(cause), Message: cause.Error()})
	if err != nil {
		logger.Error("Failed to marshal GameError: %v", err)
		return
	}

	presence, ok := state.Presences[userID]
	if !ok {
		logger.Warn("Cannot send error to %s: Presence not found", userID)
		return
	}

	if err := dispatcher.BroadcastMessage(OpGameError, bytes, []runtime.Presence{presence}, nil, true); err != nil {
		logger.Error("Failed to send error to %s: %v", userID, err)
	}
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	label, err := encodeLabel(state.Session.Game(), state.Seats)
	if err != nil {
		logger.Error("UpdateLabel: Failed to marshal: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(label); err != nil {
		logger.Error("UpdateLabel: Failed to update: %v", err)
	}
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, graceSeconds int) interface{} {
	logger.Debug("MatchTerminate: Match terminated with %d grace seconds", graceSeconds)
	return state
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}
