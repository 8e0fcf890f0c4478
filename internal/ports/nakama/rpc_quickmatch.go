package nakama

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/heroiclabs/nakama-common/runtime"
)

// Tables still choosing rulers with one player seated.
const (
	quickMatchQuery = "+label.open:T +label.game:rogueace +label.phase:setup"
	quickMatchLimit = 10
)

// QuickMatchRequest is the rogueace_quick_match payload. Fresh skips the search.
type QuickMatchRequest struct {
	Fresh bool `json:"fresh"`
}

// QuickMatchResponse names the match the client should join.
type QuickMatchResponse struct {
	MatchID string `json:"match_id"`
	IsNew   bool   `json:"is_new"`
}

func rpcQuickMatch(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	var req QuickMatchRequest
	if err := decodePayload(payload, &req); err != nil {
		return "", err
	}

	if !req.Fresh {
		minSize, maxSize := 1, 1
		matches, err := nk.MatchList(ctx, quickMatchLimit, true, "", &minSize, &maxSize, quickMatchQuery)
		if err != nil {
			logger.Error("rpcQuickMatch: MatchList failed: %v", err)
			return "", runtime.NewError("match search failed", codeInternal)
		}
		if len(matches) > 0 {
			return encodeQuickMatch(QuickMatchResponse{MatchID: matches[0].MatchId})
		}
	}

	// Seats are assigned in MatchJoin.
	matchID, err := nk.MatchCreate(ctx, MatchName, map[string]interface{}{})
	if err != nil {
		logger.Error("rpcQuickMatch: MatchCreate failed: %v", err)
		return "", runtime.NewError("match create failed", codeInternal)
	}
	logger.Info("rpcQuickMatch: created match %s", matchID)
	return encodeQuickMatch(QuickMatchResponse{MatchID: matchID, IsNew: true})
}

func encodeQuickMatch(resp QuickMatchResponse) (string, error) {
	b, err := json.Marshal(resp)
	if err != nil {
		return "", runtime.NewError("encode failed", codeInternal)
	}
	return string(b), nil
}
