package bot

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
)

// BotIdentity is one bot profile from the identities file.
type BotIdentity struct {
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Difficulty  string `json:"difficulty"` // easy, medium or hard
	AvatarIndex int    `json:"avatar_index"`
}

// Name is the label shown at the table.
func (b BotIdentity) Name() string {
	if b.DisplayName != "" {
		return b.DisplayName
	}
	return b.Username
}

// Roster is an ordered set of bot identities indexed by user id.
type Roster struct {
	list []BotIdentity
	byID map[string]BotIdentity
}

// NewRoster indexes identities. Later duplicates of a user id are ignored.
func NewRoster(identities []BotIdentity) *Roster {
	r := &Roster{byID: make(map[string]BotIdentity, len(identities))}
	for _, identity := range identities {
		if _, dup := r.byID[identity.UserID]; dup {
			continue
		}
		r.list = append(r.list, identity)
		r.byID[identity.UserID] = identity
	}
	return r
}

func (r *Roster) Len() int { return len(r.list) }

const stockPrefix = "bot-"

// stockIdentity is the generic easy bot an empty roster hands out for index.
func stockIdentity(index int) BotIdentity {
	return BotIdentity{
		UserID:      stockPrefix + strconv.Itoa(index),
		DisplayName: fmt.Sprintf("AI Player %d", index),
		Difficulty:  "easy",
	}
}

// At returns the identity at index, wrapping around the roster. An empty roster
// makes up a generic easy bot.
func (r *Roster) At(index int) BotIdentity {
	if len(r.list) == 0 {
		return stockIdentity(index)
	}
	return r.list[index%len(r.list)]
}

// Lookup finds a bot by user id. An empty roster recognises the ids At makes up.
func (r *Roster) Lookup(userID string) (BotIdentity, bool) {
	if identity, ok := r.byID[userID]; ok {
		return identity, true
	}
	if len(r.list) > 0 || !strings.HasPrefix(userID, stockPrefix) {
		return BotIdentity{}, false
	}
	index, err := strconv.Atoi(strings.TrimPrefix(userID, stockPrefix))
	if err != nil || index < 0 {
		return BotIdentity{}, false
	}
	identity := stockIdentity(index)
	return identity, identity.UserID == userID
}

// ParseIdentities decodes a JSON list of bot profiles. Every profile needs a user id
// and a known difficulty.
func ParseIdentities(data []byte) ([]BotIdentity, error) {
	var identities []BotIdentity
	if err := json.Unmarshal(data, &identities); err != nil {
		return nil, fmt.Errorf("failed to unmarshal bot identities: %w", err)
	}
	for i, identity := range identities {
		if identity.UserID == "" {
			return nil, fmt.Errorf("bot identity %d has no user_id", i)
		}
		if _, err := ParseLevel(identity.Difficulty); err != nil {
			return nil, fmt.Errorf("bot identity %s: %w", identity.UserID, err)
		}
	}
	return identities, nil
}

var (
	roster   atomic.Pointer[Roster]
	loadOnce sync.Once
	loadErr  error
)

func init() { roster.Store(NewRoster(nil)) }

// UseRoster installs r as the package roster and returns the one it replaces.
func UseRoster(r *Roster) *Roster { return roster.Swap(r) }

// LoadIdentities installs the roster read from path. Only the first call reads.
func LoadIdentities(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read bot identities: %w", err)
			return
		}
		identities, err := ParseIdentities(data)
		if err != nil {
			loadErr = err
			return
		}
		UseRoster(NewRoster(identities))
	})
	return loadErr
}

// GetBotConfig returns the identity of a loaded bot.
func GetBotConfig(userID string) (BotIdentity, bool) { return roster.Load().Lookup(userID) }

// GetBotDisplayName returns the table name of a bot, or "" for anyone else.
func GetBotDisplayName(userID string) string {
	identity, ok := roster.Load().Lookup(userID)
	if !ok {
		return ""
	}
	return identity.Name()
}

// GetBotIdentity returns the roster entry at index.
func GetBotIdentity(index int) BotIdentity { return roster.Load().At(index) }

// IsBot reports whether userID belongs to the loaded roster.
func IsBot(userID string) bool {
	_, ok := roster.Load().Lookup(userID)
	return ok
}
