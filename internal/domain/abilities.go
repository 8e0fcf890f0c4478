package domain

// RulerAbility is the passive effect granted by a ruler card.
type RulerAbility struct {
	Name string
	// Wild makes a class of single cards always legal.
	Wild func(Card) bool
	// LockImmune ignores locks imposed by opponents.
	LockImmune bool
	// ForcedDrawReduction lowers every forced draw against the holder.
	ForcedDrawReduction int
	// DrawDiscount lowers the Draw action, never below one card.
	DrawDiscount int
	// MultiPlayBonus is added to opponents' draws on the holder's pair and three-of-a-kind plays.
	MultiPlayBonus int
}

var (
	blackSovereign = RulerAbility{Name: "Black Sovereign", Wild: func(c Card) bool { return c.Color() == Black }}
	redSovereign   = RulerAbility{Name: "Red Sovereign", Wild: func(c Card) bool { return c.Color() == Red }}
	unbound        = RulerAbility{Name: "Unbound", LockImmune: true}
	bulwark        = RulerAbility{Name: "Bulwark", ForcedDrawReduction: 1}
	evenHand       = RulerAbility{Name: "Even Hand", Wild: func(c Card) bool { return c.Parity() == 0 }}
	oddHand        = RulerAbility{Name: "Odd Hand", Wild: func(c Card) bool { return c.Parity() == 1 }}
	jester         = RulerAbility{Name: "Jester", Wild: func(c Card) bool { return c.Rank >= Jack }}
	merchant       = RulerAbility{Name: "Merchant", DrawDiscount: 1}
	tyrant         = RulerAbility{Name: "Tyrant", MultiPlayBonus: 2}
)

var aceRulers = map[Suit]RulerAbility{
	Spades:   blackSovereign,
	Hearts:   redSovereign,
	Diamonds: unbound,
	Clubs:    bulwark,
}

// RulerAbilityFor returns the passive granted by ruler c.
func RulerAbilityFor(c Card) RulerAbility {
	switch {
	case c.Rank == Ace:
		return aceRulers[c.Suit]
	case c.Rank == Jack:
		return jester
	case c.Rank == Queen:
		return merchant
	case c.Rank == King:
		return tyrant
	case c.Parity() == 0:
		return evenHand
	default:
		return oddHand
	}
}

// RulerAbilityOf is RulerAbilityFor for an optional ruler; no ruler means no passive.
func RulerAbilityOf(c *Card) RulerAbility {
	if c == nil {
		return RulerAbility{}
	}
	return RulerAbilityFor(*c)
}

// AbilityKind is what a pair or three-of-a-kind does once played.
type AbilityKind string

const (
	AbilityForcedDraw AbilityKind = "forced_draw"
	AbilityLock       AbilityKind = "lock"
	AbilityFreeStep   AbilityKind = "free_step"
	AbilitySalvage    AbilityKind = "salvage"
	AbilityTarget     AbilityKind = "target"
	AbilityDeckSwap   AbilityKind = "deck_swap"
	AbilityFort       AbilityKind = "fort"
	AbilityRecycle    AbilityKind = "recycle"
)

// PlayAbility describes a pair or three-of-a-kind effect.
type PlayAbility struct {
	Name string
	Kind AbilityKind
	// Draw is the number of cards each affected opponent draws.
	Draw int
	Lock LockKind
}

// Fort values.
const (
	FortNowDraw   = 2
	FortDeferDraw = 3
	TargetDraw    = 2
	DeckSwapReach = 2
)

var fortAbility = PlayAbility{Name: "Fort", Kind: AbilityFort}

var pairAbilities = map[Rank]PlayAbility{
	Ace:   {Name: "Ace Volley", Kind: AbilityForcedDraw, Draw: 3},
	Two:   {Name: "Double Trouble", Kind: AbilityForcedDraw, Draw: 2},
	Three: {Name: "Parity Lock", Kind: AbilityLock, Lock: LockParity},
	Four:  {Name: "Free Step", Kind: AbilityFreeStep},
	Five:  {Name: "Salvage", Kind: AbilitySalvage},
	Six:   {Name: "Marked Target", Kind: AbilityTarget, Draw: TargetDraw},
	Seven: {Name: "Deck Swap", Kind: AbilityDeckSwap},
	Eight: {Name: "Color Lock", Kind: AbilityLock, Lock: LockColor},
	Nine:  fortAbility,
	Ten:   {Name: "Recycle", Kind: AbilityRecycle},
	Jack:  {Name: "Rank Lock", Kind: AbilityLock, Lock: LockRank},
	Queen: {Name: "Tithe", Kind: AbilityForcedDraw, Draw: 1},
	King:  {Name: "Royal Decree", Kind: AbilityForcedDraw, Draw: 4},
}

// AbilityFor returns the ability triggered by a play of kind and rank. Singles trigger nothing.
func AbilityFor(kind PlayKind, rank Rank) (PlayAbility, bool) {
	switch kind {
	case PlayPair:
		a, ok := pairAbilities[rank]
		return a, ok
	case PlayThreeOfAKind:
		return fortAbility, true
	default:
		return PlayAbility{}, false
	}
}
