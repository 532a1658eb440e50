// Package engine implements the Curtain Call card rules.
//
// This package is dependency-free and side-effect-free: deck
// construction, dealing, rank valuation, turn resolution and
// stage-pair lookup are all pure functions over plain values. The
// service layer (internal/) owns state, persistence and navigation.
package engine

// Suit identifies one of the four natural suits or the joker.
type Suit string

const (
	SuitSpades   Suit = "spades"
	SuitHearts   Suit = "hearts"
	SuitDiamonds Suit = "diamonds"
	SuitClubs    Suit = "clubs"
	SuitJoker    Suit = "joker"
)

// Rank is the printed rank symbol of a card.
type Rank string

const (
	RankAce   Rank = "A"
	RankTwo   Rank = "2"
	RankThree Rank = "3"
	RankFour  Rank = "4"
	RankFive  Rank = "5"
	RankSix   Rank = "6"
	RankSeven Rank = "7"
	RankEight Rank = "8"
	RankNine  Rank = "9"
	RankTen   Rank = "10"
	RankJack  Rank = "J"
	RankQueen Rank = "Q"
	RankKing  Rank = "K"
	RankJoker Rank = "JOKER"
)

// NaturalSuits lists the four non-joker suits in deck-build order.
var NaturalSuits = []Suit{SuitSpades, SuitHearts, SuitDiamonds, SuitClubs}

// NaturalRanks lists the thirteen non-joker ranks in deck-build order.
var NaturalRanks = []Rank{
	RankAce, RankTwo, RankThree, RankFour, RankFive, RankSix, RankSeven,
	RankEight, RankNine, RankTen, RankJack, RankQueen, RankKing,
}

// Card is a single playing card. Identity (ID, Suit, Rank) and Value
// are fixed at deck build time; Value is snapshotted from the rank
// rules active at that moment and never recomputed. FaceUp and Note
// are the only mutable fields.
type Card struct {
	ID     string `json:"id"`
	Suit   Suit   `json:"suit"`
	Rank   Rank   `json:"rank"`
	Value  int    `json:"value"`
	FaceUp bool   `json:"faceUp"`
	Note   string `json:"note,omitempty"`
}

// CardID derives the canonical card id for a suit/rank combination.
// Ids are unique within a standard deck because every combination
// occurs exactly once and the joker has its own suit.
func CardID(suit Suit, rank Rank) string {
	return string(suit) + "-" + string(rank)
}

// String renders the card as "rank of suit" for logs.
func (c Card) String() string {
	if c.Suit == SuitJoker {
		return "JOKER"
	}
	return string(c.Rank) + " of " + string(c.Suit)
}

// IsJoker reports whether the card is the single joker.
func (c Card) IsJoker() bool { return c.Suit == SuitJoker }
