package engine

// Score is the curtain-call breakdown for one player.
type Score struct {
	Kami    int `json:"kami"`
	Hand    int `json:"hand"`
	Penalty int `json:"penalty"`
	Final   int `json:"final"`
}

// sumValues adds the snapshotted values of a card list.
func sumValues(cards []Card) int {
	total := 0
	for _, c := range cards {
		total += c.Value
	}
	return total
}

// ComputeScore derives the breakdown: kami cards count for the
// player, cards still in hand count fully against them.
func ComputeScore(kami, hand []Card) Score {
	kamiSum := sumValues(kami)
	handSum := sumValues(hand)
	return Score{
		Kami:    kamiSum,
		Hand:    handSum,
		Penalty: handSum,
		Final:   kamiSum - handSum,
	}
}
