package engine

import "testing"

func TestComputeScoreBreakdown(t *testing.T) {
	kami := []Card{{Value: 13}, {Value: 1}, {Value: 0}}
	hand := []Card{{Value: 5}, {Value: 2}}
	got := ComputeScore(kami, hand)
	if got.Kami != 14 {
		t.Errorf("kami = %d, want 14", got.Kami)
	}
	if got.Hand != 7 {
		t.Errorf("hand = %d, want 7", got.Hand)
	}
	if got.Penalty != 7 {
		t.Errorf("penalty = %d, want 7", got.Penalty)
	}
	if got.Final != 7 {
		t.Errorf("final = %d, want 7", got.Final)
	}
}

func TestComputeScoreEmpty(t *testing.T) {
	got := ComputeScore(nil, nil)
	if got != (Score{}) {
		t.Errorf("empty score = %+v, want zero breakdown", got)
	}
}
