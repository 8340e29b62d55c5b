package game

import (
	"errors"
	"testing"
)

func mustMatch(t *testing.T, opts Options, ids ...string) *Match {
	t.Helper()
	m, err := NewMatch("m1", opts, NewRoster(ids, nil))
	if err != nil {
		t.Fatalf("NewMatch: %v", err)
	}
	return m
}

// winLeg plays a from 40 to zero; the loser throws one idle turn first
// when it is not the thrower's turn.
func winLeg(t *testing.T, m *Match, winner string) MatchThrowResult {
	t.Helper()
	for {
		leg := m.CurrentLeg()
		cur := leg.CurrentPlayer()
		var res MatchThrowResult
		var err error
		if cur.ID == winner {
			remaining := cur.Score
			for remaining > 50 || remaining%2 != 0 {
				res, err = m.SubmitThrow(single(1))
				if err != nil {
					t.Fatalf("SubmitThrow: %v", err)
				}
				remaining--
				if res.LegEnded {
					t.Fatal("unexpected leg end while chipping down")
				}
			}
			if remaining == 50 {
				res, err = m.SubmitThrow(innerBull)
			} else {
				res, err = m.SubmitThrow(Throw{Ring: RingDouble, Segment: remaining / 2})
			}
			if err != nil {
				t.Fatalf("SubmitThrow: %v", err)
			}
			if res.LegEnded {
				return res
			}
			continue
		}
		if _, err := m.SubmitThrow(missed); err != nil {
			t.Fatalf("SubmitThrow: %v", err)
		}
	}
}

func TestMatchLegsOnly(t *testing.T) {
	m := mustMatch(t, Options{Mode: ModeX01, StartScore: 40, LegsToWin: 2}, "a", "b")

	res := winLeg(t, m, "a")
	if !res.LegEnded || res.LegWinnerID != "a" || res.MatchOver {
		t.Fatalf("after leg 1: %+v", res)
	}
	if m.LegNumber() != 2 {
		t.Errorf("leg number = %d, want 2", m.LegNumber())
	}
	if m.CurrentLeg().CurrentPlayer().ID != "b" {
		t.Errorf("leg 2 starts with %s, want b", m.CurrentLeg().CurrentPlayer().ID)
	}

	res = winLeg(t, m, "a")
	if !res.MatchOver || res.MatchWinnerID != "a" {
		t.Fatalf("after leg 2: %+v", res)
	}
	if m.Status() != StatusFinished || m.WinnerID() != "a" {
		t.Errorf("status=%s winner=%s", m.Status(), m.WinnerID())
	}
	if _, err := m.SubmitThrow(single(1)); !errors.Is(err, ErrGameOver) {
		t.Errorf("throw after match = %v, want ErrGameOver", err)
	}
}

func TestMatchSets(t *testing.T) {
	m := mustMatch(t, Options{Mode: ModeX01, StartScore: 40, LegsToWin: 1, SetsToWin: 2}, "a", "b")

	res := winLeg(t, m, "a")
	if !res.SetEnded || res.MatchOver {
		t.Fatalf("after set 1: %+v", res)
	}
	if m.SetWins()["a"] != 1 {
		t.Errorf("a's sets = %d, want 1", m.SetWins()["a"])
	}
	if m.LegWins()["a"] != 0 {
		t.Error("leg counters must reset between sets")
	}

	res = winLeg(t, m, "b")
	if res.MatchOver {
		t.Fatalf("1-1 must not end the match: %+v", res)
	}

	res = winLeg(t, m, "a")
	if !res.MatchOver || res.MatchWinnerID != "a" {
		t.Fatalf("after a's second set: %+v", res)
	}
}

func TestMatchLegRotationResetsState(t *testing.T) {
	m := mustMatch(t, Options{Mode: ModeX01, StartScore: 40, LegsToWin: 3}, "a", "b")
	winLeg(t, m, "b")

	leg := m.CurrentLeg()
	for _, p := range leg.Players() {
		if p.Score != 40 {
			t.Errorf("player %s starts leg 2 on %d, want 40", p.ID, p.Score)
		}
		if p.Stats.Throws != 0 {
			t.Errorf("player %s carries stats into leg 2", p.ID)
		}
	}
}

func TestMatchTotalsAccumulate(t *testing.T) {
	m := mustMatch(t, Options{Mode: ModeX01, StartScore: 40, LegsToWin: 2}, "a", "b")
	winLeg(t, m, "a")
	if m.Totals("a").Points != 40 {
		t.Errorf("a's total points = %d, want 40", m.Totals("a").Points)
	}
	winLeg(t, m, "a")
	if m.Totals("a").Points != 80 {
		t.Errorf("a's total points = %d, want 80", m.Totals("a").Points)
	}
}

func TestMatchRemovePlayerWalkover(t *testing.T) {
	m := mustMatch(t, Options{Mode: ModeX01, StartScore: 501, LegsToWin: 3}, "a", "b")
	if err := m.RemovePlayer("b"); err != nil {
		t.Fatalf("RemovePlayer: %v", err)
	}
	if m.Status() != StatusFinished || m.WinnerID() != "a" {
		t.Errorf("status=%s winner=%s, want finished/a", m.Status(), m.WinnerID())
	}
}
