package bracket

import (
	"errors"
	"fmt"
	"testing"
)

func ids(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("p%d", i+1)
	}
	return out
}

// playOut records a home win for every playable match and returns the
// number of results recorded.
func playOut(t *testing.T, b *Bracket) int {
	t.Helper()
	played := 0
	for {
		m := b.NextMatch()
		if m == nil {
			break
		}
		if err := b.RecordResult(m.UID, m.Home); err != nil {
			t.Fatalf("RecordResult(%s, %s): %v", m.UID, m.Home, err)
		}
		played++
		if played > 1000 {
			t.Fatal("bracket does not terminate")
		}
	}
	return played
}

func TestNewValidation(t *testing.T) {
	if _, err := New(SingleElimination, []string{"a"}); !errors.Is(err, ErrTooFewPlayers) {
		t.Errorf("error = %v, want ErrTooFewPlayers", err)
	}
	if _, err := New(SingleElimination, []string{"a", "a"}); !errors.Is(err, ErrTooFewPlayers) {
		t.Errorf("error = %v, want ErrTooFewPlayers", err)
	}
	if _, err := New("swiss", ids(4)); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("error = %v, want ErrUnknownFormat", err)
	}
}

func TestSingleEliminationPowersOfTwo(t *testing.T) {
	for _, n := range []int{2, 4, 8, 16} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			b, err := New(SingleElimination, ids(n))
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			if got := playOut(t, b); got != n-1 {
				t.Errorf("matches played = %d, want %d", got, n-1)
			}
			if !b.Done() {
				t.Fatal("bracket should be done")
			}
			if got := b.Podium()[0]; got != "p1" {
				t.Errorf("champion = %s, want p1 (home always wins)", got)
			}
		})
	}
}

func TestSingleEliminationByes(t *testing.T) {
	for n := 3; n <= 16; n++ {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			b, err := New(SingleElimination, ids(n))
			if err != nil {
				t.Fatalf("New: %v", err)
			}

			// every first-round bye must be pre-resolved in favor of
			// the present player
			for _, m := range b.Matches() {
				if m.Bye && m.Winner == "" {
					t.Errorf("bye match %s has no winner", m.UID)
				}
			}
			playOut(t, b)
			if !b.Done() {
				t.Errorf("n=%d bracket did not finish", n)
			}
			if len(b.Podium()) < 2 {
				t.Errorf("podium = %v", b.Podium())
			}
		})
	}
}

func TestSingleEliminationWinnerPropagates(t *testing.T) {
	b, err := New(SingleElimination, ids(4))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	m := b.NextMatch()
	if m.UID != "R1M1" {
		t.Fatalf("first match = %s, want R1M1", m.UID)
	}
	if err := b.RecordResult("R1M1", m.Away); err != nil {
		t.Fatalf("RecordResult: %v", err)
	}
	final, _ := b.Match("R2M1")
	if final.Home != m.Away {
		t.Errorf("final home = %q, want %q", final.Home, m.Away)
	}
}

func TestRecordResultErrors(t *testing.T) {
	b, err := New(SingleElimination, ids(4))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if err := b.RecordResult("R9M9", "p1"); !errors.Is(err, ErrUnknownMatch) {
		t.Errorf("error = %v, want ErrUnknownMatch", err)
	}
	if err := b.RecordResult("R2M1", "p1"); !errors.Is(err, ErrMatchNotReady) {
		t.Errorf("error = %v, want ErrMatchNotReady", err)
	}
	if err := b.RecordResult("R1M1", "p3"); !errors.Is(err, ErrNotParticipant) {
		t.Errorf("error = %v, want ErrNotParticipant", err)
	}
	if err := b.RecordResult("R1M1", "p1"); err != nil {
		t.Fatalf("RecordResult: %v", err)
	}
	if err := b.RecordResult("R1M1", "p1"); !errors.Is(err, ErrMatchPlayed) {
		t.Errorf("error = %v, want ErrMatchPlayed", err)
	}
}

func TestThirdPlaceMatch(t *testing.T) {
	b, err := New(SingleElimination, ids(4), WithThirdPlaceMatch())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	playOut(t, b)

	podium := b.Podium()
	if len(podium) != 3 {
		t.Fatalf("podium = %v, want three places", podium)
	}
	tp, err := b.Match("3P")
	if err != nil {
		t.Fatalf("no third place match: %v", err)
	}
	if !tp.Played || tp.Winner != podium[2] {
		t.Errorf("third place = %q, podium says %q", tp.Winner, podium[2])
	}
}

func TestThirdPlaceWithByeSemifinal(t *testing.T) {
	// with three players one semifinal is a bye, so the bronze final
	// collapses to a bye as well
	b, err := New(SingleElimination, ids(3), WithThirdPlaceMatch())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	playOut(t, b)
	if !b.Done() {
		t.Fatal("bracket should be done")
	}
	if len(b.Podium()) != 3 {
		t.Errorf("podium = %v, want three places", b.Podium())
	}
}

func TestDoubleEliminationChampionFromWinners(t *testing.T) {
	b, err := New(DoubleElimination, ids(4))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	// home always wins, so the winners-bracket champion takes the
	// grand final and no reset is needed
	playOut(t, b)

	if !b.Done() {
		t.Fatal("bracket should be done")
	}
	gf, _ := b.Match("GF")
	if !gf.Played {
		t.Error("grand final was never played")
	}
	gf2, _ := b.Match("GF2")
	if gf2.Winner != "" {
		t.Error("reset final should not have a result")
	}
	if got := b.Podium()[0]; got != gf.Winner {
		t.Errorf("champion = %s, want %s", got, gf.Winner)
	}
}

func TestDoubleEliminationBracketReset(t *testing.T) {
	b, err := New(DoubleElimination, ids(2))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if err := b.RecordResult("W1M1", "p1"); err != nil {
		t.Fatalf("RecordResult: %v", err)
	}
	// p2 wins the grand final from the losers side, forcing a rematch
	if err := b.RecordResult("GF", "p2"); err != nil {
		t.Fatalf("RecordResult: %v", err)
	}
	if b.Done() {
		t.Fatal("losing the grand final from the winners side must not end the bracket")
	}
	gf2 := b.NextMatch()
	if gf2 == nil || gf2.UID != "GF2" {
		t.Fatalf("next = %+v, want GF2", gf2)
	}
	if err := b.RecordResult("GF2", "p1"); err != nil {
		t.Fatalf("RecordResult: %v", err)
	}
	if !b.Done() || b.Podium()[0] != "p1" {
		t.Errorf("podium = %v, want p1 first", b.Podium())
	}
}

func TestDoubleEliminationSecondLoss(t *testing.T) {
	// a player who loses twice can never appear in an unplayed match
	b, err := New(DoubleElimination, ids(8))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	losses := make(map[string]int)
	for {
		m := b.NextMatch()
		if m == nil {
			break
		}
		if losses[m.Home] >= 2 || losses[m.Away] >= 2 {
			t.Fatalf("match %s seats a doubly-eliminated player", m.UID)
		}
		// away wins to force players through the losers bracket
		if err := b.RecordResult(m.UID, m.Away); err != nil {
			t.Fatalf("RecordResult(%s): %v", m.UID, err)
		}
		losses[m.Loser]++
	}
	if !b.Done() {
		t.Fatal("bracket should be done")
	}
	if len(b.Podium()) != 3 {
		t.Errorf("podium = %v, want three places", b.Podium())
	}
}

func TestDoubleEliminationByes(t *testing.T) {
	for n := 3; n <= 12; n++ {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			b, err := New(DoubleElimination, ids(n))
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			playOut(t, b)
			if !b.Done() {
				t.Errorf("n=%d bracket did not finish", n)
			}
		})
	}
}

func TestSeedOrder(t *testing.T) {
	got := seedOrder(8)
	want := []int{1, 8, 4, 5, 2, 7, 3, 6}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("seedOrder(8) = %v, want %v", got, want)
		}
	}
}

func TestNextMatchOrder(t *testing.T) {
	b, err := New(SingleElimination, ids(8))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	var seen []string
	for i := 0; i < 4; i++ {
		m := b.NextMatch()
		seen = append(seen, m.UID)
		if err := b.RecordResult(m.UID, m.Home); err != nil {
			t.Fatalf("RecordResult: %v", err)
		}
	}
	want := []string{"R1M1", "R1M2", "R1M3", "R1M4"}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("play order = %v, want %v", seen, want)
		}
	}
}
