package ai

import (
	"testing"

	"github.com/opendarts/scoring-api/internal/game"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
		ok   bool
	}{
		{"easy", LevelEasy, true},
		{"MEDIUM", LevelMedium, true},
		{"hard", LevelHard, true},
		{"pro", LevelPro, true},
		{"grandmaster", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseLevel(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseLevel(%q) = %v,%v want %v,%v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParseTarget(t *testing.T) {
	tests := []struct {
		label string
		want  game.Throw
	}{
		{"T20", game.Throw{Ring: game.RingTriple, Segment: 20}},
		{"D16", game.Throw{Ring: game.RingDouble, Segment: 16}},
		{"S15", game.Throw{Ring: game.RingSingle, Segment: 15}},
		{"7", game.Throw{Ring: game.RingSingle, Segment: 7}},
		{"25", game.Throw{Ring: game.RingOuterBull}},
		{"BULL", game.Throw{Ring: game.RingInnerBull}},
		{"bull", game.Throw{Ring: game.RingInnerBull}},
	}
	for _, tt := range tests {
		if got := parseTarget(tt.label); got != tt.want {
			t.Errorf("parseTarget(%q) = %+v, want %+v", tt.label, got, tt.want)
		}
	}
}

func TestNeighbor(t *testing.T) {
	tests := []struct {
		segment, offset, want int
	}{
		{20, 1, 1},
		{20, -1, 5},
		{5, 1, 20},
		{3, 1, 19},
		{3, -2, 2},
	}
	for _, tt := range tests {
		if got := neighbor(tt.segment, tt.offset); got != tt.want {
			t.Errorf("neighbor(%d, %d) = %d, want %d", tt.segment, tt.offset, got, tt.want)
		}
	}
}

func TestAimCountUp(t *testing.T) {
	tests := []struct {
		remaining int
		want      game.Throw
	}{
		{200, game.Throw{Ring: game.RingTriple, Segment: 20}},
		{60, game.Throw{Ring: game.RingTriple, Segment: 20}},
		{33, game.Throw{Ring: game.RingTriple, Segment: 11}},
		{32, game.Throw{Ring: game.RingDouble, Segment: 16}},
		{17, game.Throw{Ring: game.RingSingle, Segment: 17}},
		{23, game.Throw{Ring: game.RingSingle, Segment: 1}},
	}
	for _, tt := range tests {
		if got := aimCountUp(tt.remaining); got != tt.want {
			t.Errorf("aimCountUp(%d) = %+v, want %+v", tt.remaining, got, tt.want)
		}
	}
}

func newX01Game(t *testing.T, start int, ids ...string) *game.Game {
	t.Helper()
	g, err := game.NewGame("g1", game.Options{Mode: game.ModeX01, StartScore: start}, game.NewRoster(ids, nil))
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	return g
}

func TestAimX01UsesCheckout(t *testing.T) {
	g := newX01Game(t, 170, "bot", "x")
	bot := New(LevelPro, 1)
	aim := bot.aim(g, g.CurrentPlayer())
	if aim != (game.Throw{Ring: game.RingTriple, Segment: 20}) {
		t.Errorf("aim on 170 = %+v, want T20", aim)
	}

	g = newX01Game(t, 40, "bot", "x")
	aim = bot.aim(g, g.CurrentPlayer())
	if aim != (game.Throw{Ring: game.RingDouble, Segment: 20}) {
		t.Errorf("aim on 40 = %+v, want D20", aim)
	}
}

func TestAimX01Bogey(t *testing.T) {
	g := newX01Game(t, 169, "bot", "x") // bogey: no three-dart finish
	bot := New(LevelPro, 1)
	aim := bot.aim(g, g.CurrentPlayer())
	if aim != (game.Throw{Ring: game.RingTriple, Segment: 20}) {
		t.Errorf("aim on 169 = %+v, want T20 to leave a finish", aim)
	}
}

func TestAimCricketLowestOpenTarget(t *testing.T) {
	g, err := game.NewGame("g1", game.Options{Mode: game.ModeCricket}, game.NewRoster([]string{"bot", "x"}, nil))
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	p := g.CurrentPlayer()
	aim := aimCricket(g, p)
	if aim != (game.Throw{Ring: game.RingTriple, Segment: 20}) {
		t.Errorf("fresh board aim = %+v, want T20", aim)
	}

	p.Marks["20"] = 3
	aim = aimCricket(g, p)
	if aim != (game.Throw{Ring: game.RingTriple, Segment: 19}) {
		t.Errorf("aim with 20 closed = %+v, want T19", aim)
	}
}

func TestAimKillerPhases(t *testing.T) {
	roster := game.NewRoster([]string{"bot", "x"}, nil)
	roster[1].LifeSegment = 20
	g, err := game.NewGame("g1", game.Options{Mode: game.ModeKiller}, roster)
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	p := g.CurrentPlayer()

	aim := aimKiller(g, p)
	if aim != (game.Throw{Ring: game.RingSingle, Segment: 19}) {
		t.Errorf("claim aim = %+v, want S19 with 20 taken", aim)
	}

	p.LifeSegment = 19
	aim = aimKiller(g, p)
	if aim != (game.Throw{Ring: game.RingDouble, Segment: 19}) {
		t.Errorf("arming aim = %+v, want D19", aim)
	}

	p.Killer = true
	aim = aimKiller(g, p)
	if aim != (game.Throw{Ring: game.RingTriple, Segment: 20}) {
		t.Errorf("killer aim = %+v, want T20 at the opponent", aim)
	}
}

func TestScatterAlwaysValid(t *testing.T) {
	bot := New(LevelEasy, 42)
	aims := []game.Throw{
		{Ring: game.RingTriple, Segment: 20},
		{Ring: game.RingDouble, Segment: 1},
		{Ring: game.RingSingle, Segment: 5},
		{Ring: game.RingInnerBull},
		{Ring: game.RingOuterBull},
	}
	for i := 0; i < 2000; i++ {
		aim := aims[i%len(aims)]
		got := bot.scatter(aim)
		if _, err := game.NewThrow(got.Ring, got.Segment); err != nil {
			t.Fatalf("scatter(%+v) produced invalid throw %+v: %v", aim, got, err)
		}
	}
}

func TestThrowersFinishAGame(t *testing.T) {
	g, err := game.NewGame("g1", game.Options{
		Mode:       game.ModeX01,
		StartScore: 301,
		Out:        "single",
	}, game.NewRoster([]string{"bot1", "bot2"}, nil))
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	bots := map[string]*Thrower{
		"bot1": New(LevelPro, 7),
		"bot2": New(LevelMedium, 11),
	}

	for i := 0; i < 10000 && !g.Over(); i++ {
		p := g.CurrentPlayer()
		if _, err := g.SubmitThrow(bots[p.ID].Throw(g, p)); err != nil {
			t.Fatalf("SubmitThrow: %v", err)
		}
	}
	if !g.Over() {
		t.Fatal("two computer opponents never finished a 301")
	}
	if g.WinnerID() == "" {
		t.Fatal("finished game has no winner")
	}
}
