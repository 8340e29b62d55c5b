package bracket

import "fmt"

// place seats a seed position in a first-round slot. Positions beyond
// the field are byes, recorded as void slots.
func (b *Bracket) place(m *Match, slot, seed int) {
	if seed <= len(b.players) {
		id := b.players[seed-1]
		if slot == slotHome {
			m.Home = id
		} else {
			m.Away = id
		}
		return
	}
	if slot == slotHome {
		m.voidHome = true
	} else {
		m.voidAway = true
	}
}

func (b *Bracket) buildSingle(withThird bool) {
	size, rounds := bracketSize(len(b.players))
	order := seedOrder(size)

	byRound := make([][]*Match, rounds+1)
	for r := 1; r <= rounds; r++ {
		count := size >> uint(r)
		byRound[r] = make([]*Match, count)
		for i := range byRound[r] {
			byRound[r][i] = b.register(&Match{
				UID:   fmt.Sprintf("R%dM%d", r, i+1),
				Round: r,
				Order: i + 1,
			})
		}
	}
	for i, m := range byRound[1] {
		b.place(m, slotHome, order[2*i])
		b.place(m, slotAway, order[2*i+1])
	}
	for r := 1; r < rounds; r++ {
		for i, m := range byRound[r] {
			m.winnerTo = &link{match: byRound[r+1][i/2], slot: i % 2}
		}
	}
	b.final = byRound[rounds][0]

	if withThird && rounds >= 2 {
		tp := b.register(&Match{UID: "3P", Round: rounds, Order: 2})
		semis := byRound[rounds-1]
		semis[0].loserTo = &link{match: tp, slot: slotHome}
		semis[1].loserTo = &link{match: tp, slot: slotAway}
		b.thirdPlace = tp
	}
}

func (b *Bracket) buildDouble() {
	size, k := bracketSize(len(b.players))
	order := seedOrder(size)

	wb := make([][]*Match, k+1)
	for r := 1; r <= k; r++ {
		count := size >> uint(r)
		wb[r] = make([]*Match, count)
		for i := range wb[r] {
			wb[r][i] = b.register(&Match{
				UID:   fmt.Sprintf("W%dM%d", r, i+1),
				Round: r,
				Order: i + 1,
			})
		}
	}
	for i, m := range wb[1] {
		b.place(m, slotHome, order[2*i])
		b.place(m, slotAway, order[2*i+1])
	}
	for r := 1; r < k; r++ {
		for i, m := range wb[r] {
			m.winnerTo = &link{match: wb[r+1][i/2], slot: i % 2}
		}
	}
	b.final = wb[k][0]

	gf := b.register(&Match{UID: "GF", Round: k + 1, Order: 1})
	gf2 := b.register(&Match{UID: "GF2", Round: k + 2, Order: 1})
	b.grandFinal, b.resetFinal = gf, gf2
	b.final.winnerTo = &link{match: gf, slot: slotHome}

	if k == 1 {
		// two players: the loser gets their rematch in the grand final
		b.final.loserTo = &link{match: gf, slot: slotAway}
		return
	}

	// losers bracket: odd rounds pair survivors, even rounds feed in
	// the losers dropping from the winners bracket
	lbRounds := 2 * (k - 1)
	lb := make([][]*Match, lbRounds+1)
	for t := 1; t <= lbRounds; t++ {
		var count int
		if t%2 == 1 {
			count = size >> uint((t+1)/2+1)
		} else {
			count = size >> uint(t/2+1)
		}
		lb[t] = make([]*Match, count)
		for i := range lb[t] {
			lb[t][i] = b.register(&Match{
				UID:    fmt.Sprintf("L%dM%d", t, i+1),
				Round:  t,
				Order:  i + 1,
				Losers: true,
			})
		}
	}

	for i, m := range lb[1] {
		wb[1][2*i].loserTo = &link{match: m, slot: slotHome}
		wb[1][2*i+1].loserTo = &link{match: m, slot: slotAway}
	}
	for t := 2; t <= lbRounds; t++ {
		if t%2 == 0 {
			// feed-in: survivors at home, drop-downs reversed to delay
			// rematches
			j := t/2 + 1
			count := len(lb[t])
			for i, m := range lb[t] {
				lb[t-1][i].winnerTo = &link{match: m, slot: slotHome}
				wb[j][count-1-i].loserTo = &link{match: m, slot: slotAway}
			}
		} else {
			for i, prev := range lb[t-1] {
				prev.winnerTo = &link{match: lb[t][i/2], slot: i % 2}
			}
		}
	}

	b.lbFinal = lb[lbRounds][0]
	b.lbFinal.winnerTo = &link{match: gf, slot: slotAway}
}
