package main

// Prize is a non-cash award banked from a prize wedge.
type Prize struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// Player is one registered participant. Registration order defines turn
// rotation. ClientID is the cookie identity of the device that claimed the
// slot, empty while unclaimed.
type Player struct {
	Name        string
	Total       int
	Prizes      []Prize
	RoundBank   int
	RoundPrizes []Prize
	Connected   bool
	ClientID    string
}

func prizeValueSum(prizes []Prize) int {
	sum := 0
	for _, p := range prizes {
		sum += p.Value
	}
	return sum
}

// tvTotal is the player's standing for final-round selection: all-time cash
// plus the value of every banked prize.
func (p *Player) tvTotal() int {
	return p.Total + prizeValueSum(p.Prizes)
}

// awardRound moves the round bank and round prizes into the all-time
// ledgers.
func (p *Player) awardRound() {
	p.Total += p.RoundBank
	p.Prizes = append(p.Prizes, p.RoundPrizes...)
	p.RoundBank = 0
	p.RoundPrizes = nil
}

// forfeitRound drops the round bank and round prizes, as on BANKRUPT or a
// lost final round.
func (p *Player) forfeitRound() {
	p.RoundBank = 0
	p.RoundPrizes = nil
}

// tvWinnerIndexes returns the indexes of the players with the highest
// tvTotal. Ties return every tied index; an empty registry returns nil.
func tvWinnerIndexes(players []*Player) []int {
	if len(players) == 0 {
		return nil
	}

	best := players[0].tvTotal()
	for _, p := range players[1:] {
		if t := p.tvTotal(); t > best {
			best = t
		}
	}

	var winners []int
	for i, p := range players {
		if p.tvTotal() == best {
			winners = append(winners, i)
		}
	}
	return winners
}
