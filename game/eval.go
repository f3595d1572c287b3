package game

// ScoreBreakdown decomposes one player's final score.
type ScoreBreakdown struct {
	Player        int    `json:"player"`
	Name          string `json:"name"`
	Base          int    `json:"base"`
	Cards         int    `json:"cards"`
	Buildings     int    `json:"buildings"`
	ResourceBonus int    `json:"resource_bonus"`
	Total         int    `json:"total"`
}

// FinalScore is the running score plus civilization card points, building
// points and one point per wood, brick, stone and gold left over.
func (gs *GameState) FinalScore(playerIndex int) ScoreBreakdown {
	p := gs.Players[playerIndex]
	sb := ScoreBreakdown{
		Player:        playerIndex,
		Name:          p.Name,
		Base:          p.Score,
		ResourceBonus: p.Resources.Total(),
	}
	for _, c := range p.Cards {
		sb.Cards += c.Points
	}
	for _, b := range p.Buildings {
		sb.Buildings += b.Points
	}
	sb.Total = sb.Base + sb.Cards + sb.Buildings + sb.ResourceBonus
	return sb
}

// FinalScores returns the breakdown of every player in seat order.
func (gs *GameState) FinalScores() []ScoreBreakdown {
	scores := make([]ScoreBreakdown, len(gs.Players))
	for i := range gs.Players {
		scores[i] = gs.FinalScore(i)
	}
	return scores
}

// Winner is the seat with the highest final score. Ties go to the earlier
// seat.
func (gs *GameState) Winner() int {
	return winnerOf(gs.FinalScores())
}

func winnerOf(scores []ScoreBreakdown) int {
	if len(scores) == 0 {
		return -1
	}
	best := 0
	for i, s := range scores {
		if s.Total > scores[best].Total {
			best = i
		}
	}
	return best
}
