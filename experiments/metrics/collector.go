package metrics

import (
	"sync/atomic"
	"time"

	"stoneage/game"
)

// RoundMetric is one player's standing at the end of a round.
type RoundMetric struct {
	Round          int
	Player         int
	Name           string
	Score          int
	Workers        int
	FoodProduction int
	Tools          int
	Resources      game.Resources
	Cards          int
	Buildings      int
	Shortfall      int
}

// GameMetric summarizes one finished game.
type GameMetric struct {
	GameID          string
	Players         int
	Rounds          int
	Winner          int
	WinnerName      string
	WinnerScore     int
	StartTime       time.Time
	EndTime         time.Time
	Duration        time.Duration
	Rejected        int
	FailedPurchases int
	Shortfalls      int
}

type Collector interface {
	Start(gameID string, players int)
	AddRejected()
	AddFailedPurchase()
	EndRound(s game.Snapshot, feeding []game.FeedResult)
	Complete(scores []game.ScoreBreakdown, winner int) GameMetric
	Rounds() []RoundMetric
}

type collector struct {
	gameID          string
	players         int
	startTime       time.Time
	rounds          []RoundMetric
	lastRound       int
	rejected        atomic.Int32
	failedPurchases atomic.Int32
	shortfalls      atomic.Int32
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(gameID string, players int) {
	m.startTime = time.Now()
	m.gameID = gameID
	m.players = players
}

func (m *collector) AddRejected() {
	m.rejected.Add(1)
}

func (m *collector) AddFailedPurchase() {
	m.failedPurchases.Add(1)
}

// EndRound records every player of a snapshot taken right after feeding.
func (m *collector) EndRound(s game.Snapshot, feeding []game.FeedResult) {
	m.lastRound = s.Round
	for i, p := range s.Players {
		rm := RoundMetric{
			Round:          s.Round,
			Player:         i,
			Name:           p.Name,
			Score:          p.Score,
			Workers:        p.Workers,
			FoodProduction: p.FoodProduction,
			Tools:          len(p.Tools),
			Resources:      p.Resources,
			Cards:          len(p.Cards),
			Buildings:      len(p.Buildings),
		}
		if i < len(feeding) && feeding[i].Shortfall > 0 {
			rm.Shortfall = feeding[i].Shortfall
			m.shortfalls.Add(1)
		}
		m.rounds = append(m.rounds, rm)
	}
}

func (m *collector) Complete(scores []game.ScoreBreakdown, winner int) GameMetric {
	end := time.Now()
	gm := GameMetric{
		GameID:          m.gameID,
		Players:         m.players,
		Rounds:          m.lastRound,
		Winner:          winner,
		StartTime:       m.startTime,
		EndTime:         end,
		Duration:        end.Sub(m.startTime),
		Rejected:        int(m.rejected.Load()),
		FailedPurchases: int(m.failedPurchases.Load()),
		Shortfalls:      int(m.shortfalls.Load()),
	}
	if winner >= 0 && winner < len(scores) {
		gm.WinnerName = scores[winner].Name
		gm.WinnerScore = scores[winner].Total
	}
	return gm
}

func (m *collector) Rounds() []RoundMetric {
	out := make([]RoundMetric, len(m.rounds))
	copy(out, m.rounds)
	return out
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(gameID string, players int)                    {}
func (m *dummyCollector) AddRejected()                                        {}
func (m *dummyCollector) AddFailedPurchase()                                  {}
func (m *dummyCollector) EndRound(s game.Snapshot, feeding []game.FeedResult) {}
func (m *dummyCollector) Complete(scores []game.ScoreBreakdown, winner int) GameMetric {
	return GameMetric{}
}
func (m *dummyCollector) Rounds() []RoundMetric { return nil }
