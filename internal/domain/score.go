package domain

import (
	"sort"
	"time"
)

// MaxScores number of records kept on the leaderboard.
const MaxScores = 5

// ScoreRecord final result of one game.
type ScoreRecord struct {
	Score    int       `json:"score"`
	Name     string    `json:"name"`
	Turns    int       `json:"turns"`
	GameID   string    `json:"game_id,omitempty"`
	PlayedAt time.Time `json:"played_at"`
}

// Leaderboard keeps the best MaxScores records, highest first.
type Leaderboard struct {
	records []ScoreRecord
}

// NewLeaderboard builds a sorted, truncated board from existing records.
func NewLeaderboard(records []ScoreRecord) *Leaderboard {
	lb := &Leaderboard{records: append([]ScoreRecord(nil), records...)}
	lb.normalize()
	return lb
}

// Add inserts a record and reports whether it made the board.
func (lb *Leaderboard) Add(rec ScoreRecord) bool {
	lb.records = append(lb.records, rec)
	lb.normalize()
	for _, r := range lb.records {
		if r == rec {
			return true
		}
	}
	return false
}

// Qualifies reports whether score would enter the board.
func (lb *Leaderboard) Qualifies(score int) bool {
	if len(lb.records) < MaxScores {
		return true
	}
	return score > lb.records[len(lb.records)-1].Score
}

// Records returns a copy of the board.
func (lb *Leaderboard) Records() []ScoreRecord {
	return append([]ScoreRecord(nil), lb.records...)
}

// normalize sorts descending by score (stable, so earlier entries win ties)
// and truncates to MaxScores.
func (lb *Leaderboard) normalize() {
	sort.SliceStable(lb.records, func(i, j int) bool {
		return lb.records[i].Score > lb.records[j].Score
	})
	if len(lb.records) > MaxScores {
		lb.records = lb.records[:MaxScores]
	}
}
