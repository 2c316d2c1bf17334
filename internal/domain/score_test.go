package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func names(records []ScoreRecord) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.Name)
	}
	return out
}

func TestLeaderboard_SortsAndTruncates(t *testing.T) {
	lb := NewLeaderboard([]ScoreRecord{
		{Score: 100, Name: "al"},
		{Score: 99, Name: "bob"},
		{Score: 101, Name: "charlie"},
		{Score: 105, Name: "dave"},
		{Score: 55, Name: "eric"},
	})
	assert.Equal(t, []string{"dave", "charlie", "al", "bob", "eric"}, names(lb.Records()))

	assert.False(t, lb.Add(ScoreRecord{Score: 44, Name: "frank"}))
	assert.Equal(t, []string{"dave", "charlie", "al", "bob", "eric"}, names(lb.Records()))

	assert.True(t, lb.Add(ScoreRecord{Score: 56, Name: "frank"}))
	assert.Equal(t, []string{"dave", "charlie", "al", "bob", "frank"}, names(lb.Records()))

	assert.True(t, lb.Add(ScoreRecord{Score: 106, Name: "greg"}))
	assert.Equal(t, []string{"greg", "dave", "charlie", "al", "bob"}, names(lb.Records()))
}

func TestLeaderboard_Qualifies(t *testing.T) {
	lb := NewLeaderboard(nil)
	assert.True(t, lb.Qualifies(0))

	for i := 1; i <= MaxScores; i++ {
		lb.Add(ScoreRecord{Score: i * 10, Name: "p"})
	}
	assert.False(t, lb.Qualifies(10))
	assert.True(t, lb.Qualifies(11))
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "$1", FormatMoney(1))
	assert.Equal(t, "$100", FormatMoney(100))
	assert.Equal(t, "$1,000", FormatMoney(1000))
	assert.Equal(t, "$100,000", FormatMoney(100000))
	assert.Equal(t, "$1,000,000", FormatMoney(1000000))
	assert.Equal(t, "$10,000,000", FormatMoney(10000000))
	assert.Equal(t, "-$2,500", FormatMoney(-2500))
}
