package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"beebalanced/internal/survey"
)

func TestOrderedAnswersStableOrder(t *testing.T) {
	answers := map[string]int{"q3": 5, "q1": 9, "q5": 2, "q2": 7, "q4": 4}
	got := orderedAnswers(answers)
	require.Equal(t, []survey.Answer{
		{QuestionID: "q1", Score: 9},
		{QuestionID: "q2", Score: 7},
		{QuestionID: "q3", Score: 5},
		{QuestionID: "q4", Score: 4},
		{QuestionID: "q5", Score: 2},
	}, got)
}

func TestDayBounds(t *testing.T) {
	loc := time.FixedZone("EST", -5*60*60)
	// 02:00 UTC on June 18 is 21:00 June 17 local.
	now := time.Date(2025, 6, 18, 2, 0, 0, 0, time.UTC)
	start, end := dayBounds(now, loc)
	require.Equal(t, time.Date(2025, 6, 17, 0, 0, 0, 0, loc), start)
	require.Equal(t, time.Date(2025, 6, 18, 0, 0, 0, 0, loc), end)
	require.Equal(t, 24*time.Hour, end.Sub(start))
}
