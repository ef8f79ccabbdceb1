package survey

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEveryQuestionHasAdvice(t *testing.T) {
	for _, c := range Categories {
		qs := Questions(c)
		require.Len(t, qs, 5, "category %s", c)
		for _, q := range qs {
			advice, ok := AdviceFor(c, q.ID)
			require.True(t, ok, "missing advice for %s/%s", c, q.ID)
			require.NotEmpty(t, advice)
		}
	}
}

func TestAdviceForUnknownQuestion(t *testing.T) {
	advice, ok := AdviceFor(General, "q99")
	require.False(t, ok)
	require.Empty(t, advice)
}

func TestQuestionTextFallsBackToID(t *testing.T) {
	require.Equal(t, "q99", QuestionText(Mental, "q99"))
}

func TestTopFeedback(t *testing.T) {
	rows := []Response{
		{QuestionID: "q1", Score: 8},
		{QuestionID: "q2", Score: 2},
		{QuestionID: "q3", Score: 4},
		{QuestionID: "q2", Score: 6}, // repeat of q2, higher score, ignored
		{QuestionID: "q4", Score: 3},
		{QuestionID: "q5", Score: 5},
	}
	items := TopFeedback(General, rows)
	require.Len(t, items, 3)
	require.Equal(t, QuestionText(General, "q2"), items[0].Question)
	require.Equal(t, QuestionText(General, "q4"), items[1].Question)
	require.Equal(t, QuestionText(General, "q3"), items[2].Question)
	for _, it := range items {
		require.NotEmpty(t, it.Advice)
	}
}

func TestTopFeedbackUnknownQuestionGetsSentinel(t *testing.T) {
	items := TopFeedback(General, []Response{{QuestionID: "q99", Score: 1}})
	require.Len(t, items, 1)
	require.Equal(t, "No advice available.", items[0].Advice)
}

func TestTopFeedbackShortHistory(t *testing.T) {
	require.Empty(t, TopFeedback(General, nil))
	items := TopFeedback(General, []Response{{QuestionID: "q1", Score: 9}})
	require.Len(t, items, 1)
}
