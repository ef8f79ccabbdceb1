package survey

import (
	"fmt"
	"math"
	"sort"
)

const (
	// MinScore and MaxScore bound every answered question.
	MinScore = 1
	MaxScore = 10

	// neutralScore fills trend slots for days without a submission.
	neutralScore = 5

	// standoutMargin is how far below the submission average a score must
	// fall to be flagged as the standout feedback driver.
	standoutMargin = 2
)

// ValidateSubmission rejects bad submissions before anything is persisted.
func ValidateSubmission(c Category, answers []Answer) error {
	if c.Table() == "" {
		return &ValidationError{msg: fmt.Sprintf("unknown category %q", c)}
	}
	if len(answers) == 0 {
		return &ValidationError{msg: "submission has no answers"}
	}
	seen := make(map[string]bool, len(answers))
	for _, a := range answers {
		if !validQuestionID(c, a.QuestionID) {
			return &ValidationError{msg: fmt.Sprintf("unknown question %q for category %q", a.QuestionID, c)}
		}
		if seen[a.QuestionID] {
			return &ValidationError{msg: fmt.Sprintf("duplicate answer for question %q", a.QuestionID)}
		}
		seen[a.QuestionID] = true
		if a.Score < MinScore || a.Score > MaxScore {
			return &ValidationError{msg: fmt.Sprintf("score %d for question %q is outside [%d,%d]", a.Score, a.QuestionID, MinScore, MaxScore)}
		}
	}
	return nil
}

// AverageScore is the round-half-up integer mean of a submission's scores.
// It sizes the coin award and is never stored.
func AverageScore(answers []Answer) int {
	if len(answers) == 0 {
		return 0
	}
	total := 0
	for _, a := range answers {
		total += a.Score
	}
	return int(math.Floor(float64(total)/float64(len(answers)) + 0.5))
}

// FeedbackReason tags why a question was selected for post-submission advice.
type FeedbackReason string

const (
	// ReasonStandout marks a score well below the submission's average.
	ReasonStandout FeedbackReason = "standout"
	// ReasonLow marks the plain minimum when nothing stands out.
	ReasonLow FeedbackReason = "low"
)

// FeedbackTarget is the single question surfaced for advice after a
// submission.
type FeedbackTarget struct {
	QuestionID string
	Score      int
	Reason     FeedbackReason
}

// SelectFeedbackTarget picks the question whose advice is shown after a
// submission: the first answer scoring at least standoutMargin below the
// mean, or failing that the first answer at the global minimum. answers must
// be non-empty and in a stable order.
func SelectFeedbackTarget(answers []Answer) FeedbackTarget {
	total := 0
	for _, a := range answers {
		total += a.Score
	}
	mean := float64(total) / float64(len(answers))

	for _, a := range answers {
		if float64(a.Score) <= mean-standoutMargin {
			return FeedbackTarget{QuestionID: a.QuestionID, Score: a.Score, Reason: ReasonStandout}
		}
	}

	low := answers[0]
	for _, a := range answers[1:] {
		if a.Score < low.Score {
			low = a
		}
	}
	return FeedbackTarget{QuestionID: low.QuestionID, Score: low.Score, Reason: ReasonLow}
}

// CoinsFor converts a submission's average score into a coin award.
func CoinsFor(averageScore int) int {
	switch {
	case averageScore >= 8:
		return 10
	case averageScore >= 5:
		return 5
	default:
		return 2
	}
}

// FeedbackItem is one entry on the dashboard's "areas to improve" panel.
type FeedbackItem struct {
	Question string `json:"question"`
	Advice   string `json:"advice"`
}

// noAdvice is what the improvement panel shows for questions with no entry
// in the advice table.
const noAdvice = "No advice available."

// TopFeedback picks the lowest-scoring three distinct questions from a
// category's historical responses and resolves advice for each. Ties keep
// their input order.
func TopFeedback(c Category, rows []Response) []FeedbackItem {
	sorted := make([]Response, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Score < sorted[j].Score })

	seen := make(map[string]bool, 3)
	var items []FeedbackItem
	for _, r := range sorted {
		if seen[r.QuestionID] {
			continue
		}
		seen[r.QuestionID] = true
		text := QuestionText(c, r.QuestionID)
		advice, ok := AdviceFor(c, r.QuestionID)
		if !ok {
			advice = noAdvice
		}
		items = append(items, FeedbackItem{Question: text, Advice: advice})
		if len(items) == 3 {
			break
		}
	}
	return items
}
