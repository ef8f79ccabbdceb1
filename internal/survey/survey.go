package survey

import (
	"fmt"
	"time"
)

// Category is one of the three survey domains.
type Category string

const (
	General  Category = "general"
	Mental   Category = "mental"
	Physical Category = "physical"
)

// Categories lists all survey categories in display order.
var Categories = []Category{General, Mental, Physical}

// ParseCategory validates a category string coming off the wire.
func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case General, Mental, Physical:
		return Category(s), nil
	}
	return "", &ValidationError{msg: fmt.Sprintf("unknown category %q", s)}
}

// Table returns the survey response table backing a category.
func (c Category) Table() string {
	switch c {
	case General:
		return "general_survey"
	case Mental:
		return "mental_survey"
	case Physical:
		return "physical_survey"
	}
	return ""
}

// Answer is one scored question within a submission. Answers are carried as
// an ordered slice (sorted by question ID) so that feedback selection is
// deterministic.
type Answer struct {
	QuestionID string
	Score      int
}

// Response is one persisted survey row.
type Response struct {
	QuestionID string    `db:"question"`
	Score      int       `db:"score"`
	CreatedAt  time.Time `db:"created_at"`
}

// TrendPoint is one day on a trend chart. Day is a local calendar date in
// YYYY-MM-DD form.
type TrendPoint struct {
	Day      string  `json:"day"`
	AvgScore float64 `json:"avgScore"`
}

// ValidationError marks a submission rejected before any persistence.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }
