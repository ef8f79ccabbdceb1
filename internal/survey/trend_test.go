package survey

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var testLoc = time.FixedZone("EST", -5*60*60)

func at(day time.Time, hour int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, testLoc)
}

func TestWeekdayAveragesEmptyHistory(t *testing.T) {
	now := time.Date(2025, 6, 18, 15, 0, 0, 0, testLoc) // a Wednesday
	slots := WeekdayAverages(nil, now, testLoc)
	require.Equal(t, []int{5, 5, 5, 5, 5, 5, 5}, slots)
}

func TestWeekdayAveragesFillsByWeekday(t *testing.T) {
	now := time.Date(2025, 6, 18, 15, 0, 0, 0, testLoc) // Wednesday
	rows := []Response{
		{QuestionID: "q1", Score: 9, CreatedAt: at(now.AddDate(0, 0, -2), 10)}, // Monday
		{QuestionID: "q1", Score: 3, CreatedAt: at(now, 9)},                    // Wednesday
	}
	slots := WeekdayAverages(rows, now, testLoc)
	require.Equal(t, 9, slots[int(time.Monday)])
	require.Equal(t, 3, slots[int(time.Wednesday)])
	require.Equal(t, 5, slots[int(time.Sunday)])
	require.Len(t, slots, 7)
}

func TestWeekdayAveragesLastRowWins(t *testing.T) {
	now := time.Date(2025, 6, 18, 15, 0, 0, 0, testLoc)
	rows := []Response{
		{QuestionID: "q1", Score: 2, CreatedAt: at(now, 8)},
		{QuestionID: "q2", Score: 10, CreatedAt: at(now, 12)},
	}
	slots := WeekdayAverages(rows, now, testLoc)
	require.Equal(t, 10, slots[int(time.Wednesday)])
}

func TestWeekdayAveragesIgnoresRowsOutsideWindow(t *testing.T) {
	now := time.Date(2025, 6, 18, 15, 0, 0, 0, testLoc)
	rows := []Response{
		{QuestionID: "q1", Score: 1, CreatedAt: at(now.AddDate(0, 0, -7), 10)}, // same weekday, last week
		{QuestionID: "q1", Score: 1, CreatedAt: now.Add(time.Hour)},            // future
	}
	slots := WeekdayAverages(rows, now, testLoc)
	require.Equal(t, []int{5, 5, 5, 5, 5, 5, 5}, slots)
}

func TestRollingAveragesMeansPerDate(t *testing.T) {
	now := time.Date(2025, 6, 18, 20, 0, 0, 0, testLoc)
	rows := []Response{
		{QuestionID: "q1", Score: 4, CreatedAt: at(now.AddDate(0, 0, -1), 9)},
		{QuestionID: "q2", Score: 5, CreatedAt: at(now.AddDate(0, 0, -1), 9)},
		{QuestionID: "q3", Score: 8, CreatedAt: at(now.AddDate(0, 0, -1), 9)},
		{QuestionID: "q1", Score: 10, CreatedAt: at(now, 7)},
	}
	points := RollingAverages(rows, now, testLoc, 14)
	require.Len(t, points, 2)
	require.Equal(t, "2025-06-17", points[0].Day)
	require.InDelta(t, 5.67, points[0].AvgScore, 0.001)
	require.Equal(t, "2025-06-18", points[1].Day)
	require.InDelta(t, 10.0, points[1].AvgScore, 0.001)
}

func TestRollingAveragesOmitsOutOfWindow(t *testing.T) {
	now := time.Date(2025, 6, 18, 20, 0, 0, 0, testLoc)
	rows := []Response{
		{QuestionID: "q1", Score: 9, CreatedAt: at(now.AddDate(0, 0, -14), 10)}, // day 15, out
		{QuestionID: "q1", Score: 6, CreatedAt: at(now.AddDate(0, 0, -13), 10)}, // day 14, in
	}
	points := RollingAverages(rows, now, testLoc, 14)
	require.Len(t, points, 1)
	require.Equal(t, "2025-06-05", points[0].Day)
}

func TestRollingAveragesNeverExceedsWindow(t *testing.T) {
	now := time.Date(2025, 6, 18, 20, 0, 0, 0, testLoc)
	var rows []Response
	for d := 0; d < 60; d++ {
		rows = append(rows, Response{QuestionID: "q1", Score: 5, CreatedAt: at(now.AddDate(0, 0, -d), 10)})
	}
	require.LessOrEqual(t, len(RollingAverages(rows, now, testLoc, 14)), 14)
}

func TestCalendarTimelineBoundedAndOrdered(t *testing.T) {
	now := time.Date(2025, 6, 18, 20, 0, 0, 0, testLoc)
	var rows []Response
	for d := 0; d < 45; d++ {
		rows = append(rows, Response{QuestionID: "q1", Score: 1 + d%10, CreatedAt: at(now.AddDate(0, 0, -d), 11)})
	}
	points := CalendarTimeline(rows, testLoc)
	require.Len(t, points, 30)
	for i := 1; i < len(points); i++ {
		require.Less(t, points[i-1].Day, points[i].Day)
	}
	// keeps the most recent dates
	require.Equal(t, "2025-06-18", points[len(points)-1].Day)
	require.Equal(t, "2025-05-20", points[0].Day)
}

func TestCalendarTimelineRounding(t *testing.T) {
	day := time.Date(2025, 6, 10, 0, 0, 0, 0, testLoc)
	rows := []Response{
		{QuestionID: "q1", Score: 1, CreatedAt: at(day, 8)},
		{QuestionID: "q2", Score: 2, CreatedAt: at(day, 8)},
		{QuestionID: "q3", Score: 2, CreatedAt: at(day, 8)},
	}
	points := CalendarTimeline(rows, testLoc)
	require.Len(t, points, 1)
	require.Equal(t, 1.67, points[0].AvgScore)
}

func TestDayBoundaryUsesConfiguredZone(t *testing.T) {
	// 01:30 UTC on June 18 is still June 17 in the configured zone.
	utc := time.Date(2025, 6, 18, 1, 30, 0, 0, time.UTC)
	rows := []Response{{QuestionID: "q1", Score: 7, CreatedAt: utc}}
	points := CalendarTimeline(rows, testLoc)
	require.Len(t, points, 1)
	require.Equal(t, "2025-06-17", points[0].Day)
}
