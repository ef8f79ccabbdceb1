package survey

import (
	"math"
	"sort"
	"time"
)

// Weekdays labels the slots returned by WeekdayAverages.
var Weekdays = []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	lt := t.In(loc)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, loc)
}

func dateKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02")
}

// WeekdayAverages builds the 7-slot weekday chart (Sunday=0 .. Saturday=6)
// from responses in the trailing 7-day window ending at now. Slots with no
// response default to the neutral score. When a weekday repeats inside the
// window, the last row passed in wins; callers feed rows oldest first so the
// newest submission shows.
func WeekdayAverages(rows []Response, now time.Time, loc *time.Location) []int {
	windowStart := startOfDay(now, loc).AddDate(0, 0, -6)
	slots := make([]int, 7)
	for i := range slots {
		slots[i] = neutralScore
	}
	for _, r := range rows {
		lt := r.CreatedAt.In(loc)
		if lt.Before(windowStart) || lt.After(now) {
			continue
		}
		slots[int(lt.Weekday())] = r.Score
	}
	return slots
}

// RollingAverages groups responses by local calendar date over the trailing
// windowDays-day window ending at now, and returns one point per date that
// has at least one response, oldest first. Per-date means are rounded to two
// decimal places; dates without responses are omitted.
func RollingAverages(rows []Response, now time.Time, loc *time.Location, windowDays int) []TrendPoint {
	windowStart := startOfDay(now, loc).AddDate(0, 0, -(windowDays - 1))
	inWindow := rows[:0:0]
	for _, r := range rows {
		lt := r.CreatedAt.In(loc)
		if !lt.Before(windowStart) && !lt.After(now) {
			inWindow = append(inWindow, r)
		}
	}
	return averageByDate(inWindow, loc, 0)
}

// CalendarTimeline groups all of a category's responses by local calendar
// date and returns at most the 30 most recent dates, oldest first.
func CalendarTimeline(rows []Response, loc *time.Location) []TrendPoint {
	return averageByDate(rows, loc, 30)
}

func averageByDate(rows []Response, loc *time.Location, keep int) []TrendPoint {
	sums := make(map[string]int)
	counts := make(map[string]int)
	for _, r := range rows {
		key := dateKey(r.CreatedAt, loc)
		sums[key] += r.Score
		counts[key]++
	}

	points := make([]TrendPoint, 0, len(sums))
	for day, sum := range sums {
		avg := float64(sum) / float64(counts[day])
		points = append(points, TrendPoint{Day: day, AvgScore: math.Round(avg*100) / 100})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Day < points[j].Day })

	if keep > 0 && len(points) > keep {
		points = points[len(points)-keep:]
	}
	return points
}
