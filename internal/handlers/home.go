package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"

	"beebalanced/internal/survey"
)

type HomeHandler struct {
	db  *sqlx.DB
	loc *time.Location
}

func NewHomeHandler(db *sqlx.DB, loc *time.Location) *HomeHandler {
	return &HomeHandler{db: db, loc: loc}
}

// fetchResponses loads a user's rows for one category, oldest first. Trend
// charts depend on that order: when a weekday repeats in the window, the
// newest row must be the one that lands in the slot.
func fetchResponses(db *sqlx.DB, cat survey.Category, userID int) ([]survey.Response, error) {
	var rows []survey.Response
	query := fmt.Sprintf(`SELECT question, score, created_at FROM %s WHERE user_id=$1 ORDER BY created_at ASC`, cat.Table())
	if err := db.Select(&rows, query, userID); err != nil {
		return nil, err
	}
	return rows, nil
}

type homeResponse struct {
	Days             []string                       `json:"days"`
	OverallData      []int                          `json:"overallData"`
	MentalData       []int                          `json:"mentalData"`
	PhysicalData     []int                          `json:"physicalData"`
	OverallFeedback  []survey.FeedbackItem          `json:"overallFeedback"`
	MentalFeedback   []survey.FeedbackItem          `json:"mentalFeedback"`
	PhysicalFeedback []survey.FeedbackItem          `json:"physicalFeedback"`
	CalendarTimeline map[string][]survey.TrendPoint `json:"calendarTimeline"`
	Completion       map[survey.Category]bool       `json:"completion"`
	Coins            int                            `json:"coins"`
	SurveyCount      int                            `json:"survey_count"`
}

// displayKey maps the general category to the chart's historical "overall"
// label.
func displayKey(c survey.Category) string {
	if c == survey.General {
		return "overall"
	}
	return string(c)
}

// Home godoc
// @Summary Home screen data
// @Description Weekday trend charts, areas-to-improve feedback and the 30-day calendar timeline for all three categories
// @Tags home
// @Produce json
// @Security BearerAuth
// @Success 200 {object} homeResponse
// @Failure 500 {string} string "Internal server error"
// @Router /home [get]
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int)
	now := time.Now()

	resp := homeResponse{
		Days:             survey.Weekdays,
		CalendarTimeline: make(map[string][]survey.TrendPoint, 3),
	}

	for _, cat := range survey.Categories {
		rows, err := fetchResponses(h.db, cat, userID)
		if err != nil {
			http.Error(w, "could not fetch survey history", http.StatusInternalServerError)
			return
		}
		week := survey.WeekdayAverages(rows, now, h.loc)
		feedback := survey.TopFeedback(cat, rows)
		resp.CalendarTimeline[displayKey(cat)] = survey.CalendarTimeline(rows, h.loc)

		switch cat {
		case survey.General:
			resp.OverallData, resp.OverallFeedback = week, feedback
		case survey.Mental:
			resp.MentalData, resp.MentalFeedback = week, feedback
		case survey.Physical:
			resp.PhysicalData, resp.PhysicalFeedback = week, feedback
		}
	}

	status := make(map[survey.Category]bool, 3)
	for _, cat := range survey.Categories {
		start, end := dayBounds(now, h.loc)
		var done bool
		if err := h.db.QueryRowx(
			fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE user_id=$1 AND created_at >= $2 AND created_at < $3)`, cat.Table()),
			userID, start, end,
		).Scan(&done); err != nil {
			http.Error(w, "could not check completion", http.StatusInternalServerError)
			return
		}
		status[cat] = done
	}
	resp.Completion = status

	if err := h.db.QueryRowx(`SELECT coins, survey_count FROM users WHERE id=$1`, userID).Scan(&resp.Coins, &resp.SurveyCount); err != nil {
		http.Error(w, "could not fetch user", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// Trends godoc
// @Summary Rolling per-date trend for one category
// @Description window=14 returns the trailing 14-day per-date means; window=30 returns the bounded all-history calendar timeline
// @Tags home
// @Produce json
// @Security BearerAuth
// @Param category query string true "general, mental or physical"
// @Param window query int false "14 or 30" default(14)
// @Success 200 {array} survey.TrendPoint
// @Router /trends [get]
func (h *HomeHandler) Trends(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int)
	cat, err := survey.ParseCategory(r.URL.Query().Get("category"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	window := 14
	if s := r.URL.Query().Get("window"); s != "" {
		window, err = strconv.Atoi(s)
		if err != nil || (window != 14 && window != 30) {
			http.Error(w, "window must be 14 or 30", http.StatusBadRequest)
			return
		}
	}

	rows, err := fetchResponses(h.db, cat, userID)
	if err != nil {
		http.Error(w, "could not fetch survey history", http.StatusInternalServerError)
		return
	}

	var points []survey.TrendPoint
	if window == 30 {
		points = survey.CalendarTimeline(rows, h.loc)
	} else {
		points = survey.RollingAverages(rows, time.Now(), h.loc, window)
	}
	if points == nil {
		points = []survey.TrendPoint{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(points)
}
