package handlers

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"

	"beebalanced/internal/survey"
)

type AdminHandler struct {
	db  *sqlx.DB
	loc *time.Location
}

func NewAdminHandler(db *sqlx.DB, loc *time.Location) *AdminHandler {
	return &AdminHandler{db: db, loc: loc}
}

type adminOverview struct {
	TotalUsers          int `json:"total_users"`
	TotalResponses      int `json:"total_responses"`
	ActiveUsersThisWeek int `json:"active_users_this_week"`
	ResponsesThisWeek   int `json:"responses_this_week"`
	ResponsesThisMonth  int `json:"responses_this_month"`
}

// mustBeAdmin checks the current user is admin
func (h *AdminHandler) mustBeAdmin(userID int) (bool, error) {
	var isAdmin bool
	if err := h.db.QueryRowx(`SELECT is_admin FROM users WHERE id=$1`, userID).Scan(&isAdmin); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, err
	}
	return isAdmin, nil
}

// Overview godoc
// @Summary Get admin overview
// @Description Returns administrative statistics across all three survey tables (admin only)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} adminOverview
// @Failure 403 {string} string "Forbidden"
// @Failure 500 {string} string "Internal server error"
// @Router /admin/overview [get]
func (h *AdminHandler) Overview(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int)
	if ok, err := h.mustBeAdmin(userID); err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	} else if !ok {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	now := time.Now().In(h.loc)
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, h.loc)
	weekStart := dayStart.AddDate(0, 0, -int(dayStart.Weekday()))
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, h.loc)

	var out adminOverview
	if err := h.db.QueryRowx(`SELECT COUNT(*) FROM users`).Scan(&out.TotalUsers); err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	activeUsers := make(map[int]bool)
	for _, cat := range survey.Categories {
		table := cat.Table()
		var total, week, month int
		query := fmt.Sprintf(`SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE created_at >= $1),
			COUNT(*) FILTER (WHERE created_at >= $2)
			FROM %s`, table)
		if err := h.db.QueryRowx(query, weekStart, monthStart).Scan(&total, &week, &month); err != nil {
			http.Error(w, "server error", http.StatusInternalServerError)
			return
		}
		out.TotalResponses += total
		out.ResponsesThisWeek += week
		out.ResponsesThisMonth += month

		var ids []int
		if err := h.db.Select(&ids, fmt.Sprintf(`SELECT DISTINCT user_id FROM %s WHERE created_at >= $1`, table), weekStart); err != nil {
			http.Error(w, "server error", http.StatusInternalServerError)
			return
		}
		for _, id := range ids {
			activeUsers[id] = true
		}
	}
	out.ActiveUsersThisWeek = len(activeUsers)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}
