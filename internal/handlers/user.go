package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/jmoiron/sqlx"

	"beebalanced/internal/models"
)

type UserHandler struct {
	db *sqlx.DB
}

func NewUserHandler(db *sqlx.DB) *UserHandler {
	return &UserHandler{db: db}
}

// GetMe returns the current user's profile, coins and lifetime survey count.
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int)
	var u models.User
	if err := h.db.Get(&u, `SELECT id, full_name, email, password_hash, age, gender, country, coins, survey_count, unsubscribed, is_admin, created_at FROM users WHERE id=$1`, userID); err != nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(u)
}

// Unsubscribe stops check-in reminder emails for the current user.
func (h *UserHandler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	h.setUnsubscribed(w, r, true)
}

// Resubscribe turns reminder emails back on.
func (h *UserHandler) Resubscribe(w http.ResponseWriter, r *http.Request) {
	h.setUnsubscribed(w, r, false)
}

func (h *UserHandler) setUnsubscribed(w http.ResponseWriter, r *http.Request, unsubscribed bool) {
	userID := r.Context().Value("userID").(int)
	if _, err := h.db.Exec(`UPDATE users SET unsubscribed=$1 WHERE id=$2`, unsubscribed, userID); err != nil {
		http.Error(w, "could not update", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
