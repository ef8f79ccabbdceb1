package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"

	"github.com/jmoiron/sqlx"

	"beebalanced/internal/models"
)

type GardenHandler struct {
	db *sqlx.DB
}

func NewGardenHandler(db *sqlx.DB) *GardenHandler { return &GardenHandler{db: db} }

// Catalog lists the flowers available in the shop.
func (h *GardenHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	var flowers []models.Flower
	if err := h.db.Select(&flowers, `SELECT id, name, cost FROM flowers ORDER BY cost ASC`); err != nil {
		http.Error(w, "could not fetch catalog", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(flowers)
}

type gardenPlacement struct {
	ID     int    `db:"id" json:"id"`
	Flower string `db:"flower" json:"flower"`
	PosX   int    `db:"pos_x" json:"pos_x"`
	PosY   int    `db:"pos_y" json:"pos_y"`
}

type gardenResponse struct {
	Coins   int               `json:"coins"`
	Flowers []gardenPlacement `json:"flowers"`
}

// List godoc
// @Summary The current user's garden
// @Tags garden
// @Produce json
// @Security BearerAuth
// @Success 200 {object} gardenResponse
// @Router /garden [get]
func (h *GardenHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int)

	var resp gardenResponse
	if err := h.db.Get(&resp.Coins, `SELECT coins FROM users WHERE id=$1`, userID); err != nil {
		http.Error(w, "could not fetch user", http.StatusInternalServerError)
		return
	}
	err := h.db.Select(&resp.Flowers, `
		SELECT g.id, f.name AS flower, g.pos_x, g.pos_y
		FROM garden_flowers g JOIN flowers f ON f.id = g.flower_id
		WHERE g.user_id=$1 ORDER BY g.created_at ASC`, userID)
	if err != nil {
		http.Error(w, "could not fetch garden", http.StatusInternalServerError)
		return
	}
	if resp.Flowers == nil {
		resp.Flowers = []gardenPlacement{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

type buyRequest struct {
	FlowerID int `json:"flower_id"`
	PosX     int `json:"pos_x"`
	PosY     int `json:"pos_y"`
}

// Buy godoc
// @Summary Buy a flower and place it
// @Description Deducts the flower's cost from the user's coins and places it on the home screen
// @Tags garden
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 201 {object} gardenPlacement
// @Failure 402 {string} string "Not enough coins"
// @Failure 404 {string} string "Unknown flower"
// @Router /garden/flowers [post]
func (h *GardenHandler) Buy(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int)
	var req buyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.FlowerID <= 0 {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	tx, err := h.db.Beginx()
	if err != nil {
		http.Error(w, "could not complete purchase", http.StatusInternalServerError)
		return
	}
	defer tx.Rollback()

	var flower models.Flower
	if err := tx.Get(&flower, `SELECT id, name, cost FROM flowers WHERE id=$1`, req.FlowerID); err != nil {
		if err == sql.ErrNoRows {
			http.Error(w, "unknown flower", http.StatusNotFound)
			return
		}
		http.Error(w, "could not complete purchase", http.StatusInternalServerError)
		return
	}

	// The coins check and deduction are one statement so two concurrent
	// purchases cannot both spend the same balance.
	res, err := tx.Exec(`UPDATE users SET coins = coins - $1 WHERE id = $2 AND coins >= $1`, flower.Cost, userID)
	if err != nil {
		http.Error(w, "could not complete purchase", http.StatusInternalServerError)
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		http.Error(w, "not enough coins", http.StatusPaymentRequired)
		return
	}

	var placementID int
	err = tx.QueryRowx(`INSERT INTO garden_flowers (user_id, flower_id, pos_x, pos_y) VALUES ($1, $2, $3, $4) RETURNING id`,
		userID, flower.ID, req.PosX, req.PosY).Scan(&placementID)
	if err != nil {
		http.Error(w, "could not complete purchase", http.StatusInternalServerError)
		return
	}
	if err := tx.Commit(); err != nil {
		http.Error(w, "could not complete purchase", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(gardenPlacement{ID: placementID, Flower: flower.Name, PosX: req.PosX, PosY: req.PosY})
}
