package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"beebalanced/internal/survey"
)

type SurveyHandler struct {
	db  *sqlx.DB
	loc *time.Location
}

// NewSurveyHandler wires the submission path. loc is the deployment's fixed
// timezone; every day boundary is resolved against it, never against the
// host's default.
func NewSurveyHandler(db *sqlx.DB, loc *time.Location) *SurveyHandler {
	return &SurveyHandler{db: db, loc: loc}
}

// dayBounds returns the half-open [start, end) of now's calendar day in loc.
func dayBounds(now time.Time, loc *time.Location) (time.Time, time.Time) {
	lt := now.In(loc)
	start := time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}

func (h *SurveyHandler) hasCompletedToday(userID int, c survey.Category, now time.Time) (bool, error) {
	start, end := dayBounds(now, h.loc)
	var done bool
	err := h.db.QueryRowx(
		fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE user_id=$1 AND created_at >= $2 AND created_at < $3)`, c.Table()),
		userID, start, end,
	).Scan(&done)
	return done, err
}

func (h *SurveyHandler) completionStatus(userID int, now time.Time) (map[survey.Category]bool, error) {
	status := make(map[survey.Category]bool, len(survey.Categories))
	for _, c := range survey.Categories {
		done, err := h.hasCompletedToday(userID, c, now)
		if err != nil {
			return nil, err
		}
		status[c] = done
	}
	return status, nil
}

// Questions godoc
// @Summary List a category's questions
// @Tags survey
// @Produce json
// @Param category query string true "general, mental or physical"
// @Success 200 {array} survey.Question
// @Router /survey/questions [get]
func (h *SurveyHandler) Questions(w http.ResponseWriter, r *http.Request) {
	cat, err := survey.ParseCategory(r.URL.Query().Get("category"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(survey.Questions(cat))
}

// Status godoc
// @Summary Today's completion status per category
// @Tags survey
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]bool
// @Router /survey/status [get]
func (h *SurveyHandler) Status(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int)
	status, err := h.completionStatus(userID, time.Now())
	if err != nil {
		http.Error(w, "could not check completion", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(status)
}

type submitRequest struct {
	SubmissionID string         `json:"submission_id"`
	Category     string         `json:"category"`
	Answers      map[string]int `json:"answers"`
}

type adviceResponse struct {
	Question string `json:"question"`
	Advice   string `json:"advice"`
	Section  string `json:"section"`
	Reason   string `json:"reason"`
}

type submitResponse struct {
	AverageScore      int             `json:"average_score"`
	CoinsEarned       int             `json:"coins_earned"`
	Advice            *adviceResponse `json:"advice"`
	CompletedAllToday bool            `json:"completed_all_today"`
	Duplicate         bool            `json:"duplicate,omitempty"`
}

// orderedAnswers flattens the wire map into the stable q1..qN order that
// feedback selection depends on.
func orderedAnswers(answers map[string]int) []survey.Answer {
	out := make([]survey.Answer, 0, len(answers))
	for id, score := range answers {
		out = append(out, survey.Answer{QuestionID: id, Score: score})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].QuestionID < out[j].QuestionID })
	return out
}

// Submit godoc
// @Summary Submit a survey
// @Description Records one answered survey, awards coins and returns targeted advice
// @Tags survey
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} submitResponse
// @Failure 400 {string} string "Validation error"
// @Failure 409 {string} string "Already submitted today"
// @Router /survey/submit [post]
func (h *SurveyHandler) Submit(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int)
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	cat, err := survey.ParseCategory(req.Category)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	answers := orderedAnswers(req.Answers)
	if err := survey.ValidateSubmission(cat, answers); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// The client sends a submission ID so a double-click cannot double-pay.
	subID := req.SubmissionID
	if subID == "" {
		subID = uuid.NewString()
	} else if _, err := uuid.Parse(subID); err != nil {
		http.Error(w, "invalid submission_id", http.StatusBadRequest)
		return
	}

	now := time.Now()
	avg := survey.AverageScore(answers)
	coins := survey.CoinsFor(avg)

	var dup bool
	if err := h.db.QueryRowx(
		fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE submission_id=$1)`, cat.Table()), subID,
	).Scan(&dup); err != nil {
		http.Error(w, "could not save survey", http.StatusInternalServerError)
		return
	}
	if dup {
		h.respond(w, userID, cat, answers, avg, coins, now, true)
		return
	}

	done, err := h.hasCompletedToday(userID, cat, now)
	if err != nil {
		http.Error(w, "could not check completion", http.StatusInternalServerError)
		return
	}
	if done {
		http.Error(w, "survey already submitted today", http.StatusConflict)
		return
	}

	// All rows plus the reward land in one transaction so a mid-failure
	// never leaves rows without coins or coins without rows.
	tx, err := h.db.Beginx()
	if err != nil {
		http.Error(w, "could not save survey", http.StatusInternalServerError)
		return
	}
	defer tx.Rollback()

	insert := fmt.Sprintf(`INSERT INTO %s (user_id, submission_id, question, score, created_at) VALUES ($1, $2, $3, $4, $5)`, cat.Table())
	for _, a := range answers {
		if _, err := tx.Exec(insert, userID, subID, a.QuestionID, a.Score, now); err != nil {
			http.Error(w, "could not save survey", http.StatusInternalServerError)
			return
		}
	}
	if _, err := tx.Exec(`UPDATE users SET coins = coins + $1, survey_count = survey_count + 1 WHERE id = $2`, coins, userID); err != nil {
		http.Error(w, "could not award coins", http.StatusInternalServerError)
		return
	}
	if err := tx.Commit(); err != nil {
		http.Error(w, "could not save survey", http.StatusInternalServerError)
		return
	}

	h.respond(w, userID, cat, answers, avg, coins, now, false)
}

func (h *SurveyHandler) respond(w http.ResponseWriter, userID int, cat survey.Category, answers []survey.Answer, avg, coins int, now time.Time, dup bool) {
	target := survey.SelectFeedbackTarget(answers)
	var advice *adviceResponse
	if text, ok := survey.AdviceFor(cat, target.QuestionID); ok {
		advice = &adviceResponse{
			Question: survey.QuestionText(cat, target.QuestionID),
			Advice:   text,
			Section:  string(cat),
			Reason:   string(target.Reason),
		}
	}

	completedAll := false
	if status, err := h.completionStatus(userID, now); err == nil {
		completedAll = status[survey.General] && status[survey.Mental] && status[survey.Physical]
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(submitResponse{
		AverageScore:      avg,
		CoinsEarned:       coins,
		Advice:            advice,
		CompletedAllToday: completedAll,
		Duplicate:         dup,
	})
}
