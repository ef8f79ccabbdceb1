package models

import "time"

type User struct {
	ID           int       `db:"id" json:"id"`
	FullName     string    `db:"full_name" json:"full_name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Age          *int      `db:"age" json:"age,omitempty"`
	Gender       string    `db:"gender" json:"gender"`
	Country      *string   `db:"country" json:"country,omitempty"`
	Coins        int       `db:"coins" json:"coins"`
	SurveyCount  int       `db:"survey_count" json:"survey_count"`
	Unsubscribed bool      `db:"unsubscribed" json:"unsubscribed"`
	IsAdmin      bool      `db:"is_admin" json:"is_admin"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// Flower is a shop catalog entry purchasable with coins.
type Flower struct {
	ID   int    `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
	Cost int    `db:"cost" json:"cost"`
}
