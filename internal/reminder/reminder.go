// Package reminder sends periodic check-in reminder emails through a Knock
// notification workflow. Reminders go out every third day, measured from a
// fixed anchor date, to every user who has not unsubscribed.
package reminder

import (
	"context"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
)

// interval is the number of days between reminder sends.
const interval = 3

// anchorDate fixes the phase of the every-third-day cycle.
var anchorDate = time.Date(2025, 4, 25, 0, 0, 0, 0, time.UTC)

// sendHour is the local hour of day reminders go out at.
const sendHour = 12

// Sender delivers one reminder. Satisfied by KnockClient.
type Sender interface {
	SendReminder(ctx context.Context, userID int, email, name string) error
}

// ShouldRemind reports whether today (a local calendar day) is a reminder
// day in the every-third-day cycle.
func ShouldRemind(today time.Time) bool {
	days := int(today.Truncate(24*time.Hour).Sub(anchorDate).Hours() / 24)
	if days < 0 {
		return false
	}
	return days%interval == 0
}

type recipient struct {
	ID       int    `db:"id"`
	Email    string `db:"email"`
	FullName string `db:"full_name"`
}

// Scheduler wakes at the configured hour each day and fans reminders out to
// subscribed users on reminder days.
type Scheduler struct {
	db     *sqlx.DB
	sender Sender
	loc    *time.Location
}

func NewScheduler(db *sqlx.DB, sender Sender, loc *time.Location) *Scheduler {
	return &Scheduler{db: db, sender: sender, loc: loc}
}

// nextSendTime returns the next occurrence of sendHour in the scheduler's
// timezone after now.
func (s *Scheduler) nextSendTime(now time.Time) time.Time {
	lt := now.In(s.loc)
	next := time.Date(lt.Year(), lt.Month(), lt.Day(), sendHour, 0, 0, 0, s.loc)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// Run blocks until ctx is done, sending reminders at the configured hour on
// reminder days.
func (s *Scheduler) Run(ctx context.Context) {
	for {
		wait := time.Until(s.nextSendTime(time.Now()))
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		today := time.Now().In(s.loc)
		day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
		if !ShouldRemind(day) {
			continue
		}
		if err := s.sendAll(ctx); err != nil {
			slog.Error("reminder run failed", slog.Any("err", err))
		}
	}
}

func (s *Scheduler) sendAll(ctx context.Context) error {
	var users []recipient
	if err := s.db.SelectContext(ctx, &users,
		`SELECT id, email, full_name FROM users WHERE unsubscribed = FALSE`); err != nil {
		return err
	}
	sent := 0
	for _, u := range users {
		if u.Email == "" {
			continue
		}
		if err := s.sender.SendReminder(ctx, u.ID, u.Email, u.FullName); err != nil {
			slog.Error("failed to send reminder", slog.String("email", u.Email), slog.Any("err", err))
			continue
		}
		sent++
	}
	slog.Info("reminders sent", slog.Int("count", sent))
	return nil
}
