package retention

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"

	"beebalanced/internal/survey"
)

// maxAge is how long survey responses are kept.
const maxAge = 3 // months

// Cutoff returns the instant before which survey rows are purged.
func Cutoff(now time.Time) time.Time {
	return now.AddDate(0, -maxAge, 0)
}

// Sweeper deletes survey responses older than the retention cutoff. The
// sweep is idempotent: a second run over the same data deletes nothing.
type Sweeper struct {
	db       *sqlx.DB
	interval time.Duration
}

func NewSweeper(db *sqlx.DB) *Sweeper {
	return &Sweeper{db: db, interval: 24 * time.Hour}
}

// Run sweeps once immediately and then once per interval until ctx is done.
// It runs independently of request traffic.
func (s *Sweeper) Run(ctx context.Context) {
	if _, err := s.SweepOnce(ctx); err != nil {
		slog.Error("retention sweep failed", slog.Any("err", err))
	}
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			deleted, err := s.SweepOnce(ctx)
			if err != nil {
				slog.Error("retention sweep failed", slog.Any("err", err))
				continue
			}
			if deleted > 0 {
				slog.Info("retention sweep", slog.Int64("deleted", deleted))
			}
		}
	}
}

// SweepOnce purges expired rows from all three survey tables and returns
// the number of rows deleted.
func (s *Sweeper) SweepOnce(ctx context.Context) (int64, error) {
	cutoff := Cutoff(time.Now())
	var total int64
	for _, cat := range survey.Categories {
		res, err := s.db.ExecContext(ctx,
			fmt.Sprintf(`DELETE FROM %s WHERE created_at < $1`, cat.Table()), cutoff)
		if err != nil {
			return total, err
		}
		n, _ := res.RowsAffected()
		total += n
	}
	return total, nil
}
