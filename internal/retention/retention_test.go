package retention

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCutoff(t *testing.T) {
	now := time.Date(2025, 6, 18, 12, 0, 0, 0, time.UTC)
	cutoff := Cutoff(now)
	require.Equal(t, time.Date(2025, 3, 18, 12, 0, 0, 0, time.UTC), cutoff)

	// A row written just inside the window survives, one just outside does not.
	kept := now.AddDate(0, -3, 1)
	purged := now.AddDate(0, -3, -1)
	require.True(t, kept.After(cutoff))
	require.True(t, purged.Before(cutoff))
}
