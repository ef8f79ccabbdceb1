package reminder

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestShouldRemindEveryThirdDay(t *testing.T) {
	cases := []struct {
		today time.Time
		want  bool
	}{
		{day(2025, 4, 25), true},  // anchor day
		{day(2025, 4, 26), false},
		{day(2025, 4, 27), false},
		{day(2025, 4, 28), true},
		{day(2025, 5, 1), true},
		{day(2025, 4, 24), false}, // before the anchor
	}
	for _, c := range cases {
		if got := ShouldRemind(c.today); got != c.want {
			t.Fatalf("ShouldRemind(%s)=%v, want %v", c.today.Format("2006-01-02"), got, c.want)
		}
	}
}

func TestSchedulerNextSendTime(t *testing.T) {
	loc := time.FixedZone("EST", -5*60*60)
	s := &Scheduler{loc: loc}

	morning := time.Date(2025, 6, 18, 9, 0, 0, 0, loc)
	next := s.nextSendTime(morning)
	require.Equal(t, time.Date(2025, 6, 18, 12, 0, 0, 0, loc), next)

	afternoon := time.Date(2025, 6, 18, 13, 0, 0, 0, loc)
	next = s.nextSendTime(afternoon)
	require.Equal(t, time.Date(2025, 6, 19, 12, 0, 0, 0, loc), next)
}

func TestKnockClientSendReminder(t *testing.T) {
	var got knockTrigger
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		require.Equal(t, "/workflows/reminder/trigger", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewKnockClient("test-key")
	c.baseURL = srv.URL

	err := c.SendReminder(context.Background(), 42, "bee@example.com", "Bee User")
	require.NoError(t, err)
	require.Equal(t, "Bearer test-key", auth)
	require.Len(t, got.Recipients, 1)
	require.Equal(t, "42", got.Recipients[0].ID)
	require.Equal(t, "bee@example.com", got.Recipients[0].Email)
	require.Equal(t, "Bee User", got.Data["name"])
}

func TestKnockClientSurfacesHTTPErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewKnockClient("bad-key")
	c.baseURL = srv.URL
	require.Error(t, c.SendReminder(context.Background(), 1, "a@b.c", "A"))
}
