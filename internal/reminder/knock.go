package reminder

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

const knockAPIBase = "https://api.knock.app/v1"

// workflowKey is the Knock workflow triggered for check-in reminders.
const workflowKey = "reminder"

// KnockClient triggers Knock notification workflows over HTTP.
type KnockClient struct {
	apiKey  string
	baseURL string
	httpc   *http.Client
}

func NewKnockClient(apiKey string) *KnockClient {
	return &KnockClient{
		apiKey:  apiKey,
		baseURL: knockAPIBase,
		httpc:   &http.Client{Timeout: 10 * time.Second},
	}
}

type knockRecipient struct {
	ID      string         `json:"id"`
	Email   string         `json:"email"`
	Profile map[string]any `json:"profile,omitempty"`
}

type knockTrigger struct {
	Recipients []knockRecipient `json:"recipients"`
	Data       map[string]any   `json:"data"`
}

// SendReminder triggers the reminder workflow for a single user.
func (c *KnockClient) SendReminder(ctx context.Context, userID int, email, name string) error {
	id := strconv.Itoa(userID)
	payload := knockTrigger{
		Recipients: []knockRecipient{{
			ID:      id,
			Email:   email,
			Profile: map[string]any{"user_id": id},
		}},
		Data: map[string]any{
			"subject":         "Bee Balanced Reminder",
			"body":            "This is your Bee Balanced check-in reminder!",
			"date":            time.Now().Format("2006-01-02"),
			"name":            name,
			"unsubscribe_url": fmt.Sprintf("beebalancedhealth.com/unsubscribe?userId=%s", id),
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf("%s/workflows/%s/trigger", c.baseURL, workflowKey), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("knock trigger returned %s", resp.Status)
	}
	return nil
}
