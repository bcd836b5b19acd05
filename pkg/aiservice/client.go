package aiservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client talks to the external interpretation service. The service does the
// actual natural-language analysis; this client only moves structured findings
// back and forth and treats every response field as opaque metadata.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new interpretation service client.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = "http://localhost:8000"
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// MissedMeeting is one meeting the service flagged as missed.
type MissedMeeting struct {
	Title     string   `json:"title"`
	Time      string   `json:"time"`
	Attendees []string `json:"attendees,omitempty"`
	Organizer string   `json:"organizer,omitempty"`
	Important bool     `json:"important"`
}

// PatternAnalysis is the response of the analyze-patterns endpoint.
type PatternAnalysis struct {
	MissedMeetings []MissedMeeting `json:"missed_meetings"`
}

// ProductivityReport is the response of the generate-insights endpoint.
type ProductivityReport struct {
	Score            int      `json:"score"`
	Summary          string   `json:"summary"`
	EmailsSent       int      `json:"emails_sent"`
	MeetingsAttended int      `json:"meetings_attended"`
	FocusTimeHours   float64  `json:"focus_time"`
	Achievements     []string `json:"achievements,omitempty"`
	Improvements     []string `json:"improvements,omitempty"`
}

// FocusSuggestion is one suggested focus block.
type FocusSuggestion struct {
	Duration float64 `json:"duration"`
	Time     string  `json:"time"`
	Reason   string  `json:"reason,omitempty"`
	Start    string  `json:"start,omitempty"`
	End      string  `json:"end,omitempty"`
}

// FocusAnalysis is the response of the suggest-focus-time endpoint.
type FocusAnalysis struct {
	Suggestions []FocusSuggestion `json:"suggestions"`
}

// AnalyzePatterns asks the service to scan a user's records for a pattern type
// (e.g. "missed_meetings") over a time range such as "24h".
func (c *Client) AnalyzePatterns(ctx context.Context, userID, analysisType, timeRange string) (*PatternAnalysis, error) {
	payload := map[string]string{
		"user_id":       userID,
		"analysis_type": analysisType,
		"time_range":    timeRange,
	}

	var result PatternAnalysis
	if err := c.post(ctx, "/analyze-patterns", payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GenerateInsights asks the service for a productivity score and summary.
func (c *Client) GenerateInsights(ctx context.Context, userID, timeRange string) (*ProductivityReport, error) {
	payload := map[string]string{
		"user_id":    userID,
		"time_range": timeRange,
	}

	var result ProductivityReport
	if err := c.post(ctx, "/generate-insights", payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SuggestFocusTime asks the service for focus blocks fitting the user's
// preferences. Preferences are forwarded as-is.
func (c *Client) SuggestFocusTime(ctx context.Context, userID string, preferences interface{}) (*FocusAnalysis, error) {
	payload := map[string]interface{}{
		"user_id":     userID,
		"preferences": preferences,
	}

	var result FocusAnalysis
	if err := c.post(ctx, "/suggest-focus-time", payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) post(ctx context.Context, path string, payload, result interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+path, bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("ai service request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ai service error (%d): %s", resp.StatusCode, string(respBody))
	}

	if err := json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}
