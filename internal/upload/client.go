package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Result reports what the server did with an uploaded schedule. It mirrors
// the server's response shape so the uploader does not import server-side
// packages.
type Result struct {
	WorkoutsCreated  int      `json:"workouts_created"`
	BlocksCreated    int      `json:"blocks_created"`
	ExercisesCreated int      `json:"exercises_created"`
	NewExerciseNames []string `json:"new_exercise_names,omitempty"`
}

// FormatError is returned when the server rejects a schedule because it could
// not parse any workout blocks out of the text. It is not retryable.
type FormatError struct {
	Message string
	Hint    string
}

func (e *FormatError) Error() string {
	if e.Hint != "" {
		return e.Message + ": " + e.Hint
	}
	return e.Message
}

// Client uploads schedule text to a PitchLog server.
type Client struct {
	serverURL  string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a client for the given server URL and API key.
func NewClient(serverURL, apiKey string) *Client {
	return &Client{
		serverURL: strings.TrimRight(serverURL, "/"),
		apiKey:    apiKey,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

const maxAttempts = 3

// SendSchedule posts a week schedule to the server, retrying transient
// failures with exponential backoff. A format rejection (the server parsed
// zero blocks) is returned immediately as a *FormatError.
func (c *Client) SendSchedule(ctx context.Context, text, mode string, overwrite bool) (*Result, error) {
	body, err := json.Marshal(map[string]any{
		"text":      text,
		"mode":      mode,
		"overwrite": overwrite,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-time.After(time.Duration(1<<uint(attempt-1)) * time.Second):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		result, retryable, err := c.send(ctx, body)
		if err == nil {
			return result, nil
		}
		if !retryable {
			return nil, err
		}
		lastErr = err
	}
	return nil, fmt.Errorf("upload failed after %d attempts: %w", maxAttempts, lastErr)
}

func (c *Client) send(ctx context.Context, body []byte) (*Result, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.serverURL+"/api/v1/schedule", bytes.NewReader(body))
	if err != nil {
		return nil, false, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		var result Result
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			return nil, false, fmt.Errorf("decoding response: %w", err)
		}
		return &result, false, nil
	case resp.StatusCode == http.StatusUnprocessableEntity:
		var reject struct {
			Error string `json:"error"`
			Hint  string `json:"hint"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&reject); err != nil {
			return nil, false, &FormatError{Message: "server rejected schedule format"}
		}
		return nil, false, &FormatError{Message: reject.Error, Hint: reject.Hint}
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, false, fmt.Errorf("server rejected API key (status %d)", resp.StatusCode)
	default:
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, resp.StatusCode >= 500, fmt.Errorf("server returned %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}
}
