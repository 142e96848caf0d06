package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/claude/pitchlog/internal/models"
	"github.com/claude/pitchlog/internal/storage"
	"github.com/google/uuid"
)

// HTTPClient implements DataSource by calling the PitchLog REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but
// data lives on the remote server (accessed over Tailscale).
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// Compile-time check: HTTPClient satisfies DataSource.
var _ DataSource = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// get fetches a path; a nil body with no error signals a 404.
func (c *HTTPClient) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("httpclient: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, body)
	}

	return body, nil
}

func getJSON[T any](ctx context.Context, c *HTTPClient, path string, params url.Values) (T, error) {
	var out T
	body, err := c.get(ctx, path, params)
	if err != nil || body == nil {
		return out, err
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return out, fmt.Errorf("httpclient: decode %s: %w", path, err)
	}
	return out, nil
}

func (c *HTTPClient) ListExercises(ctx context.Context) ([]models.Exercise, error) {
	return getJSON[[]models.Exercise](ctx, c, "/api/v1/exercises", nil)
}

func (c *HTTPClient) ListWorkouts(ctx context.Context, userID int) ([]models.Workout, error) {
	return getJSON[[]models.Workout](ctx, c, "/api/v1/workouts", nil)
}

func (c *HTTPClient) GetWorkoutDetail(ctx context.Context, id uuid.UUID) (*models.WorkoutDetail, error) {
	return getJSON[*models.WorkoutDetail](ctx, c, "/api/v1/workouts/"+id.String(), nil)
}

func (c *HTTPClient) GetWorkoutByDay(ctx context.Context, userID int, dayOfWeek, mode string) (*models.Workout, error) {
	params := url.Values{"day": {dayOfWeek}, "mode": {mode}}
	detail, err := getJSON[*models.WorkoutDetail](ctx, c, "/api/v1/workouts/today", params)
	if err != nil || detail == nil {
		return nil, err
	}
	return &detail.Workout, nil
}

func (c *HTTPClient) ListSessions(ctx context.Context, userID int) ([]models.WorkoutSession, error) {
	return getJSON[[]models.WorkoutSession](ctx, c, "/api/v1/sessions", nil)
}

func (c *HTTPClient) GetSessionStats(ctx context.Context, userID int, now time.Time) (storage.SessionStats, error) {
	return getJSON[storage.SessionStats](ctx, c, "/api/v1/sessions/stats", nil)
}

func (c *HTTPClient) ListCheckIns(ctx context.Context, userID int) ([]models.CheckIn, error) {
	return getJSON[[]models.CheckIn](ctx, c, "/api/v1/check-ins", nil)
}
