// Package upstream is the HTTP client for the remote matchmaking API. It
// owns transport concerns only: authentication headers, timeouts, and
// outcome tagging. Response shapes belong to the normalizer.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	apperrors "github.com/shidduch-link/matchmaker-web/pkg/errors"
	"github.com/shidduch-link/matchmaker-web/pkg/httpclient"
	"github.com/shidduch-link/matchmaker-web/pkg/logger"
	"github.com/shidduch-link/matchmaker-web/pkg/metrics"
	"github.com/shidduch-link/matchmaker-web/pkg/tracing"
)

// Client issues calls against the matchmaking API. It performs no retries;
// handlers decide how to surface each outcome.
type Client struct {
	baseURL string
	http    httpclient.Doer
	timeout time.Duration
}

// NewClient creates an upstream API client. baseURL carries the API prefix,
// e.g. "http://localhost:5000/api".
func NewClient(baseURL string, doer httpclient.Doer, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    doer,
		timeout: timeout,
	}
}

type request struct {
	operation string
	method    string
	path      string
	query     url.Values
	token     string // bearer credential; empty for public calls
	jsonBody  any
	rawBody   io.Reader
	rawType   string
}

// do executes one upstream call and tags the outcome. Connection failures
// and timeouts become Unreachable; non-2xx responses become Rejected with a
// best-effort message; everything else is Success with the raw body.
func (c *Client) do(ctx context.Context, r request) Result {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	ctx, span := tracing.StartSpan(ctx, "upstream."+r.operation)
	defer span.End()

	target := c.baseURL + r.path
	if len(r.query) > 0 {
		target += "?" + r.query.Encode()
	}

	var body io.Reader
	contentType := ""
	if r.jsonBody != nil {
		encoded, err := json.Marshal(r.jsonBody)
		if err != nil {
			return c.unreachable(r.operation, start, span, fmt.Errorf("encode request: %w", err))
		}
		body = bytes.NewReader(encoded)
		contentType = "application/json"
	} else if r.rawBody != nil {
		body = r.rawBody
		contentType = r.rawType
	}

	req, err := http.NewRequestWithContext(ctx, r.method, target, body)
	if err != nil {
		return c.unreachable(r.operation, start, span, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return c.unreachable(r.operation, start, span, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.unreachable(r.operation, start, span, err)
	}

	result := Result{StatusCode: resp.StatusCode}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		result.Outcome = OutcomeSuccess
		result.Body = respBody
	} else {
		result.Outcome = OutcomeRejected
		result.Message = extractMessage(respBody)
		span.SetStatus(codes.Error, fmt.Sprintf("upstream status %d", resp.StatusCode))
	}

	c.record(r.operation, result.Outcome, start,
		zap.Int("status_code", resp.StatusCode))
	return result
}

func (c *Client) unreachable(operation string, start time.Time, span trace.Span, err error) Result {
	span.SetStatus(codes.Error, err.Error())
	c.record(operation, OutcomeUnreachable, start, zap.Error(err))
	return Result{Outcome: OutcomeUnreachable, Err: apperrors.UnreachableError(operation, err)}
}

func (c *Client) record(operation string, outcome Outcome, start time.Time, fields ...zap.Field) {
	duration := metrics.MeasureDuration(start)
	label := outcomeLabel(outcome)

	metrics.UpstreamRequestDuration.WithLabelValues(operation, label).Observe(duration)
	metrics.UpstreamRequestTotal.WithLabelValues(operation, label).Inc()

	status := "success"
	if outcome == OutcomeUnreachable {
		status = "error"
	}
	logger.LogAPICall(operation, status, duration, fields...)
}

// --- Authentication ---

// Authenticate exchanges credentials for a matchmaker record and bearer
// token. Public call.
func (c *Client) Authenticate(ctx context.Context, email, password string) Result {
	return c.do(ctx, request{
		operation: "authenticate",
		method:    http.MethodPost,
		path:      "/auth/login",
		jsonBody:  map[string]string{"email": email, "password": password},
	})
}

// Register creates a new matchmaker account. Public call; the upstream
// responds 201 on success.
func (c *Client) Register(ctx context.Context, email, password, name string) Result {
	return c.do(ctx, request{
		operation: "register",
		method:    http.MethodPost,
		path:      "/auth/register",
		jsonBody:  map[string]string{"email": email, "password": password, "name": name},
	})
}

// ResetPassword initiates a credential reset. Public call.
func (c *Client) ResetPassword(ctx context.Context, email string) Result {
	return c.do(ctx, request{
		operation: "resetPassword",
		method:    http.MethodPost,
		path:      "/auth/reset-password",
		jsonBody:  map[string]string{"email": email},
	})
}

// --- Matchmaker resources ---

// MatchmakerStats fetches the dashboard counters for the authenticated
// matchmaker.
func (c *Client) MatchmakerStats(ctx context.Context, token string) Result {
	return c.do(ctx, request{
		operation: "matchmakerStats",
		method:    http.MethodGet,
		path:      "/matchmaker/stats",
		token:     token,
	})
}

// ListMatchmakers fetches the public matchmaker directory. Public call.
func (c *Client) ListMatchmakers(ctx context.Context) Result {
	return c.do(ctx, request{
		operation: "listMatchmakers",
		method:    http.MethodGet,
		path:      "/matchmaker",
	})
}

// GetProfile fetches the authenticated matchmaker's own profile.
func (c *Client) GetProfile(ctx context.Context, token string) Result {
	return c.do(ctx, request{
		operation: "getProfile",
		method:    http.MethodGet,
		path:      "/matchmaker/profile",
		token:     token,
	})
}

// UpdateProfile updates the authenticated matchmaker's own profile.
func (c *Client) UpdateProfile(ctx context.Context, token string, profile any) Result {
	return c.do(ctx, request{
		operation: "updateProfile",
		method:    http.MethodPut,
		path:      "/matchmaker/profile",
		token:     token,
		jsonBody:  profile,
	})
}

// SetProfilePicture forwards a stored picture URL to the upstream API as
// profile data.
func (c *Client) SetProfilePicture(ctx context.Context, token, pictureURL string) Result {
	return c.do(ctx, request{
		operation: "setProfilePicture",
		method:    http.MethodPut,
		path:      "/matchmaker/profile",
		token:     token,
		jsonBody:  map[string]string{"picture_url": pictureURL},
	})
}

// --- User resources ---

// ListUsers fetches all users belonging to the authenticated matchmaker.
func (c *Client) ListUsers(ctx context.Context, token string) Result {
	return c.do(ctx, request{
		operation: "listUsers",
		method:    http.MethodGet,
		path:      "/matchmaker/users",
		token:     token,
	})
}

// GetUser fetches one user profile.
func (c *Client) GetUser(ctx context.Context, token string, userID int) Result {
	return c.do(ctx, request{
		operation: "getUser",
		method:    http.MethodGet,
		path:      fmt.Sprintf("/user/%d", userID),
		token:     token,
	})
}

// CreateUser creates a user profile; the upstream responds 201 on success.
func (c *Client) CreateUser(ctx context.Context, token string, profile any) Result {
	return c.do(ctx, request{
		operation: "createUser",
		method:    http.MethodPost,
		path:      "/user",
		token:     token,
		jsonBody:  profile,
	})
}

// UpdateUser updates a user profile.
func (c *Client) UpdateUser(ctx context.Context, token string, userID int, profile any) Result {
	return c.do(ctx, request{
		operation: "updateUser",
		method:    http.MethodPut,
		path:      fmt.Sprintf("/user/%d", userID),
		token:     token,
		jsonBody:  profile,
	})
}

// --- Match resources ---

// ListMatches fetches all matches for the matchmaker's users.
func (c *Client) ListMatches(ctx context.Context, token string, limit int) Result {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	return c.do(ctx, request{
		operation: "listMatches",
		method:    http.MethodGet,
		path:      "/matchmaker/matches",
		query:     q,
		token:     token,
	})
}

// ListUserMatches fetches matches for one user.
func (c *Client) ListUserMatches(ctx context.Context, token string, userID, limit int) Result {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	return c.do(ctx, request{
		operation: "listUserMatches",
		method:    http.MethodGet,
		path:      fmt.Sprintf("/user/%d/matches", userID),
		query:     q,
		token:     token,
	})
}

// GetCompatibility fetches the detailed compatibility between two users.
func (c *Client) GetCompatibility(ctx context.Context, token string, userAID, userBID int) Result {
	return c.do(ctx, request{
		operation: "getCompatibility",
		method:    http.MethodGet,
		path:      fmt.Sprintf("/matches/compatibility/%d/%d", userAID, userBID),
		token:     token,
	})
}

// ListAllMatches fetches top matches across the whole system. The upstream
// rejects with 403 unless the matchmaker has admin privileges; that
// authorization model belongs to the upstream.
func (c *Client) ListAllMatches(ctx context.Context, token string, limitPerMatch, minScore int) Result {
	q := url.Values{}
	q.Set("limit_per_match", strconv.Itoa(limitPerMatch))
	q.Set("min_score", strconv.Itoa(minScore))
	return c.do(ctx, request{
		operation: "listAllMatches",
		method:    http.MethodGet,
		path:      "/matches/all",
		query:     q,
		token:     token,
	})
}

// --- Applications ---

// Picture is an optional file attachment on an application.
type Picture struct {
	FileName    string
	ContentType string
	Data        []byte
}

// SubmitApplication sends the public applicant form upstream as multipart
// form data with an optional picture attachment. Public call; the upstream
// responds 201 on success.
func (c *Client) SubmitApplication(ctx context.Context, matchmakerID int, fields map[string]string, picture *Picture) Result {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return Result{Outcome: OutcomeUnreachable, Err: apperrors.UnreachableError("submitApplication", err)}
		}
	}

	if picture != nil {
		part, err := writer.CreateFormFile("picture", picture.FileName)
		if err != nil {
			return Result{Outcome: OutcomeUnreachable, Err: apperrors.UnreachableError("submitApplication", err)}
		}
		if _, err := part.Write(picture.Data); err != nil {
			return Result{Outcome: OutcomeUnreachable, Err: apperrors.UnreachableError("submitApplication", err)}
		}
	}

	if err := writer.Close(); err != nil {
		return Result{Outcome: OutcomeUnreachable, Err: apperrors.UnreachableError("submitApplication", err)}
	}

	return c.do(ctx, request{
		operation: "submitApplication",
		method:    http.MethodPost,
		path:      fmt.Sprintf("/applicants/apply/%d", matchmakerID),
		rawBody:   &buf,
		rawType:   writer.FormDataContentType(),
	})
}
