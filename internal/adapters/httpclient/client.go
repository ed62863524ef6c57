package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/oapi-codegen/nullable"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/Mergington-High/activity-signup-client/internal/domain"
	activityapiport "github.com/Mergington-High/activity-signup-client/internal/ports/out/activityapi"
)

// Client talks to the activity service over HTTP. It implements
// activityapi.Client. No retries and no request-level timeouts are applied
// beyond the underlying http.Client's; every failure is terminal for that
// attempt.
type Client struct {
	baseURL string
	http    *http.Client

	// legacyQueryParams selects the deprecated request shape for mutations:
	// email in the query string, no body, no bearer header. New deployments
	// use the bearer + JSON-body variant.
	legacyQueryParams bool
}

type Options struct {
	// HTTPClient overrides the default client (used by tests).
	HTTPClient *http.Client

	// Timeout applies when HTTPClient is nil.
	Timeout time.Duration

	LegacyQueryParams bool
}

func New(baseURL string, opts Options) *Client {
	hc := opts.HTTPClient
	if hc == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		hc = &http.Client{Timeout: timeout}
	}
	return &Client{
		baseURL:           strings.TrimRight(baseURL, "/"),
		http:              hc,
		legacyQueryParams: opts.LegacyQueryParams,
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

type createUserRequest struct {
	Email    openapi_types.Email `json:"email"`
	Password string              `json:"password"`
}

type registrationRequest struct {
	Email openapi_types.Email `json:"email"`
}

type messageResponse struct {
	Message nullable.Nullable[string] `json:"message"`
}

type errorResponse struct {
	Detail nullable.Nullable[string] `json:"detail"`
}

func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	form := url.Values{
		"username": {username},
		"password": {password},
	}
	req, err := c.newRequest(ctx, http.MethodPost, "/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("login request: %w", err)
	}
	defer resp.Body.Close()

	if !is2xx(resp.StatusCode) {
		return "", serviceError(resp)
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}
	if tr.AccessToken == "" {
		return "", fmt.Errorf("token response missing access_token")
	}
	return tr.AccessToken, nil
}

func (c *Client) CreateUser(ctx context.Context, email, password string) error {
	body, err := json.Marshal(createUserRequest{
		Email:    openapi_types.Email(email),
		Password: password,
	})
	if err != nil {
		return fmt.Errorf("encode create user request: %w", err)
	}
	req, err := c.newRequest(ctx, http.MethodPost, "/users/", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("create user request: %w", err)
	}
	defer resp.Body.Close()

	if !is2xx(resp.StatusCode) {
		return serviceError(resp)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func (c *Client) ListActivities(ctx context.Context, token string) (domain.Catalog, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/activities", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("list activities request: %w", err)
	}
	defer resp.Body.Close()

	if !is2xx(resp.StatusCode) {
		return nil, serviceError(resp)
	}

	cat, err := decodeCatalog(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("decode activities: %w", err)
	}
	return cat, nil
}

func (c *Client) Signup(ctx context.Context, token string, name domain.ActivityName, email string) (string, error) {
	return c.mutate(ctx, http.MethodPost, "signup", token, name, email)
}

func (c *Client) Unregister(ctx context.Context, token string, name domain.ActivityName, email string) (string, error) {
	return c.mutate(ctx, http.MethodDelete, "unregister", token, name, email)
}

func (c *Client) mutate(ctx context.Context, method, op string, token string, name domain.ActivityName, email string) (string, error) {
	path := "/activities/" + url.PathEscape(string(name)) + "/" + op

	var body io.Reader
	if c.legacyQueryParams {
		path += "?email=" + url.QueryEscape(email)
	} else {
		b, err := json.Marshal(registrationRequest{Email: openapi_types.Email(email)})
		if err != nil {
			return "", fmt.Errorf("encode %s request: %w", op, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return "", err
	}
	if !c.legacyQueryParams {
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%s request: %w", op, err)
	}
	defer resp.Body.Close()

	if !is2xx(resp.StatusCode) {
		return "", serviceError(resp)
	}

	// The success message is optional; an empty or unparseable body just
	// falls back to the client's generic text.
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	var mr messageResponse
	if err := json.Unmarshal(raw, &mr); err != nil {
		return "", nil
	}
	if mr.Message.IsSpecified() && !mr.Message.IsNull() {
		msg, _ := mr.Message.Get()
		return msg, nil
	}
	return "", nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("X-Client-Request-Id", uuid.NewString())
	return req, nil
}

// decodeCatalog reads the activities object with the json.Decoder token API
// so the server's key order survives into the catalog (a plain map would
// shuffle it).
func decodeCatalog(r io.Reader) (domain.Catalog, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("expected a JSON object, got %v", tok)
	}

	type activityBody struct {
		Description     string   `json:"description"`
		Schedule        string   `json:"schedule"`
		MaxParticipants int      `json:"max_participants"`
		Participants    []string `json:"participants"`
	}

	var cat domain.Catalog
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		name, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("expected an activity name, got %v", keyTok)
		}

		var body activityBody
		if err := dec.Decode(&body); err != nil {
			return nil, fmt.Errorf("activity %q: %w", name, err)
		}

		participants := make([]domain.SubjectID, 0, len(body.Participants))
		for _, p := range body.Participants {
			participants = append(participants, domain.SubjectID(p))
		}
		cat = append(cat, domain.Activity{
			Name:            domain.ActivityName(name),
			Description:     body.Description,
			Schedule:        body.Schedule,
			MaxParticipants: body.MaxParticipants,
			Participants:    participants,
		})
	}
	return cat, nil
}

// serviceError decodes the optional `detail` text from a non-2xx response.
func serviceError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))

	detail := ""
	var er errorResponse
	if err := json.Unmarshal(raw, &er); err == nil && er.Detail.IsSpecified() && !er.Detail.IsNull() {
		detail, _ = er.Detail.Get()
	}
	return &activityapiport.Error{Status: resp.StatusCode, Detail: detail}
}

func is2xx(status int) bool {
	return status >= 200 && status < 300
}
