// Package client talks to the notes API on behalf of a single user. The
// session token is kept in a TokenStore and checked locally before every
// protected call.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ahsanfayaz52/notesapi/internal/models"
	"github.com/ahsanfayaz52/notesapi/internal/services"
)

// APIError is a non-2xx response from the server.
type APIError struct {
	Status int
	Msg    string
}

func (e *APIError) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("server returned %d", e.Status)
	}
	return e.Msg
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenStore
	guard   *SessionGuard
	now     func() time.Time
}

// New returns a client for the API mounted at baseURL, for example
// http://localhost:5000/api.
func New(baseURL string, tokens TokenStore, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
		tokens:  tokens,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.guard = NewSessionGuard(tokens, c.now)
	return c
}

func (c *Client) Register(ctx context.Context, in services.RegisterInput) (*services.AuthResult, error) {
	var res services.AuthResult
	if err := c.do(ctx, http.MethodPost, "/auth/register", "", in, &res); err != nil {
		return nil, err
	}
	if err := c.tokens.SetToken(res.Token); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) Login(ctx context.Context, in services.LoginInput) (*services.AuthResult, error) {
	var res services.AuthResult
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", in, &res); err != nil {
		return nil, err
	}
	if err := c.tokens.SetToken(res.Token); err != nil {
		return nil, err
	}
	return &res, nil
}

// Logout only forgets the token. Tokens are not revoked server side.
func (c *Client) Logout() error {
	return c.tokens.Clear()
}

func (c *Client) Profile(ctx context.Context) (*models.PublicUser, error) {
	var user models.PublicUser
	if err := c.authed(ctx, http.MethodGet, "/profile", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) UpdateProfile(ctx context.Context, in services.ProfileInput) (*models.PublicUser, error) {
	var user models.PublicUser
	if err := c.authed(ctx, http.MethodPut, "/profile", in, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) ListNotes(ctx context.Context) ([]models.Note, error) {
	var notes []models.Note
	if err := c.authed(ctx, http.MethodGet, "/notes", nil, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// SearchNotes falls back to ListNotes for an empty term.
func (c *Client) SearchNotes(ctx context.Context, term string) ([]models.Note, error) {
	if term == "" {
		return c.ListNotes(ctx)
	}
	// The term goes in the query string; in a path segment "/" and ".."
	// would be rewritten by the server's router.
	var notes []models.Note
	if err := c.authed(ctx, http.MethodGet, "/notes?"+url.Values{"q": {term}}.Encode(), nil, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

func (c *Client) GetNote(ctx context.Context, id string) (*models.Note, error) {
	var note models.Note
	if err := c.authed(ctx, http.MethodGet, "/notes/"+url.PathEscape(id), nil, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

func (c *Client) CreateNote(ctx context.Context, in services.NoteInput) (*models.Note, error) {
	var note models.Note
	if err := c.authed(ctx, http.MethodPost, "/notes", in, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

func (c *Client) UpdateNote(ctx context.Context, id string, in services.NoteInput) (*models.Note, error) {
	var note models.Note
	if err := c.authed(ctx, http.MethodPut, "/notes/"+url.PathEscape(id), in, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

func (c *Client) DeleteNote(ctx context.Context, id string) error {
	return c.authed(ctx, http.MethodDelete, "/notes/"+url.PathEscape(id), nil, nil)
}

func (c *Client) authed(ctx context.Context, method, path string, body, out any) error {
	token, err := c.guard.Check()
	if err != nil {
		return err
	}
	err = c.do(ctx, method, path, token, body, out)

	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
		if clearErr := c.tokens.Clear(); clearErr != nil {
			return clearErr
		}
		return fmt.Errorf("%w: %s", ErrNoSession, apiErr.Msg)
	}
	return err
}

func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{Status: resp.StatusCode}
		var payload struct {
			Msg string `json:"msg"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil {
			apiErr.Msg = payload.Msg
		}
		return apiErr
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
