package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/stockdeck/stockdeck/internal/config"
	"github.com/stockdeck/stockdeck/internal/session"
)

// Client talks to the inventory backend. Every request carries the bearer
// token from the session store, and nearly every path is scoped to the active
// organization.
type Client struct {
	httpClient *http.Client
	baseURL    string
	sessions   *session.Store
	debug      bool
}

// NewClient constructs a backend client with sane defaults.
func NewClient(cfg *config.UpstreamConfig, sessions *session.Store, env string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    cfg.BaseURL,
		sessions:   sessions,
		debug:      env == "development",
	}
}

// requireOrg returns the active organization id, or a 400 error envelope when
// none is resolvable. Operations short-circuit on it before touching the
// network.
func (c *Client) requireOrg(ctx context.Context) (string, *Envelope) {
	orgID := c.sessions.OrganizationID(ctx)
	if orgID == "" {
		return "", Error("no organization selected", http.StatusBadRequest)
	}
	return orgID, nil
}

// orgPath builds an organization-scoped API path.
func orgPath(orgID, suffix string) string {
	return fmt.Sprintf("/api/v1/organizations/%s/%s", orgID, suffix)
}

// do performs an HTTP request with JSON payloads and normalizes the response
// into an Envelope. It never returns an error: transport failures become
// status 500 envelopes, non-2xx responses keep their status code and a
// best-effort message.
func (c *Client) do(ctx context.Context, method, path string, body any) *Envelope {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return Error("failed to encode request", http.StatusInternalServerError)
		}
	}

	// Debug logging for development
	if c.debug {
		evt := log.Debug().Str("method", method).Str("path", path)
		if payload != nil {
			evt = evt.RawJSON("request", payload)
		}
		evt.Msg("[UPSTREAM] Outgoing request")
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return Error("failed to create request", http.StatusInternalServerError)
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.sessions.Token(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error().Err(err).Str("method", method).Str("path", path).Msg("upstream request failed")
		return Error("network error, please try again", http.StatusInternalServerError)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return Error("failed to read response", http.StatusInternalServerError)
	}

	if c.debug {
		evt := log.Debug().
			Str("path", path).
			Int("status_code", resp.StatusCode)
		// Non-JSON bodies (proxy error pages) would corrupt the log line.
		if json.Valid(respBody) {
			evt = evt.RawJSON("response", respBody)
		} else {
			evt = evt.Str("response", string(respBody))
		}
		evt.Msg("[UPSTREAM] Incoming response")
	}

	return normalize(resp.StatusCode, respBody)
}

// normalize decodes a response body into an Envelope, synthesizing one from
// the HTTP status when the body does not conform.
func normalize(httpStatus int, body []byte) *Envelope {
	env := &Envelope{}
	if len(body) > 0 {
		if err := json.Unmarshal(body, env); err != nil {
			env = &Envelope{}
		}
	}
	if env.StatusCode == 0 {
		env.StatusCode = httpStatus
	}
	if env.Status == "" {
		if httpStatus >= 200 && httpStatus < 300 {
			env.Status = StatusSuccess
		} else {
			env.Status = StatusError
		}
	}
	// A non-2xx transport status always wins over a body claiming success.
	if httpStatus < 200 || httpStatus >= 300 {
		env.Status = StatusError
		if env.Message == "" {
			env.Message = http.StatusText(httpStatus)
		}
	}
	return env
}

func (c *Client) get(ctx context.Context, path string) *Envelope {
	return c.do(ctx, http.MethodGet, path, nil)
}

func (c *Client) post(ctx context.Context, path string, body any) *Envelope {
	return c.do(ctx, http.MethodPost, path, body)
}

func (c *Client) patch(ctx context.Context, path string, body any) *Envelope {
	return c.do(ctx, http.MethodPatch, path, body)
}

func (c *Client) delete(ctx context.Context, path string) *Envelope {
	return c.do(ctx, http.MethodDelete, path, nil)
}
