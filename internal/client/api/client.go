// Package api is the configured HTTP client for the PropertyBusStop backend
// plus the named operations built on it. Two transport interceptors are
// installed at construction: the outbound one attaches the bearer credential
// read from the durable session store at send time, the inbound one evicts
// the session and redirects to sign-in on any 401.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julzedz/pbs-frontend/internal/client/nav"
	"github.com/julzedz/pbs-frontend/internal/client/session"
)

// Client targets one backend origin. Construct with New.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *log.Logger
}

// New builds a client bound to baseURL. Both interceptors are installed
// here: auth attaches the header before dispatch, the 401 watcher runs on
// the way back, before the caller's error path.
func New(baseURL string, store *session.Store, navigator nav.Navigator, logger *log.Logger) *Client {
	if navigator == nil {
		navigator = nav.Nop
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	transport := &unauthorizedWatcher{
		store:     store,
		navigator: navigator,
		logger:    logger,
		next: &authAttacher{
			store: store,
			next:  http.DefaultTransport,
		},
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Transport: transport,
			Timeout:   30 * time.Second,
		},
		logger: logger,
	}
}

// authAttacher sets Accept, a request id, and the Authorization header. The
// credential is read from the durable store on every firing, never captured,
// so another process's sign-out wins. Parse failures attach nothing.
type authAttacher struct {
	store *session.Store
	next  http.RoundTripper
}

func (t *authAttacher) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	r.Header.Set("Accept", "application/json")
	r.Header.Set("X-Request-Id", uuid.NewString())
	if tok := t.store.Token(); tok != "" {
		r.Header.Set("Authorization", "Bearer "+tok)
	}
	return t.next.RoundTrip(r)
}

// unauthorizedWatcher handles AuthExpired centrally: evict the session,
// navigate to sign-in, and let the response flow on so the caller's error
// path still runs.
type unauthorizedWatcher struct {
	store     *session.Store
	navigator nav.Navigator
	logger    *log.Logger
	next      http.RoundTripper
}

func (t *unauthorizedWatcher) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.next.RoundTrip(req)
	if err == nil && resp.StatusCode == http.StatusUnauthorized {
		t.logger.Printf("401 from %s %s, evicting session", req.Method, req.URL.Path)
		t.store.Logout()
		t.navigator.To(nav.SignIn)
	}
	return resp, err
}

// send issues the request and maps failures onto the Error taxonomy. On 2xx
// the response is returned with its body open; the caller must close it.
func (c *Client) send(ctx context.Context, method, path string, contentType string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, &Error{Err: err}
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &Error{Err: err}
	}
	if resp.StatusCode >= 300 {
		defer resp.Body.Close()
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		return nil, errorFromResponse(resp.StatusCode, b)
	}
	return resp, nil
}

// getJSON fetches path and decodes the body into out.
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	resp, err := c.send(ctx, http.MethodGet, path, "", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return decodeBody(resp.Body, out)
}

// sendJSON marshals in, issues method path, and decodes into out when
// non-nil. Returns the response headers for callers that need them.
func (c *Client) sendJSON(ctx context.Context, method, path string, in, out any) (http.Header, error) {
	b, err := json.Marshal(in)
	if err != nil {
		return nil, &Error{Err: err}
	}
	resp, err := c.send(ctx, method, path, "application/json", bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	return resp.Header, decodeBody(resp.Body, out)
}

func decodeBody(r io.Reader, out any) error {
	if out == nil {
		_, _ = io.Copy(io.Discard, r)
		return nil
	}
	if err := json.NewDecoder(r).Decode(out); err != nil && err != io.EOF {
		return &Error{Err: err}
	}
	return nil
}
