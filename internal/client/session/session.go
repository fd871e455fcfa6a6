// Package session owns the authentication state of the client: the bearer
// token, the authenticated flag, and the remembered credentials used to
// regenerate them.
//
// The token is only ever written through SetToken, which updates the
// session and the transport together, so the two cannot disagree.
package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/assettrack/internal/client/credentials"
	"github.com/dmitrijs2005/assettrack/internal/client/metrics"
	"github.com/dmitrijs2005/assettrack/internal/client/result"
	"github.com/dmitrijs2005/assettrack/internal/client/transport"
	"github.com/dmitrijs2005/assettrack/internal/common"
	"github.com/dmitrijs2005/assettrack/internal/logging"
	"github.com/golang-jwt/jwt/v5"
)

// State is where the session is in its lifecycle.
type State int

const (
	Anonymous State = iota
	Authenticating
	Authenticated
)

func (s State) String() string {
	switch s {
	case Anonymous:
		return "anonymous"
	case Authenticating:
		return "authenticating"
	case Authenticated:
		return "authenticated"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Transport is the part of transport.Client the session needs.
type Transport interface {
	Post(ctx context.Context, path string, body any) *transport.RawResponse
	SetAuthToken(token string)
}

type Option func(*Manager)

func WithMetrics(r *metrics.Recorder) Option {
	return func(m *Manager) { m.metrics = r }
}

// WithClock replaces time.Now for expiry checks.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// Manager is not safe for concurrent use; callers run one operation at a time.
type Manager struct {
	transport Transport
	creds     credentials.Store
	log       logging.Logger
	metrics   *metrics.Recorder
	now       func() time.Time

	token         string
	expiresAt     time.Time
	authenticated bool
	state         State
}

func NewManager(t Transport, creds credentials.Store, log logging.Logger, opts ...Option) *Manager {
	m := &Manager{
		transport: t,
		creds:     creds,
		log:       log.With("component", "session"),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

type tokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	Token       string `json:"token"`
}

// Token returns the held token and whether there is one.
func (m *Manager) Token() (string, bool) {
	return m.token, m.token != ""
}

// SetToken stores token and pushes it to the transport. An empty token
// clears the session, authenticated flag included.
func (m *Manager) SetToken(token string) {
	m.token = token
	m.expiresAt = tokenExpiry(token)
	m.transport.SetAuthToken(token)
	if token == "" {
		m.SetAuthenticated(false)
	}
}

// SetAuthenticated flips the flag. It cannot be raised without a token.
func (m *Manager) SetAuthenticated(v bool) {
	m.authenticated = v && m.token != ""
	if m.authenticated {
		m.state = Authenticated
	} else {
		m.state = Anonymous
	}
}

func (m *Manager) Authenticated() bool {
	return m.authenticated
}

func (m *Manager) State() State {
	return m.state
}

// ExpiresAt reports the token expiry when the token is a JWT carrying exp.
func (m *Manager) ExpiresAt() (time.Time, bool) {
	return m.expiresAt, !m.expiresAt.IsZero()
}

// Login exchanges username and password for a token. On success the token
// is set on the session and the transport and, if remember is set, the pair
// is saved. Any failure leaves the session anonymous with no token.
func (m *Manager) Login(ctx context.Context, username, password string, remember bool) (ok bool) {
	outcome := result.BadData
	defer func() { m.metrics.Observe(metrics.OpLogin, outcome) }()
	defer func() {
		if r := recover(); r != nil {
			m.log.Error(ctx, "login aborted", "user", username, "panic", r)
			outcome = result.BadData
			m.SetToken("")
			ok = false
		}
	}()

	m.state = Authenticating

	resp := m.transport.Post(ctx, common.TokenPath, tokenRequest{Username: username, Password: password})
	outcome = result.FromResponse(resp)
	if outcome != result.OK {
		m.log.Warn(ctx, "login failed", "user", username, "outcome", outcome.String())
		m.SetToken("")
		return false
	}

	token, err := parseToken(resp.Body)
	if err != nil {
		outcome = result.BadData
		m.log.Warn(ctx, "login response unusable", "user", username, "error", err)
		m.SetToken("")
		return false
	}

	m.SetToken(token)
	m.SetAuthenticated(true)
	m.log.Info(ctx, "logged in", "user", username, "remember", remember)

	if remember {
		if err := m.creds.Save(ctx, username, password); err != nil {
			m.log.Warn(ctx, "could not remember credentials", "error", err)
		}
	}
	return true
}

// Logout forgets the remembered credentials and clears the token in the
// session and the transport. All of it happens before Logout returns.
func (m *Manager) Logout(ctx context.Context) {
	if err := m.creds.Reset(ctx); err != nil {
		m.log.Warn(ctx, "could not forget credentials", "error", err)
	}
	m.SetToken("")
	m.log.Info(ctx, "logged out")
}

// RestoreSession logs in with remembered credentials, if any. The pair is
// not saved again. Returns whether the session is authenticated afterwards.
func (m *Manager) RestoreSession(ctx context.Context) bool {
	if m.authenticated {
		return true
	}
	c, err := m.creds.Load(ctx)
	if err != nil {
		m.log.Warn(ctx, "remembered credentials unavailable", "error", err)
		return false
	}
	if c == nil {
		return false
	}
	return m.Login(ctx, c.Username, c.Password, false)
}

// Reassert pushes the held token into the transport again. The transport
// may have been rebuilt since the token was set.
func (m *Manager) Reassert() {
	m.transport.SetAuthToken(m.token)
}

// EnsureFresh re-authenticates with remembered credentials once the held
// JWT has expired. Opaque tokens never expire here, and without remembered
// credentials the session is left as it is for the server to judge.
func (m *Manager) EnsureFresh(ctx context.Context) {
	if !m.authenticated || m.expiresAt.IsZero() || m.now().Before(m.expiresAt) {
		return
	}

	c, err := m.creds.Load(ctx)
	if err != nil || c == nil {
		m.log.Debug(ctx, "token expired, nothing remembered to renew it")
		return
	}
	m.log.Info(ctx, "token expired, renewing")
	m.Login(ctx, c.Username, c.Password, false)
}

// Authorize prepares the transport for an authorized call.
func (m *Manager) Authorize(ctx context.Context) {
	m.EnsureFresh(ctx)
	m.Reassert()
}

func parseToken(body []byte) (string, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return "", common.ErrNoToken
	}

	var token string
	switch body[0] {
	case '{':
		var tr tokenResponse
		if err := json.Unmarshal(body, &tr); err != nil {
			return "", fmt.Errorf("%w: %v", common.ErrMalformedResponse, err)
		}
		token = tr.AccessToken
		if token == "" {
			token = tr.Token
		}
	case '"':
		if err := json.Unmarshal(body, &token); err != nil {
			return "", fmt.Errorf("%w: %v", common.ErrMalformedResponse, err)
		}
	default:
		if !isBearerToken(body) {
			return "", common.ErrMalformedResponse
		}
		token = string(body)
	}

	if token == "" {
		return "", common.ErrNoToken
	}
	return token, nil
}

// isBearerToken reports whether b matches the b64token grammar of RFC 6750:
// 1*( ALPHA / DIGIT / "-" / "." / "_" / "~" / "+" / "/" ) *"=".
func isBearerToken(b []byte) bool {
	i := 0
	for ; i < len(b); i++ {
		c := b[i]
		if ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9') {
			continue
		}
		if strings.IndexByte("-._~+/", c) >= 0 {
			continue
		}
		break
	}
	if i == 0 {
		return false
	}
	for ; i < len(b); i++ {
		if b[i] != '=' {
			return false
		}
	}
	return true
}

// tokenExpiry reads exp from a JWT without verifying it; the client has no
// key and only uses the value to decide when to renew.
func tokenExpiry(token string) time.Time {
	if token == "" {
		return time.Time{}
	}
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}
	if claims.ExpiresAt == nil {
		return time.Time{}
	}
	return claims.ExpiresAt.Time
}
