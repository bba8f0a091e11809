package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/hanifgold/sitecms/internal/remote"
)

// refreshMargin is how long before expiry the access token is renewed.
const refreshMargin = 30 * time.Second

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	User         struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"user"`
}

// GetSession returns a copy of the current session, or nil when signed out.
func (c *Client) GetSession(ctx context.Context) (*remote.Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return nil, nil
	}
	sess := *c.session
	return &sess, nil
}

// SignInWithPassword exchanges credentials for a session and emits
// SIGNED_IN on success.
func (c *Client) SignInWithPassword(ctx context.Context, email, password string) error {
	var tok tokenResponse
	err := c.doAuth(ctx, "/auth/v1/token?grant_type=password", map[string]string{
		"email":    email,
		"password": password,
	}, &tok)
	if err != nil {
		return err
	}
	c.adoptSession(&tok, remote.EventSignedIn)
	return nil
}

// SignUp registers a new account. When the project confirms accounts
// immediately the response carries a session and the client signs in.
func (c *Client) SignUp(ctx context.Context, email, password string) error {
	var tok tokenResponse
	err := c.doAuth(ctx, "/auth/v1/signup", map[string]string{
		"email":    email,
		"password": password,
	}, &tok)
	if err != nil {
		return err
	}
	if tok.AccessToken != "" {
		c.adoptSession(&tok, remote.EventSignedIn)
	}
	return nil
}

// SignOut revokes the session remotely and always clears it locally,
// emitting SIGNED_OUT even when revocation fails.
func (c *Client) SignOut(ctx context.Context) error {
	c.mu.Lock()
	token := ""
	if c.session != nil {
		token = c.session.AccessToken
	}
	c.mu.Unlock()

	var err error
	if token != "" {
		req, reqErr := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/v1/logout", nil)
		if reqErr != nil {
			return reqErr
		}
		req.Header.Set("apikey", c.anonKey)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, doErr := c.httpc.Do(req)
		if doErr != nil {
			err = fmt.Errorf("%w: %v", remote.ErrUnavailable, doErr)
		} else {
			resp.Body.Close()
			if resp.StatusCode >= 300 {
				err = fmt.Errorf("logout failed with status %d", resp.StatusCode)
			}
		}
	}

	c.clearSession()
	c.Emit(remote.EventSignedOut, nil)
	return err
}

func (c *Client) doAuth(ctx context.Context, path string, body map[string]string, out *tokenResponse) error {
	data, err := c.doJSON(ctx, path, body)
	if err != nil {
		return err
	}
	if err := unmarshalToken(data, out); err != nil {
		return err
	}
	return nil
}

func (c *Client) doJSON(ctx context.Context, path string, body map[string]string) ([]byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", remote.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 300 {
		err := apiError(resp.StatusCode, data)
		if resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnauthorized {
			return nil, fmt.Errorf("%w: %s", remote.ErrInvalidCredentials, err)
		}
		return nil, err
	}
	return data, nil
}

// adoptSession installs a freshly issued token, schedules its refresh and
// notifies subscribers.
func (c *Client) adoptSession(tok *tokenResponse, event remote.AuthEvent) {
	sess := sessionFromToken(tok)

	c.mu.Lock()
	c.session = sess
	c.refreshToken = tok.RefreshToken
	c.scheduleRefreshLocked(sess.ExpiresAt)
	copied := *sess
	c.mu.Unlock()

	c.Emit(event, &copied)
}

func (c *Client) clearSession() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session = nil
	c.refreshToken = ""
	if c.refreshTimer != nil {
		c.refreshTimer.Stop()
		c.refreshTimer = nil
	}
}

func (c *Client) scheduleRefreshLocked(expiresAt time.Time) {
	if c.refreshTimer != nil {
		c.refreshTimer.Stop()
	}
	d := time.Until(expiresAt) - refreshMargin
	if d < 0 {
		d = 0
	}
	c.refreshTimer = time.AfterFunc(d, c.refresh)
}

// refresh exchanges the refresh token for a new access token. A failed
// refresh signs the client out, matching what the hosted service does when
// a refresh token is revoked.
func (c *Client) refresh() {
	c.mu.Lock()
	rt := c.refreshToken
	c.mu.Unlock()
	if rt == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var tok tokenResponse
	err := c.doAuth(ctx, "/auth/v1/token?grant_type=refresh_token", map[string]string{
		"refresh_token": rt,
	}, &tok)
	if err != nil {
		c.log.Warn(ctx, "token refresh failed, signing out", "error", err)
		c.clearSession()
		c.Emit(remote.EventSignedOut, nil)
		return
	}
	c.adoptSession(&tok, remote.EventTokenRefreshed)
}

// sessionFromToken builds a session from a token response, falling back to
// the access token's own claims when the user object is absent.
func sessionFromToken(tok *tokenResponse) *remote.Session {
	sess := &remote.Session{
		AccessToken: tok.AccessToken,
		UserID:      tok.User.ID,
		Email:       tok.User.Email,
		ExpiresAt:   time.Now().Add(time.Duration(tok.ExpiresIn) * time.Second),
	}
	if sess.UserID != "" {
		return sess
	}

	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tok.AccessToken, claims); err != nil {
		return sess
	}
	if sub, err := claims.GetSubject(); err == nil {
		sess.UserID = sub
	}
	if email, ok := claims["email"].(string); ok {
		sess.Email = email
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		sess.ExpiresAt = exp.Time
	}
	return sess
}

func unmarshalToken(data []byte, out *tokenResponse) error {
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding auth response: %w", err)
	}
	if out.AccessToken == "" && out.User.ID == "" {
		return errors.New("auth response carried no session")
	}
	return nil
}
