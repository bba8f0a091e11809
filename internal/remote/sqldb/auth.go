package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/hanifgold/sitecms/internal/remote"
)

// Password policy matches the hosted auth service's default minimum.
const minPasswordLen = 6

type sessionClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

func (c *Client) currentSession() *remote.Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return nil
	}
	sess := *c.session
	return &sess
}

// GetSession returns the current session, or nil when signed out or the
// session token has expired.
func (c *Client) GetSession(ctx context.Context) (*remote.Session, error) {
	sess := c.currentSession()
	if sess != nil && time.Now().After(sess.ExpiresAt) {
		return nil, nil
	}
	return sess, nil
}

// SignUp creates an account with a bcrypt-hashed password. This backend
// signs the new user in immediately, the same as a hosted project with email
// confirmation disabled.
func (c *Client) SignUp(ctx context.Context, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return errors.New("invalid email address")
	}
	if len(password) < minPasswordLen {
		return fmt.Errorf("password should be at least %d characters", minPasswordLen)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	id := uuid.NewString()
	_, err = c.db.ExecContext(ctx,
		fmt.Sprintf("INSERT INTO users (id, email, password_hash, created_at) VALUES (%s, %s, %s, %s)",
			c.placeholder(1), c.placeholder(2), c.placeholder(3), c.placeholder(4)),
		id, email, string(hash), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		if isUniqueViolation(err) {
			return errors.New("user already registered")
		}
		return fmt.Errorf("creating user: %w", err)
	}

	c.establishSession(ctx, id, email)
	return nil
}

// SignInWithPassword verifies credentials and, on success, establishes a
// session and notifies subscribers. The error message is what callers show
// to the user; it never reveals which part of the credentials was wrong.
func (c *Client) SignInWithPassword(ctx context.Context, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	var id, hash string
	err := c.db.QueryRowContext(ctx,
		fmt.Sprintf("SELECT id, password_hash FROM users WHERE email = %s", c.placeholder(1)),
		email).Scan(&id, &hash)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return remote.ErrInvalidCredentials
	case err != nil:
		return fmt.Errorf("looking up user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return remote.ErrInvalidCredentials
	}

	c.establishSession(ctx, id, email)
	return nil
}

// SignOut clears the session and notifies subscribers. It cannot fail.
func (c *Client) SignOut(ctx context.Context) error {
	c.mu.Lock()
	c.session = nil
	c.mu.Unlock()
	c.Emit(remote.EventSignedOut, nil)
	return nil
}

func (c *Client) establishSession(ctx context.Context, userID, email string) {
	expires := time.Now().Add(c.tokenTTL)
	token, err := c.mintToken(userID, email, expires)
	if err != nil {
		c.log.Error(ctx, "minting session token", "error", err)
		return
	}
	sess := &remote.Session{
		AccessToken: token,
		UserID:      userID,
		Email:       email,
		ExpiresAt:   expires,
	}
	c.mu.Lock()
	c.session = sess
	c.mu.Unlock()
	copied := *sess
	c.Emit(remote.EventSignedIn, &copied)
}

func (c *Client) mintToken(userID, email string, expires time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(expires),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		Email: email,
	})
	return token.SignedString(c.secret)
}

// ParseToken validates a session token and returns the user id it was
// minted for.
func (c *Client) ParseToken(tokenString string) (string, error) {
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return c.secret, nil
	})
	if err != nil {
		return "", err
	}
	if !token.Valid {
		return "", remote.ErrUnauthorized
	}
	return claims.Subject, nil
}

func isUniqueViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || // sqlite
		strings.Contains(msg, "duplicate key value") // postgres
}
